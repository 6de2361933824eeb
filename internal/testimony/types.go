package testimony

// #region polarity
// Polarity is the intrinsic direction of a testimony.
type Polarity string

const (
	Favorable   Polarity = "favorable"
	Unfavorable Polarity = "unfavorable"
)

// #endregion polarity

// #region family
// Family groups tokens for tier resolution.
type Family string

const (
	FamilyPerfection Family = "perfection"
	FamilyRuler      Family = "ruler"
	FamilyMoon       Family = "moon"
	FamilyModifier   Family = "modifier" // qualifies another testimony
)

// #endregion family

// #region tier
// Tier is the weight class a token resolves to under a contract.
type Tier string

const (
	TierMajor      Tier = "major"
	TierSecondary  Tier = "secondary"
	TierMinor      Tier = "minor"
	TierIrrelevant Tier = "irrelevant"
)

// #endregion tier

// #region ledger-entry
// LedgerEntry explains one token's contribution to the score.
type LedgerEntry struct {
	Token    Token    `json:"token" yaml:"token"`
	Houses   []int    `json:"houses,omitempty" yaml:"houses,omitempty"`
	Tier     Tier     `json:"tier" yaml:"tier"`
	Polarity Polarity `json:"polarity" yaml:"polarity"`
	Weight   float64  `json:"weight" yaml:"weight"`
	DeltaYes float64  `json:"delta_yes" yaml:"delta_yes"`
	DeltaNo  float64  `json:"delta_no" yaml:"delta_no"`
}

// #endregion ledger-entry
