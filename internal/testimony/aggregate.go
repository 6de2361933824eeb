package testimony

import (
	"fmt"
	"slices"
)

// #region aggregator

// Aggregator folds testimony tokens into a score under a category contract.
// It holds only its read-only taxonomy and is safe for concurrent use.
type Aggregator struct {
	taxonomy Taxonomy
}

// NewAggregator creates an aggregator; a nil taxonomy uses DefaultTaxonomy.
func NewAggregator(taxonomy Taxonomy) *Aggregator {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Aggregator{taxonomy: taxonomy}
}

// Aggregate returns yes minus no and one ledger entry per counted token, in
// input order. Tokens governed by an irrelevant house are dropped from the
// ledger entirely. An empty token list scores 0 with an empty ledger.
func (a *Aggregator) Aggregate(tokens []Token, c Contract) (float64, []LedgerEntry, error) {
	ledger := make([]LedgerEntry, 0, len(tokens))
	var yes, no float64
	for _, tok := range tokens {
		e, err := a.taxonomy.Lookup(tok)
		if err != nil {
			return 0, nil, fmt.Errorf("aggregate: %w", err)
		}
		if c.Excluded(e.Houses) {
			continue
		}
		tier := resolveTier(e, c)
		w := c.Weight(tier)
		entry := LedgerEntry{
			Token:    tok,
			Houses:   slices.Clone(e.Houses),
			Tier:     tier,
			Polarity: e.Polarity,
			Weight:   w,
		}
		if e.Polarity == Favorable {
			entry.DeltaYes = w
			yes += w
		} else {
			entry.DeltaNo = w
			no += w
		}
		ledger = append(ledger, entry)
	}
	return yes - no, ledger, nil
}

// resolveTier ranks perfection testimonies MAJOR, testimonies about a
// relevant house SECONDARY and everything else MINOR.
func resolveTier(e Entry, c Contract) Tier {
	switch {
	case e.Family == FamilyPerfection:
		return TierMajor
	case c.Relevant(e.Houses):
		return TierSecondary
	default:
		return TierMinor
	}
}

// #endregion aggregator
