package testimony

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// #region contract

// ErrUnknownCategory is returned when no contract exists for a category.
var ErrUnknownCategory = errors.New("testimony: unknown category")

// Contract is the relevance and weight policy for one question category.
// It is read-only once built.
type Contract struct {
	Category         string           `yaml:"category,omitempty"`
	Quesited         int              `yaml:"quesited"` // house of the thing asked about
	RelevantHouses   []int            `yaml:"relevant_houses"`
	IrrelevantHouses []int            `yaml:"irrelevant_houses,omitempty"`
	Weights          map[Tier]float64 `yaml:"weights"`
}

// DefaultWeights returns MAJOR 25, SECONDARY 10, MINOR 3 and IRRELEVANT 0.
func DefaultWeights() map[Tier]float64 {
	return map[Tier]float64{
		TierMajor:      25,
		TierSecondary:  10,
		TierMinor:      3,
		TierIrrelevant: 0,
	}
}

// Weight returns the contract's weight for a tier, falling back to
// DefaultWeights when the tier is not configured.
func (c Contract) Weight(t Tier) float64 {
	if w, ok := c.Weights[t]; ok {
		return w
	}
	return DefaultWeights()[t]
}

// Relevant reports whether any of the houses is relevant to the significators.
func (c Contract) Relevant(houses []int) bool {
	for _, h := range houses {
		if slices.Contains(c.RelevantHouses, h) {
			return true
		}
	}
	return false
}

// Excluded reports whether any of the houses is irrelevant to the category.
func (c Contract) Excluded(houses []int) bool {
	for _, h := range houses {
		if slices.Contains(c.IrrelevantHouses, h) {
			return true
		}
	}
	return false
}

// Validate checks house numbers and weights.
func (c Contract) Validate() error {
	if c.Quesited < 1 || c.Quesited > 12 {
		return fmt.Errorf("contract %s: quesited house %d outside 1-12", c.Category, c.Quesited)
	}
	for _, hs := range [][]int{c.RelevantHouses, c.IrrelevantHouses} {
		for _, h := range hs {
			if h < 1 || h > 12 {
				return fmt.Errorf("contract %s: house %d outside 1-12", c.Category, h)
			}
		}
	}
	for _, h := range c.RelevantHouses {
		if slices.Contains(c.IrrelevantHouses, h) {
			return fmt.Errorf("contract %s: house %d is both relevant and irrelevant", c.Category, h)
		}
	}
	for t, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("contract %s: negative weight %.2f for %s", c.Category, w, t)
		}
	}
	return nil
}

// #endregion contract

// #region contracts

// Contracts maps category name to contract.
type Contracts map[string]Contract

// DefaultContracts returns the built-in categories. The querent is always
// house 1; Quesited names the other significator's house.
func DefaultContracts() Contracts {
	mk := func(category string, quesited int, irrelevant ...int) Contract {
		return Contract{
			Category:         category,
			Quesited:         quesited,
			RelevantHouses:   []int{1, quesited},
			IrrelevantHouses: irrelevant,
			Weights:          DefaultWeights(),
		}
	}
	return Contracts{
		"general":      mk("general", 7),
		"relationship": mk("relationship", 7, 5, 8),
		"gambling":     mk("gambling", 5, 7),
		"career":       mk("career", 10, 5),
		"health":       mk("health", 6, 5, 10),
		"lost_object":  mk("lost_object", 2, 5),
		"travel":       mk("travel", 9, 5),
	}
}

// Lookup returns the contract for a category.
func (cs Contracts) Lookup(category string) (Contract, error) {
	c, ok := cs[category]
	if !ok {
		return Contract{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return c, nil
}

// Categories returns the category names in sorted order.
func (cs Contracts) Categories() []string {
	out := make([]string, 0, len(cs))
	for k := range cs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// #endregion contracts

// #region load

// contractsFile is the root of a contracts YAML file.
type contractsFile struct {
	Contracts map[string]Contract `yaml:"contracts"`
}

// LoadContracts reads category contracts from a YAML file and layers them
// over DefaultContracts. An empty path or a missing file yields the defaults.
func LoadContracts(path string) (Contracts, error) {
	out := DefaultContracts()
	if path == "" {
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("contracts read: %w", err)
	}
	var f contractsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("contracts unmarshal: %w", err)
	}
	for name, c := range f.Contracts {
		c.Category = name
		if len(c.Weights) == 0 {
			c.Weights = DefaultWeights()
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		out[name] = c
	}
	return out, nil
}

// #endregion load
