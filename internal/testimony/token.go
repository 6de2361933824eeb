package testimony

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// #region token

// Token is a closed enumeration of testimony kinds. Its meaning (governing
// houses, polarity, family) comes from a Taxonomy, never from its name.
type Token int

const (
	PerfectionDirect Token = iota
	PerfectionTranslation
	PerfectionCollection
	PerfectionHardAspect
	NoPerfection
	Prohibition
	AbscissionOfLight
	MoonVoidOfCourse

	// house tokens follow: two per house, fortunate then afflicted
	houseTokenBase
)

// ErrUnknownToken is returned for tokens outside the enumeration or missing
// from the taxonomy.
var ErrUnknownToken = errors.New("testimony: unknown token")

var fixedNames = [...]string{
	PerfectionDirect:      "perfection_direct",
	PerfectionTranslation: "perfection_translation_of_light",
	PerfectionCollection:  "perfection_collection_of_light",
	PerfectionHardAspect:  "perfection_hard_aspect",
	NoPerfection:          "no_perfection",
	Prohibition:           "prohibition",
	AbscissionOfLight:     "abscission_of_light",
	MoonVoidOfCourse:      "moon_void_of_course",
}

// RulerFortunate returns the token for a well-dignified ruler of house n.
func RulerFortunate(n int) Token {
	return houseTokenBase + Token(2*(n-1))
}

// RulerAfflicted returns the token for a debilitated ruler of house n.
func RulerAfflicted(n int) Token {
	return houseTokenBase + Token(2*(n-1)+1)
}

// House returns the house a ruler token speaks for.
func (t Token) House() (int, bool) {
	if t < houseTokenBase || t >= houseTokenBase+24 {
		return 0, false
	}
	return int(t-houseTokenBase)/2 + 1, true
}

// Valid reports whether t is inside the enumeration.
func (t Token) Valid() bool {
	return t >= 0 && t < houseTokenBase+24
}

func (t Token) String() string {
	if t >= 0 && int(t) < len(fixedNames) {
		return fixedNames[t]
	}
	if n, ok := t.House(); ok {
		if (t-houseTokenBase)%2 == 0 {
			return fmt.Sprintf("l%d_fortunate", n)
		}
		return fmt.Sprintf("l%d_malific_debility", n)
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// ParseToken resolves a token by name.
func ParseToken(s string) (Token, error) {
	s = strings.TrimSpace(s)
	for i, name := range fixedNames {
		if name == s {
			return Token(i), nil
		}
	}
	if rest, ok := strings.CutPrefix(s, "l"); ok {
		num, kind, found := strings.Cut(rest, "_")
		if found {
			n, err := strconv.Atoi(num)
			if err == nil && n >= 1 && n <= 12 {
				switch kind {
				case "fortunate":
					return RulerFortunate(n), nil
				case "malific_debility":
					return RulerAfflicted(n), nil
				}
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownToken, s)
}

// MarshalText encodes the token by name.
func (t Token) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownToken, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a token name.
func (t *Token) UnmarshalText(b []byte) error {
	v, err := ParseToken(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTokens resolves a list of names, failing on the first unknown one.
func ParseTokens(names []string) ([]Token, error) {
	out := make([]Token, 0, len(names))
	for _, n := range names {
		t, err := ParseToken(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// #endregion token
