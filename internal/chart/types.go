package chart

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// #region planet

// Planet identifies one of the seven traditional bodies.
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mercury Planet = "Mercury"
	Venus   Planet = "Venus"
	Mars    Planet = "Mars"
	Jupiter Planet = "Jupiter"
	Saturn  Planet = "Saturn"
)

// TraditionalPlanets lists the bodies a chart must carry. Detectors iterate
// this slice so results never depend on map order.
var TraditionalPlanets = []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

// ParsePlanet resolves a planet name case-insensitively.
func ParsePlanet(s string) (Planet, error) {
	for _, p := range TraditionalPlanets {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown planet %q", s)
}

// #endregion planet

// #region sign

// Sign is a 30° segment of the zodiac, 0 = Aries through 11 = Pisces.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignOf returns the sign containing the given ecliptic longitude.
func SignOf(longitude float64) Sign {
	lon := math.Mod(longitude, 360)
	if lon < 0 {
		lon += 360
	}
	s := int(lon / 30)
	if s > 11 {
		s = 11
	}
	return Sign(s)
}

func (s Sign) String() string {
	if s < 0 || s > 11 {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// MarshalText encodes the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	if s < 0 || s > 11 {
		return nil, fmt.Errorf("invalid sign %d", int(s))
	}
	return []byte(signNames[s]), nil
}

// UnmarshalText decodes a sign name case-insensitively.
func (s *Sign) UnmarshalText(b []byte) error {
	name := strings.TrimSpace(string(b))
	for i, n := range signNames {
		if strings.EqualFold(n, name) {
			*s = Sign(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sign %q", name)
}

// #endregion sign

// #region aspect

// Aspect is one of the five Ptolemaic aspects.
type Aspect string

const (
	Conjunction Aspect = "conjunction"
	Sextile     Aspect = "sextile"
	Square      Aspect = "square"
	Trine       Aspect = "trine"
	Opposition  Aspect = "opposition"
)

// TraditionalAspects lists the aspects in ascending angle.
var TraditionalAspects = []Aspect{Conjunction, Sextile, Square, Trine, Opposition}

// Degrees returns the exact angle of the aspect.
func (a Aspect) Degrees() float64 {
	switch a {
	case Conjunction:
		return 0
	case Sextile:
		return 60
	case Square:
		return 90
	case Trine:
		return 120
	case Opposition:
		return 180
	}
	return math.NaN()
}

// Favorable reports whether the aspect perfects easily (conjunction, sextile, trine).
func (a Aspect) Favorable() bool {
	return a == Conjunction || a == Sextile || a == Trine
}

// ParseAspect resolves an aspect name case-insensitively.
func ParseAspect(s string) (Aspect, error) {
	for _, a := range TraditionalAspects {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aspect %q", s)
}

// #endregion aspect

// #region planet-position

// PlanetPosition is the immutable state of one body at judgment time.
// Speed is in degrees per day; negative speed means retrograde.
type PlanetPosition struct {
	Planet       Planet  `json:"planet"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
	House        int     `json:"house"`
	Sign         Sign    `json:"sign"`
	DignityScore int     `json:"dignity_score"`
	Speed        float64 `json:"speed"`
}

// Retrograde reports whether the body is moving backwards through the zodiac.
func (p PlanetPosition) Retrograde() bool {
	return p.Speed < 0
}

// #endregion planet-position

// #region aspect-record

// AspectRecord is an aspect already computed by the chart builder.
type AspectRecord struct {
	Planet1  Planet  `json:"planet1"`
	Planet2  Planet  `json:"planet2"`
	Aspect   Aspect  `json:"aspect"`
	Orb      float64 `json:"orb"`
	Applying bool    `json:"applying"`
}

// Involves reports whether the record connects a and b in either order.
func (r AspectRecord) Involves(a, b Planet) bool {
	return (r.Planet1 == a && r.Planet2 == b) || (r.Planet1 == b && r.Planet2 == a)
}

// #endregion aspect-record

// #region chart

// Location is a geographic coordinate in degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Chart is the snapshot a judgment is computed from.
type Chart struct {
	DateTime     time.Time                 `json:"date_time"`
	DateTimeUTC  time.Time                 `json:"date_time_utc"`
	Timezone     string                    `json:"timezone_info"`
	Location     Location                  `json:"location"`
	LocationName string                    `json:"location_name"`
	Planets      map[Planet]PlanetPosition `json:"planets"`
	Aspects      []AspectRecord            `json:"aspects"`
	Houses       []float64                 `json:"houses"`
	HouseRulers  map[int]Planet            `json:"house_rulers"`
	Ascendant    float64                   `json:"ascendant"`
	Midheaven    float64                   `json:"midheaven"`
}

// #endregion chart
