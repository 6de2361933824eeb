package aspect

import (
	"math"
	"testing"
)

func TestSignedDelta(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{10, 0, 10},
		{0, 10, -10},
		{350, 10, -20},
		{10, 350, 20},
		{180, 0, 180},
		{0, 180, 180}, // -180 folds to +180
		{540, 0, 180},
		{-90, 0, -90},
		{720, 360, 0},
	}
	for _, c := range cases {
		got := SignedDelta(c.a, c.b)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("SignedDelta(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSeparation(t *testing.T) {
	if got := Separation(350, 10); math.Abs(got-20) > 1e-9 {
		t.Errorf("Separation(350, 10) = %v, want 20", got)
	}
	if got := Separation(0, 180); got != 180 {
		t.Errorf("Separation(0, 180) = %v, want 180", got)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[float64]float64{-10: 350, 360: 0, 725: 5, 0: 0, 359.5: 359.5}
	for in, want := range cases {
		if got := Normalize(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("Normalize(%v) = %v, want %v", in, got, want)
		}
	}
}
