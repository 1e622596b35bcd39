package twobody

import "testing"

func TestRegimeOf(t *testing.T) {
	for _, tc := range []struct {
		ecc float64
		exp ConicRegime
	}{
		{0, Circular}, {1e-10, Circular}, {-1e-10, Circular}, {0.3, Elliptic},
		{1 - 1e-10, Parabolic}, {1, Parabolic}, {1 + 1e-10, Parabolic}, {1 + 1e-6, Hyperbolic}, {4, Hyperbolic},
	} {
		if got := RegimeOf(tc.ecc); got != tc.exp {
			t.Fatalf("RegimeOf(%g) = %s, expected %s", tc.ecc, got, tc.exp)
		}
	}
	assertPanic(t, func() {
		_ = ConicRegime(0).String()
	})
}
