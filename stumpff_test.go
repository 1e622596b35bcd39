package twobody

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestFindC2C3(t *testing.T) {
	c2, c3 := FindC2C3(0)
	if c2 != 0.5 || c3 != 1/6. {
		t.Fatalf("c2=%f c3=%f at z=0", c2, c3)
	}
	// z = π²: c2 = 2/π², c3 = 1/π².
	c2, c3 = FindC2C3(math.Pi * math.Pi)
	if !floats.EqualWithinAbs(c2, 2/(math.Pi*math.Pi), 1e-15) || !floats.EqualWithinAbs(c3, 1/(math.Pi*math.Pi), 1e-15) {
		t.Fatalf("c2=%f c3=%f at z=π²", c2, c3)
	}
	// z = -1: c2 = (cosh(1)-1), c3 = sinh(1)-1.
	c2, c3 = FindC2C3(-1)
	if !floats.EqualWithinAbs(c2, math.Cosh(1)-1, 1e-15) || !floats.EqualWithinAbs(c3, math.Sinh(1)-1, 1e-15) {
		t.Fatalf("c2=%f c3=%f at z=-1", c2, c3)
	}
}

func TestFindC2C3Continuity(t *testing.T) {
	for _, z := range []float64{10 * small, -10 * small} {
		c2, c3 := FindC2C3(z)
		if !floats.EqualWithinAbs(c2, 0.5, 1e-6) || !floats.EqualWithinAbs(c3, 1/6., 1e-6) {
			t.Fatalf("z=%g: c2=%.12f c3=%.12f differ from the series limits", z, c2, c3)
		}
	}
}

func TestDC2C3(t *testing.T) {
	// Central differences against the analytic derivatives on both sides of the series switch.
	for _, z := range []float64{-30, -2, -1e-6, 0, 1e-6, 3, 40} {
		h := 1e-4
		c2p, c3p := FindC2C3(z + h)
		c2m, c3m := FindC2C3(z - h)
		c2, c3 := FindC2C3(z)
		dc2, dc3 := dC2C3(z, c2, c3)
		if !floats.EqualWithinAbs(dc2, (c2p-c2m)/(2*h), 1e-7) || !floats.EqualWithinAbs(dc3, (c3p-c3m)/(2*h), 1e-7) {
			t.Fatalf("z=%g: dc2=%g (num %g) dc3=%g (num %g)", z, dc2, (c2p-c2m)/(2*h), dc3, (c3p-c3m)/(2*h))
		}
	}
}
