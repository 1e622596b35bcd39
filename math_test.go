package twobody

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestCross(t *testing.T) {
	i := Vector3{1, 0, 0}
	j := Vector3{0, 1, 0}
	k := Vector3{0, 0, 1}
	if !vectorsEqual(i.Cross(j), k, 1e-12) {
		t.Fatal("i x j != k")
	}
	if !vectorsEqual(j.Cross(k), i, 1e-12) {
		t.Fatal("j x k != i")
	}
	if !vectorsEqual(Vector3{2, 3, 4}.Cross(Vector3{5, 6, 7}), Vector3{-3, 6, -3}, 1e-12) {
		t.Fatal("cross fail")
	}
	// From Vallado
	if !vectorsEqual(Vector3{6524.834, 6862.875, 6448.296}.Cross(Vector3{4.901327, 5.533756, -1.976341}), Vector3{-4.924667792015100e4, 4.450050424118601e4, 0.246964476137900e4}, 1e-6) {
		t.Fatal("cross fail")
	}
}

func TestDotNormUnit(t *testing.T) {
	a := Vector3{1, 2, 2}
	if !floats.EqualWithinAbs(a.Norm(), 3, 1e-15) {
		t.Fatalf("norm=%f != 3", a.Norm())
	}
	if !floats.EqualWithinAbs(a.Dot(Vector3{2, -1, 4}), 8, 1e-15) {
		t.Fatalf("dot=%f != 8", a.Dot(Vector3{2, -1, 4}))
	}
	if !vectorsEqual(a.Unit(), Vector3{1. / 3, 2. / 3, 2. / 3}, 1e-15) {
		t.Fatalf("unit=%+v", a.Unit())
	}
	if !(Vector3{}).Unit().IsZero() {
		t.Fatal("unit of the null vector should be null")
	}
	if !vectorsEqual(linComb(2, a, -1, Vector3{1, 1, 1}), Vector3{1, 3, 3}, 1e-15) {
		t.Fatal("linComb fail")
	}
	v := a.Vec()
	if v.Len() != 3 || v.At(2, 0) != 2 {
		t.Fatal("Vec fail")
	}
}

func TestSign(t *testing.T) {
	if sign(-3) != -1 || sign(3) != 1 || sign(0) != 1 {
		t.Fatal("sign fail")
	}
}

func TestWrap(t *testing.T) {
	for _, tc := range []struct{ in, exp float64 }{
		{0, 0}, {-math.Pi / 2, 3 * math.Pi / 2}, {5 * math.Pi, math.Pi}, {-4 * math.Pi, 0},
	} {
		if got := wrap2π(tc.in); !floats.EqualWithinAbs(got, tc.exp, 1e-12) {
			t.Fatalf("wrap2π(%f)=%f != %f", tc.in, got, tc.exp)
		}
	}
}

func TestAngles(t *testing.T) {
	for i := 0.0; i < 360; i += 0.5 {
		if !floats.EqualWithinAbs(Rad2deg(Deg2rad(i)), i, 1e-10) {
			t.Fatalf("Rad2deg(Deg2rad(%f)) = %f", i, Rad2deg(Deg2rad(i)))
		}
	}
	if !floats.EqualWithinAbs(Deg2rad(-90), 3*math.Pi/2, 1e-12) {
		t.Fatal("negative angle not wrapped")
	}
}
