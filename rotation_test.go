package twobody

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func TestR1R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r3 := R3(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r3.At(2, 2) || r3.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R3.At(2, 2) = 1\n")
	}
	// Test R1.
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced\n")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced\n")
	}
	// Test R3.
	if r3.At(0, 0) != r3.At(1, 1) || r3.At(1, 1) != c {
		t.Fatal("expected R3 cosines misplaced\n")
	}
	if r3.At(1, 0) != -r3.At(0, 1) || r3.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced\n")
	}
}

func TestR3R1R3(t *testing.T) {
	θ1, θ2, θ3 := 0.3, -1.1, 2.4
	var tmp, exp mat64.Dense
	tmp.Mul(R3(θ3), R1(θ2))
	exp.Mul(&tmp, R3(θ1))
	if !mat64.EqualApprox(R3R1R3(θ1, θ2, θ3), &exp, 1e-12) {
		t.Logf("\nGot %+v\nExp %+v\n", mat64.Formatted(R3R1R3(θ1, θ2, θ3)), mat64.Formatted(&exp))
		t.Fatal("R3R1R3 does not match the successive rotations")
	}
}

func TestPQW2ECI(t *testing.T) {
	// An equatorial, zero-ω orbit has its perifocal frame aligned with the inertial one.
	v := Vector3{1, 2, 3}
	if !vectorsEqual(PQW2ECI(0, 0, 0, v), v, 1e-15) {
		t.Fatal("identity rotation failed")
	}
	// 90° inclination with Ω=0 and ω=0 sends Q onto K.
	if !vectorsEqual(PQW2ECI(math.Pi/2, 0, 0, Vector3{0, 1, 0}), Vector3{0, 0, 1}, 1e-15) {
		t.Fatalf("Q should map to K, got %+v", PQW2ECI(math.Pi/2, 0, 0, Vector3{0, 1, 0}))
	}
	// Ω=90° sends P onto J.
	if !vectorsEqual(PQW2ECI(0, 0, math.Pi/2, Vector3{1, 0, 0}), Vector3{0, 1, 0}, 1e-15) {
		t.Fatal("P should map to J")
	}
	// General case against the successive rotations ROT3(-Ω) ROT1(-i) ROT3(-ω).
	i, ω, Ω := 0.87, 1.2, -2.3
	var tmp, rot mat64.Dense
	tmp.Mul(R3(-Ω), R1(-i))
	rot.Mul(&tmp, R3(-ω))
	if exp := MxV33(&rot, v); !vectorsEqual(PQW2ECI(i, ω, Ω, v), exp, 1e-12) {
		t.Fatalf("got %+v expected %+v", PQW2ECI(i, ω, Ω, v), exp)
	}
}

func TestPerifocalFrame(t *testing.T) {
	r := Vector3{1131.34, -2282.343, 6672.423}
	v := Vector3{-5.64305, 4.30333, 2.42879}
	m := perifocalFrame(r, v, Earth.GM())
	// Rows must be orthonormal and the third one along h.
	var mmT mat64.Dense
	mmT.Mul(m, m.T())
	if !mat64.EqualApprox(&mmT, mat64.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}), 1e-12) {
		t.Fatal("perifocal frame not orthonormal")
	}
	rPQW := MxV33(m, r)
	if !floats.EqualWithinAbs(rPQW[2], 0, 1e-9) {
		t.Fatalf("r has a W component: %+v", rPQW)
	}
}
