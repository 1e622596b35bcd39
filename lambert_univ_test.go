package twobody

import (
	"errors"
	"math"
	"testing"
)

func TestLambertUniversalVallado(t *testing.T) {
	for _, tc := range []struct {
		dm       DirectionOfMotion
		v1, v2   Vector3
		hitEarth bool
	}{
		{Short, Vector3{-5.992495, 1.925367, 3.245638}, Vector3{-3.312459, -4.196619, -0.385289}, false},
		{Long, Vector3{0.888599, -6.635283, -3.111731}, Vector3{-3.542944, 3.487655, 2.892145}, true},
	} {
		geom, err := NewTransferGeometry(valladoR1, valladoR2, tc.dm, Low, 0)
		if err != nil {
			t.Fatal(err)
		}
		sol := LambertUniversal(geom, 3600, 0, 0, Earth)
		if sol.Err != nil || !sol.Converged {
			t.Fatalf("%s: %+v", tc.dm, sol)
		}
		if !vectorsEqual(sol.V1, tc.v1, 1e-6) || !vectorsEqual(sol.V2, tc.v2, 1e-6) {
			t.Logf("\nGot %+v %+v\nExp %+v %+v\n", sol.V1, sol.V2, tc.v1, tc.v2)
			t.Fatalf("%s: incorrect velocities", tc.dm)
		}
		if sol.HitEarth != tc.hitEarth {
			t.Fatalf("%s: hit earth %v", tc.dm, sol.Impact)
		}
		assertKeplerConsistent(t, tc.dm.String(), valladoR1, valladoR2, sol.V1, sol.V2, 3600)
	}
}

func TestLambertUniversalGEO(t *testing.T) {
	// Transfer also covered by the original bisection solver.
	r1 := Vector3{15945.34, 0, 0}
	r2 := Vector3{12214.83899, 10249.46731, 0}
	for _, tc := range []struct {
		dm     DirectionOfMotion
		v1, v2 Vector3
	}{
		{Short, Vector3{2.058913, 2.915964, 0}, Vector3{-3.451565, 0.910314, 0}},
		{Long, Vector3{-3.811158, -2.003854, 0}, Vector3{4.207569, 0.914724, 0}},
	} {
		geom, _ := NewTransferGeometry(r1, r2, tc.dm, Low, 0)
		sol := LambertUniversal(geom, 76*60, 0, 0, Earth)
		if sol.Err != nil {
			t.Fatal(sol.Err)
		}
		if !vectorsEqual(sol.V1, tc.v1, 1e-5) || !vectorsEqual(sol.V2, tc.v2, 1e-5) {
			t.Logf("\nGot %+v %+v\nExp %+v %+v\n", sol.V1, sol.V2, tc.v1, tc.v2)
			t.Fatalf("%s: incorrect velocities", tc.dm)
		}
	}
}

func TestLambertUniversalMultiRev(t *testing.T) {
	for _, tc := range []struct {
		dm DirectionOfMotion
		de EnergyBranch
		v1 Vector3
	}{
		{Short, High, Vector3{-5.507692, 2.299527, 3.202587}},
		{Short, Low, Vector3{-2.544780, 4.900207, 3.069540}},
		{Long, High, Vector3{1.684962, -5.773166, -3.079920}},
		{Long, Low, Vector3{4.494479, -3.124388, -3.130377}},
	} {
		geom, _ := NewTransferGeometry(valladoR1, valladoR2, tc.dm, tc.de, 1)
		ψmin, _, err := LambertUMins(geom, Earth)
		if err != nil {
			t.Fatal(err)
		}
		sol := LambertUniversal(geom, 25000, ψmin, 0, Earth)
		if sol.Err != nil {
			t.Fatalf("%s/%s: %s", tc.dm, tc.de, sol.Err)
		}
		if !vectorsEqual(sol.V1, tc.v1, 1e-5) {
			t.Fatalf("%s/%s: v1=%+v expected %+v", tc.dm, tc.de, sol.V1, tc.v1)
		}
		assertKeplerConsistent(t, tc.dm.String(), valladoR1, valladoR2, sol.V1, sol.V2, 25000)
	}
}

func TestLambertUniversalBranchEnergy(t *testing.T) {
	energy := func(de EnergyBranch) float64 {
		geom, _ := NewTransferGeometry(valladoR1, valladoR2, Short, de, 2)
		ψmin, _, err := LambertUMins(geom, Earth)
		if err != nil {
			t.Fatal(err)
		}
		sol := LambertUniversal(geom, 40000, ψmin, 0, Earth)
		if sol.Err != nil {
			t.Fatalf("%s: %s", de, sol.Err)
		}
		return sol.V1.Dot(sol.V1)/2 - Earth.GM()/valladoR1.Norm()
	}
	if low, high := energy(Low), energy(High); !(high > low) {
		t.Fatalf("high energy branch has ξ=%f, below the low branch ξ=%f", high, low)
	}
}

func TestLambertUniversalBelowMinimumTime(t *testing.T) {
	geom, _ := NewTransferGeometry(valladoR1, valladoR2, Short, High, 1)
	ψmin, tMin, err := LambertUMins(geom, Earth)
	if err != nil {
		t.Fatal(err)
	}
	for _, de := range []EnergyBranch{Low, High} {
		geom.De = de
		sol := LambertUniversal(geom, 0.99*tMin, ψmin, 0, Earth)
		if !errors.Is(sol.Err, ErrGNotConverged) || sol.Converged {
			t.Fatalf("%s: expected no solution below the minimum time, got %+v", de, sol)
		}
		var cErr *ConvergenceError
		if !errors.As(sol.Err, &cErr) || cErr.Iterations != univMaxIter {
			t.Fatalf("expected a convergence error, got %v", sol.Err)
		}
	}
}

func TestLambertUniversalImpossible180(t *testing.T) {
	geom, _ := NewTransferGeometry(Vector3{7000, 0, 0}, Vector3{-12000, 0, 0}, Short, Low, 0)
	if sol := LambertUniversal(geom, 4000, 0, 0, Earth); !errors.Is(sol.Err, ErrImpossible180) {
		t.Fatalf("expected ErrImpossible180, got %v", sol.Err)
	}
	geom, _ = NewTransferGeometry(valladoR1, valladoR2, Short, Low, 1)
	if sol := LambertUniversal(geom, 30000, 1, 0, Earth); !errors.Is(sol.Err, ErrInvalidInput) {
		t.Fatalf("expected invalid ψmin, got %v", sol.Err)
	}
	if sol := LambertUniversal(geom, 0, 50, 0, Earth); !errors.Is(sol.Err, ErrInvalidInput) {
		t.Fatalf("expected invalid Δt, got %v", sol.Err)
	}
}

func TestUnivSearchRecover(t *testing.T) {
	geom, _ := NewTransferGeometry(valladoR1, valladoR2, Short, Low, 0)
	s, err := newUnivSearch(geom, 3600, 0, Earth.GM())
	if err != nil {
		t.Fatal(err)
	}
	s.ψ = -50
	s.evaluate()
	if s.y >= 0 {
		t.Fatalf("y=%f should be negative", s.y)
	}
	if err := s.recover(); err != nil {
		t.Fatal(err)
	}
	if s.state != univRecover || s.recoveries != 1 || s.lo != -50 {
		t.Fatalf("unexpected search state %+v", s)
	}
	if math.Abs(s.ψ+3.254357) > 1e-5 || s.y < 0 {
		t.Fatalf("ψ=%f y=%f", s.ψ, s.y)
	}
	// Exhausted recoveries.
	s.ψ, s.recoveries = -50, univMaxRecovery
	s.evaluate()
	if err := s.recover(); !errors.Is(err, ErrYNegative) {
		t.Fatalf("expected ErrYNegative, got %v", err)
	}
}

func TestUnivSearchStep(t *testing.T) {
	geom, _ := NewTransferGeometry(valladoR1, valladoR2, Short, Low, 0)
	t0, _, _ := geom.tof(0, Earth.GM())
	s := &univSearch{geom: geom, μ: Earth.GM(), lo: -10, up: 10, increasing: true}
	s.step(t0, t0+1)
	if s.state != univNewton || s.lo != 0 || !(s.ψ > 0 && s.ψ < 10) {
		t.Fatalf("expected a Newton step: %+v", s)
	}
	s = &univSearch{geom: geom, μ: Earth.GM(), lo: -1e-6, up: 1e-6, increasing: true}
	s.step(t0, t0+1000)
	if s.state != univBisect || s.lo != 0 || s.ψ != 5e-7 {
		t.Fatalf("expected a bisection step: %+v", s)
	}
	// Decreasing branch: too short a time moves the upper bound.
	s = &univSearch{geom: geom, μ: Earth.GM(), lo: -1e-6, up: 1e-6}
	s.step(t0, t0+1000)
	if s.up != 0 || s.ψ != -5e-7 {
		t.Fatalf("unexpected bracket %+v", s)
	}
	if univBisect.String() != "bisection" {
		t.Fatal("invalid state name")
	}
}

func TestTimeOfFlightDerivative(t *testing.T) {
	geom, _ := NewTransferGeometry(valladoR1, valladoR2, Short, Low, 0)
	μ := Earth.GM()
	for _, ψ := range []float64{-2, -1e-6, 0, 1e-6, 5, 30, 60} {
		h := 1e-4
		tp, _, ok1 := geom.tof(ψ+h, μ)
		tm, _, ok2 := geom.tof(ψ-h, μ)
		d, ok3 := geom.dtdψ(ψ, μ)
		if !ok1 || !ok2 || !ok3 {
			t.Fatalf("y<0 at ψ=%f", ψ)
		}
		if fd := (tp - tm) / (2 * h); math.Abs(fd-d) > 1e-4*math.Max(1, math.Abs(d)) {
			t.Fatalf("ψ=%f: dt/dψ=%f finite difference %f", ψ, d, fd)
		}
	}
}
