package twobody

import (
	"fmt"
	"math"
)

const (
	univMaxIter     = 40
	univMaxRecovery = 10
	univTol         = 1e-10
)

// univState is the kind of step which produced the current ψ.
type univState uint8

const (
	univNewton univState = iota
	univBisect
	univRecover
)

func (s univState) String() string {
	switch s {
	case univNewton:
		return "newton"
	case univBisect:
		return "bisection"
	case univRecover:
		return "recovering"
	}
	panic(fmt.Errorf("unknown universal variable state %d", s))
}

// ψBracket returns the search interval of ψ for the revolution count.
func (g TransferGeometry) ψBracket() (lo, up float64) {
	if g.Nrev == 0 {
		return -16 * math.Pi * math.Pi, 4 * math.Pi * math.Pi
	}
	n := float64(g.Nrev)
	return 4 * n * n * math.Pi * math.Pi, 4 * (n + 1) * (n + 1) * math.Pi * math.Pi
}

// y returns the universal variable y(ψ).
func (g TransferGeometry) y(ψ, c2, c3 float64) float64 {
	return g.r1 + g.r2 + g.vara*(ψ*c3-1)/math.Sqrt(c2)
}

// tof returns the time of flight at ψ, and false if y(ψ) is negative.
func (g TransferGeometry) tof(ψ, μ float64) (t, y float64, ok bool) {
	c2, c3 := FindC2C3(ψ)
	y = g.y(ψ, c2, c3)
	if !(y >= 0) {
		return 0, y, false
	}
	x := math.Sqrt(y / c2)
	return (x*x*x*c3 + g.vara*math.Sqrt(y)) / math.Sqrt(μ), y, true
}

// dtdψ returns the derivative of the time of flight with respect to ψ, and false if y(ψ) is negative.
func (g TransferGeometry) dtdψ(ψ, μ float64) (float64, bool) {
	c2, c3 := FindC2C3(ψ)
	y := g.y(ψ, c2, c3)
	if !(y >= 0) {
		return 0, false
	}
	x := math.Sqrt(y / c2)
	if x < 1e-300 {
		return 0, true
	}
	dc2, dc3 := dC2C3(ψ, c2, c3)
	return (x*x*x*(dc3-3*c3*dc2/(2*c2)) + g.vara/8*(3*c3*math.Sqrt(y)/c2+g.vara/x)) / math.Sqrt(μ), true
}

// univSearch holds the hybrid Newton and bisection iteration on ψ.
type univSearch struct {
	geom       TransferGeometry
	μ          float64
	lo, up, ψ  float64
	increasing bool // whether t(ψ) increases on the bracket
	state      univState
	recoveries int
	c2, c3, y  float64
}

func newUnivSearch(geom TransferGeometry, Δt, ψmin, μ float64) (*univSearch, error) {
	s := &univSearch{geom: geom, μ: μ}
	s.lo, s.up = geom.ψBracket()
	if geom.Nrev == 0 {
		s.increasing = true
		s.ψ = (s.lo + s.up) / 2
		if t0, _, ok := geom.tof(0, μ); ok && t0 > 0 {
			if d0, _ := geom.dtdψ(0, μ); d0 > 0 {
				s.ψ = math.Log(Δt/t0) * t0 / d0
			}
		}
		w := s.up - s.lo
		s.ψ = math.Min(math.Max(s.ψ, s.lo+0.01*w), s.up-0.01*w)
		return s, nil
	}
	if !(ψmin > s.lo && ψmin < s.up) {
		return nil, fmt.Errorf("%w: ψmin=%f outside of [%f, %f]", ErrInvalidInput, ψmin, s.lo, s.up)
	}
	// The lower half of the bracket holds the larger semi-major axis.
	if geom.De == High {
		s.up = ψmin
	} else {
		s.lo = ψmin
		s.increasing = true
	}
	s.ψ = (s.lo + s.up) / 2
	return s, nil
}

// evaluate computes the Stumpff values and y at the current ψ.
func (s *univSearch) evaluate() {
	s.c2, s.c3 = FindC2C3(s.ψ)
	s.y = s.geom.y(s.ψ, s.c2, s.c3)
}

// recover moves ψ out of a region where y < 0. The failed ψ becomes the lower bound of the bracket.
func (s *univSearch) recover() error {
	s.state = univRecover
	for s.y < 0 {
		if s.recoveries == univMaxRecovery {
			return convergenceErr("lambertuniv", s.recoveries, s.y, ErrYNegative)
		}
		s.recoveries++
		s.lo = math.Max(s.lo, s.ψ)
		ψ := 0.8 / s.c3 * (1 - (s.geom.r1+s.geom.r2)*math.Sqrt(s.c2)/s.geom.vara)
		if !(ψ > s.lo && ψ < s.up) {
			ψ = (s.lo + s.up) / 2
		}
		s.ψ = ψ
		s.evaluate()
	}
	return nil
}

// step updates the bracket with the time of flight t at the current ψ and moves ψ by a Newton step, or by
// bisection if the Newton step leaves the bracket.
func (s *univSearch) step(t, Δt float64) {
	if (t < Δt) == s.increasing {
		s.lo = s.ψ
	} else {
		s.up = s.ψ
	}
	d, ok := s.geom.dtdψ(s.ψ, s.μ)
	ψn := s.ψ + (Δt-t)/d
	if ok && d != 0 && ψn > s.lo && ψn < s.up {
		s.ψ, s.state = ψn, univNewton
		return
	}
	s.ψ, s.state = (s.lo+s.up)/2, univBisect
}

// LambertUniversal solves the boundary value problem with the universal variable ψ. For multi-revolution
// transfers, ψmin is the minimum time ψ from LambertUMins. The resulting transfer is checked against the body
// radius padded by altPad.
func LambertUniversal(geom TransferGeometry, Δt, ψmin, altPad float64, body CelestialObject) LambertSolution {
	μ := body.GM()
	if !(Δt > 0) {
		return failedSolution(MethodUniversal, 0, fmt.Errorf("%w: non-positive time of flight %f", ErrInvalidInput, Δt))
	}
	if math.Abs(geom.vara) < 1e-5*math.Sqrt(geom.r1*geom.r2) {
		return failedSolution(MethodUniversal, 0, ErrImpossible180)
	}
	s, err := newUnivSearch(geom, Δt, ψmin, μ)
	if err != nil {
		return failedSolution(MethodUniversal, 0, err)
	}
	var t float64
	for i := 1; i <= univMaxIter; i++ {
		s.evaluate()
		if s.y < 0 {
			if geom.vara <= 0 {
				return failedSolution(MethodUniversal, i, convergenceErr("lambertuniv", i, s.y, ErrYNegative))
			}
			if err := s.recover(); err != nil {
				return failedSolution(MethodUniversal, i, err)
			}
		}
		x := math.Sqrt(s.y / s.c2)
		t = (x*x*x*s.c3 + geom.vara*math.Sqrt(s.y)) / math.Sqrt(μ)
		if math.Abs(t-Δt) < univTol*math.Max(1, Δt) {
			return univSolution(geom, s.y, i, altPad, body)
		}
		s.step(t, Δt)
	}
	return failedSolution(MethodUniversal, univMaxIter, convergenceErr("lambertuniv", univMaxIter, t-Δt, ErrGNotConverged))
}

func univSolution(geom TransferGeometry, y float64, iterations int, altPad float64, body CelestialObject) LambertSolution {
	f := 1 - y/geom.r1
	gDot := 1 - y/geom.r2
	g := geom.vara * math.Sqrt(y/body.GM())
	sol := LambertSolution{
		V1:         geom.R2.Sub(geom.R1.Scale(f)).Scale(1 / g),
		V2:         geom.R2.Scale(gDot).Sub(geom.R1).Scale(1 / g),
		Converged:  true,
		Iterations: iterations,
		Method:     MethodUniversal,
	}
	sol.Impact = CheckHitEarth(altPad, geom.R1, sol.V1, geom.R2, sol.V2, geom.Nrev, body)
	sol.HitEarth = sol.Impact.Hit
	return sol
}
