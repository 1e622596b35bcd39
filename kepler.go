package twobody

import (
	"fmt"
	"math"
)

const keplerMaxIter = 50

// Kepler propagates (r0, v0) by Δt seconds (possibly negative) with the universal variable formulation,
// valid for every conic regime and for multiple revolutions. On non-convergence, both vectors are null and
// the error wraps ErrNonConvergence.
func Kepler(r0, v0 Vector3, Δt float64, body CelestialObject) (r, v Vector3, err error) {
	r0n := r0.Norm()
	if r0n == 0 {
		return Vector3{}, Vector3{}, fmt.Errorf("%w: null position vector", ErrInvalidInput)
	}
	if math.Abs(Δt) < small {
		return r0, v0, nil
	}
	uv, Δt, err := solveUniversal(r0, v0, Δt, body.GM())
	if err != nil {
		return Vector3{}, Vector3{}, err
	}
	sμ := math.Sqrt(body.GM())
	x := uv.X
	x2 := x * x
	f := 1 - x2*uv.C2/r0n
	g := Δt - x2*x*uv.C3/sμ
	r = linComb(f, r0, g, v0)
	rn := r.Norm()
	gDot := 1 - x2*uv.C2/rn
	fDot := sμ * x / (r0n * rn) * (uv.Z*uv.C3 - 1)
	v = linComb(fDot, r0, gDot, v0)
	return r, v, nil
}

// solveUniversal iterates on the universal variable x. It returns the converged state and the time of flight
// actually solved for, which is reduced modulo the period for ellipses.
func solveUniversal(r0, v0 Vector3, Δt, μ float64) (UniversalState, float64, error) {
	r0n := r0.Norm()
	sμ := math.Sqrt(μ)
	rdv := r0.Dot(v0)
	ξ := v0.Dot(v0)/2 - μ/r0n
	α := -2 * ξ / μ
	if math.Abs(α) < small {
		α = 0
	}

	var x float64
	switch {
	case α > 0:
		if period := twoπ * math.Sqrt(1/(α*α*α*μ)); math.Abs(Δt) > period {
			Δt = math.Mod(Δt, period)
		}
		x = sμ * Δt * α
		if math.Abs(α*r0n-1) < small {
			// Circular: the first step would be singular.
			x *= 0.97
		}
	case α == 0:
		h := r0.Cross(v0).Norm()
		p := h * h / μ
		s := 0.5 * (math.Pi/2 - math.Atan(3*math.Sqrt(μ/(p*p*p))*Δt))
		w := math.Atan(math.Cbrt(math.Tan(s)))
		x = math.Sqrt(p) * 2 / math.Tan(2*w)
	default:
		a := 1 / α
		sgn := math.Copysign(1, Δt)
		temp := -2 * μ * Δt / (a * (rdv + sgn*math.Sqrt(-μ*a)*(1-r0n*α)))
		if temp > 0 {
			x = sgn * math.Sqrt(-a) * math.Log(temp)
		} else {
			x = sμ * Δt / r0n
		}
	}

	converged := false
	var residual float64
	for i := 0; i < keplerMaxIter; i++ {
		x2 := x * x
		z := x2 * α
		c2, c3 := FindC2C3(z)
		rval := x2*c2 + rdv/sμ*x*(1-z*c3) + r0n*(1-z*c2)
		t := x2*x*c3 + rdv/sμ*x2*c2 + r0n*x*(1-z*c3)
		residual = Δt*sμ - t
		xn := x + residual/rval
		if xn*Δt < 0 && x*Δt > 0 {
			xn = x / 2
		}
		done := math.Abs(residual) < 1e-10*math.Max(1, math.Abs(Δt*sμ)) ||
			math.Abs(xn-x) <= 1e-10*math.Max(1, math.Abs(x))
		x = xn
		if done {
			converged = true
			break
		}
	}
	if !converged || math.IsNaN(x) {
		return UniversalState{}, Δt, convergenceErr("kepler", keplerMaxIter, residual, ErrNonConvergence)
	}

	return NewUniversalState(x, α), Δt, nil
}
