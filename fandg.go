package twobody

import (
	"fmt"
	"math"
)

// FandGMethod selects how the Lagrange coefficients are computed.
type FandGMethod uint8

const (
	// FandGPQW projects both states in the perifocal frame of the first one.
	FandGPQW FandGMethod = iota + 1
	// FandGSeries uses the Taylor series in Δt. Only valid for short time steps.
	FandGSeries
	// FandGC2C3 uses the universal variable and its Stumpff values.
	FandGC2C3
)

func (m FandGMethod) String() string {
	switch m {
	case FandGPQW:
		return "pqw"
	case FandGSeries:
		return "series"
	case FandGC2C3:
		return "c2c3"
	}
	panic(fmt.Errorf("unknown f and g method %d", m))
}

// UniversalState is a converged universal variable x with z = x^2 α and the Stumpff values of z.
type UniversalState struct {
	X, Z, C2, C3 float64
}

// NewUniversalState returns the universal state for x and the reciprocal semi-major axis α.
func NewUniversalState(x, α float64) UniversalState {
	z := x * x * α
	c2, c3 := FindC2C3(z)
	return UniversalState{X: x, Z: z, C2: c2, C3: c3}
}

// LagrangeCoefficients are the f and g functions such that r = f r0 + g v0 and v = ḟ r0 + ġ v0.
type LagrangeCoefficients struct {
	F, G, FDot, GDot float64
}

// Apply returns the state obtained from (r0, v0).
func (l LagrangeCoefficients) Apply(r0, v0 Vector3) (r, v Vector3) {
	return linComb(l.F, r0, l.G, v0), linComb(l.FDot, r0, l.GDot, v0)
}

// FandG computes the Lagrange coefficients between (r1, v1) and (r2, v2) separated by Δt.
// The PQW method requires both states, the series method only (r1, v1) and Δt, and the c2c3 method the
// magnitudes of r1 and r2 with the universal state.
func FandG(r1, v1, r2, v2 Vector3, Δt float64, uv UniversalState, method FandGMethod, body CelestialObject) (LagrangeCoefficients, error) {
	μ := body.GM()
	switch method {
	case FandGPQW:
		return fandgPQW(r1, v1, r2, v2, μ)
	case FandGSeries:
		return fandgSeries(r1, v1, Δt, μ)
	case FandGC2C3:
		r1n, r2n := r1.Norm(), r2.Norm()
		if r1n == 0 || r2n == 0 {
			return LagrangeCoefficients{}, fmt.Errorf("%w: null position vector", ErrInvalidInput)
		}
		x2 := uv.X * uv.X
		sμ := math.Sqrt(μ)
		return LagrangeCoefficients{
			F:    1 - x2*uv.C2/r1n,
			G:    Δt - x2*uv.X*uv.C3/sμ,
			FDot: sμ * uv.X / (r1n * r2n) * (uv.Z*uv.C3 - 1),
			GDot: 1 - x2*uv.C2/r2n,
		}, nil
	default:
		return LagrangeCoefficients{}, fmt.Errorf("%w: unknown f and g method %d", ErrInvalidInput, method)
	}
}

func fandgPQW(r1, v1, r2, v2 Vector3, μ float64) (LagrangeCoefficients, error) {
	if r1.Cross(v1).Norm() < small {
		return LagrangeCoefficients{}, fmt.Errorf("%w: rectilinear state has no perifocal frame", ErrNumericDegenerate)
	}
	pqw := perifocalFrame(r1, v1, μ)
	p1, pv1 := MxV33(pqw, r1), MxV33(pqw, v1)
	p2, pv2 := MxV33(pqw, r2), MxV33(pqw, v2)
	h := p1[0]*pv1[1] - p1[1]*pv1[0]
	return LagrangeCoefficients{
		F:    (p2[0]*pv1[1] - pv1[0]*p2[1]) / h,
		G:    (p1[0]*p2[1] - p2[0]*p1[1]) / h,
		FDot: (pv2[0]*pv1[1] - pv2[1]*pv1[0]) / h,
		GDot: (p1[0]*pv2[1] - pv2[0]*p1[1]) / h,
	}, nil
}

// seriesTerm is coef u^U p^P q^Q with u = μ/r^3, p = r.v/r^2 and q = v^2/r^2 - u.
type seriesTerm struct {
	coef    float64
	U, P, Q int
}

// Time derivatives of f and g at t=0, up to the ninth order.
var fTerms = [...][]seriesTerm{
	{{1, 0, 0, 0}},
	{},
	{{-1, 1, 0, 0}},
	{{3, 1, 1, 0}},
	{{3, 1, 0, 1}, {-15, 1, 2, 0}, {1, 2, 0, 0}},
	{{-45, 1, 1, 1}, {105, 1, 3, 0}, {-15, 2, 1, 0}},
	{{-45, 1, 0, 2}, {630, 1, 2, 1}, {-945, 1, 4, 0}, {-24, 2, 0, 1}, {210, 2, 2, 0}, {-1, 3, 0, 0}},
	{{1575, 1, 1, 2}, {-9450, 1, 3, 1}, {10395, 1, 5, 0}, {882, 2, 1, 1}, {-3150, 2, 3, 0}, {63, 3, 1, 0}},
	{{1575, 1, 0, 3}, {-42525, 1, 2, 2}, {155925, 1, 4, 1}, {-135135, 1, 6, 0}, {1107, 2, 0, 2}, {-24570, 2, 2, 1}, {51975, 2, 4, 0}, {117, 3, 0, 1}, {-2205, 3, 2, 0}, {1, 4, 0, 0}},
	{{-99225, 1, 1, 3}, {1091475, 1, 3, 2}, {-2837835, 1, 5, 1}, {2027025, 1, 7, 0}, {-74385, 2, 1, 2}, {644490, 2, 3, 1}, {-945945, 2, 5, 0}, {-10935, 3, 1, 1}, {65835, 3, 3, 0}, {-255, 4, 1, 0}},
}

var gTerms = [...][]seriesTerm{
	{},
	{{1, 0, 0, 0}},
	{},
	{{-1, 1, 0, 0}},
	{{6, 1, 1, 0}},
	{{9, 1, 0, 1}, {-45, 1, 2, 0}, {1, 2, 0, 0}},
	{{-180, 1, 1, 1}, {420, 1, 3, 0}, {-30, 2, 1, 0}},
	{{-225, 1, 0, 2}, {3150, 1, 2, 1}, {-4725, 1, 4, 0}, {-54, 2, 0, 1}, {630, 2, 2, 0}, {-1, 3, 0, 0}},
	{{9450, 1, 1, 2}, {-56700, 1, 3, 1}, {62370, 1, 5, 0}, {3024, 2, 1, 1}, {-12600, 2, 3, 0}, {126, 3, 1, 0}},
	{{11025, 1, 0, 3}, {-297675, 1, 2, 2}, {1091475, 1, 4, 1}, {-945945, 1, 6, 0}, {4131, 2, 0, 2}, {-111510, 2, 2, 1}, {259875, 2, 4, 0}, {243, 3, 0, 1}, {-6615, 3, 2, 0}, {1, 4, 0, 0}},
}

func fandgSeries(r1, v1 Vector3, Δt, μ float64) (LagrangeCoefficients, error) {
	r := r1.Norm()
	if r == 0 {
		return LagrangeCoefficients{}, fmt.Errorf("%w: null position vector", ErrInvalidInput)
	}
	u := μ / (r * r * r)
	p := r1.Dot(v1) / (r * r)
	q := v1.Dot(v1)/(r*r) - u
	eval := func(terms []seriesTerm) (sum float64) {
		for _, t := range terms {
			sum += t.coef * math.Pow(u, float64(t.U)) * math.Pow(p, float64(t.P)) * math.Pow(q, float64(t.Q))
		}
		return
	}
	var lc LagrangeCoefficients
	tn := 1.0 // Δt^n/n!
	for n := 0; n < len(fTerms)-1; n++ {
		lc.F += eval(fTerms[n]) * tn
		lc.G += eval(gTerms[n]) * tn
		lc.FDot += eval(fTerms[n+1]) * tn
		lc.GDot += eval(gTerms[n+1]) * tn
		tn *= Δt / float64(n+1)
	}
	return lc, nil
}
