package twobody

import (
	"fmt"
	"math"
)

const (
	uminsMaxIter    = 20
	minTMaxIter     = 20
	uminsDerivative = 0.1
)

// LambertUMins returns the universal variable ψ of the minimum time transfer for the revolution count of the
// geometry, and that minimum time. It uses a safeguarded Halley iteration on dt/dψ = 0 inside
// [4 nrev^2 π^2, 4 (nrev+1)^2 π^2]. The returned ψ splits the bracket between both energy branches.
func LambertUMins(geom TransferGeometry, body CelestialObject) (ψmin, tofMin float64, err error) {
	if geom.Nrev <= 0 {
		return 0, 0, fmt.Errorf("%w: minimum ψ requires at least one revolution", ErrInvalidInput)
	}
	μ := body.GM()
	lo, up := geom.ψBracket()
	width := up - lo
	ψ := lo + 0.6*width
	// Stay clear of the singular bracket ends.
	lo, up = lo+1e-3*width, up-1e-3*width
	h := 1e-5 * width
	converged := false
	var d1 float64
	for i := 0; i < uminsMaxIter; i++ {
		var ok bool
		if d1, ok = geom.dtdψ(ψ, μ); !ok {
			lo = ψ
			ψ = (lo + up) / 2
			continue
		}
		if math.Abs(d1) < uminsDerivative {
			converged = true
			break
		}
		if d1 > 0 {
			up = ψ
		} else {
			lo = ψ
		}
		dp, okp := geom.dtdψ(ψ+h, μ)
		dm, okm := geom.dtdψ(ψ-h, μ)
		ψn := math.NaN()
		if okp && okm {
			d2 := (dp - dm) / (2 * h)
			d3 := (dp - 2*d1 + dm) / (h * h)
			ψn = ψ - 2*d1*d2/(2*d2*d2-d1*d3)
		}
		if !(ψn > lo && ψn < up) {
			ψn = (lo + up) / 2
		}
		ψ = ψn
	}
	if !converged {
		return 0, 0, convergenceErr("lambertumins", uminsMaxIter, d1, ErrNonConvergence)
	}
	t, _, ok := geom.tof(ψ, μ)
	if !ok {
		return 0, 0, fmt.Errorf("%w: y < 0 at minimum time ψ=%f", ErrNumericDegenerate, ψ)
	}
	return ψ, t, nil
}

// LambertMinT returns the minimum time of flight for the revolution count of the geometry, along with the
// parabolic time and the time on the minimum energy ellipse. The minimum time is refined by Prussing's
// iteration on the semi-major axis. Single revolution transfers have no minimum (hyperbolas can be arbitrarily
// fast), so tMin is zero.
func LambertMinT(geom TransferGeometry, body CelestialObject) (tMin, tMinParabolic, tMinEnergy float64, err error) {
	μ := body.GM()
	s, c := geom.s, geom.chord
	n := float64(geom.Nrev)
	sc := math.Max(0, s-c)
	if geom.Dm == Short {
		tMinParabolic = math.Sqrt(2/μ) / 3 * (math.Pow(s, 1.5) - math.Pow(sc, 1.5))
	} else {
		tMinParabolic = math.Sqrt(2/μ) / 3 * (math.Pow(s, 1.5) + math.Pow(sc, 1.5))
	}
	aMin := s / 2
	β := 2 * math.Asin(math.Sqrt(sc/s))
	if geom.Dm == Long {
		β = -β
	}
	tMinEnergy = math.Sqrt(aMin*aMin*aMin/μ) * (twoπ*n + math.Pi - β + math.Sin(β))
	if geom.Nrev == 0 {
		return 0, tMinParabolic, tMinEnergy, nil
	}

	αβ := func(a float64) (α, β float64) {
		α = 2 * math.Asin(math.Min(1, math.Sqrt(s/(2*a))))
		β = 2 * math.Asin(math.Min(1, math.Sqrt(sc/(2*a))))
		if geom.Dm == Long {
			β = -β
		}
		return
	}
	a := 1.001 * aMin
	converged := false
	var fa float64
	for i := 0; i < minTMaxIter; i++ {
		α, β := αβ(a)
		ξ := α - β
		η := math.Sin(α) - math.Sin(β)
		K := 6*n*math.Pi + 3*ξ - η
		S := math.Sin(ξ) + η
		fa = K*S - 8*(1-math.Cos(ξ))
		dfa := ((3-math.Cos(α))*S+K*(math.Cos(ξ)+math.Cos(α))-8*math.Sin(ξ))*(-math.Tan(α/2)/a) +
			((-3+math.Cos(β))*S+K*(-math.Cos(ξ)-math.Cos(β))+8*math.Sin(ξ))*(-math.Tan(β/2)/a)
		an := a - fa/dfa
		if !(an >= aMin) {
			an = (a + aMin) / 2
		}
		a = an
		if math.Abs(fa) < 1e-5 {
			converged = true
			break
		}
	}
	α, β := αβ(a)
	ξ := α - β
	η := math.Sin(α) - math.Sin(β)
	tMin = math.Pow(a, 1.5) * (twoπ*n + ξ - η) / math.Sqrt(μ)
	if !converged {
		err = convergenceErr("lambertminT", minTMaxIter, fa, ErrNonConvergence)
	}
	return tMin, tMinParabolic, tMinEnergy, err
}

// LambertTMaxRP returns the time of flight of the transfer with the largest periapsis radius, and the departure
// velocity of that transfer. Endpoints within one meter in radius use the circular orbit.
func LambertTMaxRP(geom TransferGeometry, body CelestialObject) (tof float64, v1 Vector3, err error) {
	μ := body.GM()
	r1, r2 := geom.R1, geom.R2
	ĥ := r1.Cross(r2).Unit()
	if ĥ.IsZero() {
		return 0, Vector3{}, fmt.Errorf("%w: colinear positions do not define a transfer plane", ErrNumericDegenerate)
	}
	if geom.Dm == Long {
		ĥ = ĥ.Scale(-1)
	}
	n := float64(geom.Nrev)
	if math.Abs(geom.r1-geom.r2) < 1e-3 {
		mm := math.Sqrt(μ / (geom.r1 * geom.r1 * geom.r1))
		return (geom.Δν + twoπ*n) / mm, ĥ.Cross(r1.Unit()).Scale(math.Sqrt(μ / geom.r1)), nil
	}

	// Eccentricity vector in the (chord, chord x h) basis. Its chord component is fixed by the radii, and the
	// other one maximizes the periapsis radius.
	c := geom.chord
	ĉ := r2.Sub(r1).Scale(1 / c)
	êp := ĉ.Cross(ĥ)
	eF := (geom.r1 - geom.r2) / c
	pF := geom.r1 + eF*ĉ.Dot(r1)
	d := êp.Dot(r1)
	A := 1 - pF*pF/(d*d)
	B := 2 * pF * eF * eF / d
	C := eF*eF - eF*eF*eF*eF
	disc := B*B - 4*A*C
	if A == 0 || disc < 0 {
		return 0, Vector3{}, fmt.Errorf("%w: no maximum periapsis transfer", ErrNumericDegenerate)
	}
	bestRp, eT, ecc, p := -1.0, 0.0, 0.0, 0.0
	for _, root := range []float64{(-B + math.Sqrt(disc)) / (2 * A), (-B - math.Sqrt(disc)) / (2 * A)} {
		e := math.Hypot(eF, root)
		pr := pF + root*d
		if pr <= 0 || math.Abs(d*e-(pF*root-d*eF*eF)) > 1e-9*math.Max(1, math.Abs(d)) {
			continue
		}
		if rp := pr / (1 + e); rp > bestRp {
			bestRp, eT, ecc, p = rp, root, e, pr
		}
	}
	if bestRp < 0 {
		return 0, Vector3{}, fmt.Errorf("%w: no maximum periapsis transfer", ErrNumericDegenerate)
	}
	eVec := linComb(eF, ĉ, eT, êp)
	ê := eVec.Unit()
	trueAnomaly := func(r Vector3) float64 {
		rh := r.Unit()
		return math.Atan2(ĥ.Dot(ê.Cross(rh)), ê.Dot(rh))
	}
	v1 = ĥ.Cross(eVec.Add(r1.Unit())).Scale(μ / math.Sqrt(μ*p))
	_, M1, err := True2Mean(ecc, trueAnomaly(r1))
	if err != nil {
		return 0, Vector3{}, err
	}
	_, M2, err := True2Mean(ecc, trueAnomaly(r2))
	if err != nil {
		return 0, Vector3{}, err
	}
	switch RegimeOf(ecc) {
	case Circular, Elliptic:
		a := p / (1 - ecc*ecc)
		return (wrap2π(M2-M1) + twoπ*n) / math.Sqrt(μ/(a*a*a)), v1, nil
	case Parabolic:
		if geom.Nrev > 0 {
			return 0, Vector3{}, fmt.Errorf("%w: open maximum periapsis transfer cannot revolve", ErrInvalidInput)
		}
		return (M2 - M1) / (2 * math.Sqrt(μ/(p*p*p))), v1, nil
	default:
		if geom.Nrev > 0 {
			return 0, Vector3{}, fmt.Errorf("%w: open maximum periapsis transfer cannot revolve", ErrInvalidInput)
		}
		a := p / (1 - ecc*ecc)
		return (M2 - M1) / math.Sqrt(μ/(-a*a*a)), v1, nil
	}
}
