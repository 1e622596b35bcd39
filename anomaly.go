package twobody

import (
	"fmt"
	"math"
)

const anomalyMaxIter = 50

// Anomaly2Mean converts an anomaly to the mean anomaly and true anomaly ν. The anomaly is the eccentric
// anomaly E for an ellipse, the hyperbolic anomaly H for an hyperbola and the parabolic anomaly B for a
// parabola. Elliptic and circular results are wrapped into [0, 2π).
func Anomaly2Mean(ecc, E float64) (M, ν float64) {
	switch RegimeOf(ecc) {
	case Circular:
		return wrap2π(E), wrap2π(E)
	case Elliptic:
		sinE, cosE := math.Sincos(E)
		denom := 1 - ecc*cosE
		sinν := math.Sqrt(1-ecc*ecc) * sinE / denom
		cosν := (cosE - ecc) / denom
		return wrap2π(E - ecc*sinE), wrap2π(math.Atan2(sinν, cosν))
	case Parabolic:
		return E + E*E*E/3, 2 * math.Atan(E)
	default:
		coshH := math.Cosh(E)
		denom := ecc*coshH - 1
		sinν := math.Sqrt(ecc*ecc-1) * math.Sinh(E) / denom
		cosν := (ecc - coshH) / denom
		return ecc*math.Sinh(E) - E, math.Atan2(sinν, cosν)
	}
}

// Mean2Anomaly solves Kepler's equation for the anomaly (E, H or B depending on the regime) and returns it
// with the true anomaly. Ellipses and hyperbolas are solved by Newton-Raphson (at most 50 iterations), the
// parabola in closed form.
func Mean2Anomaly(ecc, M float64) (E, ν float64, err error) {
	if ecc < 0 {
		return 0, 0, fmt.Errorf("%w: negative eccentricity %f", ErrInvalidInput, ecc)
	}
	switch RegimeOf(ecc) {
	case Circular:
		return wrap2π(M), wrap2π(M), nil
	case Parabolic:
		E = parabolicAnomaly(M)
		return E, 2 * math.Atan(E), nil
	case Elliptic:
		M = wrap2π(M)
		E = M + ecc
		if M > math.Pi {
			E = M - ecc
		}
		for i := 0; i < anomalyMaxIter; i++ {
			sinE, cosE := math.Sincos(E)
			δ := (M - E + ecc*sinE) / (1 - ecc*cosE)
			E += δ
			if math.Abs(δ) < small {
				_, ν = Anomaly2Mean(ecc, E)
				return wrap2π(E), ν, nil
			}
		}
		return 0, 0, convergenceErr("mean2anomaly", anomalyMaxIter, E-ecc*math.Sin(E)-M, ErrNonConvergence)
	default:
		E = hyperbolicGuess(ecc, M)
		for i := 0; i < anomalyMaxIter; i++ {
			δ := (M - ecc*math.Sinh(E) + E) / (ecc*math.Cosh(E) - 1)
			E += δ
			if math.Abs(δ) < small {
				_, ν = Anomaly2Mean(ecc, E)
				return E, ν, nil
			}
		}
		return 0, 0, convergenceErr("mean2anomaly", anomalyMaxIter, ecc*math.Sinh(E)-E-M, ErrNonConvergence)
	}
}

// Mean2AnomalyFast is the optimized variant of Mean2Anomaly (after Oltrogge, 2015). The elliptic case uses a
// non-iterative cubic starter refined by a single fifth-order correction, and the hyperbolic case a quintic
// Newton step. It falls back on Newton-Raphson if the elliptic residual is not below the shared tolerance.
func Mean2AnomalyFast(ecc, M float64) (E, ν float64, err error) {
	if ecc < 0 {
		return 0, 0, fmt.Errorf("%w: negative eccentricity %f", ErrInvalidInput, ecc)
	}
	switch RegimeOf(ecc) {
	case Elliptic:
		E = ellipticStarter(ecc, wrap2π(M))
		if res := math.Abs(math.Remainder(E-ecc*math.Sin(E)-M, twoπ)); !(res <= small) {
			return Mean2Anomaly(ecc, M)
		}
		_, ν = Anomaly2Mean(ecc, E)
		return E, ν, nil
	case Hyperbolic:
		E = hyperbolicGuess(ecc, M)
		for i := 0; i < anomalyMaxIter; i++ {
			sinhH, coshH := math.Sinh(E), math.Cosh(E)
			δ := quinticCorrection(ecc*sinhH-E-M, ecc*coshH-1, ecc*sinhH, ecc*coshH, ecc*sinhH)
			E += δ
			if math.Abs(δ) < small {
				_, ν = Anomaly2Mean(ecc, E)
				return E, ν, nil
			}
		}
		return 0, 0, convergenceErr("mean2anomalyfast", anomalyMaxIter, ecc*math.Sinh(E)-E-M, ErrNonConvergence)
	default:
		return Mean2Anomaly(ecc, M)
	}
}

// True2Mean converts the true anomaly to the anomaly (E, H or B) and the mean anomaly.
// Elliptic and circular results are wrapped into [0, 2π). An hyperbolic true anomaly beyond the asymptotes
// is an invalid input.
func True2Mean(ecc, ν float64) (E, M float64, err error) {
	switch RegimeOf(ecc) {
	case Circular:
		return wrap2π(ν), wrap2π(ν), nil
	case Elliptic:
		sinν, cosν := math.Sincos(ν)
		denom := 1 + ecc*cosν
		E = math.Atan2(math.Sqrt(1-ecc*ecc)*sinν/denom, (ecc+cosν)/denom)
		return wrap2π(E), wrap2π(E - ecc*math.Sin(E)), nil
	case Parabolic:
		E = math.Tan(ν / 2)
		return E, E + E*E*E/3, nil
	default:
		ν = math.Remainder(ν, twoπ)
		if math.Abs(ν)+1e-5 >= math.Pi-math.Acos(1/ecc) {
			return 0, 0, fmt.Errorf("%w: ν=%f is beyond the asymptotes of e=%f", ErrInvalidInput, ν, ecc)
		}
		sinν, cosν := math.Sincos(ν)
		E = math.Asinh(math.Sqrt(ecc*ecc-1) * sinν / (1 + ecc*cosν))
		return E, ecc*math.Sinh(E) - E, nil
	}
}

// parabolicAnomaly solves Barker's equation M = B + B^3/3 via the cubic-root substitution.
func parabolicAnomaly(M float64) float64 {
	s := 0.5 * (math.Pi/2 - math.Atan(1.5*M))
	w := math.Atan(math.Cbrt(math.Tan(s)))
	return 2 / math.Tan(2*w)
}

func hyperbolicGuess(ecc, M float64) float64 {
	if ecc < 1.6 {
		if (M < 0 && M > -math.Pi) || M > math.Pi {
			return M - ecc
		}
		return M + ecc
	}
	if ecc < 3.6 && math.Abs(M) > math.Pi {
		return M - sign(M)*ecc
	}
	return M / (ecc - 1)
}

// ellipticStarter returns the eccentric anomaly for M in [0, 2π) from Markley's cubic approximation followed
// by one fifth-order correction.
func ellipticStarter(ecc, M float64) float64 {
	m := M
	if m > math.Pi {
		m -= twoπ
	}
	sgn := 1.0
	if m < 0 {
		sgn, m = -1, -m
	}
	π2 := math.Pi * math.Pi
	α := (3*π2 + 1.6*math.Pi*(math.Pi-m)/(1+ecc)) / (π2 - 6)
	d := 3*(1-ecc) + α*ecc
	q := 2*α*d*(1-ecc) - m*m
	r := 3*α*d*(d-1+ecc)*m + m*m*m
	w := math.Pow(math.Abs(r)+math.Sqrt(q*q*q+r*r), 2/3.)
	E := (2*r*w/(w*w+w*q+q*q) + m) / d
	sinE, cosE := math.Sincos(E)
	E += quinticCorrection(E-ecc*sinE-m, 1-ecc*cosE, ecc*sinE, ecc*cosE, -ecc*sinE)
	return wrap2π(sgn * E)
}

// quinticCorrection returns the fifth-order Householder-type correction of a root from the function value
// f0 and its first four derivatives.
func quinticCorrection(f0, f1, f2, f3, f4 float64) float64 {
	δ3 := -f0 / (f1 - 0.5*f0*f2/f1)
	δ4 := -f0 / (f1 + 0.5*δ3*f2 + δ3*δ3*f3/6)
	return -f0 / (f1 + 0.5*δ4*f2 + δ4*δ4*f3/6 + δ4*δ4*δ4*f4/24)
}
