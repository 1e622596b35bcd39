package twobody

import "math"

// Hodograph computes the transfer velocities at r1 and r2 of the conic of semi-latus rectum p and eccentricity
// ecc sweeping Δν in Δt. For 180 and 360 degree transfers, the plane is taken from r1 x v1, and the sign of the
// radial velocity is picked from the elapsed fraction of the period.
func Hodograph(r1, r2, v1 Vector3, p, ecc, Δν, Δt float64, body CelestialObject) (v1t, v2t Vector3) {
	μ := body.GM()
	r1n, r2n := r1.Norm(), r2.Norm()
	a := μ * (1/r1n - 1/p)
	b := (μ*ecc/p)*(μ*ecc/p) - a*a
	var x1 float64
	if b > 0 {
		x1 = -math.Sqrt(b)
	}

	var n Vector3
	sinΔν, cosΔν := math.Sincos(Δν)
	if math.Abs(sinΔν) < small {
		n = r1.Cross(v1).Unit()
		if ecc < 1 {
			period := twoπ * math.Sqrt(p*p*p/(μ*math.Pow(1-ecc*ecc, 3)))
			if math.Mod(Δt, period) > period/2 {
				x1 = -x1
			}
		}
	} else {
		y2a := μ/p - x1*sinΔν + a*cosΔν
		y2b := μ/p + x1*sinΔν + a*cosΔν
		if math.Abs(μ/r2n-y2b) < math.Abs(μ/r2n-y2a) {
			x1 = -x1
		}
		n = r1.Cross(r2).Unit()
		if math.Mod(Δν, twoπ) > math.Pi {
			n = n.Scale(-1)
		}
	}

	sμp := math.Sqrt(μ * p)
	v1t = linComb(sμp/r1n*x1/μ, r1, sμp/(r1n*r1n), n.Cross(r1))
	x2 := x1*cosΔν + a*sinΔν
	v2t = linComb(sμp/r2n*x2/μ, r2, sμp/(r2n*r2n), n.Cross(r2))
	return v1t, v2t
}
