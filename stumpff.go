package twobody

import "math"

// FindC2C3 returns the Stumpff functions c2(z) and c3(z). Near z=0 the series limits are used to avoid 0/0.
func FindC2C3(z float64) (c2, c3 float64) {
	if z > small {
		sqrtz := math.Sqrt(z)
		c2 = (1 - math.Cos(sqrtz)) / z
		c3 = (sqrtz - math.Sin(sqrtz)) / (sqrtz * sqrtz * sqrtz)
		return
	}
	if z < -small {
		sqrtz := math.Sqrt(-z)
		c2 = (1 - math.Cosh(sqrtz)) / z
		c3 = (math.Sinh(sqrtz) - sqrtz) / (sqrtz * sqrtz * sqrtz)
		return
	}
	return 0.5, 1 / 6.
}

// dC2C3 returns the derivatives of c2 and c3 with respect to z, using their Taylor series close to zero.
func dC2C3(z, c2, c3 float64) (dc2, dc3 float64) {
	if math.Abs(z) > 1e-5 {
		dc2 = (1 - z*c3 - 2*c2) / (2 * z)
		dc3 = (c2 - 3*c3) / (2 * z)
		return
	}
	dc2 = -1/24. + z/360. - z*z/13440.
	dc3 = -1/120. + z/2520. - z*z/120960.
	return
}
