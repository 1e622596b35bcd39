package twobody

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// R3R1R3 returns the 3-1-3 Euler rotation R3(θ3) R1(θ2) R3(θ1) (Schaub and Junkins).
func R3R1R3(θ1, θ2, θ3 float64) *mat64.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat64.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a 3x3 matrix with a vector.
func MxV33(m mat64.Matrix, v Vector3) Vector3 {
	var rVec mat64.Vector
	rVec.MulVec(m, v.Vec())
	return Vector3{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// PQW2ECI converts a perifocal vector to the inertial frame: ROT3(-Ω) ROT1(-i) ROT3(-ω).
func PQW2ECI(i, ω, Ω float64, vI Vector3) Vector3 {
	return MxV33(R3R1R3(-ω, -i, -Ω), vI)
}

// perifocalFrame returns the rotation from the inertial frame to the perifocal frame of the
// orbit passing through (r, v). The P axis points to periapsis, or along r for a circular orbit.
func perifocalFrame(r, v Vector3, μ float64) *mat64.Dense {
	h := r.Cross(v)
	eVec := linComb((v.Dot(v)-μ/r.Norm())/μ, r, -r.Dot(v)/μ, v)
	P := eVec.Unit()
	if eVec.Norm() < small {
		P = r.Unit()
	}
	W := h.Unit()
	Q := W.Cross(P)
	return mat64.NewDense(3, 3, []float64{
		P[0], P[1], P[2],
		Q[0], Q[1], Q[2],
		W[0], W[1], W[2]})
}
