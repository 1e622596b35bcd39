package twobody

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180
	twoπ    = 2 * math.Pi
)

// Vector3 is a position (km) or velocity (km/s) vector.
type Vector3 [3]float64

// Norm returns the Euclidean norm of the vector.
func (a Vector3) Norm() float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

// Dot performs the inner product via mat64/BLAS.
func (a Vector3) Dot(b Vector3) float64 {
	return mat64.Dot(mat64.NewVector(3, a[:]), mat64.NewVector(3, b[:]))
}

// Cross performs the cross product a x b.
func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

// Add returns a + b.
func (a Vector3) Add(b Vector3) Vector3 {
	return Vector3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b.
func (a Vector3) Sub(b Vector3) Vector3 {
	return Vector3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns s*a.
func (a Vector3) Scale(s float64) Vector3 {
	return Vector3{s * a[0], s * a[1], s * a[2]}
}

// Unit returns the unit vector, or the zero vector if a is null.
func (a Vector3) Unit() Vector3 {
	n := a.Norm()
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return Vector3{}
	}
	return a.Scale(1 / n)
}

// IsZero returns whether all components are exactly zero.
func (a Vector3) IsZero() bool {
	return a[0] == 0 && a[1] == 0 && a[2] == 0
}

// Vec returns the vector as a mat64.Vector (the data is copied).
func (a Vector3) Vec() *mat64.Vector {
	return mat64.NewVector(3, []float64{a[0], a[1], a[2]})
}

// linComb returns α*a + β*b.
func linComb(α float64, a Vector3, β float64, b Vector3) Vector3 {
	return Vector3{α*a[0] + β*b[0], α*a[1] + β*b[1], α*a[2] + β*b[2]}
}

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// wrap2π wraps an angle into [0, 2π).
func wrap2π(a float64) float64 {
	a = math.Mod(a, twoπ)
	if a < 0 {
		a += twoπ
	}
	if a >= twoπ {
		return 0
	}
	return a
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
