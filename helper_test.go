package twobody

import (
	"testing"

	"github.com/gonum/floats"
)

// vectorsEqual returns whether both vectors are equal within an absolute tolerance.
func vectorsEqual(a, b Vector3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

// vectorsEqualRel returns whether a is within a relative tolerance of b, measured on the norm of b.
func vectorsEqualRel(a, b Vector3, tol float64) bool {
	return a.Sub(b).Norm() <= tol*b.Norm()
}

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("The code did not panic")
		}
	}()
	f()
}
