package twobody

import (
	"errors"
	"fmt"
)

// Solver outcomes. Locally recovered conditions (bisection fallback, NaN reset, y-negative recovery) are never
// returned unless the recovery itself fails.
var (
	// ErrNonConvergence indicates a Newton or bisection iteration exhausted its cap.
	ErrNonConvergence = errors.New("twobody: iteration did not converge")

	// ErrImpossible180 indicates a near anti-parallel transfer the universal variable method cannot resolve.
	// It is a routing signal towards the Battin and hodograph solvers.
	ErrImpossible180 = errors.New("twobody: transfer angle too close to 180 degrees for universal variables")

	// ErrYNegative indicates that y stayed negative after the allowed number of recoveries.
	ErrYNegative = errors.New("twobody: y remained negative after bracket recovery")

	// ErrGNotConverged indicates the universal variable Lambert iteration exhausted its cap.
	ErrGNotConverged = errors.New("twobody: lambert universal variable iteration did not converge")

	// ErrEarthImpact flags a transfer whose periapsis dips below the padded planetary radius.
	ErrEarthImpact = errors.New("twobody: transfer impacts the central body")

	// ErrNumericDegenerate indicates a NaN which could not be recovered from.
	ErrNumericDegenerate = errors.New("twobody: numerically degenerate iteration")

	// ErrInvalidInput indicates arguments outside the domain of the routine.
	ErrInvalidInput = errors.New("twobody: invalid input")
)

// ConvergenceError wraps a solver failure with the state of the iteration when it stopped.
type ConvergenceError struct {
	Op         string
	Iterations int
	Residual   float64
	Err        error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %s after %d iterations (residual %g)", e.Op, e.Err, e.Iterations, e.Residual)
}

func (e *ConvergenceError) Unwrap() error {
	return e.Err
}

func convergenceErr(op string, iterations int, residual float64, err error) error {
	return &ConvergenceError{Op: op, Iterations: iterations, Residual: residual, Err: err}
}
