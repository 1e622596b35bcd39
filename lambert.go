package twobody

import (
	"errors"
	"fmt"
	"math"
	"strings"

	kitlog "github.com/go-kit/kit/log"
)

// DirectionOfMotion selects the short way (Δν < π) or the long way (Δν > π) of a transfer.
type DirectionOfMotion uint8

const (
	// Short is the transfer sweeping less than half a revolution (modulo nrev).
	Short DirectionOfMotion = iota + 1
	// Long is the transfer sweeping more than half a revolution (modulo nrev).
	Long
)

func (d DirectionOfMotion) String() string {
	switch d {
	case Short:
		return "short"
	case Long:
		return "long"
	}
	panic(fmt.Errorf("unknown direction of motion %d", d))
}

// EnergyBranch selects one of the two solutions of a multi-revolution transfer.
type EnergyBranch uint8

const (
	// Low is the smaller semi-major axis solution.
	Low EnergyBranch = iota + 1
	// High is the larger semi-major axis solution.
	High
)

func (e EnergyBranch) String() string {
	switch e {
	case Low:
		return "low"
	case High:
		return "high"
	}
	panic(fmt.Errorf("unknown energy branch %d", e))
}

// ParseDirectionOfMotion returns the direction of motion from its name ("short" or "long", or "s" and "l").
func ParseDirectionOfMotion(name string) (DirectionOfMotion, error) {
	switch strings.ToLower(name) {
	case "short", "s":
		return Short, nil
	case "long", "l":
		return Long, nil
	}
	return 0, fmt.Errorf("%w: unknown direction of motion %q", ErrInvalidInput, name)
}

// ParseEnergyBranch returns the energy branch from its name ("low" or "high", or "l" and "h").
func ParseEnergyBranch(name string) (EnergyBranch, error) {
	switch strings.ToLower(name) {
	case "low", "l":
		return Low, nil
	case "high", "h":
		return High, nil
	}
	return 0, fmt.Errorf("%w: unknown energy branch %q", ErrInvalidInput, name)
}

// LambertMethod is the boundary value solver used for a transfer.
type LambertMethod uint8

const (
	// MethodUniversal is the universal variable solver.
	MethodUniversal LambertMethod = iota + 1
	// MethodBattin is Battin's continued fraction solver followed by the hodograph.
	MethodBattin
)

func (m LambertMethod) String() string {
	switch m {
	case MethodUniversal:
		return "universal"
	case MethodBattin:
		return "battin"
	}
	panic(fmt.Errorf("unknown lambert method %d", m))
}

// ParseLambertMethod returns the method from its name.
func ParseLambertMethod(name string) (LambertMethod, error) {
	switch strings.ToLower(name) {
	case "universal", "univ":
		return MethodUniversal, nil
	case "battin":
		return MethodBattin, nil
	}
	return 0, fmt.Errorf("%w: unknown lambert method %q", ErrInvalidInput, name)
}

// TransferGeometry caches the geometry shared by every Lambert routine.
type TransferGeometry struct {
	R1, R2 Vector3
	Dm     DirectionOfMotion
	De     EnergyBranch
	Nrev   int

	r1, r2       float64
	cosΔν, sinΔν float64
	Δν, chord, s float64
	vara         float64
}

// NewTransferGeometry returns the geometry of the transfer from r1 to r2.
func NewTransferGeometry(r1, r2 Vector3, dm DirectionOfMotion, de EnergyBranch, nrev int) (TransferGeometry, error) {
	g := TransferGeometry{R1: r1, R2: r2, Dm: dm, De: de, Nrev: nrev, r1: r1.Norm(), r2: r2.Norm()}
	if g.r1 == 0 || g.r2 == 0 {
		return g, fmt.Errorf("%w: null position vector", ErrInvalidInput)
	}
	if nrev < 0 {
		return g, fmt.Errorf("%w: negative number of revolutions %d", ErrInvalidInput, nrev)
	}
	if dm != Short && dm != Long {
		return g, fmt.Errorf("%w: unknown direction of motion %d", ErrInvalidInput, dm)
	}
	if nrev > 0 && de != Low && de != High {
		return g, fmt.Errorf("%w: multi-revolution transfer requires an energy branch", ErrInvalidInput)
	}
	mag := g.r1 * g.r2
	g.cosΔν = r1.Dot(r2) / mag
	g.sinΔν = r1.Cross(r2).Norm() / mag
	dir := 1.0
	if dm == Long {
		g.sinΔν = -g.sinΔν
		dir = -1
	}
	g.Δν = wrap2π(math.Atan2(g.sinΔν, g.cosΔν))
	g.chord = math.Sqrt(math.Max(0, g.r1*g.r1+g.r2*g.r2-2*mag*g.cosΔν))
	g.s = (g.r1 + g.r2 + g.chord) / 2
	g.vara = dir * math.Sqrt(math.Max(0, mag*(1+g.cosΔν)))
	return g, nil
}

// TransferAngle returns Δν in [0, 2π).
func (g TransferGeometry) TransferAngle() float64 { return g.Δν }

// Chord returns the distance between both positions.
func (g TransferGeometry) Chord() float64 { return g.chord }

// SemiPerimeter returns the semi-perimeter of the triangle formed by the focus and both positions.
func (g TransferGeometry) SemiPerimeter() float64 { return g.s }

func (g TransferGeometry) String() string {
	return fmt.Sprintf("Δν=%.3f deg %s-way %s nrev=%d c=%.3f km", Rad2deg(g.Δν), g.Dm, g.De, g.Nrev, g.chord)
}

// LambertSolution carries the transfer velocities and the status of the solver.
type LambertSolution struct {
	V1, V2     Vector3
	Converged  bool
	Iterations int
	HitEarth   bool
	Impact     ImpactCheck
	Method     LambertMethod
	Err        error
}

// Feasible returns the solver error if any, or ErrEarthImpact if the transfer was flagged by the impact check.
func (s LambertSolution) Feasible() error {
	if s.Err != nil {
		return s.Err
	}
	if s.HitEarth {
		return fmt.Errorf("%w: %s (rp=%.3f km)", ErrEarthImpact, s.Impact.Reason, s.Impact.Rp)
	}
	return nil
}

func failedSolution(method LambertMethod, iterations int, err error) LambertSolution {
	return LambertSolution{Method: method, Iterations: iterations, Err: err}
}

// LambertSolver routes a boundary value problem to the universal variable or Battin solver.
type LambertSolver struct {
	Body        CelestialObject
	AltitudePad float64 // km above Body.Radius
	Method      LambertMethod
	// Fallback switches to Battin's method whenever the universal variable method fails, and back to the
	// universal variable method when Battin's is degenerate near 0 degree. Near 180 degree transfers always
	// fall back to Battin's.
	Fallback bool
	// PlaneNormal is used to fix the transfer plane when r1 and r2 are colinear. Defaults to +Z.
	PlaneNormal Vector3
	Logger      kitlog.Logger
}

// NewLambertSolver returns a solver with a no-op logger.
func NewLambertSolver(body CelestialObject, altPad float64, method LambertMethod) *LambertSolver {
	return &LambertSolver{Body: body, AltitudePad: altPad, Method: method, Fallback: true, Logger: kitlog.NewNopLogger()}
}

func (ls *LambertSolver) logger() kitlog.Logger {
	if ls.Logger == nil {
		return kitlog.NewNopLogger()
	}
	return ls.Logger
}

// Solve finds the transfer from r1 to r2 in Δt seconds.
func (ls *LambertSolver) Solve(r1, r2 Vector3, Δt float64, dm DirectionOfMotion, de EnergyBranch, nrev int) LambertSolution {
	logger := kitlog.With(ls.logger(), "subsys", "lambert")
	method := ls.Method
	if method != MethodBattin {
		method = MethodUniversal
	}
	geom, err := NewTransferGeometry(r1, r2, dm, de, nrev)
	if err != nil {
		return failedSolution(method, 0, err)
	}
	if !(Δt > 0) {
		return failedSolution(method, 0, fmt.Errorf("%w: non-positive time of flight %f", ErrInvalidInput, Δt))
	}
	tMin, _, _, err := LambertMinT(geom, ls.Body)
	if err != nil {
		logger.Log("level", "warning", "bound", "minT", "err", err)
	} else if Δt < tMin {
		return failedSolution(method, 0, fmt.Errorf("%w: Δt=%.3f s below minimum time %.3f s for %d revolutions", ErrInvalidInput, Δt, tMin, nrev))
	}
	var ψmin float64
	if nrev > 0 {
		if ψmin, _, err = LambertUMins(geom, ls.Body); err != nil {
			return failedSolution(method, 0, err)
		}
	}

	var sol LambertSolution
	if method == MethodUniversal {
		sol = LambertUniversal(geom, Δt, ψmin, ls.AltitudePad, ls.Body)
		if sol.Err != nil && (ls.Fallback || errors.Is(sol.Err, ErrImpossible180)) {
			logger.Log("level", "notice", "method", method, "fallback", MethodBattin, "geometry", geom, "err", sol.Err)
			method = MethodBattin
		}
	}
	if method == MethodBattin {
		sol = LambertBattin(geom, ls.planeSeed(r1), Δt, ls.AltitudePad, ls.Body)
		if ls.Method == MethodBattin && ls.Fallback && errors.Is(sol.Err, ErrNumericDegenerate) {
			logger.Log("level", "notice", "method", method, "fallback", MethodUniversal, "geometry", geom, "err", sol.Err)
			method = MethodUniversal
			sol = LambertUniversal(geom, Δt, ψmin, ls.AltitudePad, ls.Body)
		}
	}
	if sol.Err != nil {
		logger.Log("level", "error", "method", method, "geometry", geom, "Δt", Δt, "err", sol.Err)
		return sol
	}
	if sol.HitEarth {
		logger.Log("level", "warning", "method", method, "impact", sol.Impact.Reason, "rp", sol.Impact.Rp)
	}
	logger.Log("level", "info", "method", method, "iterations", sol.Iterations, "v1", fmt.Sprintf("%+v", sol.V1), "v2", fmt.Sprintf("%+v", sol.V2))
	return sol
}

// planeSeed returns a velocity direction perpendicular to r1 in the plane normal to PlaneNormal.
func (ls *LambertSolver) planeSeed(r1 Vector3) Vector3 {
	n := ls.PlaneNormal.Unit()
	if n.IsZero() {
		n = Vector3{0, 0, 1}
	}
	seed := n.Cross(r1).Unit()
	if seed.IsZero() {
		seed = Vector3{1, 0, 0}.Cross(r1).Unit()
	}
	return seed
}
