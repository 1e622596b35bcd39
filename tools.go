package twobody

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TransferType defines the type of Lambert transfer
type TransferType uint8

const (
	// TTypeAuto lets the Lambert solver determine the direction of motion (zero revolution)
	TTypeAuto TransferType = iota + 1
	// TType1 is transfer of type 1 (zero revolution, short way)
	TType1
	// TType2 is transfer of type 2 (zero revolution, long way)
	TType2
	// TType3 is transfer of type 3 (one revolution, short way)
	TType3
	// TType4 is transfer of type 4 (one revolution, long way)
	TType4
)

// Direction returns the direction of motion of this transfer type. The automatic type assumes a prograde
// transfer about +Z.
func (t TransferType) Direction(r1, r2 Vector3) DirectionOfMotion {
	switch t {
	case TTypeAuto:
		if r1.Cross(r2)[2] < 0 {
			return Long
		}
		return Short
	case TType1, TType3:
		return Short
	case TType2, TType4:
		return Long
	default:
		panic(fmt.Errorf("cannot determine whether long or short way for %d", t))
	}
}

// Revs returns the number of revolutions given the type.
func (t TransferType) Revs() int {
	switch t {
	case TTypeAuto, TType1, TType2:
		return 0
	case TType3, TType4:
		return 1
	default:
		panic("unknown transfer type")
	}
}

func (t TransferType) String() string {
	switch t {
	case TTypeAuto:
		return "auto"
	case TType1:
		return "type-1"
	case TType2:
		return "type-2"
	case TType3:
		return "type-3"
	case TType4:
		return "type-4"
	default:
		panic("unknown transfer type")
	}
}

// ParseTransferType returns the transfer type from its name ("auto", "type-1" or "1", etc.).
func ParseTransferType(name string) (TransferType, error) {
	name = strings.TrimPrefix(strings.ToLower(name), "type-")
	switch name {
	case "auto", "":
		return TTypeAuto, nil
	case "1":
		return TType1, nil
	case "2":
		return TType2, nil
	case "3":
		return TType3, nil
	case "4":
		return TType4, nil
	}
	return 0, fmt.Errorf("%w: unknown transfer type %q", ErrInvalidInput, name)
}

// Solve solves the Lambert problem of this transfer type. Multi-revolution types use the given energy branch.
func (t TransferType) Solve(ls *LambertSolver, r1, r2 Vector3, Δt time.Duration, de EnergyBranch) LambertSolution {
	return ls.Solve(r1, r2, Δt.Seconds(), t.Direction(r1, r2), de, t.Revs())
}

// Hohmann computes an Hohmann transfer. It returns the departure and arrival velocities, and the time of flight.
// To get final computations:
// ΔvInit = vDepature - vI
// ΔvFinal = vArrival - vF
func Hohmann(rI, rF float64, body CelestialObject) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * body.GM() / rI) - (body.GM() / aTransfer))
	vArrival = math.Sqrt((2 * body.GM() / rF) - (body.GM() / aTransfer))
	tof = time.Duration(math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/body.GM()) * float64(time.Second))
	return
}
