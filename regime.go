package twobody

import "math"

// small is the tolerance shared by every regime decision (circular, parabolic, near-zero z).
const small = 1e-8

// ConicRegime is the conic section of an orbit.
type ConicRegime uint8

const (
	// Circular orbit (e ~ 0).
	Circular ConicRegime = iota + 1
	// Elliptic orbit (0 < e < 1).
	Elliptic
	// Parabolic orbit (e ~ 1).
	Parabolic
	// Hyperbolic orbit (e > 1).
	Hyperbolic
)

func (c ConicRegime) String() string {
	switch c {
	case Circular:
		return "circular"
	case Elliptic:
		return "elliptic"
	case Parabolic:
		return "parabolic"
	case Hyperbolic:
		return "hyperbolic"
	default:
		panic("unknown conic regime")
	}
}

// RegimeOf classifies an eccentricity. Values within small of 0 or 1 are snapped to the
// circular or parabolic regime so that floating noise cannot flip the classification.
func RegimeOf(ecc float64) ConicRegime {
	switch {
	case math.Abs(ecc) < small:
		return Circular
	case math.Abs(ecc-1) < small:
		return Parabolic
	case ecc < 1:
		return Elliptic
	default:
		return Hyperbolic
	}
}
