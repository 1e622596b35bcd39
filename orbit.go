package twobody

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
)

const (
	eccentricityε = 5e-5                         // 0.00005
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	distanceε     = 2e1                          // 20 km
)

// Orbit defines an orbit via its classical elements. The semi-parameter p is stored instead of the semi-major
// axis so that parabolas are representable. For circular orbits ω is zero and ν is the argument of latitude; for
// equatorial orbits Ω is zero and ω is the longitude of periapsis (or ν the true longitude if also circular).
type Orbit struct {
	p, e, i, Ω, ω, ν float64
	Origin           CelestialObject // Orbit origin
}

// SemiParameter returns the semi-parameter p.
func (o Orbit) SemiParameter() float64 {
	return o.p
}

// SemiMajorAxis returns the semi-major axis, negative for hyperbolas and infinite for parabolas.
func (o Orbit) SemiMajorAxis() float64 {
	if o.Regime() == Parabolic {
		return math.Inf(1)
	}
	return o.p / (1 - o.e*o.e)
}

// Eccentricity returns the eccentricity.
func (o Orbit) Eccentricity() float64 {
	return o.e
}

// Regime returns the conic section of this orbit.
func (o Orbit) Regime() ConicRegime {
	return RegimeOf(o.e)
}

// Energyξ returns the specific mechanical energy ξ.
func (o Orbit) Energyξ() float64 {
	return -o.Origin.μ * (1 - o.e*o.e) / (2 * o.p)
}

// Tildeω returns the longitude of periapsis.
func (o Orbit) Tildeω() float64 {
	return wrap2π(o.ω + o.Ω)
}

// TrueLongλ returns the *approximate* true longitude (cf. Vallado page 103).
func (o Orbit) TrueLongλ() float64 {
	return wrap2π(o.ω + o.Ω + o.ν)
}

// ArgLatitudeU returns the argument of latitude.
func (o Orbit) ArgLatitudeU() float64 {
	return wrap2π(o.ν + o.ω)
}

// TrueAnomaly returns ν.
func (o Orbit) TrueAnomaly() float64 {
	return o.ν
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return o.p / (1 + o.e)
}

// Apoapsis returns the apoapsis radius, infinite for open orbits.
func (o Orbit) Apoapsis() float64 {
	if o.e >= 1 {
		return math.Inf(1)
	}
	return o.p / (1 - o.e)
}

// RNorm returns the norm of the radius vector, but without computing the radius vector.
func (o Orbit) RNorm() float64 {
	return o.p / (1 + o.e*math.Cos(o.ν))
}

// HNorm returns the norm of orbital angular momentum.
func (o Orbit) HNorm() float64 {
	return math.Sqrt(o.Origin.μ * o.p)
}

// CosΦfpa returns the cosine of the flight path angle.
// WARNING: As per Vallado page 105, *do not* use math.Acos(o.CosΦfpa())
// to get the flight path angle as you'll have a quadran problem. Instead
// use math.Atan2(o.SinΦfpa(), o.CosΦfpa()).
func (o Orbit) CosΦfpa() float64 {
	ecosν := o.e * math.Cos(o.ν)
	return (1 + ecosν) / math.Sqrt(1+2*ecosν+o.e*o.e)
}

// SinΦfpa returns the sine of the flight path angle.
func (o Orbit) SinΦfpa() float64 {
	sinν, cosν := math.Sincos(o.ν)
	return (o.e * sinν) / math.Sqrt(1+2*o.e*cosν+o.e*o.e)
}

// Period returns the period of this orbit, or zero for open orbits.
func (o Orbit) Period() time.Duration {
	if o.e >= 1-small {
		return 0
	}
	a := o.SemiMajorAxis()
	return time.Duration(twoπ * math.Sqrt(a*a*a/o.Origin.μ) * float64(time.Second))
}

// MeanAnomaly returns the eccentric (or hyperbolic or parabolic) anomaly and the mean anomaly.
func (o Orbit) MeanAnomaly() (E, M float64, err error) {
	return True2Mean(o.e, o.ν)
}

// RV returns the inertial position and velocity vectors.
func (o Orbit) RV() (R, V Vector3) {
	sinν, cosν := math.Sincos(o.ν)
	r := o.p / (1 + o.e*cosν)
	vScale := math.Sqrt(o.Origin.μ / o.p)
	R = PQW2ECI(o.i, o.ω, o.Ω, Vector3{r * cosν, r * sinν, 0})
	V = PQW2ECI(o.i, o.ω, o.Ω, Vector3{-vScale * sinν, vScale * (o.e + cosν), 0})
	return
}

// Propagate returns this orbit Δt seconds later, propagated with Kepler.
func (o Orbit) Propagate(Δt float64) (*Orbit, error) {
	R, V := o.RV()
	R1, V1, err := Kepler(R, V, Δt, o.Origin)
	if err != nil {
		return nil, err
	}
	return NewOrbitFromRV(R1, V1, o.Origin)
}

// String implements the stringer interface (hence the value receiver)
func (o Orbit) String() string {
	if o.e < eccentricityε {
		// Circular orbit
		if o.i > angleε {
			return fmt.Sprintf("p=%.1f e=%.4f i=%.3f Ω=%.3f u=%.3f", o.p, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ArgLatitudeU()))
		}
		// Equatorial
		return fmt.Sprintf("p=%.1f e=%.4f i=%.3f λ=%.3f", o.p, o.e, Rad2deg(o.i), Rad2deg(o.TrueLongλ()))
	}
	return fmt.Sprintf("p=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", o.p, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω), Rad2deg(o.ν))
}

// Equals returns whether two orbits are identical with free true anomaly.
// Use StrictlyEquals to also check true anomaly.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if !o.Origin.Equals(o1.Origin) {
		return false, errors.New("different origin")
	}
	if !floats.EqualWithinAbs(o.p, o1.p, distanceε) {
		return false, errors.New("semi parameter invalid")
	}
	if !floats.EqualWithinAbs(o.e, o1.e, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if !anglesClose(o.i, o1.i) {
		return false, errors.New("inclination invalid")
	}
	equatorial := o.i < angleε || math.Pi-o.i < angleε
	if !equatorial && !anglesClose(o.Ω, o1.Ω) {
		return false, errors.New("RAAN invalid")
	}
	switch {
	case o.e < eccentricityε:
		// Circular orbit: periapsis is undefined.
	case equatorial:
		if !anglesClose(o.Tildeω(), o1.Tildeω()) {
			return false, errors.New("longitude of periapsis invalid")
		}
	default:
		if !anglesClose(o.ω, o1.ω) {
			return false, errors.New("argument of perigee invalid")
		}
	}
	return true, nil
}

// StrictlyEquals returns whether two orbits are identical, including the position on the orbit.
func (o Orbit) StrictlyEquals(o1 Orbit) (bool, error) {
	if ok, err := o.Equals(o1); !ok {
		return ok, err
	}
	if !anglesClose(o.TrueLongλ(), o1.TrueLongλ()) {
		return false, errors.New("true longitude invalid")
	}
	return true, nil
}

// NewOrbitFromOE creates an orbit from the orbital elements.
// WARNING: Angles must be in degrees not radian.
func NewOrbitFromOE(a, e, i, Ω, ω, ν float64, c CelestialObject) (*Orbit, error) {
	if e < 0 {
		return nil, fmt.Errorf("%w: negative eccentricity %f", ErrInvalidInput, e)
	}
	if RegimeOf(e) == Parabolic {
		return nil, fmt.Errorf("%w: semi-major axis undefined for a parabola, use NewOrbitFromPE", ErrInvalidInput)
	}
	return NewOrbitFromPE(a*(1-e*e), e, i, Ω, ω, ν, c)
}

// NewOrbitFromPE creates an orbit from the semi-parameter and the other orbital elements (in degrees).
func NewOrbitFromPE(p, e, i, Ω, ω, ν float64, c CelestialObject) (*Orbit, error) {
	if p <= 0 || e < 0 {
		return nil, fmt.Errorf("%w: p=%f e=%f", ErrInvalidInput, p, e)
	}
	νr := Deg2rad(ν)
	if e >= 1 && 1+e*math.Cos(νr) <= 0 {
		return nil, fmt.Errorf("%w: ν=%f beyond the asymptote", ErrInvalidInput, ν)
	}
	return &Orbit{p, e, Deg2rad(i), Deg2rad(Ω), Deg2rad(ω), νr, c}, nil
}

// NewOrbitFromRV returns orbital elements from the R and V vectors.
func NewOrbitFromRV(R, V Vector3, c CelestialObject) (*Orbit, error) {
	// From Vallado's RV2COE, page 113
	r := R.Norm()
	if r < small {
		return nil, fmt.Errorf("%w: null position vector", ErrInvalidInput)
	}
	hVec := R.Cross(V)
	h := hVec.Norm()
	if h < small {
		return nil, fmt.Errorf("%w: rectilinear motion", ErrNumericDegenerate)
	}
	n := Vector3{0, 0, 1}.Cross(hVec)
	v := V.Norm()
	rDotV := R.Dot(V)
	eVec := linComb((v*v-c.μ/r)/c.μ, R, -rDotV/c.μ, V)
	e := eVec.Norm()
	p := h * h / c.μ
	i := acosClamp(hVec[2] / h)

	equatorial := n.Norm() < small
	circular := e < small
	var Ω, ω, ν float64
	if !equatorial {
		Ω = acosClamp(n[0] / n.Norm())
		if n[1] < 0 {
			Ω = twoπ - Ω
		}
	}
	switch {
	case circular && equatorial:
		// True longitude
		ν = acosClamp(R[0] / r)
		if R[1] < 0 {
			ν = twoπ - ν
		}
		if i > math.Pi/2 {
			ν = twoπ - ν
		}
	case circular:
		// Argument of latitude
		ν = acosClamp(n.Dot(R) / (n.Norm() * r))
		if R[2] < 0 {
			ν = twoπ - ν
		}
	default:
		if equatorial {
			// Longitude of periapsis
			ω = acosClamp(eVec[0] / e)
			if eVec[1] < 0 {
				ω = twoπ - ω
			}
			if i > math.Pi/2 {
				ω = twoπ - ω
			}
		} else {
			ω = acosClamp(n.Dot(eVec) / (n.Norm() * e))
			if eVec[2] < 0 {
				ω = twoπ - ω
			}
		}
		ν = acosClamp(eVec.Dot(R) / (e * r))
		if rDotV < 0 {
			ν = twoπ - ν
		}
	}
	return &Orbit{p, e, i, wrap2π(Ω), wrap2π(ω), wrap2π(ν), c}, nil
}

// Radii2ae returns the semi major axis and the eccentricty from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}

// acosClamp is math.Acos with its argument clamped to [-1, 1] against rounding.
func acosClamp(x float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, x)))
}

// anglesClose returns whether two angles are within angleε of each other, modulo 2π.
func anglesClose(a, b float64) bool {
	return math.Abs(math.Remainder(a-b, twoπ)) < angleε
}
