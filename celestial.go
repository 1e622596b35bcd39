package twobody

import (
	"fmt"
	"strings"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
)

// CelestialObject defines the central body of a two-body problem: its gravitational parameter and its
// equatorial radius. It is the immutable set of physical constants passed to every solver.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	μ      float64 // km^3/s^2
}

// NewCelestialObject returns a central body with the provided radius (km) and gravitational parameter (km^3/s^2).
func NewCelestialObject(name string, radius, μ float64) (CelestialObject, error) {
	if radius < 0 || μ <= 0 {
		return CelestialObject{}, fmt.Errorf("%w: body %s needs radius >= 0 and μ > 0 (got %f, %f)", ErrInvalidInput, name, radius, μ)
	}
	return CelestialObject{name, radius, μ}, nil
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "mercury":
		return Mercury, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "neptune":
		return Neptune, nil
	case "pluto":
		return Pluto, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined planet '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700, 1.32712440017987e11}

// Mercury is hot.
var Mercury = CelestialObject{"Mercury", 2439.7, 2.2032e4}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 6051.8, 3.24858599e5}

// Earth is home. μ is the EGM-96 value used throughout Vallado.
var Earth = CelestialObject{"Earth", 6378.1363, 3.986004418e5}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 4.28283100e4}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0, 1.266865361e8}

// Saturn floats and that's really cool.
var Saturn = CelestialObject{"Saturn", 60268.0, 3.7931208e7}

// Uranus is no joke.
var Uranus = CelestialObject{"Uranus", 25559.0, 5.7939513e6}

// Neptune is windy.
var Neptune = CelestialObject{"Neptune", 24764.0, 6.836529e6}

// Pluto is not a planet and had that down ranking coming. It should have stayed in its lane.
var Pluto = CelestialObject{"Pluto", 1188.3, 8.71e2}
