// Package ephem provides heliocentric planet states used to set up interplanetary Lambert problems.
package ephem

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	twobody "github.com/Posnet/Vallado-sub005"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
)

// DataEnv is the environment variable of the VSOP87 data directory used by the tests and the command line.
const DataEnv = "TWOBODY_VSOP87"

// ErrUnknownBody is returned for bodies without a VSOP87 theory.
var ErrUnknownBody = errors.New("ephem: no ephemeris for body")

// fdStep is the half-width of the central difference used for velocities.
const fdStep = 0.01 // days

// Ephemeris returns the heliocentric ecliptic J2000 state (km, km/s) of a body.
type Ephemeris interface {
	HelioState(body twobody.CelestialObject, dt time.Time) (R, V twobody.Vector3, err error)
}

// VSOP87 computes planet positions from the VSOP87B files of a directory (Pluto uses Meeus' chapter 37
// instead). Velocities are computed by central differences of the positions.
type VSOP87 struct {
	dir     string
	mu      sync.Mutex
	planets map[int]*planetposition.V87Planet
}

// NewVSOP87 returns an ephemeris reading the VSOP87B.* files of dir on demand.
func NewVSOP87(dir string) (*VSOP87, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("ephem: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ephem: %s is not a directory", dir)
	}
	return &VSOP87{dir: dir, planets: make(map[int]*planetposition.V87Planet)}, nil
}

// NewVSOP87FromEnv returns the VSOP87 ephemeris of the TWOBODY_VSOP87 directory.
func NewVSOP87FromEnv() (*VSOP87, error) {
	dir := os.Getenv(DataEnv)
	if dir == "" {
		return nil, fmt.Errorf("ephem: environment variable `%s` is missing or empty", DataEnv)
	}
	return NewVSOP87(dir)
}

func vsopIndex(name string) (int, bool) {
	switch name {
	case "Mercury":
		return planetposition.Mercury, true
	case "Venus":
		return planetposition.Venus, true
	case "Earth":
		return planetposition.Earth, true
	case "Mars":
		return planetposition.Mars, true
	case "Jupiter":
		return planetposition.Jupiter, true
	case "Saturn":
		return planetposition.Saturn, true
	case "Uranus":
		return planetposition.Uranus, true
	case "Neptune":
		return planetposition.Neptune, true
	}
	return 0, false
}

// planet loads the whole theory of a planet once.
func (e *VSOP87) planet(idx int) (*planetposition.V87Planet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if pp, ok := e.planets[idx]; ok {
		return pp, nil
	}
	pp, err := planetposition.LoadPlanetPath(idx, e.dir)
	if err != nil {
		return nil, fmt.Errorf("ephem: could not load planet number %d: %w", idx+1, err)
	}
	e.planets[idx] = pp
	return pp, nil
}

// position returns a function of the Julian ephemeris day returning the position in km.
func (e *VSOP87) position(body twobody.CelestialObject) (func(jde float64) twobody.Vector3, error) {
	if body.Name == "Pluto" {
		return func(jde float64) twobody.Vector3 {
			l, b, r := pluto.Heliocentric(jde)
			return lbr2xyz(l.Rad(), b.Rad(), r)
		}, nil
	}
	idx, ok := vsopIndex(body.Name)
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownBody, body.Name)
	}
	pp, err := e.planet(idx)
	if err != nil {
		return nil, err
	}
	return func(jde float64) twobody.Vector3 {
		l, b, r := pp.Position2000(jde)
		return lbr2xyz(l.Rad(), b.Rad(), r)
	}, nil
}

// HelioState implements Ephemeris.
func (e *VSOP87) HelioState(body twobody.CelestialObject, dt time.Time) (R, V twobody.Vector3, err error) {
	if body.Name == "Sun" {
		return
	}
	pos, err := e.position(body)
	if err != nil {
		return
	}
	jde := julian.TimeToJD(dt)
	R = pos(jde)
	V = pos(jde + fdStep).Sub(pos(jde - fdStep)).Scale(1 / (2 * fdStep * 86400))
	return
}

// lbr2xyz converts ecliptic longitude, latitude and distance (AU) to cartesian coordinates in km.
func lbr2xyz(l, b, r float64) twobody.Vector3 {
	r *= twobody.AU
	sB, cB := math.Sincos(b)
	sL, cL := math.Sincos(l)
	return twobody.Vector3{r * cB * cL, r * cB * sL, r * sB}
}
