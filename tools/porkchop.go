// Package tools builds grids of Lambert transfers between two planets (pork chop plots).
package tools

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	twobody "github.com/Posnet/Vallado-sub005"
	"github.com/Posnet/Vallado-sub005/ephem"
	kitlog "github.com/go-kit/kit/log"
)

// Quantity is one of the values stored in a pork chop grid.
type Quantity uint8

const (
	// C3 is the departure characteristic energy (km^2/s^2).
	C3 Quantity = iota + 1
	// VInfDeparture is the departure hyperbolic excess velocity (km/s).
	VInfDeparture
	// VInfArrival is the arrival hyperbolic excess velocity (km/s).
	VInfArrival
	// TOF is the time of flight (days).
	TOF
)

func (q Quantity) String() string {
	switch q {
	case C3:
		return "c3"
	case VInfDeparture:
		return "vinf-init"
	case VInfArrival:
		return "vinf-arrival"
	case TOF:
		return "tof"
	default:
		panic("unknown quantity")
	}
}

// ParseQuantity returns the quantity from its name.
func ParseQuantity(name string) (Quantity, error) {
	for _, q := range []Quantity{C3, VInfDeparture, VInfArrival, TOF} {
		if q.String() == name {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown quantity %q", twobody.ErrInvalidInput, name)
}

// PorkchopConfig defines the launch and arrival windows of a grid.
type PorkchopConfig struct {
	Departure, Arrival       twobody.CelestialObject
	LaunchStart, LaunchEnd   time.Time
	ArrivalStart, ArrivalEnd time.Time
	PtsPerLaunchDay          float64
	PtsPerArrivalDay         float64
	Type                     twobody.TransferType
	Branch                   twobody.EnergyBranch // only used by multi-revolution types
	Workers                  int
}

func (c PorkchopConfig) validate() error {
	if !c.LaunchEnd.After(c.LaunchStart) || !c.ArrivalEnd.After(c.ArrivalStart) {
		return fmt.Errorf("%w: empty launch or arrival window", twobody.ErrInvalidInput)
	}
	if !(c.PtsPerLaunchDay > 0) || !(c.PtsPerArrivalDay > 0) {
		return fmt.Errorf("%w: points per day must be positive", twobody.ErrInvalidInput)
	}
	return nil
}

// dates returns the sampled dates of a window, end excluded.
func dates(start, end time.Time, ptsPerDay float64) []time.Time {
	step := time.Duration(float64(24*time.Hour) / ptsPerDay)
	var dts []time.Time
	for dt := start; dt.Before(end); dt = dt.Add(step) {
		dts = append(dts, dt)
	}
	return dts
}

// Cell is one transfer of the grid. Values are NaN when the Lambert solver failed, and Err is set.
type Cell struct {
	Launch, Arrival        time.Time
	TOF                    float64 // days
	C3                     float64
	VInfDep, VInfArr       float64
	VInfDepVec, VInfArrVec twobody.Vector3
	Impact                 twobody.ImpactReason
	Err                    error
}

// Value returns the requested quantity of this cell.
func (c Cell) Value(q Quantity) float64 {
	switch q {
	case C3:
		return c.C3
	case VInfDeparture:
		return c.VInfDep
	case VInfArrival:
		return c.VInfArr
	case TOF:
		return c.TOF
	default:
		panic("unknown quantity")
	}
}

// Grid stores the transfers with launch dates as rows and arrival dates as columns.
type Grid struct {
	Config   PorkchopConfig
	Launches []time.Time
	Arrivals []time.Time
	Cells    [][]Cell
}

// Min returns the feasible cell minimizing the quantity, and false if no transfer converged.
func (g *Grid) Min(q Quantity) (Cell, bool) {
	var best Cell
	found := false
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Err != nil || math.IsNaN(c.Value(q)) {
				continue
			}
			if !found || c.Value(q) < best.Value(q) {
				best = c
				found = true
			}
		}
	}
	return best, found
}

// Failures returns the number of transfers which did not converge.
func (g *Grid) Failures() (n int) {
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Err != nil {
				n++
			}
		}
	}
	return
}

// Porkchop solves the Lambert problem for every launch and arrival date pair of the configuration. Each launch
// date is processed by one of the workers. Lambert failures are stored in the cells; ephemeris errors abort.
func Porkchop(ctx context.Context, cfg PorkchopConfig, eph ephem.Ephemeris, solver *twobody.LambertSolver, logger kitlog.Logger) (*Grid, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	logger = kitlog.With(logger, "subsys", "porkchop")
	if cfg.Type == 0 {
		cfg.Type = twobody.TTypeAuto
	}
	if cfg.Branch == 0 {
		cfg.Branch = twobody.High
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	grid := &Grid{
		Config:   cfg,
		Launches: dates(cfg.LaunchStart, cfg.LaunchEnd, cfg.PtsPerLaunchDay),
		Arrivals: dates(cfg.ArrivalStart, cfg.ArrivalEnd, cfg.PtsPerArrivalDay),
	}
	grid.Cells = make([][]Cell, len(grid.Launches))
	logger.Log("level", "info", "departure", cfg.Departure.Name, "arrival", cfg.Arrival.Name, "launches", len(grid.Launches), "arrivals", len(grid.Arrivals), "workers", workers)

	// Arrival states are shared by all rows.
	type state struct{ R, V twobody.Vector3 }
	arrivals := make([]state, len(grid.Arrivals))
	for j, dt := range grid.Arrivals {
		R, V, err := eph.HelioState(cfg.Arrival, dt)
		if err != nil {
			return nil, err
		}
		arrivals[j] = state{R, V}
	}

	rows := make(chan int)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				launch := grid.Launches[i]
				R1, V1, err := eph.HelioState(cfg.Departure, launch)
				if err != nil {
					errs <- err
					return
				}
				row := make([]Cell, len(grid.Arrivals))
				for j, arrival := range grid.Arrivals {
					row[j] = transfer(cfg, solver, launch, arrival, R1, V1, arrivals[j].R, arrivals[j].V)
					if row[j].Err != nil {
						logger.Log("level", "debug", "launch", launch.Format(time.RFC3339), "arrival", arrival.Format(time.RFC3339), "err", row[j].Err)
					}
				}
				grid.Cells[i] = row
			}
		}()
	}

	var err error
dispatch:
	for i := range grid.Launches {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case err = <-errs:
			break dispatch
		case rows <- i:
		}
	}
	close(rows)
	wg.Wait()
	if err == nil {
		select {
		case err = <-errs:
		default:
		}
	}
	if err != nil {
		logger.Log("level", "error", "err", err)
		return nil, err
	}
	logger.Log("level", "info", "failures", grid.Failures())
	return grid, nil
}

// transfer solves one cell of the grid.
func transfer(cfg PorkchopConfig, solver *twobody.LambertSolver, launch, arrival time.Time, R1, V1, R2, V2 twobody.Vector3) Cell {
	tof := arrival.Sub(launch)
	cell := Cell{Launch: launch, Arrival: arrival, TOF: tof.Hours() / 24, C3: math.NaN(), VInfDep: math.NaN(), VInfArr: math.NaN()}
	if tof <= 0 {
		cell.Err = fmt.Errorf("%w: arrival before launch", twobody.ErrInvalidInput)
		return cell
	}
	sol := cfg.Type.Solve(solver, R1, R2, tof, cfg.Branch)
	if sol.Err != nil {
		cell.Err = sol.Err
		return cell
	}
	cell.Impact = sol.Impact.Reason
	cell.VInfDepVec = sol.V1.Sub(V1)
	cell.VInfArrVec = sol.V2.Sub(V2)
	cell.VInfDep = cell.VInfDepVec.Norm()
	cell.VInfArr = cell.VInfArrVec.Norm()
	cell.C3 = cell.VInfDep * cell.VInfDep
	return cell
}
