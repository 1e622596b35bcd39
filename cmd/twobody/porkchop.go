package main

import (
	"fmt"
	"runtime"
	"time"

	twobody "github.com/Posnet/Vallado-sub005"
	"github.com/Posnet/Vallado-sub005/ephem"
	"github.com/Posnet/Vallado-sub005/tools"
	"github.com/spf13/cobra"
)

func newPorkchopCmd(a *app) *cobra.Command {
	var from, to, launch, launchUntil, arrival, arrivalUntil, ttype, branch, name string
	var launchPts, arrivalPts float64
	var workers int
	cmd := &cobra.Command{
		Use:   "porkchop",
		Short: "Generate C3, time of flight and arrival v-infinity grids between two planets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := tools.PorkchopConfig{PtsPerLaunchDay: launchPts, PtsPerArrivalDay: arrivalPts, Workers: workers}
			var err error
			if cfg.Departure, err = twobody.CelestialObjectFromString(from); err != nil {
				return err
			}
			if cfg.Arrival, err = twobody.CelestialObjectFromString(to); err != nil {
				return err
			}
			for _, d := range []struct {
				dst *time.Time
				src string
			}{{&cfg.LaunchStart, launch}, {&cfg.LaunchEnd, launchUntil}, {&cfg.ArrivalStart, arrival}, {&cfg.ArrivalEnd, arrivalUntil}} {
				if *d.dst, err = parseDate(d.src); err != nil {
					return err
				}
			}
			if cfg.Type, err = twobody.ParseTransferType(ttype); err != nil {
				return err
			}
			if cfg.Branch, err = twobody.ParseEnergyBranch(branch); err != nil {
				return err
			}
			if a.conf.VSOP87Dir == "" {
				return fmt.Errorf("%w: no VSOP87 directory configured", twobody.ErrInvalidInput)
			}
			eph, err := ephem.NewVSOP87(a.conf.VSOP87Dir)
			if err != nil {
				return err
			}
			grid, err := tools.Porkchop(cmd.Context(), cfg, eph, a.conf.Solver(twobody.Sun, a.logger), a.logger)
			if err != nil {
				return err
			}
			fNames, err := tools.WriteFiles(a.conf.OutputDir, name, grid)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, fName := range fNames {
				fmt.Fprintf(out, "wrote %s\n", fName)
			}
			if best, ok := grid.Min(tools.C3); ok {
				fmt.Fprintf(out, "min C3=%.3f km^2/s^2 launch=%s arrival=%s tof=%.1f days vinf=%.3f km/s\n",
					best.C3, best.Launch.Format(dtFormat), best.Arrival.Format(dtFormat), best.TOF, best.VInfArr)
			}
			fmt.Fprintf(out, "%d of %d transfers failed\n", grid.Failures(), len(grid.Launches)*len(grid.Arrivals))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", "earth", "departure planet")
	f.StringVar(&to, "to", "mars", "arrival planet")
	f.StringVar(&launch, "launch", "", "first launch date (Julian date or "+dtFormat+")")
	f.StringVar(&launchUntil, "launch-until", "", "end of the launch window")
	f.StringVar(&arrival, "arrival", "", "first arrival date")
	f.StringVar(&arrivalUntil, "arrival-until", "", "end of the arrival window")
	f.Float64Var(&launchPts, "launch-pts", 1, "points per launch day")
	f.Float64Var(&arrivalPts, "arrival-pts", 1, "points per arrival day")
	f.StringVar(&ttype, "type", "auto", "transfer type (auto, 1, 2, 3, 4)")
	f.StringVar(&branch, "branch", "high", "energy branch of types 3 and 4 (low, high)")
	f.StringVar(&name, "name", "pcp", "file prefix")
	f.IntVar(&workers, "workers", runtime.NumCPU(), "number of launch dates solved concurrently")
	for _, req := range []string{"launch", "launch-until", "arrival", "arrival-until"} {
		cmd.MarkFlagRequired(req)
	}
	return cmd
}
