package main

import (
	"fmt"

	twobody "github.com/Posnet/Vallado-sub005"
	"github.com/spf13/cobra"
)

func newLambertCmd(a *app) *cobra.Command {
	var r1s, r2s, dms, des string
	var tof float64
	var nrev int
	cmd := &cobra.Command{
		Use:   "lambert",
		Short: "Solve the Lambert problem between two positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r1, err := parseVector(r1s)
			if err != nil {
				return err
			}
			r2, err := parseVector(r2s)
			if err != nil {
				return err
			}
			dm, err := twobody.ParseDirectionOfMotion(dms)
			if err != nil {
				return err
			}
			de, err := twobody.ParseEnergyBranch(des)
			if err != nil {
				return err
			}
			sol := a.conf.Solver(a.conf.Body, a.logger).Solve(r1, r2, tof, dm, de, nrev)
			if sol.Err != nil {
				return sol.Err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "method=%s iterations=%d\n", sol.Method, sol.Iterations)
			fmt.Fprintf(out, "v1=%s km/s\nv2=%s km/s\n", fmtVector(sol.V1), fmtVector(sol.V2))
			if err := sol.Feasible(); err != nil {
				fmt.Fprintf(out, "warning: %s\n", err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&r1s, "r1", "", "initial position x,y,z (km)")
	f.StringVar(&r2s, "r2", "", "final position x,y,z (km)")
	f.Float64Var(&tof, "tof", 0, "time of flight (s)")
	f.StringVar(&dms, "dm", "short", "direction of motion (short, long)")
	f.StringVar(&des, "de", "low", "energy branch of multi-revolution transfers (low, high)")
	f.IntVar(&nrev, "nrev", 0, "number of complete revolutions")
	cmd.MarkFlagRequired("r1")
	cmd.MarkFlagRequired("r2")
	cmd.MarkFlagRequired("tof")
	return cmd
}
