package main

import (
	"fmt"

	twobody "github.com/Posnet/Vallado-sub005"
	"github.com/spf13/cobra"
)

func newKeplerCmd(a *app) *cobra.Command {
	var r0s, v0s string
	var dt float64
	cmd := &cobra.Command{
		Use:   "kepler",
		Short: "Propagate a state with the universal variable Kepler solver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r0, err := parseVector(r0s)
			if err != nil {
				return err
			}
			v0, err := parseVector(v0s)
			if err != nil {
				return err
			}
			r, v, err := twobody.Kepler(r0, v0, dt, a.conf.Body)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "r=%s km\nv=%s km/s\n", fmtVector(r), fmtVector(v))
			if o, err := twobody.NewOrbitFromRV(r, v, a.conf.Body); err == nil {
				fmt.Fprintf(out, "orbit: %s (%s)\n", o, o.Regime())
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&r0s, "r0", "", "initial position x,y,z (km)")
	f.StringVar(&v0s, "v0", "", "initial velocity x,y,z (km/s)")
	f.Float64Var(&dt, "dt", 0, "propagation time (s)")
	cmd.MarkFlagRequired("r0")
	cmd.MarkFlagRequired("v0")
	return cmd
}
