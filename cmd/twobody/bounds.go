package main

import (
	"fmt"

	twobody "github.com/Posnet/Vallado-sub005"
	"github.com/spf13/cobra"
)

func newBoundsCmd(a *app) *cobra.Command {
	var r1s, r2s, dms, des string
	var nrev int
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the time of flight bounds of a transfer geometry",
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
			geom, err := twobody.NewTransferGeometry(r1, r2, dm, de, nrev)
			if err != nil {
				return err
			}
			body := a.conf.Body
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "geometry: %s\n", geom)
			tMin, tMinP, tMinE, err := twobody.LambertMinT(geom, body)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "tmin=%.6f s tminp=%.6f s tmine=%.6f s\n", tMin, tMinP, tMinE)
			if nrev > 0 {
				ψmin, tofMin, err := twobody.LambertUMins(geom, body)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "psimin=%.6f tof=%.6f s\n", ψmin, tofMin)
			}
			tMaxRP, v1, err := twobody.LambertTMaxRP(geom, body)
			if err != nil {
				a.logger.Log("level", "warning", "bound", "tmaxrp", "err", err)
				return nil
			}
			fmt.Fprintf(out, "tmaxrp=%.6f s v1=%s km/s\n", tMaxRP, fmtVector(v1))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&r1s, "r1", "", "initial position x,y,z (km)")
	f.StringVar(&r2s, "r2", "", "final position x,y,z (km)")
	f.StringVar(&dms, "dm", "short", "direction of motion (short, long)")
	f.StringVar(&des, "de", "low", "energy branch (low, high)")
	f.IntVar(&nrev, "nrev", 0, "number of complete revolutions")
	cmd.MarkFlagRequired("r1")
	cmd.MarkFlagRequired("r2")
	return cmd
}
