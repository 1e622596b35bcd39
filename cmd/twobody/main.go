// Command twobody solves Kepler and Lambert problems and generates pork chop plots from the command line.
package main

import (
	"os"

	twobody "github.com/Posnet/Vallado-sub005"
	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/cobra"
)

// app holds what the subcommands share once the configuration is loaded.
type app struct {
	conf     twobody.Config
	logger   kitlog.Logger
	confPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: kitlog.NewNopLogger()}
	root := &cobra.Command{
		Use:          "twobody",
		Short:        "Two-body Kepler and Lambert solvers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.confPath, "config", "", "TOML configuration file or directory (default $"+twobody.ConfigEnv+"/conf.toml)")
	pf.Bool("verbose", false, "log solver decisions to stderr")
	pf.String("method", "universal", "Lambert method (universal, battin)")
	pf.Float64("pad", 0, "altitude pad above the central body radius for the impact check (km)")
	pf.String("body", "earth", "central body")
	pf.String("vsop87", "", "VSOP87 data directory")
	pf.String("output", ".", "output directory")

	root.AddCommand(newLambertCmd(a), newKeplerCmd(a), newBoundsCmd(a), newPorkchopCmd(a))
	return root
}

// load reads the configuration with the command line flags taking precedence.
func (a *app) load(cmd *cobra.Command) error {
	path := a.confPath
	if path == "" {
		path = os.Getenv(twobody.ConfigEnv)
	}
	flags := cmd.Flags()
	conf, err := twobody.LoadConfig(path,
		twobody.WithFlag("log.verbose", flags.Lookup("verbose")),
		twobody.WithFlag("lambert.method", flags.Lookup("method")),
		twobody.WithFlag("lambert.altitude_pad", flags.Lookup("pad")),
		twobody.WithFlag("body.name", flags.Lookup("body")),
		twobody.WithFlag("ephemeris.vsop87_dir", flags.Lookup("vsop87")),
		twobody.WithFlag("output.directory", flags.Lookup("output")),
	)
	if err != nil {
		return err
	}
	a.conf = conf
	if conf.Verbose {
		klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(cmd.ErrOrStderr()))
		a.logger = kitlog.With(klog, "ts", kitlog.DefaultTimestampUTC)
	}
	return nil
}
