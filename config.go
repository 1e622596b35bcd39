package twobody

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the directory of conf.toml.
const ConfigEnv = "TWOBODY_CONFIG"

// Config is the configuration of the solvers and of the command line tool. It is loaded once and never mutated.
type Config struct {
	AltitudePad float64 // km
	Method      LambertMethod
	Fallback    bool
	Body        CelestialObject
	VSOP87Dir   string
	OutputDir   string
	Verbose     bool
}

// ConfigOption customizes how a configuration is loaded.
type ConfigOption func(v *viper.Viper) error

// WithFlag binds a command line flag to a configuration key (e.g. "lambert.method"). A flag set by the user
// takes precedence over the environment and the file.
func WithFlag(key string, flag *pflag.Flag) ConfigOption {
	return func(v *viper.Viper) error {
		if flag == nil {
			return fmt.Errorf("%w: no flag for %s", ErrInvalidInput, key)
		}
		return v.BindPFlag(key, flag)
	}
}

// LoadConfig reads the provided TOML file (or the conf.toml of a directory) and applies the TWOBODY_ environment
// overrides. An empty path only uses the defaults and the environment.
func LoadConfig(path string, opts ...ConfigOption) (Config, error) {
	v := viper.New()
	v.SetDefault("lambert.altitude_pad", 0.0)
	v.SetDefault("lambert.method", "universal")
	v.SetDefault("lambert.fallback", true)
	v.SetDefault("body.name", "earth")
	v.SetDefault("ephemeris.vsop87_dir", "")
	v.SetDefault("output.directory", ".")
	v.SetDefault("log.verbose", false)
	v.SetEnvPrefix("TWOBODY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, "conf.toml")
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	method, err := ParseLambertMethod(v.GetString("lambert.method"))
	if err != nil {
		return Config{}, err
	}
	body, err := CelestialObjectFromString(v.GetString("body.name"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	pad := v.GetFloat64("lambert.altitude_pad")
	if pad < 0 {
		return Config{}, fmt.Errorf("%w: negative altitude pad %f", ErrInvalidInput, pad)
	}
	return Config{
		AltitudePad: pad,
		Method:      method,
		Fallback:    v.GetBool("lambert.fallback"),
		Body:        body,
		VSOP87Dir:   v.GetString("ephemeris.vsop87_dir"),
		OutputDir:   v.GetString("output.directory"),
		Verbose:     v.GetBool("log.verbose"),
	}, nil
}

// LoadConfigFromEnv loads the conf.toml in the directory named by TWOBODY_CONFIG, if set.
func LoadConfigFromEnv(opts ...ConfigOption) (Config, error) {
	return LoadConfig(os.Getenv(ConfigEnv), opts...)
}

// Solver returns a Lambert solver about the provided body configured from this configuration.
func (c Config) Solver(body CelestialObject, logger kitlog.Logger) *LambertSolver {
	ls := NewLambertSolver(body, c.AltitudePad, c.Method)
	ls.Fallback = c.Fallback
	if logger != nil {
		ls.Logger = logger
	}
	return ls
}
