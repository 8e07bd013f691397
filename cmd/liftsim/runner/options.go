/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package runner

import (
	"flag"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/liftsim/liftsim/pkg/common/observability/logging"
	"github.com/liftsim/liftsim/pkg/lift/config"
	"github.com/liftsim/liftsim/pkg/lift/util/env"
)

const (
	DefaultMetricsPort  = 0
	ZapLogLevelFlagName = "zap-log-level"

	// Environment variables consulted for settings whose flag was not given.
	EnvMaxFloor            = "LIFTSIM_MAX_FLOOR"
	EnvElevatorCount       = "LIFTSIM_ELEVATOR_COUNT"
	EnvMovePerFloorLatency = "LIFTSIM_MOVE_LATENCY"
	EnvDoorLatency         = "LIFTSIM_DOOR_LATENCY"
	EnvInput               = "LIFTSIM_INPUT"
)

// Options contains the command-line configuration for the simulator.
type Options struct {
	//
	// Input.
	//
	Input      string // Path of the itinerary file, "-" for stdin.
	ConfigFile string // Optional YAML file with simulation parameters.
	//
	// Simulation parameters. Precedence: flag, then environment, then config file, then default.
	//
	MaxFloor            int
	ElevatorCount       int
	MovePerFloorLatency time.Duration
	DoorLatency         time.Duration
	DwellMin            time.Duration
	DwellMax            time.Duration
	//
	// Diagnostics.
	//
	LogVerbosity int         // Number for the log level verbosity.
	ZapOptions   zap.Options // Zap logging options.
	MetricsPort  int         // Port serving Prometheus metrics during the run. 0 disables it.
	EnablePprof  bool        // Enables pprof handlers on the metrics port.

	// internal
	fs *pflag.FlagSet // FlagSet used in AddFlags() and consulted in Complete()
}

// NewOptions returns a new Options struct initialized with default values.
func NewOptions() *Options {
	return &Options{
		Input:               "-",
		MaxFloor:            config.DefaultMaxFloor,
		ElevatorCount:       config.DefaultElevatorCount,
		MovePerFloorLatency: config.DefaultMovePerFloorLatency,
		DoorLatency:         config.DefaultDoorLatency,
		DwellMin:            config.DefaultDwellMin,
		DwellMax:            config.DefaultDwellMax,
		LogVerbosity:        logging.DEFAULT,
		ZapOptions:          zap.Options{Development: true},
		MetricsPort:         DefaultMetricsPort,
	}
}

// AddFlags binds the Options fields to command-line flags on the given FlagSet.
func (opts *Options) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	opts.fs = fs

	fs.StringVarP(&opts.Input, "input", "i", opts.Input,
		`Itinerary file, one customer per line such as "2, 3, 5". "-" reads stdin.`)
	fs.StringVar(&opts.ConfigFile, "config-file", opts.ConfigFile,
		"Optional YAML file with simulation parameters.")
	fs.IntVar(&opts.MaxFloor, "max-floor", opts.MaxFloor,
		"Highest valid floor.")
	fs.IntVar(&opts.ElevatorCount, "elevators", opts.ElevatorCount,
		"Number of elevators, each driven by its own worker.")
	fs.DurationVar(&opts.MovePerFloorLatency, "move-latency", opts.MovePerFloorLatency,
		"Simulated time to travel one floor.")
	fs.DurationVar(&opts.DoorLatency, "door-latency", opts.DoorLatency,
		"Simulated time to open, and again to close, the doors.")
	fs.DurationVar(&opts.DwellMin, "dwell-min", opts.DwellMin,
		"Lower bound of the time a customer spends at a floor between rides.")
	fs.DurationVar(&opts.DwellMax, "dwell-max", opts.DwellMax,
		"Upper bound of the time a customer spends at a floor between rides.")
	fs.IntVarP(&opts.LogVerbosity, "v", "v", opts.LogVerbosity,
		"Number for the log level verbosity.")
	fs.IntVar(&opts.MetricsPort, "metrics-port", opts.MetricsPort,
		"The port serving Prometheus metrics while the simulation runs. 0 disables it.")
	fs.BoolVar(&opts.EnablePprof, "enable-pprof", opts.EnablePprof,
		"Enables pprof handlers on the metrics port.")

	// Bind zap flags (zap expects a standard Go FlagSet; pflag.FlagSet is not compatible).
	gofs := flag.NewFlagSet("zap", flag.ExitOnError)
	opts.ZapOptions.BindFlags(gofs)
	fs.AddGoFlagSet(gofs)
}

// Complete performs post-processing of parsed command-line arguments.
func (opts *Options) Complete() error {
	if opts.fs == nil {
		return nil
	}
	// Derive the zap log level from the -v flag when --zap-log-level is not set explicitly.
	zapLogLevelFlag := opts.fs.Lookup(ZapLogLevelFlagName)
	if zapLogLevelFlag != nil && !zapLogLevelFlag.Changed {
		opts.ZapOptions.Level = logging.LevelForVerbosity(opts.LogVerbosity)
		zapLogLevelFlag.Changed = true
	}
	return nil
}

// Validate checks the Options for invalid or conflicting values. The simulation parameters themselves are validated
// by config.NewConfig once every source has been merged.
func (opts *Options) Validate() error {
	if opts.Input == "" {
		return fmt.Errorf("invalid value for flag %q: must not be empty", "input")
	}
	if opts.MetricsPort < 0 || opts.MetricsPort > 65535 {
		return fmt.Errorf("invalid value %d for flag %q: must be between 0 and 65535", opts.MetricsPort, "metrics-port")
	}
	if opts.EnablePprof && opts.MetricsPort == 0 {
		return fmt.Errorf("flag %q requires %q to be set", "enable-pprof", "metrics-port")
	}
	if opts.LogVerbosity < 0 {
		return fmt.Errorf("invalid value %d for flag %q: must be >= 0", opts.LogVerbosity, "v")
	}
	return nil
}

func (opts *Options) changed(name string) bool {
	if opts.fs == nil {
		return false
	}
	f := opts.fs.Lookup(name)
	return f != nil && f.Changed
}

// ResolveInput returns the itinerary source: the --input flag if given, otherwise the environment, otherwise stdin.
func (opts *Options) ResolveInput(logger logr.Logger) string {
	if opts.changed("input") {
		return opts.Input
	}
	return env.GetEnvString(EnvInput, opts.Input, logger)
}

// ConfigOptions merges the config file, the environment and the explicitly set flags into config options, in
// increasing order of precedence.
func (opts *Options) ConfigOptions(logger logr.Logger) ([]config.ConfigOption, error) {
	var out []config.ConfigOption
	if opts.ConfigFile != "" {
		f, err := config.LoadFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		out = append(out, f.Options()...)
	}

	if !opts.changed("max-floor") {
		if v, ok := env.LookupInt(EnvMaxFloor, opts.MaxFloor, logger); ok {
			out = append(out, config.WithMaxFloor(v))
		}
	}
	if !opts.changed("elevators") {
		if v, ok := env.LookupInt(EnvElevatorCount, opts.ElevatorCount, logger); ok {
			out = append(out, config.WithElevatorCount(v))
		}
	}
	if !opts.changed("move-latency") {
		if v, ok := env.LookupDuration(EnvMovePerFloorLatency, opts.MovePerFloorLatency, logger); ok {
			out = append(out, config.WithMovePerFloorLatency(v))
		}
	}
	if !opts.changed("door-latency") {
		if v, ok := env.LookupDuration(EnvDoorLatency, opts.DoorLatency, logger); ok {
			out = append(out, config.WithDoorLatency(v))
		}
	}

	if opts.changed("max-floor") {
		out = append(out, config.WithMaxFloor(opts.MaxFloor))
	}
	if opts.changed("elevators") {
		out = append(out, config.WithElevatorCount(opts.ElevatorCount))
	}
	if opts.changed("move-latency") {
		out = append(out, config.WithMovePerFloorLatency(opts.MovePerFloorLatency))
	}
	if opts.changed("door-latency") {
		out = append(out, config.WithDoorLatency(opts.DoorLatency))
	}
	if opts.changed("dwell-min") || opts.changed("dwell-max") {
		minDwell, maxDwell := opts.DwellMin, opts.DwellMax
		out = append(out, func(c *config.Config) {
			if opts.changed("dwell-min") {
				c.DwellMin = minDwell
			}
			if opts.changed("dwell-max") {
				c.DwellMax = maxDwell
			}
		})
	}
	return out, nil
}
