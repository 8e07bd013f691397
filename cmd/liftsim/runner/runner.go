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
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/liftsim/liftsim/internal/runnable"
	logutil "github.com/liftsim/liftsim/pkg/common/observability/logging"
	"github.com/liftsim/liftsim/pkg/common/observability/profiling"
	"github.com/liftsim/liftsim/pkg/lift/config"
	"github.com/liftsim/liftsim/pkg/lift/itinerary"
	liftmetrics "github.com/liftsim/liftsim/pkg/lift/metrics"
	"github.com/liftsim/liftsim/pkg/lift/orchestrator"
	errutil "github.com/liftsim/liftsim/pkg/lift/util/error"
	"github.com/liftsim/liftsim/version"
)

var (
	// Logging
	setupLog = ctrl.Log.WithName("setup")
)

func NewRunner() *Runner {
	return &Runner{
		executableName: "liftsim",
		stdin:          os.Stdin,
	}
}

// Runner parses the command line and runs one simulation.
type Runner struct {
	executableName string
	stdin          io.Reader

	// result of the last successful Run.
	result orchestrator.Result
}

// WithExecutableName sets the name of the executable containing the runner.
// The name is used in the version log upon startup and is otherwise opaque.
func (r *Runner) WithExecutableName(exeName string) *Runner {
	r.executableName = exeName
	return r
}

// WithStdin sets the reader used when the input is "-".
func (r *Runner) WithStdin(stdin io.Reader) *Runner {
	r.stdin = stdin
	return r
}

// Result returns the outcome of the last successful Run.
func (r *Runner) Result() orchestrator.Result {
	return r.result
}

// Run parses args, reads the itineraries and runs the simulation to completion. Invalid flags, configuration or
// input abort the run before any elevator starts.
func (r *Runner) Run(ctx context.Context, args []string) error {
	setupLog.Info(r.executableName+" build", "commit-sha", version.CommitSHA, "build-ref", version.BuildRef)

	opts := NewOptions()
	fs := pflag.NewFlagSet(r.executableName, pflag.ContinueOnError)
	opts.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errutil.Errorf(errutil.BadConfiguration, "failed to parse flags: %v", err)
	}
	if err := opts.Complete(); err != nil {
		return errutil.Errorf(errutil.BadConfiguration, "%v", err)
	}
	if err := opts.Validate(); err != nil {
		setupLog.Error(err, "Invalid options")
		return errutil.Errorf(errutil.BadConfiguration, "%v", err)
	}
	logutil.InitLogging(&opts.ZapOptions)

	// Print all flag values
	flags := make(map[string]any)
	fs.VisitAll(func(f *pflag.Flag) {
		flags[f.Name] = f.Value
	})
	setupLog.Info("Flags processed", "flags", flags)

	cfgOpts, err := opts.ConfigOptions(setupLog.V(logutil.VERBOSE))
	if err != nil {
		setupLog.Error(err, "Failed to load configuration")
		return errutil.Errorf(errutil.BadConfiguration, "%v", err)
	}
	cfg, err := config.NewConfig(cfgOpts...)
	if err != nil {
		setupLog.Error(err, "Invalid configuration")
		return errutil.Errorf(errutil.BadConfiguration, "%v", err)
	}
	setupLog.Info("Configuration loaded", "config", cfg)

	input := opts.ResolveInput(setupLog.V(logutil.VERBOSE))
	itineraries, err := r.readItineraries(input, cfg.MaxFloor)
	if err != nil {
		setupLog.Error(err, "Failed to read itineraries", "input", input)
		return err
	}

	liftmetrics.Register()
	orch, err := orchestrator.New(itineraries, cfg,
		orchestrator.WithRecorder(liftmetrics.Recorder{}),
		orchestrator.WithTraceLogging(),
		orchestrator.WithLogger(ctrl.Log),
	)
	if err != nil {
		setupLog.Error(err, "Failed to set up simulation")
		return err
	}
	liftmetrics.SetActiveCustomers(orch.Registry().Active())

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(gctx)
	defer stopServing()

	if opts.MetricsPort > 0 {
		srv := &http.Server{Handler: r.metricsHandler(opts.EnablePprof)}
		g.Go(func() error {
			return runnable.HTTPServer("metrics", srv, opts.MetricsPort).Start(serveCtx)
		})
	}

	g.Go(func() error {
		defer stopServing()
		res, err := orch.Run(ctx)
		if err != nil {
			return err
		}
		r.result = res
		return nil
	})

	if err := g.Wait(); err != nil {
		setupLog.Error(err, "Simulation failed")
		return err
	}
	r.logSummary()
	return nil
}

func (r *Runner) readItineraries(input string, maxFloor int) ([][]int, error) {
	var in io.Reader = r.stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return nil, errutil.Errorf(errutil.BadInput, "failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}
	itineraries, err := itinerary.Parse(in, maxFloor)
	if err != nil {
		return nil, errutil.Errorf(errutil.BadInput, "%v", err)
	}
	return itineraries, nil
}

func (r *Runner) metricsHandler(enablePprof bool) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	if enablePprof {
		setupLog.Info("Setting pprof handlers")
		profiling.SetupPprofHandlers(mux)
	}
	return mux
}

func (r *Runner) logSummary() {
	logger := ctrl.Log.WithName("summary").WithValues("runID", r.result.RunID)
	for _, c := range r.result.Customers {
		logger.V(logutil.VERBOSE).Info("Customer", "customer", c.ID, "state", c.State.String(), "floor", c.Floor)
	}
	for _, e := range r.result.Elevators {
		logger.Info("Elevator", "elevator", e.ID, "floor", e.Floor, "legs", e.Legs, "state", e.State.String())
	}
	logger.Info(fmt.Sprintf("All %d customers finished", len(r.result.Customers)), "elapsed", r.result.Elapsed)
}
