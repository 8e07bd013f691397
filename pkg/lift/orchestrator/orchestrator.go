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

// Package orchestrator runs a whole simulation: it builds the customer registry from the parsed itineraries,
// starts one worker goroutine per elevator, blocks until every customer is done and joins the workers.
package orchestrator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"

	logutil "github.com/liftsim/liftsim/pkg/common/observability/logging"
	"github.com/liftsim/liftsim/pkg/lift/config"
	"github.com/liftsim/liftsim/pkg/lift/dwell"
	"github.com/liftsim/liftsim/pkg/lift/elevator"
	"github.com/liftsim/liftsim/pkg/lift/itinerary"
	"github.com/liftsim/liftsim/pkg/lift/registry"
	"github.com/liftsim/liftsim/pkg/lift/trace"
	errutil "github.com/liftsim/liftsim/pkg/lift/util/error"
)

// Orchestrator owns the shared registry and the elevator fleet of one simulation run.
type Orchestrator struct {
	runID     string
	cfg       *config.Config
	clock     clock.Clock
	registry  *registry.Registry
	elevators []*elevator.Elevator
	logger    logr.Logger

	started atomic.Bool
}

// Option customizes an Orchestrator.
type Option func(*options)

type options struct {
	clock    clock.Clock
	dweller  dwell.Dweller
	recorder trace.Recorder
	logger   logr.Logger
	runID    string
	logTrace bool
}

// WithClock sets the clock all simulated latencies are spent on. Defaults to the real clock.
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

// WithDweller replaces the uniformly distributed dwell time configured in Config.
func WithDweller(d dwell.Dweller) Option {
	return func(o *options) { o.dweller = d }
}

// WithRecorder sets where the workers' trace goes. Defaults to trace.Discard.
func WithRecorder(r trace.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithLogger sets the logger. Defaults to the logger of the controller-runtime log package.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTraceLogging additionally writes the workers' trace through the run's logger, tagged with the run ID.
func WithTraceLogging() Option {
	return func(o *options) { o.logTrace = true }
}

// WithRunID sets the identifier attached to every log line of the run. Defaults to a random UUID.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// New validates the itineraries against cfg and prepares, but does not start, a simulation run. An invalid
// itinerary fails the whole run before any worker exists.
func New(itineraries [][]int, cfg *config.Config, opts ...Option) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errutil.Error{Code: errutil.BadConfiguration, Msg: "config is required"}
	}
	if err := itinerary.Validate(itineraries, cfg.MaxFloor); err != nil {
		return nil, errutil.Errorf(errutil.BadInput, "invalid itineraries: %v", err)
	}

	o := options{
		clock:    clock.RealClock{},
		recorder: trace.Discard,
		logger:   log.Log,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	if o.dweller == nil {
		o.dweller = dwell.NewUniform(cfg.DwellMin, cfg.DwellMax, o.clock, nil)
	}

	logger := o.logger.WithName("orchestrator").WithValues("runID", o.runID)
	reg := registry.New(itineraries, logger)
	if o.logTrace {
		o.recorder = trace.Multi(trace.NewLogRecorder(logger), o.recorder)
	}

	elevators := make([]*elevator.Elevator, 0, cfg.ElevatorCount)
	for i := range cfg.ElevatorCount {
		elevators = append(elevators, elevator.New(i, reg, cfg, o.clock, o.dweller, o.recorder, logger))
	}

	return &Orchestrator{
		runID:     o.runID,
		cfg:       cfg,
		clock:     o.clock,
		registry:  reg,
		elevators: elevators,
		logger:    logger,
	}, nil
}

// RunID returns the identifier of this run.
func (o *Orchestrator) RunID() string { return o.runID }

// Registry returns the shared customer registry.
func (o *Orchestrator) Registry() *registry.Registry { return o.registry }

// Elevators returns the elevator fleet.
func (o *Orchestrator) Elevators() []*elevator.Elevator { return o.elevators }

// ElevatorStatus summarizes one elevator after the run.
type ElevatorStatus struct {
	ID    int
	Floor int
	Legs  int
	State elevator.State
}

// Result summarizes a finished run.
type Result struct {
	RunID     string
	Customers []registry.CustomerStatus
	Elevators []ElevatorStatus
	Elapsed   time.Duration
}

// Run starts every elevator worker, blocks until every customer is done and all workers have exited, and reports
// the final state. There is no mid-run cancellation. Run may be called only once.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	if !o.started.CompareAndSwap(false, true) {
		return Result{}, errutil.Error{Code: errutil.Internal, Msg: "simulation already started"}
	}
	start := o.clock.Now()
	ctx = log.IntoContext(ctx, o.logger)
	o.logger.Info("Simulation starting",
		"customers", o.registry.Len(), "active", o.registry.Active(), "elevators", len(o.elevators))

	var wg sync.WaitGroup
	for _, e := range o.elevators {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Run(ctx)
		}()
	}

	// Workers observe termination on their own through the registry's broadcast; this only decides when to join.
	<-o.registry.Done()
	o.logger.V(logutil.DEBUG).Info("All customers done, joining elevators")
	wg.Wait()

	res := Result{
		RunID:     o.runID,
		Customers: o.registry.Snapshot(),
		Elapsed:   o.clock.Since(start),
	}
	for _, e := range o.elevators {
		res.Elevators = append(res.Elevators, ElevatorStatus{ID: e.ID(), Floor: e.Floor(), Legs: e.Legs(), State: e.State()})
	}
	o.logger.Info("All customers finished", "elapsed", res.Elapsed)
	return res, nil
}
