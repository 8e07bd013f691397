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

package elevator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	logutil "github.com/liftsim/liftsim/pkg/common/observability/logging"
	"github.com/liftsim/liftsim/pkg/lift/config"
	"github.com/liftsim/liftsim/pkg/lift/dwell"
	"github.com/liftsim/liftsim/pkg/lift/registry"
	"github.com/liftsim/liftsim/pkg/lift/trace"
)

// State is the state of an elevator worker.
type State int32

const (
	StateIdle State = iota
	StateAwaitingWork
	StateTravelToPickup
	StatePickupDoorCycle
	StateTravelToDropoff
	StateDropoffDoorCycle
	StateReconcile
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingWork:
		return "AwaitingWork"
	case StateTravelToPickup:
		return "TravelToPickup"
	case StatePickupDoorCycle:
		return "PickupDoorCycle"
	case StateTravelToDropoff:
		return "TravelToDropoff"
	case StateDropoffDoorCycle:
		return "DropoffDoorCycle"
	case StateReconcile:
		return "Reconcile"
	case StateTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// CustomerRegistry is the part of the shared registry an elevator worker uses. *registry.Registry implements it.
type CustomerRegistry interface {
	AwaitClaim(fromFloor int) (registry.Claim, bool)
	AdvanceSchedule(id registry.CustomerID) (next int, ok bool, err error)
	CompleteOrRequeue(id registry.CustomerID, arrivedFloor int) (done bool, remaining int, err error)
	MarkWaiting(id registry.CustomerID) error
}

var _ CustomerRegistry = (*registry.Registry)(nil)

// Elevator is a single elevator and the worker driving it.
type Elevator struct {
	id       int
	registry CustomerRegistry
	cfg      *config.Config
	clock    clock.Clock
	dweller  dwell.Dweller
	recorder trace.Recorder
	logger   logr.Logger

	// floor is written only by the Run goroutine. It is atomic so that Floor may be read from other goroutines.
	floor atomic.Int64
	state atomic.Int32
	legs  atomic.Int64
}

// New creates an elevator standing at floor 0. Nil dweller and recorder default to dwell.None and trace.Discard.
func New(
	id int,
	reg CustomerRegistry,
	cfg *config.Config,
	clk clock.Clock,
	dweller dwell.Dweller,
	recorder trace.Recorder,
	logger logr.Logger,
) *Elevator {
	if dweller == nil {
		dweller = dwell.None
	}
	if recorder == nil {
		recorder = trace.Discard
	}
	return &Elevator{
		id:       id,
		registry: reg,
		cfg:      cfg,
		clock:    clk,
		dweller:  dweller,
		recorder: recorder,
		logger:   logger.WithName("elevator").WithValues("elevator", id),
	}
}

// ID returns the elevator's identifier.
func (e *Elevator) ID() int { return e.id }

// Floor returns the floor the elevator currently stands on.
func (e *Elevator) Floor() int { return int(e.floor.Load()) }

// State returns the current state of the worker.
func (e *Elevator) State() State { return State(e.state.Load()) }

// Legs returns the number of legs (pickup to drop-off) this elevator has completed.
func (e *Elevator) Legs() int { return int(e.legs.Load()) }

func (e *Elevator) setState(s State) {
	old := State(e.state.Swap(int32(s)))
	if old != s {
		e.logger.V(logutil.TRACE).Info("State transition", "from", old, "to", s)
	}
}

func (e *Elevator) record(t trace.EventType, customer registry.CustomerID) {
	e.recorder.Record(trace.Event{Type: t, Elevator: e.id, Customer: customer, Floor: e.Floor()})
}

// Run is the worker loop. It must be run as a goroutine and returns once every customer is done. The context only
// carries values such as the logger; the loop cannot be cancelled mid-leg.
func (e *Elevator) Run(ctx context.Context) {
	if ctxLogger, err := logr.FromContext(ctx); err == nil {
		e.logger = ctxLogger.WithName("elevator").WithValues("elevator", e.id)
	}
	e.logger.V(logutil.DEBUG).Info("Elevator worker starting", "floor", e.Floor())
	e.record(trace.EventStart, trace.NoCustomer)

	for {
		e.setState(StateAwaitingWork)
		claim, ok := e.registry.AwaitClaim(e.Floor())
		if !ok {
			e.setState(StateTerminated)
			e.record(trace.EventShutdown, trace.NoCustomer)
			e.logger.V(logutil.DEBUG).Info("Elevator worker terminated", "floor", e.Floor(), "legs", e.Legs())
			return
		}
		e.record(trace.EventClaim, claim.Customer)
		if err := e.serve(claim); err != nil {
			// The claim was lost under us. Nothing was applied, so the worker just goes back to waiting.
			e.logger.Error(err, "Abandoning leg", "customer", claim.Customer)
		}
	}
}

// serve carries a claimed customer through one leg.
func (e *Elevator) serve(claim registry.Claim) error {
	logger := e.logger.WithValues("customer", claim.Customer)

	e.setState(StateTravelToPickup)
	e.travelTo(claim.Floor, claim.Customer)

	e.setState(StatePickupDoorCycle)
	e.doorCycle(claim.Customer)

	dest, ok, err := e.registry.AdvanceSchedule(claim.Customer)
	if err != nil {
		return fmt.Errorf("failed to advance schedule: %w", err)
	}
	if !ok {
		// Should never occur: a claimed customer always has a destination left. Keep the simulation live with a
		// no-op trip to the current floor.
		logger.Error(errors.New("empty schedule"), "Claimed customer has no destination left", "floor", dest)
		e.record(trace.EventFallback, claim.Customer)
	}
	e.recorder.Record(trace.Event{Type: trace.EventBoard, Elevator: e.id, Customer: claim.Customer, Floor: e.Floor(), Target: dest})

	e.setState(StateTravelToDropoff)
	e.travelTo(dest, claim.Customer)

	e.setState(StateDropoffDoorCycle)
	e.doorCycle(claim.Customer)
	e.record(trace.EventDropOff, claim.Customer)
	e.legs.Add(1)

	e.setState(StateReconcile)
	done, remaining, err := e.registry.CompleteOrRequeue(claim.Customer, e.Floor())
	if err != nil {
		return fmt.Errorf("failed to reconcile drop-off: %w", err)
	}
	if done {
		e.recorder.Record(trace.Event{Type: trace.EventComplete, Elevator: e.id, Customer: claim.Customer, Floor: e.Floor(), Target: remaining})
		return nil
	}

	e.dweller.Dwell(claim.Customer, e.Floor())
	// Recorded first: once MarkWaiting returns, another elevator may already have claimed the customer.
	e.record(trace.EventRequeue, claim.Customer)
	if err := e.registry.MarkWaiting(claim.Customer); err != nil {
		return fmt.Errorf("failed to requeue customer: %w", err)
	}
	return nil
}
