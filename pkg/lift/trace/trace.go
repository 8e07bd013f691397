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

// Package trace records the transitions of the elevator state machine.
//
// The trace is append-only and best effort. Workers hand every event to a Recorder and never depend on what the
// recorder does with it; the log recorder writes it through logr, the metrics package counts it, and tests keep it
// in memory to assert on ordering.
package trace

import (
	"fmt"

	"github.com/liftsim/liftsim/pkg/lift/registry"
)

// EventType names a transition of an elevator worker.
type EventType string

const (
	// EventStart is emitted once when a worker begins its loop.
	EventStart EventType = "Start"
	// EventClaim is emitted when a worker wins the claim on a waiting customer.
	EventClaim EventType = "Claim"
	// EventMove is emitted after each single-floor step.
	EventMove EventType = "Move"
	// EventDoorOpen and EventDoorClose bracket every door cycle.
	EventDoorOpen  EventType = "DoorOpen"
	EventDoorClose EventType = "DoorClose"
	// EventBoard is emitted once the claimed customer is aboard and its next destination is known.
	EventBoard EventType = "Board"
	// EventDropOff is emitted after the drop-off door cycle, before reconciliation.
	EventDropOff EventType = "DropOff"
	// EventRequeue is emitted when a customer with destinations left rejoins the waiting set.
	EventRequeue EventType = "Requeue"
	// EventComplete is emitted when a customer visits its last destination.
	EventComplete EventType = "Complete"
	// EventFallback is emitted when a claimed customer unexpectedly had no destination left. It should never occur.
	EventFallback EventType = "Fallback"
	// EventShutdown is emitted once when a worker observes that every customer is done.
	EventShutdown EventType = "Shutdown"
)

// NoCustomer marks events that do not concern a customer.
const NoCustomer registry.CustomerID = -1

// Event is one entry of the trace.
type Event struct {
	Type     EventType
	Elevator int
	Customer registry.CustomerID
	// Floor is the elevator's floor when the event happened. For a Move it is the floor just reached.
	Floor int
	// From is the floor a Move left. Zero otherwise.
	From int
	// Target is the destination of a Move or Board, and the active count after a Complete. Zero otherwise.
	Target int
}

func (e Event) String() string {
	if e.Customer == NoCustomer {
		return fmt.Sprintf("[Elev %d] %s at F%d", e.Elevator, e.Type, e.Floor)
	}
	return fmt.Sprintf("[Elev %d] %s C%d at F%d", e.Elevator, e.Type, e.Customer, e.Floor)
}

// Recorder receives trace events. Implementations must be safe for concurrent use, since every elevator worker
// records from its own goroutine.
type Recorder interface {
	Record(Event)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Event)

// Record calls f(e).
func (f RecorderFunc) Record(e Event) { f(e) }

type multiRecorder []Recorder

// Multi returns a Recorder that hands every event to each of recorders, in order. Nil recorders are skipped.
func Multi(recorders ...Recorder) Recorder {
	out := make(multiRecorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multiRecorder) Record(e Event) {
	for _, r := range m {
		r.Record(e)
	}
}

// Discard is a Recorder that drops every event.
var Discard Recorder = RecorderFunc(func(Event) {})
