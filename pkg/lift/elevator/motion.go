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
	"github.com/liftsim/liftsim/pkg/lift/registry"
	"github.com/liftsim/liftsim/pkg/lift/trace"
)

// moveOneFloor spends one MovePerFloorLatency and then steps one floor toward target. It does nothing if the
// elevator is already at target.
func (e *Elevator) moveOneFloor(target int, customer registry.CustomerID) {
	from := e.Floor()
	if from == target {
		return
	}
	e.clock.Sleep(e.cfg.MovePerFloorLatency)
	to := from + 1
	if target < from {
		to = from - 1
	}
	e.floor.Store(int64(to))
	e.recorder.Record(trace.Event{Type: trace.EventMove, Elevator: e.id, Customer: customer, Floor: to, From: from, Target: target})
}

// travelTo moves floor by floor until the elevator stands at target.
func (e *Elevator) travelTo(target int, customer registry.CustomerID) {
	for e.Floor() != target {
		e.moveOneFloor(target, customer)
	}
}

// doorCycle opens and then closes the doors, spending DoorLatency on each.
func (e *Elevator) doorCycle(customer registry.CustomerID) {
	e.record(trace.EventDoorOpen, customer)
	e.clock.Sleep(e.cfg.DoorLatency)
	e.record(trace.EventDoorClose, customer)
	e.clock.Sleep(e.cfg.DoorLatency)
}
