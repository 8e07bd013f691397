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

// Package elevator implements the elevator worker: one goroutine per elevator that repeatedly claims the nearest
// waiting customer, carries it to its next destination and hands it back to the registry, until every customer is
// done.
//
// # State Machine
//
//	AwaitingWork -> TravelToPickup -> PickupDoorCycle -> TravelToDropoff -> DropoffDoorCycle -> Reconcile
//	     ^                                                                                          |
//	     `------------------------------------------------------------------------------------------'
//	AwaitingWork -> Terminated (once no customer is active)
//
// A worker only ever blocks in AwaitingWork. Travel, door cycles and the customer's dwell time are simulated with
// sleeps on an injected clock and never run under the registry lock, so elevators move independently of each other.
// Termination is observed at the top of the loop only; a leg that has started always runs to completion.
package elevator
