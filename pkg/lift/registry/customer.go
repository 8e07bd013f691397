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

package registry

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownCustomer indicates that a customer ID does not belong to the registry.
	ErrUnknownCustomer = errors.New("unknown customer")

	// ErrNotClaimed indicates an operation that requires the caller to hold the customer's claim was attempted on a
	// customer in another state.
	ErrNotClaimed = errors.New("customer is not claimed")
)

// CustomerID identifies a customer. IDs are assigned densely from 0 in input order.
type CustomerID int

// State is the lifecycle state of a customer.
type State int

const (
	// StateWaiting means the customer stands at its current floor and may be claimed.
	StateWaiting State = iota
	// StateClaimed means exactly one elevator is serving the customer.
	StateClaimed
	// StateDone means the customer has visited every destination and left the building.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "Waiting"
	case StateClaimed:
		return "Claimed"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// customer is the registry's record of one customer. All fields are guarded by Registry.mu.
type customer struct {
	id    CustomerID
	floor int
	state State

	// schedule is never shifted; next is the cursor to the front destination.
	schedule []int
	next     int
}

func (c *customer) remaining() int {
	return len(c.schedule) - c.next
}

func (c *customer) pop() (int, bool) {
	if c.remaining() == 0 {
		return 0, false
	}
	dest := c.schedule[c.next]
	c.next++
	return dest, true
}

// Claim is the result of a successful claim: the customer now served exclusively by the caller and the floor
// it is waiting on.
type Claim struct {
	Customer CustomerID
	Floor    int
}

// CustomerStatus is a point-in-time copy of a customer record.
type CustomerStatus struct {
	ID    CustomerID
	State State
	Floor int
	// Remaining lists the destinations not yet visited, front first.
	Remaining []int
}

func (c *customer) status() CustomerStatus {
	return CustomerStatus{
		ID:        c.id,
		State:     c.state,
		Floor:     c.floor,
		Remaining: slices.Clone(c.schedule[c.next:]),
	}
}
