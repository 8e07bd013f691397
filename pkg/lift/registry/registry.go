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
	"fmt"
	"slices"
	"sync"

	"github.com/go-logr/logr"

	logutil "github.com/liftsim/liftsim/pkg/common/observability/logging"
	"github.com/liftsim/liftsim/pkg/lift/dispatch"
)

// Registry is the shared, lock-guarded store of all customers of a simulation run.
// It is created by the orchestrator and handed to every elevator worker.
type Registry struct {
	logger logr.Logger

	mu sync.Mutex
	// cond is the wait signal. Its locker is mu.
	cond *sync.Cond
	// customers is stored in ID order; dispatch relies on this order for its tie-break.
	customers []*customer
	// active counts customers not in StateDone.
	active int
	// waiting counts customers in StateWaiting.
	waiting int

	// done is closed when active reaches zero.
	done chan struct{}
}

// New builds a registry holding one customer per itinerary, in order. A customer with an empty itinerary starts
// Done and does not count as active. The itineraries are copied.
func New(itineraries [][]int, logger logr.Logger) *Registry {
	r := &Registry{
		logger:    logger.WithName("registry"),
		customers: make([]*customer, 0, len(itineraries)),
		done:      make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)

	for i, itin := range itineraries {
		c := &customer{
			id:       CustomerID(i),
			schedule: slices.Clone(itin),
			state:    StateDone,
		}
		if len(itin) > 0 {
			c.state = StateWaiting
			r.active++
			r.waiting++
		}
		r.customers = append(r.customers, c)
	}
	if r.active == 0 {
		close(r.done)
	}
	r.logger.V(logutil.DEBUG).Info("Registry initialized", "customers", len(r.customers), "active", r.active)
	return r
}

// ClaimNearestWaiting selects the waiting customer closest to fromFloor and claims it for the caller. Ties go to
// the lowest customer ID. It returns false if no customer is waiting.
func (r *Registry) ClaimNearestWaiting(fromFloor int) (Claim, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.claimNearestLocked(fromFloor)
}

// AwaitClaim blocks until a customer can be claimed or the whole population is done. On success it returns the
// claim, exactly as ClaimNearestWaiting would. It returns false once no customer is active; from then on every
// call returns false immediately.
func (r *Registry) AwaitClaim(fromFloor int) (Claim, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		for r.active > 0 && r.waiting == 0 {
			r.cond.Wait()
		}
		if r.active == 0 {
			return Claim{}, false
		}
		if claim, ok := r.claimNearestLocked(fromFloor); ok {
			return claim, true
		}
		// The waiting count said otherwise. Resynchronize it so the inner loop blocks instead of spinning.
		counted := r.countWaitingLocked()
		r.logger.Error(nil, "Waiting count out of sync with customer states, recounting",
			"waiting", r.waiting, "counted", counted, "fromFloor", fromFloor)
		r.waiting = counted
	}
}

func (r *Registry) countWaitingLocked() int {
	n := 0
	for _, c := range r.customers {
		if c.state == StateWaiting {
			n++
		}
	}
	return n
}

func (r *Registry) claimNearestLocked(fromFloor int) (Claim, bool) {
	idx := dispatch.Nearest(r.customers, fromFloor, func(c *customer) (int, bool) {
		return c.floor, c.state == StateWaiting
	})
	if idx < 0 {
		return Claim{}, false
	}
	c := r.customers[idx]
	c.state = StateClaimed
	r.waiting--
	r.logger.V(logutil.TRACE).Info("Customer claimed", "customer", c.id, "floor", c.floor, "fromFloor", fromFloor)
	return Claim{Customer: c.id, Floor: c.floor}, true
}

// AdvanceSchedule pops the claimed customer's next destination. If the schedule is unexpectedly empty it returns
// the customer's current floor with ok set to false, so the caller can carry on with a no-op trip.
func (r *Registry) AdvanceSchedule(id CustomerID) (next int, ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.claimedLocked(id)
	if err != nil {
		return 0, false, err
	}
	dest, ok := c.pop()
	if !ok {
		return c.floor, false, nil
	}
	return dest, true, nil
}

// CompleteOrRequeue records that the claimed customer arrived at arrivedFloor. If no destinations remain the
// customer becomes Done, the active count drops by one and every waiter is woken; remaining reports the active
// count afterwards. Otherwise the customer stays Claimed until the caller hands it back with MarkWaiting.
func (r *Registry) CompleteOrRequeue(id CustomerID, arrivedFloor int) (done bool, remaining int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.claimedLocked(id)
	if err != nil {
		return false, r.active, err
	}
	c.floor = arrivedFloor
	if c.remaining() > 0 {
		return false, r.active, nil
	}

	c.state = StateDone
	r.active--
	r.logger.V(logutil.DEBUG).Info("Customer done", "customer", id, "floor", arrivedFloor, "active", r.active)
	if r.active == 0 {
		close(r.done)
	}
	r.cond.Broadcast()
	return true, r.active, nil
}

// MarkWaiting hands a claimed customer back to the waiting set at its current floor and wakes one idle elevator.
func (r *Registry) MarkWaiting(id CustomerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.claimedLocked(id)
	if err != nil {
		return err
	}
	c.state = StateWaiting
	r.waiting++
	r.cond.Signal()
	return nil
}

func (r *Registry) claimedLocked(id CustomerID) (*customer, error) {
	if id < 0 || int(id) >= len(r.customers) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCustomer, id)
	}
	c := r.customers[id]
	if c.state != StateClaimed {
		return nil, fmt.Errorf("%w: customer %d is %s", ErrNotClaimed, id, c.state)
	}
	return c, nil
}

// Done returns a channel that is closed once every customer is done.
func (r *Registry) Done() <-chan struct{} {
	return r.done
}

// Active returns the number of customers not yet done.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Waiting returns the number of customers currently eligible for a claim.
func (r *Registry) Waiting() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.waiting
}

// Len returns the number of customers, done or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.customers)
}

// Snapshot returns a copy of every customer record in ID order.
func (r *Registry) Snapshot() []CustomerStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CustomerStatus, len(r.customers))
	for i, c := range r.customers {
		out[i] = c.status()
	}
	return out
}
