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

// Package dwell models the time a customer spends at a floor between two elevator rides.
package dwell

import (
	"math/rand/v2"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/liftsim/liftsim/pkg/lift/registry"
)

// Dweller blocks for as long as a customer is busy at a floor. It is called by elevator workers without holding
// the registry lock, from several goroutines at once.
type Dweller interface {
	Dwell(customer registry.CustomerID, floor int)
}

// Uniform sleeps for a duration drawn uniformly from [min, max].
type Uniform struct {
	clock    clock.Clock
	min, max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniform returns a Uniform dweller sleeping on clk. If rng is nil a randomly seeded generator is used.
func NewUniform(minDwell, maxDwell time.Duration, clk clock.Clock, rng *rand.Rand) *Uniform {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if maxDwell < minDwell {
		maxDwell = minDwell
	}
	return &Uniform{clock: clk, min: minDwell, max: maxDwell, rng: rng}
}

// Dwell implements Dweller.
func (u *Uniform) Dwell(registry.CustomerID, int) {
	u.clock.Sleep(u.Next())
}

// Next draws the next dwell duration without sleeping.
func (u *Uniform) Next() time.Duration {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.min + time.Duration(u.rng.Int64N(int64(u.max-u.min)+1))
}

// Fixed sleeps for the same duration every time.
type Fixed struct {
	Clock    clock.Clock
	Duration time.Duration
}

// Dwell implements Dweller.
func (f Fixed) Dwell(registry.CustomerID, int) {
	f.Clock.Sleep(f.Duration)
}

// Func adapts a function to the Dweller interface.
type Func func(customer registry.CustomerID, floor int)

// Dwell calls f(customer, floor).
func (f Func) Dwell(customer registry.CustomerID, floor int) { f(customer, floor) }

// None returns immediately.
var None Dweller = Func(func(registry.CustomerID, int) {})
