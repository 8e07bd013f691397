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

// Package config holds the fixed parameters of a simulation run: building height, fleet size and the
// simulated latencies of physical elevator operations.
package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

const (
	// DefaultMaxFloor is the highest valid floor.
	DefaultMaxFloor = 20
	// DefaultElevatorCount is the default fleet size.
	DefaultElevatorCount = 2
	// DefaultMovePerFloorLatency is the simulated time to travel one floor.
	DefaultMovePerFloorLatency = 80 * time.Millisecond
	// DefaultDoorLatency is the simulated time to open, and again to close, the doors.
	DefaultDoorLatency = 60 * time.Millisecond
	// DefaultDwellMin and DefaultDwellMax bound the time a customer spends at a floor between rides.
	DefaultDwellMin = 50 * time.Millisecond
	DefaultDwellMax = 200 * time.Millisecond
)

// Config holds the configuration for a simulation run.
// None of these values influence the dispatch decision; they only parameterize timing and fleet size.
type Config struct {
	// MaxFloor is the valid floor ceiling. Floors are in [0, MaxFloor].
	MaxFloor int

	// ElevatorCount is the number of elevator workers. Each runs in its own goroutine.
	ElevatorCount int

	// MovePerFloorLatency is the cost of moving one floor up or down.
	MovePerFloorLatency time.Duration

	// DoorLatency is applied twice per door cycle: once to open and once to close.
	DoorLatency time.Duration

	// DwellMin and DwellMax bound the uniformly distributed dwell time of a customer between legs.
	DwellMin time.Duration
	DwellMax time.Duration
}

// ConfigOption is a functional option for configuring a simulation run.
type ConfigOption func(*Config)

// NewConfig creates a new Config with the given options, applying defaults and validation.
func NewConfig(opts ...ConfigOption) (*Config, error) {
	c := &Config{
		MaxFloor:            DefaultMaxFloor,
		ElevatorCount:       DefaultElevatorCount,
		MovePerFloorLatency: DefaultMovePerFloorLatency,
		DoorLatency:         DefaultDoorLatency,
		DwellMin:            DefaultDwellMin,
		DwellMax:            DefaultDwellMax,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// WithMaxFloor sets the valid floor ceiling.
func WithMaxFloor(floor int) ConfigOption {
	return func(c *Config) {
		c.MaxFloor = floor
	}
}

// WithElevatorCount sets the fleet size.
func WithElevatorCount(n int) ConfigOption {
	return func(c *Config) {
		c.ElevatorCount = n
	}
}

// WithMovePerFloorLatency sets the per-floor travel latency.
func WithMovePerFloorLatency(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.MovePerFloorLatency = d
	}
}

// WithDoorLatency sets the door open and door close latency.
func WithDoorLatency(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.DoorLatency = d
	}
}

// WithDwellRange sets the bounds of the customer dwell time.
func WithDwellRange(minDwell, maxDwell time.Duration) ConfigOption {
	return func(c *Config) {
		c.DwellMin = minDwell
		c.DwellMax = maxDwell
	}
}

// validate checks the configuration for validity. All violations are reported together.
func (c *Config) validate() error {
	var errs error
	if c.MaxFloor < 0 {
		errs = multierr.Append(errs, fmt.Errorf("MaxFloor cannot be negative, but got %d", c.MaxFloor))
	}
	if c.ElevatorCount <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("ElevatorCount must be positive, but got %d", c.ElevatorCount))
	}
	if c.MovePerFloorLatency < 0 {
		errs = multierr.Append(errs, fmt.Errorf("MovePerFloorLatency cannot be negative, but got %v", c.MovePerFloorLatency))
	}
	if c.DoorLatency < 0 {
		errs = multierr.Append(errs, fmt.Errorf("DoorLatency cannot be negative, but got %v", c.DoorLatency))
	}
	if c.DwellMin < 0 {
		errs = multierr.Append(errs, fmt.Errorf("DwellMin cannot be negative, but got %v", c.DwellMin))
	}
	if c.DwellMax < c.DwellMin {
		errs = multierr.Append(errs, fmt.Errorf("DwellMax (%v) cannot be less than DwellMin (%v)", c.DwellMax, c.DwellMin))
	}
	return errs
}

// DeepCopy returns a copy of the Config that shares no state with the receiver.
func (c *Config) DeepCopy() *Config {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
