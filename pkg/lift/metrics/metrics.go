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

package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/liftsim/liftsim/pkg/lift/trace"
)

const (
	LiftSimComponent = "liftsim"
)

var (
	ElevatorLabels = []string{"elevator"}
)

var (
	floorsTraveled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: LiftSimComponent,
			Name:      "floors_traveled_total",
			Help:      "Counter of single-floor steps broken out for each elevator.",
		},
		ElevatorLabels,
	)

	doorCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: LiftSimComponent,
			Name:      "door_cycles_total",
			Help:      "Counter of door open/close cycles broken out for each elevator.",
		},
		ElevatorLabels,
	)

	pickups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: LiftSimComponent,
			Name:      "pickups_total",
			Help:      "Counter of customers boarded broken out for each elevator.",
		},
		ElevatorLabels,
	)

	dropOffs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: LiftSimComponent,
			Name:      "dropoffs_total",
			Help:      "Counter of customers dropped off broken out for each elevator.",
		},
		ElevatorLabels,
	)

	customersCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: LiftSimComponent,
			Name:      "customers_completed_total",
			Help:      "Counter of customers that visited their last destination.",
		},
	)

	activeCustomers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: LiftSimComponent,
			Name:      "active_customers",
			Help:      "Number of customers not yet done.",
		},
	)

	scheduleFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: LiftSimComponent,
			Name:      "schedule_fallbacks_total",
			Help:      "Counter of claimed customers found without a destination. Expected to stay at zero.",
		},
	)
)

var registerMetrics sync.Once

// Register all metrics.
func Register(customCollectors ...prometheus.Collector) {
	registerMetrics.Do(func() {
		metrics.Registry.MustRegister(floorsTraveled)
		metrics.Registry.MustRegister(doorCycles)
		metrics.Registry.MustRegister(pickups)
		metrics.Registry.MustRegister(dropOffs)
		metrics.Registry.MustRegister(customersCompleted)
		metrics.Registry.MustRegister(activeCustomers)
		metrics.Registry.MustRegister(scheduleFallbacks)
		for _, collector := range customCollectors {
			metrics.Registry.MustRegister(collector)
		}
	})
}

// Reset resets the per-elevator metrics and the active gauge. Unlabeled counters only ever grow; tests compare
// their deltas.
func Reset() {
	floorsTraveled.Reset()
	doorCycles.Reset()
	pickups.Reset()
	dropOffs.Reset()
	activeCustomers.Set(0)
}

// SetActiveCustomers records the number of customers not yet done.
func SetActiveCustomers(n int) {
	activeCustomers.Set(float64(n))
}

// Recorder is a trace.Recorder that turns trace events into metric updates.
type Recorder struct{}

var _ trace.Recorder = Recorder{}

// Record implements trace.Recorder.
func (Recorder) Record(e trace.Event) {
	elevator := strconv.Itoa(e.Elevator)
	switch e.Type {
	case trace.EventMove:
		floorsTraveled.WithLabelValues(elevator).Inc()
	case trace.EventDoorOpen:
		doorCycles.WithLabelValues(elevator).Inc()
	case trace.EventBoard:
		pickups.WithLabelValues(elevator).Inc()
	case trace.EventDropOff:
		dropOffs.WithLabelValues(elevator).Inc()
	case trace.EventComplete:
		// Completions may be recorded out of order, so the gauge counts down from SetActiveCustomers instead of
		// copying the active count carried by the event.
		customersCompleted.Inc()
		activeCustomers.Dec()
	case trace.EventFallback:
		scheduleFallbacks.Inc()
	}
}
