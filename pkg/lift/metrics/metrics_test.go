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
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/liftsim/liftsim/pkg/lift/trace"
)

func TestRecorder(t *testing.T) {
	Register()
	Reset()
	completedBefore := testutil.ToFloat64(customersCompleted)
	fallbacksBefore := testutil.ToFloat64(scheduleFallbacks)

	SetActiveCustomers(4)
	r := Recorder{}
	events := []trace.Event{
		{Type: trace.EventStart, Elevator: 0},
		{Type: trace.EventMove, Elevator: 0, From: 0, Floor: 1, Target: 2},
		{Type: trace.EventMove, Elevator: 0, From: 1, Floor: 2, Target: 2},
		{Type: trace.EventDoorOpen, Elevator: 0},
		{Type: trace.EventDoorClose, Elevator: 0},
		{Type: trace.EventBoard, Elevator: 0, Target: 4},
		{Type: trace.EventMove, Elevator: 1, From: 5, Floor: 4, Target: 4},
		{Type: trace.EventDoorOpen, Elevator: 1},
		{Type: trace.EventDropOff, Elevator: 1},
		{Type: trace.EventFallback, Elevator: 1},
		{Type: trace.EventComplete, Elevator: 1, Target: 3},
	}
	for _, e := range events {
		r.Record(e)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(floorsTraveled.WithLabelValues("0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(floorsTraveled.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(doorCycles.WithLabelValues("0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(doorCycles.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pickups.WithLabelValues("0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(dropOffs.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(customersCompleted)-completedBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(scheduleFallbacks)-fallbacksBefore)
	assert.Equal(t, 3.0, testutil.ToFloat64(activeCustomers))
}

func TestRecorder_ActiveGaugeIgnoresCompletionOrder(t *testing.T) {
	Register()
	Reset()
	SetActiveCustomers(2)

	// The completion that left one customer active is recorded after the one that left none.
	r := Recorder{}
	r.Record(trace.Event{Type: trace.EventComplete, Elevator: 1, Customer: 1, Target: 0})
	r.Record(trace.Event{Type: trace.EventComplete, Elevator: 0, Customer: 0, Target: 1})

	assert.Equal(t, 0.0, testutil.ToFloat64(activeCustomers))
}

func TestSetActiveCustomers(t *testing.T) {
	Register()
	Reset()

	SetActiveCustomers(12)
	assert.Equal(t, 12.0, testutil.ToFloat64(activeCustomers))
}
