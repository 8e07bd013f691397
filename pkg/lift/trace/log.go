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

package trace

import (
	"github.com/go-logr/logr"

	logutil "github.com/liftsim/liftsim/pkg/common/observability/logging"
)

// LogRecorder writes the trace through a logr.Logger. Floor-by-floor movement and door events are logged at
// VERBOSE, every other transition at DEFAULT, and fallbacks as errors.
type LogRecorder struct {
	logger logr.Logger
}

// NewLogRecorder returns a LogRecorder writing to logger.
func NewLogRecorder(logger logr.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.WithName("trace")}
}

// Record implements Recorder.
func (r *LogRecorder) Record(e Event) {
	logger := r.logger.WithValues("elevator", e.Elevator, "floor", e.Floor)
	if e.Customer != NoCustomer {
		logger = logger.WithValues("customer", e.Customer)
	}

	switch e.Type {
	case EventMove:
		direction := "up"
		if e.Floor < e.From {
			direction = "down"
		}
		logger.V(logutil.VERBOSE).Info("Moved one floor", "direction", direction, "target", e.Target)
	case EventDoorOpen:
		logger.V(logutil.VERBOSE).Info("Doors opening")
	case EventDoorClose:
		logger.V(logutil.VERBOSE).Info("Doors closing")
	case EventClaim:
		logger.V(logutil.DEFAULT).Info("Claimed customer")
	case EventBoard:
		logger.V(logutil.DEFAULT).Info("Customer boarded", "destination", e.Target)
	case EventDropOff:
		logger.V(logutil.DEFAULT).Info("Customer dropped off")
	case EventRequeue:
		logger.V(logutil.DEFAULT).Info("Customer waiting again")
	case EventComplete:
		logger.V(logutil.DEFAULT).Info("Customer finished", "remainingCustomers", e.Target)
	case EventFallback:
		logger.Error(nil, "Claimed customer had no destination left, staying at the current floor")
	case EventStart:
		logger.V(logutil.DEFAULT).Info("Elevator started")
	case EventShutdown:
		logger.V(logutil.DEFAULT).Info("Elevator shutting down")
	default:
		logger.V(logutil.DEBUG).Info("Unknown trace event", "type", e.Type)
	}
}
