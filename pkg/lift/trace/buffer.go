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
	"slices"
	"sync"
)

// Buffer is a Recorder that keeps every event in memory, in the order they were recorded.
type Buffer struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Recorder.
func (b *Buffer) Record(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

// Events returns a copy of the recorded events.
func (b *Buffer) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.events)
}

// Filter returns the recorded events for which keep returns true.
func (b *Buffer) Filter(keep func(Event) bool) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Event
	for _, e := range b.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// OfType returns the recorded events of the given types.
func (b *Buffer) OfType(types ...EventType) []Event {
	return b.Filter(func(e Event) bool { return slices.Contains(types, e.Type) })
}

// ForElevator returns the events recorded by one elevator.
func (b *Buffer) ForElevator(id int) []Event {
	return b.Filter(func(e Event) bool { return e.Elevator == id })
}
