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

// Package dispatch selects which waiting customer an idle elevator serves next.
//
// The policy is a greedy nearest-floor heuristic: no lookahead, no batching and no direction preference.
// An elevator reverses direction if the nearest waiting customer is behind it. Far customers may wait
// arbitrarily long while nearer ones keep arriving; every customer is still served eventually because
// the population is finite and never grows.
package dispatch

// FloorFunc reports the floor of an item and whether it may be selected at all.
type FloorFunc[T any] func(item T) (floor int, eligible bool)

// Nearest returns the index of the eligible item whose floor is closest to fromFloor, or -1 if no item is
// eligible. Items are scanned in slice order and only a strictly smaller distance replaces the current
// best, so among equidistant items the one with the lowest index wins. Callers that store customers in ID
// order therefore get a lowest-ID tie-break.
func Nearest[T any](items []T, fromFloor int, floorOf FloorFunc[T]) int {
	best := -1
	bestDist := 0
	for i, item := range items {
		floor, eligible := floorOf(item)
		if !eligible {
			continue
		}
		d := Distance(floor, fromFloor)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Distance is the number of floors between a and b.
func Distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
