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

// Package registry holds the shared state of a simulation run: every customer record and the number of
// customers that are not yet done.
//
// # Concurrency Model
//
// A single `sync.Mutex` guards all customer fields and the active count. Every exported method acquires it
// for its whole duration, so each claim, schedule advance, drop-off reconciliation and requeue is applied
// atomically and is never left partially visible across a suspension point. Callers never hold the lock
// themselves and never sleep under it.
//
// The wait signal is a `sync.Cond` over the same mutex. Idle elevator workers block on it in `AwaitClaim`
// and re-evaluate their wake predicate (a customer is waiting, or nobody is active) after every wake, which
// covers spurious wakeups and claims lost to a faster worker. A requeue wakes one waiter; a customer becoming
// done wakes all of them, because every blocked worker must observe termination.
//
// The orchestrator does not share the condition. It blocks on the channel returned by `Done`, which is
// closed exactly once, when the active count reaches zero.
//
// # Customer Lifecycle
//
//	Waiting --claim--> Claimed --requeue--> Waiting
//	                      \
//	                       `--last drop-off--> Done
//
// Customers never leave Done, so once the active count is zero it stays zero.
package registry
