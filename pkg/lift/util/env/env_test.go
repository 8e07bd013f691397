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

package env

import (
	"testing"
	"time"

	"github.com/go-logr/logr/testr"

	logutil "github.com/liftsim/liftsim/pkg/common/observability/logging"
)

func TestLookupInt(t *testing.T) {
	logger := testr.New(t)

	tests := []struct {
		name       string
		key        string
		value      string
		set        bool
		defaultVal int
		expected   int
	}{
		{
			name:       "env variable exists and is valid",
			key:        "LIFTSIM_TEST_INT",
			value:      "4",
			set:        true,
			defaultVal: 2,
			expected:   4,
		},
		{
			name:       "env variable exists but is invalid",
			key:        "LIFTSIM_TEST_INT",
			value:      "four",
			set:        true,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "env variable does not exist",
			key:        "LIFTSIM_TEST_INT_MISSING",
			defaultVal: 42,
			expected:   42,
		},
		{
			name:       "env variable is empty string",
			key:        "LIFTSIM_TEST_INT_EMPTY",
			value:      "",
			set:        true,
			defaultVal: 7,
			expected:   7,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set {
				t.Setenv(tc.key, tc.value)
			}
			result, _ := LookupInt(tc.key, tc.defaultVal, logger.V(logutil.VERBOSE))
			if result != tc.expected {
				t.Errorf("LookupInt(%s, %d) = %d, expected %d", tc.key, tc.defaultVal, result, tc.expected)
			}
		})
	}
}

func TestLookupDuration(t *testing.T) {
	logger := testr.New(t)

	t.Setenv("LIFTSIM_TEST_DURATION", "150ms")
	got, ok := LookupDuration("LIFTSIM_TEST_DURATION", time.Second, logger)
	if !ok || got != 150*time.Millisecond {
		t.Errorf("LookupDuration() = (%v, %v), expected (150ms, true)", got, ok)
	}

	t.Setenv("LIFTSIM_TEST_DURATION", "soon")
	got, ok = LookupDuration("LIFTSIM_TEST_DURATION", time.Second, logger)
	if ok || got != time.Second {
		t.Errorf("LookupDuration() = (%v, %v), expected (1s, false)", got, ok)
	}

	got, ok = LookupDuration("LIFTSIM_TEST_DURATION_MISSING", time.Second, logger)
	if ok || got != time.Second {
		t.Errorf("LookupDuration() = (%v, %v), expected (1s, false)", got, ok)
	}
}

func TestGetEnvString(t *testing.T) {
	logger := testr.New(t)

	t.Setenv("LIFTSIM_TEST_STRING", "customers.txt")
	if got := GetEnvString("LIFTSIM_TEST_STRING", "", logger); got != "customers.txt" {
		t.Errorf("GetEnvString() = %q, expected %q", got, "customers.txt")
	}
	if got := GetEnvString("LIFTSIM_TEST_STRING_MISSING", "-", logger); got != "-" {
		t.Errorf("GetEnvString() = %q, expected %q", got, "-")
	}
}
