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

package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  Error
		want string
	}{
		{
			name: "BadInput error",
			err:  Error{Code: BadInput, Msg: "line 3: floor 25 out of range"},
			want: "liftsim: BadInput - line 3: floor 25 out of range",
		},
		{
			name: "BadConfiguration error",
			err:  Error{Code: BadConfiguration, Msg: "elevator count must be positive"},
			want: "liftsim: BadConfiguration - elevator count must be positive",
		},
		{
			name: "Empty message",
			err:  Error{Code: Internal},
			want: "liftsim: Internal - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanonicalCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Error type with BadInput code",
			err:  Errorf(BadInput, "bad token %q", "x"),
			want: BadInput,
		},
		{
			name: "Wrapped Error",
			err:  fmt.Errorf("startup: %w", Error{Code: BadConfiguration, Msg: "negative latency"}),
			want: BadConfiguration,
		},
		{
			name: "Non-Error type",
			err:  errors.New("standard go error"),
			want: Unknown,
		},
		{
			name: "Nil error",
			err:  nil,
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalCode(tt.err); got != tt.want {
				t.Errorf("CanonicalCode() = %v, want %v", got, tt.want)
			}
		})
	}
}
