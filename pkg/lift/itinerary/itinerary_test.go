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

package itinerary

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]int
	}{
		{
			name:  "single customer",
			input: "2, 3, 5\n",
			want:  [][]int{{2, 3, 5}},
		},
		{
			name:  "empty lines are skipped",
			input: "1\n\n4,0\n\n",
			want:  [][]int{{1}, {4, 0}},
		},
		{
			name:  "separators only yield an empty itinerary",
			input: " , ,\n7",
			want:  [][]int{{}, {7}},
		},
		{
			name:  "whitespace around tokens",
			input: "\t20 ,0\r\n",
			want:  [][]int{{20, 0}},
		},
		{
			name:  "ground floor only",
			input: "0",
			want:  [][]int{{0}},
		},
		{
			name:  "no input",
			input: "",
			want:  nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(test.input), 20)
			require.NoError(t, err)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Unexpected itineraries (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_RejectsInvalidInput(t *testing.T) {
	input := "1, 2\n3, 25\n\nfour, -1\n"
	got, err := Parse(strings.NewReader(input), 20)
	require.Error(t, err)
	assert.Nil(t, got)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)

	var le *LineError
	require.True(t, errors.As(errs[0], &le))
	assert.Equal(t, 2, le.Line)
	assert.Equal(t, "25", le.Token)
	assert.ErrorIs(t, errs[0], ErrFloorOutOfRange)

	require.True(t, errors.As(errs[1], &le))
	assert.Equal(t, 4, le.Line)
	assert.ErrorIs(t, errs[1], ErrMalformedFloor)

	require.True(t, errors.As(errs[2], &le))
	assert.Equal(t, 4, le.Line)
	assert.Equal(t, "-1", le.Token)
	assert.ErrorIs(t, errs[2], ErrFloorOutOfRange)
}

func TestParseLine_PartialNumberIsMalformed(t *testing.T) {
	_, err := ParseLine("3x", 20)
	assert.ErrorIs(t, err, ErrMalformedFloor)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([][]int{{0, 5}, {}, {20}}, 20))

	err := Validate([][]int{{0, 21}, {-3}}, 20)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, ErrFloorOutOfRange)
}
