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

package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftsim/liftsim/pkg/lift/registry"
	errutil "github.com/liftsim/liftsim/pkg/lift/util/error"
)

var fastArgs = []string{
	"--move-latency", "0s",
	"--door-latency", "0s",
	"--dwell-min", "0s",
	"--dwell-max", "0s",
}

func TestRun_FromFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "customers.txt")
	require.NoError(t, os.WriteFile(input, []byte("2, 3, 5\n\n1,0\n , \n20\n"), 0o600))
	cfgFile := filepath.Join(dir, "liftsim.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("elevatorCount: 3\n"), 0o600))

	r := NewRunner()
	args := append([]string{"--input", input, "--config-file", cfgFile}, fastArgs...)
	require.NoError(t, r.Run(context.Background(), args))

	res := r.Result()
	require.Len(t, res.Customers, 4)
	for _, c := range res.Customers {
		assert.Equal(t, registry.StateDone, c.State, "customer %d", c.ID)
	}
	assert.Equal(t, 5, res.Customers[0].Floor)
	assert.Equal(t, 0, res.Customers[2].Floor, "a separators-only line starts done at the ground floor")
	assert.Len(t, res.Elevators, 3)
}

func TestRun_FromStdin(t *testing.T) {
	r := NewRunner().WithStdin(strings.NewReader("4\n1, 2\n"))
	require.NoError(t, r.Run(context.Background(), fastArgs))
	assert.Len(t, r.Result().Customers, 2)
}

func TestRun_StartupErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode string
	}{
		{
			name:     "floor above max floor",
			stdin:    "1, 25\n",
			wantCode: errutil.BadInput,
		},
		{
			name:     "malformed token",
			stdin:    "1, two\n",
			wantCode: errutil.BadInput,
		},
		{
			name:     "missing input file",
			args:     []string{"--input", filepath.Join(t.TempDir(), "missing.txt")},
			wantCode: errutil.BadInput,
		},
		{
			name:     "no elevators",
			stdin:    "1\n",
			args:     []string{"--elevators", "0"},
			wantCode: errutil.BadConfiguration,
		},
		{
			name:     "unknown flag",
			args:     []string{"--floors", "3"},
			wantCode: errutil.BadConfiguration,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewRunner().WithStdin(strings.NewReader(test.stdin))
			err := r.Run(context.Background(), append(test.args, fastArgs...))
			require.Error(t, err)
			assert.Equal(t, test.wantCode, errutil.CanonicalCode(err))
			assert.Empty(t, r.Result().Elevators, "no elevator may run on a failed startup")
		})
	}
}
