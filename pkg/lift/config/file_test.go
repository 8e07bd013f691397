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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestDecodeFile(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    *File
		wantErr bool
	}{
		{
			name: "all fields",
			data: `
maxFloor: 12
elevatorCount: 3
movePerFloorLatency: 10ms
doorLatency: 5ms
dwell:
  min: 1ms
  max: 2s
`,
			want: &File{
				MaxFloor:            ptr.To(12),
				ElevatorCount:       ptr.To(3),
				MovePerFloorLatency: ptr.To(10 * time.Millisecond),
				DoorLatency:         ptr.To(5 * time.Millisecond),
				Dwell:               &DwellRange{Min: ptr.To(time.Millisecond), Max: ptr.To(2 * time.Second)},
			},
		},
		{
			name: "partial",
			data: "elevatorCount: 5\n",
			want: &File{ElevatorCount: ptr.To(5)},
		},
		{
			name: "empty document",
			data: "",
			want: &File{},
		},
		{
			name:    "unknown field",
			data:    "floors: 3\n",
			wantErr: true,
		},
		{
			name:    "bad duration",
			data:    "doorLatency: slow\n",
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := DecodeFile([]byte(test.data))
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Unexpected file (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileOptions(t *testing.T) {
	f := &File{
		MaxFloor: ptr.To(9),
		Dwell:    &DwellRange{Max: ptr.To(300 * time.Millisecond)},
	}
	cfg, err := NewConfig(f.Options()...)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.MaxFloor)
	assert.Equal(t, DefaultElevatorCount, cfg.ElevatorCount)
	assert.Equal(t, DefaultDwellMin, cfg.DwellMin)
	assert.Equal(t, 300*time.Millisecond, cfg.DwellMax)

	// Options are applied in order, so later options win over the file.
	cfg, err = NewConfig(append(f.Options(), WithMaxFloor(30))...)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.MaxFloor)

	var nilFile *File
	assert.Empty(t, nilFile.Options())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liftsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("elevatorCount: 0\n"), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	_, err = NewConfig(f.Options()...)
	assert.Error(t, err, "validation still applies to file values")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
