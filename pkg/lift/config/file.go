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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a Config. Every field is optional; unset fields keep their defaults or whatever
// earlier options set.
//
//	maxFloor: 20
//	elevatorCount: 3
//	movePerFloorLatency: 80ms
//	doorLatency: 60ms
//	dwell:
//	  min: 50ms
//	  max: 200ms
type File struct {
	MaxFloor            *int           `yaml:"maxFloor,omitempty"`
	ElevatorCount       *int           `yaml:"elevatorCount,omitempty"`
	MovePerFloorLatency *time.Duration `yaml:"movePerFloorLatency,omitempty"`
	DoorLatency         *time.Duration `yaml:"doorLatency,omitempty"`
	Dwell               *DwellRange    `yaml:"dwell,omitempty"`
}

// DwellRange bounds the dwell time in a File.
type DwellRange struct {
	Min *time.Duration `yaml:"min,omitempty"`
	Max *time.Duration `yaml:"max,omitempty"`
}

// LoadFile reads and decodes a YAML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	f, err := DecodeFile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
	}
	return f, nil
}

// DecodeFile decodes a YAML configuration document. Unknown fields are rejected.
func DecodeFile(data []byte) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return f, nil
}

// Options converts the fields set in the file into ConfigOptions.
func (f *File) Options() []ConfigOption {
	if f == nil {
		return nil
	}
	var opts []ConfigOption
	if f.MaxFloor != nil {
		opts = append(opts, WithMaxFloor(*f.MaxFloor))
	}
	if f.ElevatorCount != nil {
		opts = append(opts, WithElevatorCount(*f.ElevatorCount))
	}
	if f.MovePerFloorLatency != nil {
		opts = append(opts, WithMovePerFloorLatency(*f.MovePerFloorLatency))
	}
	if f.DoorLatency != nil {
		opts = append(opts, WithDoorLatency(*f.DoorLatency))
	}
	if f.Dwell != nil {
		dwell := f.Dwell
		opts = append(opts, func(c *Config) {
			if dwell.Min != nil {
				c.DwellMin = *dwell.Min
			}
			if dwell.Max != nil {
				c.DwellMax = *dwell.Max
			}
		})
	}
	return opts
}
