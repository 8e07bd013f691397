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

// Package itinerary reads customer itineraries from text.
//
// Each non-empty line describes one customer as a comma-separated list of destination floors, for example
// "2, 3, 5". Customers start on floor 0. Blank tokens are ignored, so a line made only of separators describes a
// customer with nothing to do.
package itinerary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrMalformedFloor indicates a token that is not an integer.
	ErrMalformedFloor = errors.New("malformed floor")
	// ErrFloorOutOfRange indicates a floor outside [0, maxFloor].
	ErrFloorOutOfRange = errors.New("floor out of range")
)

// LineError locates a problem in the input.
type LineError struct {
	// Line is the 1-based line number, counting empty lines.
	Line  int
	Token string
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Token, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Parse reads one itinerary per non-empty line of r. Every floor must be in [0, maxFloor]. All problems in the
// input are reported together; on error no itinerary is returned.
func Parse(r io.Reader, maxFloor int) ([][]int, error) {
	var (
		out  [][]int
		errs error
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		itin, err := ParseLine(line, maxFloor)
		if err != nil {
			for _, e := range multierr.Errors(err) {
				var le *LineError
				if errors.As(e, &le) {
					le.Line = lineNo
				}
				errs = multierr.Append(errs, e)
			}
			continue
		}
		out = append(out, itin)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read itineraries: %w", err)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// ParseLine parses a single line such as "2, 3, 5". Errors are *LineError values with Line left at zero.
func ParseLine(line string, maxFloor int) ([]int, error) {
	var (
		out  []int
		errs error
	)
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		floor, err := strconv.Atoi(tok)
		if err != nil {
			errs = multierr.Append(errs, &LineError{Token: tok, Err: ErrMalformedFloor})
			continue
		}
		if err := ValidateFloor(floor, maxFloor); err != nil {
			errs = multierr.Append(errs, &LineError{Token: tok, Err: err})
			continue
		}
		out = append(out, floor)
	}
	if errs != nil {
		return nil, errs
	}
	if out == nil {
		out = []int{}
	}
	return out, nil
}

// ValidateFloor reports whether floor lies in [0, maxFloor].
func ValidateFloor(floor, maxFloor int) error {
	if floor < 0 || floor > maxFloor {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrFloorOutOfRange, floor, maxFloor)
	}
	return nil
}

// Validate checks every floor of already parsed itineraries.
func Validate(itineraries [][]int, maxFloor int) error {
	var errs error
	for i, itin := range itineraries {
		for _, floor := range itin {
			if err := ValidateFloor(floor, maxFloor); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("customer %d: %w", i, err))
			}
		}
	}
	return errs
}
