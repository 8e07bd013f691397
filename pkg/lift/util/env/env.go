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

// Package env reads optional simulation settings from the process environment.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/go-logr/logr"
)

// getEnvWithParser retrieves an environment variable. If set, it uses the provided parser to parse it.
// It logs success or failure and returns the parsed value and whether the variable was usable.
func getEnvWithParser[T any](key string, defaultVal T, parser func(string) (T, error), logger logr.Logger) (T, bool) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		logger.Info("Environment variable not set, using default value", "key", key, "defaultValue", defaultVal)
		return defaultVal, false
	}

	parsedValue, err := parser(valueStr)
	if err != nil {
		logger.Info(fmt.Sprintf("Failed to parse environment variable as %s, using default value", reflect.TypeOf(defaultVal)),
			"key", key, "rawValue", valueStr, "error", err, "defaultValue", defaultVal)
		return defaultVal, false
	}

	logger.Info("Successfully loaded environment variable", "key", key, "value", parsedValue)
	return parsedValue, true
}

// GetEnvString gets a string from an environment variable with a default value.
func GetEnvString(key string, defaultVal string, logger logr.Logger) string {
	parser := func(s string) (string, error) { return s, nil }
	v, _ := getEnvWithParser(key, defaultVal, parser, logger)
	return v
}

// LookupInt gets an int from an environment variable and reports whether it overrode the default.
func LookupInt(key string, defaultVal int, logger logr.Logger) (int, bool) {
	return getEnvWithParser(key, defaultVal, strconv.Atoi, logger)
}

// LookupDuration gets a time.Duration from an environment variable and reports whether it overrode the default.
func LookupDuration(key string, defaultVal time.Duration, logger logr.Logger) (time.Duration, bool) {
	return getEnvWithParser(key, defaultVal, time.ParseDuration, logger)
}
