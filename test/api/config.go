/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

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

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingConfiguration is returned when required settings are absent.
var ErrMissingConfiguration = errors.New("missing required configuration")

// ErrInvalidConfiguration is returned when a setting cannot be used.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type TestConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	TestTimeout    time.Duration
	UserPrefix     string
	UserPassword   string
	UsernameLength int
	CleanupUsers   bool
	DebugLogging   bool
	LogRequests    bool
	LogResponses   bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:        strings.TrimSuffix(os.Getenv("BOOKSTORE_BASE_URL"), "/"),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:    getDurationWithDefault("TEST_TIMEOUT", 2*time.Minute),
		UserPrefix:     getStringWithDefault("TEST_USER_PREFIX", "testuser_"),
		UserPassword:   getStringWithDefault("TEST_USER_PASSWORD", "Password@123"),
		UsernameLength: getIntWithDefault("TEST_USERNAME_LENGTH", 8),
		CleanupUsers:   getBoolWithDefault("CLEANUP_USERS", true),
		DebugLogging:   getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:   getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// getIntWithDefault gets an integer from environment variable or returns default.
func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env",    // From test/api/suites directory
		"../.env",       // From test/api directory
		"../../../.env", // From test/contracts/consumer/bookstore directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// Validate checks that all required configuration values are set and usable.
func (c *TestConfig) Validate() error {
	var missing []string

	required := map[string]string{
		"BOOKSTORE_BASE_URL": c.BaseURL,
		"TEST_USER_PASSWORD": c.UserPassword,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: BOOKSTORE_BASE_URL: %w", ErrInvalidConfiguration, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: BOOKSTORE_BASE_URL %q must be an absolute http(s) URL", ErrInvalidConfiguration, c.BaseURL)
	}

	if c.UsernameLength < 1 {
		return fmt.Errorf("%w: TEST_USERNAME_LENGTH must be positive, got %d", ErrInvalidConfiguration, c.UsernameLength)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", ErrInvalidConfiguration)
	}

	return nil
}
