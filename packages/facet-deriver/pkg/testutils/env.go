package testutils

import (
	"os"
	"strconv"
)

// ShouldSkipContainerTests reports whether tests starting docker containers are disabled.
func ShouldSkipContainerTests() bool {
	if enabled, err := strconv.ParseBool(os.Getenv("CONTAINER_TESTS_ENABLED")); err == nil {
		return !enabled
	}

	return true
}
