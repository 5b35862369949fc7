// Package tutil holds helpers shared by tests that talk to a live backend.
package tutil

import (
	"os"
	"strings"
	"testing"
)

const (
	TestTypeEnv       = "WEDSITE_TEST"
	TestBackendURLEnv = "WEDSITE_TEST_BACKEND_URL"
)

func IsIntegrationTest() bool {
	testType := os.Getenv(TestTypeEnv)
	return strings.ToLower(testType) == "integration"
}

// RequireIntegration skips t unless integration tests were asked for, and
// returns the backend URL to run them against.
func RequireIntegration(t *testing.T) string {
	t.Helper()

	if !IsIntegrationTest() {
		t.Skipf("set %s=integration to run against a live backend", TestTypeEnv)
	}

	url := os.Getenv(TestBackendURLEnv)
	if url == "" {
		url = "http://localhost:3001/api"
	}

	return strings.TrimRight(url, "/")
}
