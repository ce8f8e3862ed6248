//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "greeter-api"
	ConsumerName = "greeter-portal"

	StateGreetingLogEmpty = "greeting log is empty"
	StateGreetingExists   = "a greeting for Ada Lovelace exists"
)

const (
	ExampleFirstName = "Ada"
	ExampleLastName  = "Lovelace"
	ExampleAge       = 28
	UnderageAge      = 17

	ExampleTimestamp = "2024-05-01T10:30:00Z"
	// TimestampPattern matches RFC 3339 timestamps with optional fractional seconds.
	TimestampPattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleSayHelloPayload is the canonical create request.
func ExampleSayHelloPayload() map[string]any {
	return map[string]any{
		"first_name": ExampleFirstName,
		"last_name":  ExampleLastName,
		"age":        ExampleAge,
	}
}

// UnderageSayHelloPayload violates the minimum age.
func UnderageSayHelloPayload() map[string]any {
	return map[string]any{
		"first_name": "Bob",
		"last_name":  "Young",
		"age":        UnderageAge,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
