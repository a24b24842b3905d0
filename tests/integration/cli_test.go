//go:build integration

package integration

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCLI_Version(t *testing.T) {
	result := runCLI(t, nil, "version", "--json")

	if result.ExitCode != 0 {
		t.Fatalf("Exit code = %d, want 0\nStderr: %s", result.ExitCode, result.Stderr)
	}

	var output map[string]string
	if err := json.Unmarshal([]byte(result.Stdout), &output); err != nil {
		t.Fatalf("Output is not valid JSON: %v\nOutput: %s", err, result.Stdout)
	}
	if output["version"] == "" {
		t.Error("version missing from output")
	}
}

func TestCLI_Chat(t *testing.T) {
	skipIfNoAPIKey(t)

	result := runCLI(t, nil, "chat",
		"--model", testModel(),
		"--prompt", "Say 'hello' and nothing else.")

	if result.ExitCode != 0 {
		t.Errorf("Exit code = %d, want 0\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if result.Stdout == "" {
		t.Error("Stdout is empty")
	}
}

func TestCLI_Chat_Streaming(t *testing.T) {
	skipIfNoAPIKey(t)

	result := runCLI(t, nil, "chat",
		"--model", testModel(),
		"--prompt", "Count from 1 to 3.",
		"--stream")

	if result.ExitCode != 0 {
		t.Errorf("Exit code = %d, want 0\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if result.Stdout == "" {
		t.Error("Stdout is empty")
	}
}

func TestCLI_InvalidKey(t *testing.T) {
	skipIfNoAPIKey(t)

	result := runCLI(t, []string{"WOPR_API_KEY=wopr_invalid_key"}, "--json", "models", "list")

	if result.ExitCode != 2 {
		t.Errorf("Exit code = %d, want 2\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if !strings.Contains(result.Stderr, `"kind": "authentication"`) {
		t.Errorf("Stderr = %q, want authentication error", result.Stderr)
	}
}

func TestCLI_MissingKey(t *testing.T) {
	result := runCLI(t, []string{"WOPR_API_KEY=", "WOPR_KEYSTORE_PASSPHRASE=integration"}, "models", "list")

	if result.ExitCode != 1 {
		t.Errorf("Exit code = %d, want 1\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if !strings.Contains(result.Stderr, "no API key") {
		t.Errorf("Stderr = %q", result.Stderr)
	}
}
