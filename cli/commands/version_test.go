package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/wopr-network/wopr-go/wopr"
)

func TestVersionVariables(t *testing.T) {
	// Verify default values are set
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestVersionCommand(t *testing.T) {
	res := runApp(t, runConfig{}, "version")
	if res.err != nil {
		t.Fatalf("version error = %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "wopr "+Version+"\n") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if !strings.Contains(res.stdout, "sdk:        "+wopr.Version) {
		t.Errorf("stdout = %q, should include SDK version", res.stdout)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	res := runApp(t, runConfig{}, "version", "--json")
	if res.err != nil {
		t.Fatalf("version error = %v", res.err)
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(res.stdout), &out); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	for _, key := range []string{"version", "commit", "buildDate", "sdkVersion", "goVersion", "platform"} {
		if out[key] == "" {
			t.Errorf("%s missing from %v", key, out)
		}
	}
}
