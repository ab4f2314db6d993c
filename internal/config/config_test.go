// ABOUTME: Tests for configuration defaults and path expansion
// ABOUTME: Verifies zero-value fallbacks and ~ handling

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mio/newsgather/internal/ingest"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetWorkers(); got != ingest.DefaultWorkers {
		t.Errorf("GetWorkers() = %d, want default %d", got, ingest.DefaultWorkers)
	}
	if got := cfg.GetFetchTimeout(); got != ingest.DefaultFetchTimeout {
		t.Errorf("GetFetchTimeout() = %v, want default %v", got, ingest.DefaultFetchTimeout)
	}
	if got := cfg.GetDataDir(); !strings.HasSuffix(got, "newsgather") {
		t.Errorf("GetDataDir() = %q, want a newsgather directory", got)
	}
}

func TestOverrides(t *testing.T) {
	cfg := &Config{
		DataDir:             "/tmp/ng-test",
		FetchTimeoutSeconds: 5,
		Workers:             2,
	}

	if got := cfg.GetDataDir(); got != "/tmp/ng-test" {
		t.Errorf("GetDataDir() = %q", got)
	}
	if got := cfg.GetFetchTimeout(); got != 5*time.Second {
		t.Errorf("GetFetchTimeout() = %v, want 5s", got)
	}
	if got := cfg.GetWorkers(); got != 2 {
		t.Errorf("GetWorkers() = %d, want 2", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	if got := ExpandPath("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("ExpandPath(~/data) = %q", got)
	}
	if got := ExpandPath("~"); got != home {
		t.Errorf("ExpandPath(~) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath should leave absolute paths alone, got %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q, want empty", got)
	}
}
