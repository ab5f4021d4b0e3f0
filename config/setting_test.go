package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "Sync:\n  Role: slave\n  WorkDir: /var/lib/bfs\n"
	if err := os.WriteFile(path, []byte(yaml), 0640); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Sync.Role != RoleSlave {
		t.Fatalf("Role = %s, want %s", conf.Sync.Role, RoleSlave)
	}
	if conf.Sync.WorkDir != "/var/lib/bfs" {
		t.Fatalf("WorkDir = %s, want /var/lib/bfs", conf.Sync.WorkDir)
	}
	// RPCTimeoutMS was not set in the file, so the default survives.
	if conf.Sync.RPCTimeoutMS != 15000 {
		t.Fatalf("RPCTimeoutMS = %d, want default 15000", conf.Sync.RPCTimeoutMS)
	}
}

func TestLoadMissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load of a missing file should return an error")
	}
}

func TestDurationHelpers(t *testing.T) {
	s := &Sync{RPCTimeoutMS: 1500, RetryBackoffMS: 250, ProgressIntervalMS: 5000}
	if s.RPCTimeout().Milliseconds() != 1500 {
		t.Fatalf("RPCTimeout() = %v, want 1500ms", s.RPCTimeout())
	}
	if s.RetryBackoff().Milliseconds() != 250 {
		t.Fatalf("RetryBackoff() = %v, want 250ms", s.RetryBackoff())
	}
	if s.ProgressInterval().Milliseconds() != 5000 {
		t.Fatalf("ProgressInterval() = %v, want 5000ms", s.ProgressInterval())
	}
}
