package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
base_url = "http://127.0.0.1:8080/api"
request_timeout = "10s"
requests_per_second = 2.5
retry_max = 3
retry_wait_min = "250ms"
retry_wait_max = "4s"
verify_convergence = false
`)

	cfg, err := loadRunConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Client.BaseURL != "http://127.0.0.1:8080/api" {
		t.Fatalf("unexpected base url: %q", cfg.Client.BaseURL)
	}
	if cfg.Client.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Client.RequestTimeout)
	}
	if cfg.Client.RequestsPerSecond != 2.5 {
		t.Fatalf("unexpected pacing: %v", cfg.Client.RequestsPerSecond)
	}
	if cfg.Client.RetryMax != 3 {
		t.Fatalf("unexpected retry max: %d", cfg.Client.RetryMax)
	}
	if cfg.Client.RetryWaitMin != 250*time.Millisecond {
		t.Fatalf("unexpected retry wait min: %v", cfg.Client.RetryWaitMin)
	}
	if cfg.Client.RetryWaitMax != 4*time.Second {
		t.Fatalf("unexpected retry wait max: %v", cfg.Client.RetryWaitMax)
	}
	if cfg.Reconcile.VerifyConvergence {
		t.Fatalf("expected verification disabled")
	}
}

func TestLoadRunConfigKeepsDefaultsForUnsetKeys(t *testing.T) {
	path := writeConfig(t, `retry_max = 5`)

	cfg, err := loadRunConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := defaultRunConfig()
	if cfg.Client.RetryMax != 5 {
		t.Fatalf("unexpected retry max: %d", cfg.Client.RetryMax)
	}
	if cfg.Client.BaseURL != def.Client.BaseURL {
		t.Fatalf("base url should keep default, got %q", cfg.Client.BaseURL)
	}
	if cfg.Client.RequestTimeout != def.Client.RequestTimeout {
		t.Fatalf("timeout should keep default, got %v", cfg.Client.RequestTimeout)
	}
	if !cfg.Reconcile.VerifyConvergence {
		t.Fatalf("verification should keep default")
	}
}

func TestLoadRunConfigRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `request_timeout = "soon"`)

	if _, err := loadRunConfig(path); err == nil {
		t.Fatalf("expected duration parse error")
	}
}
