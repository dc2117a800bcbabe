package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"todoctl/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TODOCTL_BACKEND", "TODOCTL_BASE_URL", "TODOCTL_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.Backend != config.BackendTodoAPI {
		t.Errorf("expected backend %q, got %q", config.BackendTodoAPI, cfg.Backend)
	}
	if cfg.BaseURL != config.DefaultBaseURL {
		t.Errorf("expected base url %q, got %q", config.DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", config.DefaultTimeout, cfg.Timeout)
	}
}

func TestNew_FileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yml := "backend: todoapi\nbase_url: http://localhost:9000/api\napi_key: from-file\ntimeout: 3s\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(yml), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TODOCTL_API_KEY", "from-env")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9000/api/" {
		t.Errorf("expected trailing slash added, got %q", cfg.BaseURL)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("expected env override, got %q", cfg.APIKey)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Timeout)
	}
}

func TestNew_InvalidFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("backend: [\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.New(dir); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOCTL_BACKEND", "trello")
	if _, err := config.New(t.TempDir()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := config.DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "todoctl") {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestCredentials(t *testing.T) {
	clearEnv(t)
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HasCredentials() {
		t.Fatal("expected no credentials")
	}
	if err := cfg.RemoveCredentials(); err != nil {
		t.Errorf("removing missing credentials should succeed, got %v", err)
	}
	if err := os.WriteFile(cfg.SessionPath(), []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasCredentials() {
		t.Error("expected credentials after writing session file")
	}
	if err := cfg.RemoveCredentials(); err != nil {
		t.Fatal(err)
	}
	if cfg.HasCredentials() {
		t.Error("expected credentials removed")
	}
}

func TestFilters_RoundTrip(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "nested")}

	filters, err := cfg.LoadFilters()
	if err != nil {
		t.Fatalf("LoadFilters: %v", err)
	}
	if len(filters) != 0 {
		t.Errorf("expected no filters, got %v", filters)
	}

	filters["l1"] = "active"
	if err := cfg.SaveFilters(filters); err != nil {
		t.Fatalf("SaveFilters: %v", err)
	}

	got, err := cfg.LoadFilters()
	if err != nil {
		t.Fatalf("LoadFilters: %v", err)
	}
	if got["l1"] != "active" {
		t.Errorf("expected active, got %v", got)
	}
}

func TestFilters_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FiltersFile), []byte("- not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{Dir: dir}
	if _, err := cfg.LoadFilters(); err == nil {
		t.Error("expected error for invalid filters file")
	}
}
