package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STOPWATCH_CONFIG", "STOPWATCH_HTTP_ADDR", "STOPWATCH_REFRESH",
		"MYSQL_DSN", "TOGGL_API_TOKEN", "TOGGL_WORKSPACE_ID", "TOGGL_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Display.Refresh != time.Second {
		t.Fatalf("expected 1s refresh, got %s", cfg.Display.Refresh)
	}
	if cfg.Toggl.BaseURL != "https://api.track.toggl.com" {
		t.Fatalf("unexpected toggl base url %q", cfg.Toggl.BaseURL)
	}
	if cfg.MySQL.DSN != "" || cfg.Toggl.APIToken != "" {
		t.Fatalf("archives should be disabled by default: %+v", cfg)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "stopwatch.yaml")
	data := []byte(`http:
  addr: ":9000"
display:
  refresh: 250ms
mysql:
  dsn: "u:p@tcp(db:3306)/sw?parseTime=true"
toggl:
  api_token: tok
  workspace_id: 42
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("STOPWATCH_CONFIG", path)
	t.Setenv("STOPWATCH_HTTP_ADDR", "127.0.0.1:7000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != "127.0.0.1:7000" {
		t.Fatalf("env should override yaml addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Display.Refresh != 250*time.Millisecond {
		t.Fatalf("expected 250ms refresh, got %s", cfg.Display.Refresh)
	}
	if cfg.MySQL.DSN != "u:p@tcp(db:3306)/sw?parseTime=true" {
		t.Fatalf("unexpected dsn %q", cfg.MySQL.DSN)
	}
	if cfg.Toggl.APIToken != "tok" || cfg.Toggl.WorkspaceID != 42 {
		t.Fatalf("unexpected toggl config: %+v", cfg.Toggl)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad refresh":       {"STOPWATCH_REFRESH": "soon"},
		"bad workspace":     {"TOGGL_WORKSPACE_ID": "abc"},
		"token without ws":  {"TOGGL_API_TOKEN": "tok"},
		"missing yaml file": {"STOPWATCH_CONFIG": "/nonexistent/stopwatch.yaml"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
