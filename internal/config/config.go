package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds environment-driven configuration.
type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"` // default: :8080
	} `yaml:"http"`
	Display struct {
		Refresh time.Duration `yaml:"refresh"` // default: 1s
	} `yaml:"display"`
	MySQL struct {
		DSN string `yaml:"dsn"` // empty disables the MySQL archive
	} `yaml:"mysql"`
	Toggl struct {
		APIToken    string `yaml:"api_token"` // empty disables the Toggl archive
		WorkspaceID int64  `yaml:"workspace_id"`
		BaseURL     string `yaml:"base_url"` // default: https://api.track.toggl.com
	} `yaml:"toggl"`
}

// Load reads configuration from the optional YAML file named by
// STOPWATCH_CONFIG, then from environment variables, which take precedence.
func Load() (Config, error) {
	var cfg Config

	if path := os.Getenv("STOPWATCH_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if v := os.Getenv("STOPWATCH_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	if v := os.Getenv("STOPWATCH_REFRESH"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, errors.New("STOPWATCH_REFRESH must be a duration such as 1s")
		}
		cfg.Display.Refresh = d
	}
	if cfg.Display.Refresh <= 0 {
		cfg.Display.Refresh = time.Second
	}

	if v := os.Getenv("MYSQL_DSN"); v != "" {
		cfg.MySQL.DSN = v
	}

	if v := os.Getenv("TOGGL_API_TOKEN"); v != "" {
		cfg.Toggl.APIToken = v
	}
	if ws := os.Getenv("TOGGL_WORKSPACE_ID"); ws != "" {
		if v, err := strconv.ParseInt(ws, 10, 64); err == nil {
			cfg.Toggl.WorkspaceID = v
		} else {
			return cfg, errors.New("TOGGL_WORKSPACE_ID must be an integer")
		}
	}
	if cfg.Toggl.APIToken != "" && cfg.Toggl.WorkspaceID == 0 {
		return cfg, errors.New("TOGGL_WORKSPACE_ID is required when TOGGL_API_TOKEN is set")
	}
	if v := os.Getenv("TOGGL_BASE_URL"); v != "" {
		cfg.Toggl.BaseURL = v
	}
	if cfg.Toggl.BaseURL == "" {
		cfg.Toggl.BaseURL = "https://api.track.toggl.com"
	}

	return cfg, nil
}
