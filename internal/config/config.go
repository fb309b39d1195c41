// Package config loads configuration for the daemon and the CLI. The daemon
// is env-driven; the CLI additionally reads an optional TOML config file,
// with environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Server holds the daemon configuration, read from the environment.
type Server struct {
	HTTPAddr    string // CRMDESK_HTTP_ADDR (default ":8081")
	DatabaseURL string // CRMDESK_DATABASE_URL (optional, empty = in-memory store)
	NATSURL     string // CRMDESK_NATS_URL (optional, empty = no events)

	DemoEmail    string // CRMDESK_DEMO_EMAIL (default "admin@example.com")
	DemoPassword string // CRMDESK_DEMO_PASSWORD (default "admin")

	// Export settings
	ExportInterval   time.Duration // CRMDESK_EXPORT_INTERVAL (default 0 = disabled)
	ExportPath       string        // CRMDESK_EXPORT_PATH (local JSONL file; enables file export)
	ExportS3Bucket   string        // CRMDESK_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Region   string        // CRMDESK_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Key      string        // CRMDESK_EXPORT_S3_KEY (default "crmdesk/snapshot.jsonl")
	ExportS3Endpoint string        // CRMDESK_EXPORT_S3_ENDPOINT (custom endpoint, e.g. MinIO)
}

// Client holds the CLI configuration.
type Client struct {
	APIURL      string // CRMDESK_API_URL, or api_url in config.toml (default "http://localhost:8081")
	SessionPath string // CRMDESK_SESSION_PATH (optional, default under user config dir)
	NoColor     bool   // NO_COLOR (any value disables color output), or no_color in config.toml
}

// clientFile is the on-disk CLI config file shape.
type clientFile struct {
	APIURL  string `toml:"api_url"`
	NoColor bool   `toml:"no_color"`
}

// LoadServer reads the daemon configuration from the environment.
func LoadServer() (*Server, error) {
	c := &Server{
		HTTPAddr:         envOrDefault("CRMDESK_HTTP_ADDR", ":8081"),
		DatabaseURL:      os.Getenv("CRMDESK_DATABASE_URL"),
		NATSURL:          os.Getenv("CRMDESK_NATS_URL"),
		DemoEmail:        envOrDefault("CRMDESK_DEMO_EMAIL", "admin@example.com"),
		DemoPassword:     envOrDefault("CRMDESK_DEMO_PASSWORD", "admin"),
		ExportPath:       os.Getenv("CRMDESK_EXPORT_PATH"),
		ExportS3Bucket:   os.Getenv("CRMDESK_EXPORT_S3_BUCKET"),
		ExportS3Region:   envOrDefault("CRMDESK_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Key:      envOrDefault("CRMDESK_EXPORT_S3_KEY", "crmdesk/snapshot.jsonl"),
		ExportS3Endpoint: os.Getenv("CRMDESK_EXPORT_S3_ENDPOINT"),
	}

	if s := os.Getenv("CRMDESK_EXPORT_INTERVAL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("CRMDESK_EXPORT_INTERVAL: %w", err)
		}
		c.ExportInterval = d
	}

	return c, nil
}

// LoadClient reads the CLI configuration. Values come from the optional
// config file first, then the environment overrides them. A missing config
// file is fine; a malformed one is an error.
func LoadClient() (*Client, error) {
	c := &Client{APIURL: "http://localhost:8081"}

	if path := clientConfigPath(); path != "" {
		var f clientFile
		if _, err := toml.DecodeFile(path, &f); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
		} else {
			if f.APIURL != "" {
				c.APIURL = f.APIURL
			}
			c.NoColor = f.NoColor
		}
	}

	if v := os.Getenv("CRMDESK_API_URL"); v != "" {
		c.APIURL = v
	}
	c.SessionPath = os.Getenv("CRMDESK_SESSION_PATH")
	if os.Getenv("NO_COLOR") != "" {
		c.NoColor = true
	}
	return c, nil
}

func clientConfigPath() string {
	if p := os.Getenv("CRMDESK_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "crmdesk", "config.toml")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
