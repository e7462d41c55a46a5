package config

import (
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Session.TTL = %s, want 2h", cfg.Session.TTL)
	}
	if cfg.Upload.MaxFileSize != 20971520 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 20971520)
	}
	if cfg.Upload.HeaderSearchRows != 20 {
		t.Errorf("Upload.HeaderSearchRows = %d, want 20", cfg.Upload.HeaderSearchRows)
	}
	if cfg.Manifest.Source != ManifestBuiltin {
		t.Errorf("Manifest.Source = %q, want %q", cfg.Manifest.Source, ManifestBuiltin)
	}
	if cfg.Manifest.Table != "required_parts" {
		t.Errorf("Manifest.Table = %q, want required_parts", cfg.Manifest.Table)
	}
	if cfg.Security.APIKeys != nil {
		t.Errorf("Security.APIKeys = %v, want nil", cfg.Security.APIKeys)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"SERVER_PORT":           "9090",
		"SESSION_TTL":           "15m",
		"UPLOAD_MAX_CONCURRENT": "10",
		"LOG_LEVEL":             "debug",
		"MANIFEST_SOURCE":       " FILE ",
		"MANIFEST_PATH":         "/etc/acparts/manifest.yaml",
		"API_KEYS":              "a, b,,c",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Session.TTL != 15*time.Minute {
		t.Errorf("Session.TTL = %s, want 15m", cfg.Session.TTL)
	}
	if cfg.Upload.MaxConcurrent != 10 {
		t.Errorf("Upload.MaxConcurrent = %d, want 10", cfg.Upload.MaxConcurrent)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Manifest.Source != ManifestFile {
		t.Errorf("Manifest.Source = %q, want %q", cfg.Manifest.Source, ManifestFile)
	}
	if got := strings.Join(cfg.Security.APIKeys, "|"); got != "a|b|c" {
		t.Errorf("Security.APIKeys = %q, want a|b|c", got)
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"MANIFEST_SOURCE": "postgres",
		"DATABASE_URL":    "postgres://localhost/fleet",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Manifest.DatabaseURL != "postgres://localhost/fleet" {
		t.Errorf("Manifest.DatabaseURL = %q, want fallback from DATABASE_URL", cfg.Manifest.DatabaseURL)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad int", map[string]string{"SERVER_PORT": "eighty"}, "invalid integer"},
		{"bad duration", map[string]string{"SESSION_TTL": "forever"}, "invalid duration"},
		{"bad bool", map[string]string{"RATE_LIMIT_ENABLED": "perhaps"}, "invalid boolean"},
		{"port range", map[string]string{"SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"unknown source", map[string]string{"MANIFEST_SOURCE": "s3"}, "MANIFEST_SOURCE"},
		{"file without path", map[string]string{"MANIFEST_SOURCE": "file"}, "MANIFEST_PATH"},
		{"postgres without url", map[string]string{"MANIFEST_SOURCE": "postgres"}, "MANIFEST_DATABASE_URL"},
		{"api key without keys", map[string]string{"REQUIRE_API_KEY": "true"}, "API_KEYS"},
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envMap(tt.env))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	cfg.Server.Port = 0
	cfg.Upload.MaxRows = 0
	cfg.Session.TTL = 0

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"SERVER_PORT", "UPLOAD_MAX_ROWS", "SESSION_TTL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err.Error(), want)
		}
	}
}

func TestServerConfig_Addr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8443}
	if got := c.Addr(); got != "127.0.0.1:8443" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8443", got)
	}
	c.Host = ""
	if got := c.Addr(); got != ":8443" {
		t.Errorf("Addr() = %q, want :8443", got)
	}
}

func TestString_MasksDatabaseURL(t *testing.T) {
	cfg := &Config{Manifest: ManifestConfig{DatabaseURL: "postgres://user:secret@db/fleet"}}
	s := cfg.String()
	if strings.Contains(s, "secret") {
		t.Errorf("String() leaked credentials: %s", s)
	}
	if !strings.Contains(s, "[MASKED]") {
		t.Errorf("String() = %s, want masked URL", s)
	}
}
