package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Model != "gpt-4o-mini" {
		t.Fatalf("Default().Model = %q, want %q", cfg.Model, "gpt-4o-mini")
	}
	if cfg.Listen != ":8089" {
		t.Fatalf("Default().Listen = %q, want %q", cfg.Listen, ":8089")
	}
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	t.Setenv("TIDE_BASE_URL", "")
	t.Setenv("TIDE_AUTH_TOKEN", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Fatalf("cfg.Source = %q, want %q", cfg.Source, path)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Fatalf("cfg.Model = %q, want default", cfg.Model)
	}
}

func TestLoad_FromTOML(t *testing.T) {
	t.Setenv("TIDE_BASE_URL", "")
	t.Setenv("TIDE_AUTH_TOKEN", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
url = "https://example.test"
token = "test-token"
model = "custom-model"
listen = "127.0.0.1:9001"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "https://example.test" || cfg.Token != "test-token" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Model != "custom-model" || cfg.Listen != "127.0.0.1:9001" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TIDE_BASE_URL", "https://env.test")
	t.Setenv("TIDE_AUTH_TOKEN", "env-token")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
url = "https://file.test"
token = "file-token"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "https://env.test" || cfg.Token != "env-token" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	want := Default()
	want.Token = "tok"
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv("TIDE_BASE_URL", "")
	t.Setenv("TIDE_AUTH_TOKEN", "")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "tok" || got.Model != want.Model {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
