package triagem

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads a full config", func(t *testing.T) {
		path := writeConfig(t, `
meta:
  description: "My photo library"
library:
  fetch_limit: 50
server:
  addr: ":9090"
`)
		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.Meta.Description != "My photo library" {
			t.Errorf("Description = %q, want %q", config.Meta.Description, "My photo library")
		}
		if config.Library.FetchLimit != 50 {
			t.Errorf("FetchLimit = %d, want 50", config.Library.FetchLimit)
		}
		if config.Server.Addr != ":9090" {
			t.Errorf("Addr = %q, want :9090", config.Server.Addr)
		}
	})

	t.Run("defaults the bind address", func(t *testing.T) {
		path := writeConfig(t, "meta:\n  description: x\n")
		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.Server.Addr != ":8080" {
			t.Errorf("Addr = %q, want :8080", config.Server.Addr)
		}
	})

	t.Run("rejects a negative fetch limit", func(t *testing.T) {
		path := writeConfig(t, "library:\n  fetch_limit: -1\n")
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("LoadConfig() error = nil, want validation error")
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("LoadConfig() error = nil, want error")
		}
	})
}
