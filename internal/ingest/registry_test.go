package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigEmbeddedDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Endpoint == "" {
		t.Error("embedded config must set an endpoint")
	}
	if cfg.Format != "eforms.zip" {
		t.Errorf("format = %q", cfg.Format)
	}
	if cfg.Language != "DEU" {
		t.Errorf("language = %q", cfg.Language)
	}
	if cfg.Fetch.TimeoutSeconds == 0 || cfg.Fetch.MaxRetries == 0 {
		t.Errorf("fetch defaults not applied: %+v", cfg.Fetch)
	}
}

func TestLoadConfigFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "harvester.yaml")

	t.Setenv("TEST_EXPORT_ENDPOINT", "http://127.0.0.1:9999/exports")

	content := "endpoint: ${TEST_EXPORT_ENDPOINT}\nlanguage: ENG\noutput_dir: /tmp/out\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Endpoint != "http://127.0.0.1:9999/exports" {
		t.Errorf("endpoint env expansion failed: %q", cfg.Endpoint)
	}
	if cfg.Language != "ENG" {
		t.Errorf("language = %q", cfg.Language)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("output_dir = %q", cfg.OutputDir)
	}
	// Unset fields still get defaults.
	if cfg.Format != "eforms.zip" || cfg.DataDir != "data" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigMissingOverrideFallsBack(t *testing.T) {
	cfg, err := LoadConfig("/does/not/exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig should fall back to embedded config: %v", err)
	}
	if cfg.Endpoint == "" {
		t.Error("fallback config missing endpoint")
	}
}
