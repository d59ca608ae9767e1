package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Bake.UVChannel != 1 {
		t.Errorf("expected uv channel 1, got %d", cfg.Bake.UVChannel)
	}
	if cfg.Bake.Material == "" {
		t.Error("expected default baking material name")
	}
	if cfg.Bake.RenderPath == "" {
		t.Error("expected default render path name")
	}
	if cfg.Bake.Backend != "software" {
		t.Errorf("expected software backend by default, got %s", cfg.Bake.Backend)
	}

	if len(cfg.Resources.SearchPaths) == 0 {
		t.Error("expected at least one resource search path")
	}

	if cfg.Output.DumpImages {
		t.Error("expected dump_images to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "glowbake.yaml")

	yamlContent := `
bake:
  material: "materials/custom.yaml"
  uv_channel: 2
  render_path: "renderpaths/custom.yaml"
  backend: "opengl"

resources:
  search_paths: ["assets", "override"]

output:
  dump_dir: "dumps"
  dump_images: true

logging:
  level: "debug"
  log_file: "bake.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bake.Material != "materials/custom.yaml" {
		t.Errorf("expected custom material, got %s", cfg.Bake.Material)
	}
	if cfg.Bake.UVChannel != 2 {
		t.Errorf("expected uv channel 2, got %d", cfg.Bake.UVChannel)
	}
	if cfg.Bake.Backend != "opengl" {
		t.Errorf("expected opengl backend, got %s", cfg.Bake.Backend)
	}
	if len(cfg.Resources.SearchPaths) != 2 || cfg.Resources.SearchPaths[1] != "override" {
		t.Errorf("expected search paths [assets override], got %v", cfg.Resources.SearchPaths)
	}
	if !cfg.Output.DumpImages {
		t.Error("expected dump_images to be true")
	}
	if cfg.Output.DumpDir != "dumps" {
		t.Errorf("expected dump dir 'dumps', got %s", cfg.Output.DumpDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "bake.log" {
		t.Errorf("expected log file 'bake.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
bake:
  uv_channel: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/glowbake.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestApplyFlags(t *testing.T) {
	*flagDebug = true
	*flagBackend = "opengl"
	*flagDump = true
	defer func() {
		*flagDebug = false
		*flagBackend = ""
		*flagDump = false
	}()

	cfg := Default()
	applyFlags(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Bake.Backend != "opengl" {
		t.Errorf("expected opengl backend, got %s", cfg.Bake.Backend)
	}
	if !cfg.Output.DumpImages {
		t.Error("expected dump_images to be enabled")
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "glowbake.yaml")

	yamlContent := `
bake:
  backend: "opengl"
  uv_channel: 3
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides file.
	*flagConfig = configPath
	*flagBackend = "software"
	defer func() {
		*flagConfig = ""
		*flagBackend = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bake.Backend != "software" {
		t.Errorf("expected backend from flag, got %s", cfg.Bake.Backend)
	}
	// UV channel comes from file since no flag overrides it.
	if cfg.Bake.UVChannel != 3 {
		t.Errorf("expected uv channel 3 from file, got %d", cfg.Bake.UVChannel)
	}
}
