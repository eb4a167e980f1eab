package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/forgecad/scadview/pkg/convert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Window.Height)
	}

	if cfg.Conversion.Timeout != convert.DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", convert.DefaultTimeout, cfg.Conversion.Timeout)
	}
	if cfg.Conversion.MaxComplexity != convert.DefaultMaxComplexity {
		t.Errorf("expected max complexity %d, got %d",
			convert.DefaultMaxComplexity, cfg.Conversion.MaxComplexity)
	}
	if cfg.Conversion.Material.Color != "#00ff88" {
		t.Errorf("expected default color #00ff88, got %s", cfg.Conversion.Material.Color)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
conversion:
  timeout: 3s
  max_complexity: 10000
  mesh_cells: 64
  material:
    color: "#ff0000"
    opacity: 0.5

window:
  width: 1920
  height: 1080

logging:
  level: "debug"
  log_file: "scadview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Conversion.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.Conversion.Timeout)
	}
	if cfg.Conversion.MaxComplexity != 10000 {
		t.Errorf("expected max complexity 10000, got %d", cfg.Conversion.MaxComplexity)
	}
	if cfg.Conversion.MeshCells != 64 {
		t.Errorf("expected mesh cells 64, got %d", cfg.Conversion.MeshCells)
	}
	if cfg.Conversion.Material.Color != "#ff0000" {
		t.Errorf("expected color #ff0000, got %s", cfg.Conversion.Material.Color)
	}
	if cfg.Conversion.Material.Opacity != 0.5 {
		t.Errorf("expected opacity 0.5, got %f", cfg.Conversion.Material.Opacity)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected window 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scadview.log" {
		t.Errorf("expected log file 'scadview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
conversion:
  timeout: not a duration
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
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 999
	cfg.Conversion.MeshCells = 48
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Window.Width != 999 {
		t.Errorf("expected width 999 after round trip, got %d", loaded.Window.Width)
	}
	if loaded.Conversion.MeshCells != 48 {
		t.Errorf("expected mesh cells 48 after round trip, got %d", loaded.Conversion.MeshCells)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}
