package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulator.MemorySize != 64*1024 {
		t.Errorf("Expected MemorySize=65536, got %d", cfg.Simulator.MemorySize)
	}
	if cfg.Simulator.MaxCycles != 1_000_000 {
		t.Errorf("Expected MaxCycles=1000000, got %d", cfg.Simulator.MaxCycles)
	}
	if cfg.Simulator.EntryPoint != 0x1000 {
		t.Errorf("Expected EntryPoint=0x1000, got 0x%x", cfg.Simulator.EntryPoint)
	}
	if !cfg.Assembler.AllowFloat {
		t.Error("Expected AllowFloat=true")
	}
	if cfg.Assembler.BaseAddress != 0x1000 {
		t.Errorf("Expected BaseAddress=0x1000, got 0x%x", cfg.Assembler.BaseAddress)
	}
	if cfg.Display.NumberFormat != "hex" {
		t.Errorf("Expected NumberFormat=hex, got %s", cfg.Display.NumberFormat)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Simulator.MaxCycles = 5_000_000
	cfg.Assembler.AllowFloat = false

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loaded.Simulator.MaxCycles != 5_000_000 {
		t.Errorf("Expected MaxCycles=5000000, got %d", loaded.Simulator.MaxCycles)
	}
	if loaded.Assembler.AllowFloat {
		t.Error("Expected AllowFloat=false after reload")
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom on a missing file should not error, got: %v", err)
	}
	if cfg.Simulator.MaxCycles != DefaultConfig().Simulator.MaxCycles {
		t.Error("expected default config when file is missing")
	}
}
