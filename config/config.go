package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the toolchain's host-facing settings: simulator resource
// limits and assembler feature gates. It has no bearing on the pure
// assemble/decode/execute contract itself, which is configuration-free.
type Config struct {
	Simulator struct {
		MemorySize uint32 `toml:"memory_size"`
		MaxCycles  uint64 `toml:"max_cycles"`
		EntryPoint uint32 `toml:"entry_point"`
		EnableFP   bool   `toml:"enable_fp"`
	} `toml:"simulator"`

	Assembler struct {
		AllowFloat  bool   `toml:"allow_float"`
		BaseAddress uint32 `toml:"base_address"`
	} `toml:"assembler"`

	Display struct {
		NumberFormat string `toml:"number_format"` // hex, dec
		MemWindow    uint32 `toml:"mem_window"`
	} `toml:"display"`
}

// DefaultConfig returns a Config populated with the toolchain's defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Simulator.MemorySize = 64 * 1024
	cfg.Simulator.MaxCycles = 1_000_000
	cfg.Simulator.EntryPoint = 0x1000
	cfg.Simulator.EnableFP = true

	cfg.Assembler.AllowFloat = true
	cfg.Assembler.BaseAddress = 0x1000

	cfg.Display.NumberFormat = "hex"
	cfg.Display.MemWindow = 64

	return cfg
}

// GetConfigPath returns the platform-specific configuration file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv32")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv32")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "rv32", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "rv32", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}
	return logDir
}

// Load reads configuration from the default config file, falling back to
// defaults when no file is present.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads configuration from path, falling back to defaults when
// path does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
