package redactor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/santaclaude2025/ccretro/pkg/config"
)

// GetConfigPath returns ~/.ccretro/redaction.json
func GetConfigPath() (string, error) {
	dir, err := config.GetToolDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.RedactionConfigFileName), nil
}

// LoadConfig reads the redaction config at path. A missing file yields
// DefaultConfig and found=false.
func LoadConfig(fs afero.Fs, path string) (cfg Config, found bool, err error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), false, nil
	}
	if err != nil {
		return Config{}, false, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, true, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, true, nil
}

// SaveConfig writes cfg to path, creating the parent directory
func SaveConfig(fs afero.Fs, path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load builds the Redactor for a run from the config at path
func Load(fs afero.Fs, path string) (*Redactor, error) {
	cfg, _, err := LoadConfig(fs, path)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}
