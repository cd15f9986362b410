package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Model backends
const (
	BackendCLI = "cli"
	BackendAPI = "api"
)

// Config holds the analyzer settings. Zero values in the config file fall
// back to the defaults in constants.go.
type Config struct {
	DaysToAnalyze         int      `json:"days_to_analyze,omitempty"`
	MaxTokensPerMessage   int      `json:"max_tokens_per_message,omitempty"`
	MaxMessagesPerSession int      `json:"max_messages_per_session,omitempty"`
	ProjectsToExclude     []string `json:"projects_to_exclude,omitempty"`
	OutputDir             string   `json:"output_dir,omitempty"`
	Backend               string   `json:"backend,omitempty"`
	Model                 string   `json:"model,omitempty"`
	ClaudeBinary          string   `json:"claude_binary,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DaysToAnalyze:         DefaultDaysToAnalyze,
		MaxTokensPerMessage:   DefaultMaxTokensPerMessage,
		MaxMessagesPerSession: DefaultMaxMessagesPerSession,
		ProjectsToExclude:     []string{},
		Backend:               BackendCLI,
		ClaudeBinary:          DefaultClaudeBinary,
	}
}

// Load resolves the configuration: ~/.ccretro/.env is loaded into the
// environment (existing variables win), then ~/.ccretro/config.json is
// overlaid on the defaults, then CCRETRO_BACKEND is applied.
// A missing config file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := Default()

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		var fileCfg Config
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
		cfg.merge(&fileCfg)
	}

	if backend := os.Getenv(BackendEnv); backend != "" {
		cfg.Backend = strings.ToLower(backend)
	}

	if cfg.OutputDir == "" {
		outDir, err := GetDefaultOutputDir()
		if err != nil {
			return nil, err
		}
		cfg.OutputDir = outDir
	}
	cfg.OutputDir = expandPath(cfg.OutputDir)

	if cfg.Model == "" {
		cfg.Model = DefaultModel
		if cfg.Backend == BackendAPI {
			cfg.Model = DefaultAPIModel
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// merge overlays the non-zero fields of other onto c
func (c *Config) merge(other *Config) {
	if other.DaysToAnalyze != 0 {
		c.DaysToAnalyze = other.DaysToAnalyze
	}
	if other.MaxTokensPerMessage != 0 {
		c.MaxTokensPerMessage = other.MaxTokensPerMessage
	}
	if other.MaxMessagesPerSession != 0 {
		c.MaxMessagesPerSession = other.MaxMessagesPerSession
	}
	if other.ProjectsToExclude != nil {
		c.ProjectsToExclude = other.ProjectsToExclude
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.Backend != "" {
		c.Backend = strings.ToLower(other.Backend)
	}
	if other.Model != "" {
		c.Model = other.Model
	}
	if other.ClaudeBinary != "" {
		c.ClaudeBinary = other.ClaudeBinary
	}
}

// Validate checks that the budgets are usable
func (c *Config) Validate() error {
	if c.MaxTokensPerMessage <= 0 {
		return fmt.Errorf("max_tokens_per_message must be > 0, got %d", c.MaxTokensPerMessage)
	}
	if c.MaxMessagesPerSession <= 0 {
		return fmt.Errorf("max_messages_per_session must be > 0, got %d", c.MaxMessagesPerSession)
	}
	if c.Backend != BackendCLI && c.Backend != BackendAPI {
		return fmt.Errorf("backend must be %q or %q, got %q", BackendCLI, BackendAPI, c.Backend)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	return nil
}

// MaxCharsPerMessage converts the per-message token budget to characters
func (c *Config) MaxCharsPerMessage() int {
	return c.MaxTokensPerMessage * CharsPerToken
}

func loadEnvFile() {
	dir, err := GetToolDir()
	if err != nil {
		return
	}
	// A missing .env is the common case
	_ = godotenv.Load(filepath.Join(dir, EnvFileName))
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
