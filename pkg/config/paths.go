package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetClaudeStateDir returns the Claude state directory path.
// Defaults to ~/.claude but can be overridden with CCRETRO_CLAUDE_DIR env var.
// This is useful for testing and non-standard installations.
func GetClaudeStateDir() (string, error) {
	if envDir := os.Getenv(ClaudeStateDirEnv); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ClaudeStateDir), nil
}

// GetProjectsDir returns the path to the Claude projects directory
func GetProjectsDir() (string, error) {
	return claudeSubpath(ClaudeProjectsSubdir)
}

// GetDefaultOutputDir returns where reports are written when the tool
// config does not name a directory (~/.claude/analysis).
func GetDefaultOutputDir() (string, error) {
	return claudeSubpath(AnalysisSubdir)
}

func claudeSubpath(name string) (string, error) {
	claudeDir, err := GetClaudeStateDir()
	if err != nil {
		return "", fmt.Errorf("failed to get claude state directory: %w", err)
	}
	return filepath.Join(claudeDir, name), nil
}

// GetToolDir returns the ccretro home directory (~/.ccretro)
func GetToolDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ToolDir), nil
}

// GetConfigPath returns the tool config file path.
// CCRETRO_CONFIG_PATH overrides the default ~/.ccretro/config.json.
func GetConfigPath() (string, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, nil
	}
	dir, err := GetToolDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// GetLogDir returns the log directory.
// CCRETRO_LOG_DIR overrides the default ~/.ccretro/logs.
func GetLogDir() (string, error) {
	if d := os.Getenv(LogDirEnv); d != "" {
		return d, nil
	}
	dir, err := GetToolDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogDirName), nil
}
