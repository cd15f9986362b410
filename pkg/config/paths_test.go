package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetClaudeStateDir(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name   string
		envVal string
		want   string
	}{
		{
			name:   "default to ~/.claude",
			envVal: "",
			want:   filepath.Join(home, ".claude"),
		},
		{
			name:   "override with env var",
			envVal: "/tmp/custom-claude",
			want:   "/tmp/custom-claude",
		},
		{
			name:   "override with relative path",
			envVal: "my-claude-dir",
			want:   "my-claude-dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ClaudeStateDirEnv, tt.envVal)

			got, err := GetClaudeStateDir()
			if err != nil {
				t.Fatalf("GetClaudeStateDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetClaudeStateDir() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClaudeSubpaths(t *testing.T) {
	t.Setenv(ClaudeStateDirEnv, "/tmp/test-claude")

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"projects", GetProjectsDir, "/tmp/test-claude/projects"},
		{"output", GetDefaultOutputDir, "/tmp/test-claude/analysis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToolPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(ConfigPathEnv, "")
	t.Setenv(LogDirEnv, "")

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if want := filepath.Join(home, ".ccretro", "config.json"); configPath != want {
		t.Errorf("GetConfigPath() = %v, want %v", configPath, want)
	}

	logDir, err := GetLogDir()
	if err != nil {
		t.Fatalf("GetLogDir() error = %v", err)
	}
	if want := filepath.Join(home, ".ccretro", "logs"); logDir != want {
		t.Errorf("GetLogDir() = %v, want %v", logDir, want)
	}

	t.Setenv(ConfigPathEnv, "/etc/ccretro.json")
	t.Setenv(LogDirEnv, "/var/log/ccretro")

	if got, _ := GetConfigPath(); got != "/etc/ccretro.json" {
		t.Errorf("GetConfigPath() with override = %v", got)
	}
	if got, _ := GetLogDir(); got != "/var/log/ccretro" {
		t.Errorf("GetLogDir() with override = %v", got)
	}
}
