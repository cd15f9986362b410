package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// isolate points HOME, the Claude dir and the config path at temp dirs
func isolate(t *testing.T) (home string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(ClaudeStateDirEnv, filepath.Join(home, ".claude"))
	t.Setenv(ConfigPathEnv, "")
	t.Setenv(BackendEnv, "")
	return home
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ToolDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Config{
		DaysToAnalyze:         7,
		MaxTokensPerMessage:   500,
		MaxMessagesPerSession: 50,
		ProjectsToExclude:     []string{},
		OutputDir:             filepath.Join(home, ".claude", "analysis"),
		Backend:               BackendCLI,
		Model:                 "sonnet",
		ClaudeBinary:          "claude",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if cfg.MaxCharsPerMessage() != 2000 {
		t.Errorf("MaxCharsPerMessage() = %d, want 2000", cfg.MaxCharsPerMessage())
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, `{
		"days_to_analyze": 3,
		"max_messages_per_session": 10,
		"projects_to_exclude": ["secret"],
		"output_dir": "~/reports"
	}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DaysToAnalyze != 3 {
		t.Errorf("DaysToAnalyze = %d, want 3", cfg.DaysToAnalyze)
	}
	if cfg.MaxMessagesPerSession != 10 {
		t.Errorf("MaxMessagesPerSession = %d, want 10", cfg.MaxMessagesPerSession)
	}
	// untouched fields keep their defaults
	if cfg.MaxTokensPerMessage != DefaultMaxTokensPerMessage {
		t.Errorf("MaxTokensPerMessage = %d, want default", cfg.MaxTokensPerMessage)
	}
	if diff := cmp.Diff([]string{"secret"}, cfg.ProjectsToExclude); diff != "" {
		t.Errorf("ProjectsToExclude mismatch (-want +got):\n%s", diff)
	}
	if want := filepath.Join(home, "reports"); cfg.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, want)
	}
}

func TestLoadBackendSelection(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		env         string
		wantBackend string
		wantModel   string
	}{
		{"default cli", "", "", BackendCLI, DefaultModel},
		{"api from file", `{"backend": "api"}`, "", BackendAPI, DefaultAPIModel},
		{"env overrides file", `{"backend": "api"}`, "cli", BackendCLI, DefaultModel},
		{"env uppercase", "", "API", BackendAPI, DefaultAPIModel},
		{"explicit model kept", `{"backend": "api", "model": "claude-opus-4-1"}`, "", BackendAPI, "claude-opus-4-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			if tt.file != "" {
				writeConfig(t, home, tt.file)
			}
			t.Setenv(BackendEnv, tt.env)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Backend != tt.wantBackend {
				t.Errorf("Backend = %q, want %q", cfg.Backend, tt.wantBackend)
			}
			if cfg.Model != tt.wantModel {
				t.Errorf("Model = %q, want %q", cfg.Model, tt.wantModel)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     string
		wantErr string
	}{
		{"malformed json", `{not json`, "", "failed to parse config"},
		{"negative budget", `{"max_tokens_per_message": -1}`, "", "max_tokens_per_message"},
		{"unknown backend", "", "grpc", "backend must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			if tt.file != "" {
				writeConfig(t, home, tt.file)
			}
			t.Setenv(BackendEnv, tt.env)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ToolDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, EnvFileName), []byte("CCRETRO_TEST_FROM_DOTENV=loaded\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("CCRETRO_TEST_FROM_DOTENV") })

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := os.Getenv("CCRETRO_TEST_FROM_DOTENV"); got != "loaded" {
		t.Errorf("dotenv variable = %q, want %q", got, "loaded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with output", func(c *Config) {}, false},
		{"zero messages", func(c *Config) { c.MaxMessagesPerSession = 0 }, true},
		{"zero tokens", func(c *Config) { c.MaxTokensPerMessage = 0 }, true},
		{"empty output", func(c *Config) { c.OutputDir = "" }, true},
		{"bad backend", func(c *Config) { c.Backend = "x" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.OutputDir = "/tmp/out"
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
