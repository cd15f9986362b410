package redactor

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestLoadConfigMissingUsesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, found, err := LoadConfig(fs, "/home/u/.ccretro/redaction.json")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if found {
		t.Error("found = true for a missing file")
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/u/.ccretro/redaction.json"
	want := Config{Patterns: []Pattern{
		{Name: "internal", Pattern: `ACME-[0-9]{6}`, Type: "ticket"},
		{Name: "pw", Pattern: `(pw=)(\S+)`, Type: "password", CaptureGroup: 2},
	}}

	if err := SaveConfig(fs, path, want); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	got, found, err := LoadConfig(fs, path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !found {
		t.Error("found = false after SaveConfig")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}

	r, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := r.Redact("ACME-123456 pw=x"); got != "[REDACTED:TICKET] pw=[REDACTED:PASSWORD]" {
		t.Errorf("Redact() = %q", got)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/c/redaction.json"
	if err := afero.WriteFile(fs, path, []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadConfig(fs, path); err == nil {
		t.Error("LoadConfig() expected parse error")
	}
	if _, err := Load(fs, path); err == nil {
		t.Error("Load() expected parse error")
	}
}

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if want := filepath.Join(home, ".ccretro", "redaction.json"); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}
