package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/santaclaude2025/ccretro/pkg/redactor"
)

func useRedactionFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	old := redactionFs
	redactionFs = fs
	t.Cleanup(func() { redactionFs = old })
	return fs
}

func TestRedactionDisableEnable(t *testing.T) {
	setupTestEnv(t)
	fs := useRedactionFs(t)
	path, err := redactor.GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := setRedactionDisabled(&out, true); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if !strings.Contains(out.String(), "Initializing with default patterns") {
		t.Errorf("first disable should initialize the config:\n%s", out.String())
	}

	cfg, found, err := redactor.LoadConfig(fs, path)
	if err != nil || !found {
		t.Fatalf("LoadConfig: found=%v err=%v", found, err)
	}
	if !cfg.Disabled {
		t.Error("config should be disabled")
	}
	if len(cfg.Patterns) != len(redactor.DefaultPatterns()) {
		t.Errorf("patterns = %d, want defaults", len(cfg.Patterns))
	}

	out.Reset()
	if err := setRedactionDisabled(&out, false); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if strings.Contains(out.String(), "Initializing") {
		t.Error("enable should reuse the existing config")
	}
	cfg, _, _ = redactor.LoadConfig(fs, path)
	if cfg.Disabled {
		t.Error("config should be enabled")
	}
}

func TestRedactionStatus(t *testing.T) {
	setupTestEnv(t)
	useRedactionFs(t)

	var out bytes.Buffer
	if err := printRedactionStatus(&out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"Status: ✓ Enabled", "built-in defaults", "Patterns: 16 configured", "  - api_key: 2 pattern(s)"} {
		if !strings.Contains(got, want) {
			t.Errorf("status missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	if err := setRedactionDisabled(&bytes.Buffer{}, true); err != nil {
		t.Fatal(err)
	}
	if err := printRedactionStatus(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Status: ✗ Disabled") {
		t.Errorf("status after disable:\n%s", out.String())
	}
}
