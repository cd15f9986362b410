package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestLoadSnapshotEmptyDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	snap := LoadSnapshot(fs, "/home/u/.claude")

	if len(snap.Settings) != 0 {
		t.Errorf("Settings = %v, want empty", snap.Settings)
	}
	if snap.ClaudeMD != "" || snap.Agents != nil || snap.Commands != nil || snap.HookEvents != nil {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
	if len(snap.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", snap.Skipped)
	}
}

func TestLoadSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/home/u/.claude"

	files := map[string]string{
		dir + "/settings.json": `{
			"model": "opus",
			"hooks": {
				"Stop": [{"matcher": "", "hooks": [{"type": "command", "command": "a"}, {"type": "command", "command": "b"}]}],
				"PreToolUse": [{"matcher": "Bash", "hooks": [{"type": "command", "command": "c"}]}],
				"Empty": []
			}
		}`,
		dir + "/CLAUDE.md":               "# Rules\nBe terse.",
		dir + "/agents/reviewer.md":      "---\nname: reviewer\ndescription: Reviews diffs\n---\nBody",
		dir + "/agents/CLAUDE.md":        "ignored",
		dir + "/agents/notes.txt":        "ignored",
		dir + "/commands/ship.md":        "Ship it " + strings.Repeat("x", 600),
		dir + "/commands/alpha.md":       "\ufeff---\ndescription: First\n---\n",
		dir + "/commands/nested/deep.md": "not globbed",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	snap := LoadSnapshot(fs, dir)

	if snap.Settings["model"] != "opus" {
		t.Errorf("Settings[model] = %v, want opus", snap.Settings["model"])
	}
	if diff := cmp.Diff([]string{"PreToolUse (1 hook)", "Stop (2 hooks)"}, snap.HookEvents); diff != "" {
		t.Errorf("HookEvents mismatch (-want +got):\n%s", diff)
	}
	if snap.ClaudeMD != "# Rules\nBe terse." {
		t.Errorf("ClaudeMD = %q", snap.ClaudeMD)
	}

	if len(snap.Agents) != 1 {
		t.Fatalf("Agents = %+v, want 1", snap.Agents)
	}
	if snap.Agents[0].Name != "reviewer" || snap.Agents[0].Description != "Reviews diffs" {
		t.Errorf("Agent = %+v", snap.Agents[0])
	}

	if len(snap.Commands) != 2 {
		t.Fatalf("Commands = %+v, want 2", snap.Commands)
	}
	if snap.Commands[0].Name != "alpha" || snap.Commands[0].Description != "First" {
		t.Errorf("Commands[0] = %+v", snap.Commands[0])
	}
	if n := len([]rune(snap.Commands[1].Content)); n != MaxCommandLoadChars {
		t.Errorf("command content length = %d, want %d", n, MaxCommandLoadChars)
	}
}

func TestLoadSnapshotMalformedSettings(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/c"
	if err := afero.WriteFile(fs, dir+"/settings.json", []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, dir+"/CLAUDE.md", []byte("still read"), 0644); err != nil {
		t.Fatal(err)
	}

	snap := LoadSnapshot(fs, dir)

	if len(snap.Settings) != 0 {
		t.Errorf("Settings = %v, want empty", snap.Settings)
	}
	if len(snap.Skipped) != 1 {
		t.Errorf("Skipped = %v, want one entry", snap.Skipped)
	}
	if snap.ClaudeMD != "still read" {
		t.Errorf("ClaudeMD = %q", snap.ClaudeMD)
	}
}

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   string
	}{
		{"valid", "---\ndescription: hi\n---\nbody", true, "hi"},
		{"no front matter", "# Title", false, ""},
		{"unterminated", "---\ndescription: hi\n", false, ""},
		{"dashes with text", "--- x\ndescription: hi\n---\n", false, ""},
		{"bad yaml", "---\ndescription: [unclosed\n---\n", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, ok := parseFrontMatter([]byte(tt.input))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if fm.Description != tt.want {
				t.Errorf("Description = %q, want %q", fm.Description, tt.want)
			}
		})
	}
}
