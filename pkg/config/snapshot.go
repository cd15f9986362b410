package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/santaclaude2025/ccretro/pkg/utils"
)

// ClaudeSettings is the part of ~/.claude/settings.json we interpret.
// The full document is kept verbatim in Snapshot.Settings.
type ClaudeSettings struct {
	Hooks map[string][]HookMatcher `json:"hooks,omitempty"`
}

// HookMatcher represents a hook matcher configuration
type HookMatcher struct {
	Matcher string `json:"matcher"`
	Hooks   []Hook `json:"hooks"`
}

// Hook represents a single hook command
type Hook struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// Definition is one named agent or slash command
type Definition struct {
	Name        string
	Description string // from YAML front matter, may be empty
	Content     string // file content, truncated at load time
}

// Snapshot is a read-only view of the user's Claude Code configuration
type Snapshot struct {
	Settings   map[string]any
	ClaudeMD   string
	Agents     []Definition
	Commands   []Definition
	HookEvents []string

	// Skipped lists fragments that could not be read or parsed
	Skipped []string
}

// frontMatter is the subset of agent/command front matter we surface
type frontMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// LoadSnapshot reads settings.json, CLAUDE.md, agents/*.md and commands/*.md
// from claudeDir. Missing pieces leave their field empty; unreadable or
// malformed pieces are recorded in Skipped and otherwise ignored.
func LoadSnapshot(fs afero.Fs, claudeDir string) *Snapshot {
	snap := &Snapshot{
		Settings: map[string]any{},
	}

	snap.loadSettings(fs, filepath.Join(claudeDir, ClaudeSettingsFile))

	if data, ok := snap.readOptional(fs, filepath.Join(claudeDir, ClaudeMDFile)); ok {
		snap.ClaudeMD = string(data)
	}

	snap.Agents = snap.loadDefinitions(fs, filepath.Join(claudeDir, ClaudeAgentsSubdir), MaxAgentLoadChars, true)
	snap.Commands = snap.loadDefinitions(fs, filepath.Join(claudeDir, ClaudeCommandsSubdir), MaxCommandLoadChars, false)

	return snap
}

func (s *Snapshot) loadSettings(fs afero.Fs, path string) {
	data, ok := s.readOptional(fs, path)
	if !ok {
		return
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		s.Skipped = append(s.Skipped, fmt.Sprintf("%s: %v", path, err))
		return
	}
	if settings != nil {
		s.Settings = settings
	}

	var typed ClaudeSettings
	if err := json.Unmarshal(data, &typed); err != nil {
		// hooks has an unexpected shape; the raw settings are still embedded
		s.Skipped = append(s.Skipped, fmt.Sprintf("%s (hooks): %v", path, err))
		return
	}
	s.HookEvents = summarizeHooks(typed.Hooks)
}

// summarizeHooks renders "Event (N hooks)" per configured event, sorted
func summarizeHooks(hooks map[string][]HookMatcher) []string {
	var events []string
	for event, matchers := range hooks {
		count := 0
		for _, m := range matchers {
			count += len(m.Hooks)
		}
		if count == 0 {
			continue
		}
		events = append(events, fmt.Sprintf("%s (%d %s)", event, count, plural(count, "hook")))
	}
	sort.Strings(events)
	return events
}

func (s *Snapshot) loadDefinitions(fs afero.Fs, dir string, maxChars int, skipClaudeMD bool) []Definition {
	if exists, _ := afero.DirExists(fs, dir); !exists {
		return nil
	}

	matches, err := afero.Glob(fs, filepath.Join(dir, "*.md"))
	if err != nil {
		s.Skipped = append(s.Skipped, fmt.Sprintf("%s: %v", dir, err))
		return nil
	}
	sort.Strings(matches)

	var defs []Definition
	for _, path := range matches {
		base := filepath.Base(path)
		if skipClaudeMD && base == ClaudeMDFile {
			continue
		}

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			s.Skipped = append(s.Skipped, fmt.Sprintf("%s: %v", path, err))
			continue
		}

		def := Definition{
			Name:    strings.TrimSuffix(base, ".md"),
			Content: utils.TruncateRunes(string(data), maxChars),
		}
		if fm, ok := parseFrontMatter(data); ok {
			def.Description = fm.Description
		}
		defs = append(defs, def)
	}
	return defs
}

// readOptional returns (nil, false) for a missing file and records any
// other read failure.
func (s *Snapshot) readOptional(fs afero.Fs, path string) ([]byte, bool) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		s.Skipped = append(s.Skipped, fmt.Sprintf("%s: %v", path, err))
		return nil, false
	}
	if !exists {
		return nil, false
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		s.Skipped = append(s.Skipped, fmt.Sprintf("%s: %v", path, err))
		return nil, false
	}
	return data, true
}

// parseFrontMatter decodes a leading "---" delimited YAML block
func parseFrontMatter(data []byte) (frontMatter, bool) {
	var fm frontMatter

	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if !bytes.HasPrefix(data, []byte("---")) {
		return fm, false
	}
	rest := data[3:]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return fm, false
	}
	rest = rest[nl+1:]

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return fm, false
	}

	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, false
	}
	return fm, true
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
