package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/santaclaude2025/ccretro/pkg/logger"
)

// TranscriptExt is the extension of session transcript files
const TranscriptExt = ".jsonl"

// SessionRecord describes one transcript file selected for analysis.
// Path is the identity; records are never persisted.
type SessionRecord struct {
	Path       string
	Project    string // parent directory name with "-" replaced by "/"
	ProjectDir string // parent directory relative to the projects dir
	SessionID  string // file stem when it is a UUID, empty otherwise
	ModTime    time.Time
	SizeBytes  int64
}

// ShortProject returns the last path element of Project
func (r SessionRecord) ShortProject() string {
	if i := strings.LastIndex(r.Project, "/"); i >= 0 {
		return r.Project[i+1:]
	}
	return r.Project
}

// SelectOptions controls which sessions are selected
type SelectOptions struct {
	Days    int
	Exclude []string  // project-name substrings; empty entries are ignored
	Now     time.Time // zero means time.Now()
}

// Cutoff returns the oldest modification time still selected
func (o SelectOptions) Cutoff() time.Time {
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.Add(-time.Duration(o.Days) * 24 * time.Hour)
}

// Select walks projectsDir for transcript files modified within the window
// whose project name matches no exclusion, most recent first.
// A missing projectsDir yields no sessions and no error.
func Select(fs afero.Fs, projectsDir string, opts SelectOptions) ([]SessionRecord, error) {
	exists, err := afero.DirExists(fs, projectsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat projects directory: %w", err)
	}
	if !exists {
		return nil, nil
	}

	cutoff := opts.Cutoff()
	var sessions []SessionRecord
	var skippedPaths []string

	err = afero.Walk(fs, projectsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("Failed to access path during scan: %s: %v", path, err)
			skippedPaths = append(skippedPaths, path)
			return nil
		}

		rec := parseSessionFromPath(path, info, projectsDir)
		if rec == nil {
			return nil
		}
		if rec.ModTime.Before(cutoff) {
			return nil
		}
		if isExcluded(rec.Project, opts.Exclude) {
			logger.Debug("Excluded session %s (project %s)", path, rec.Project)
			return nil
		}

		sessions = append(sessions, *rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk projects directory: %w", err)
	}

	reportSkippedPaths(skippedPaths)

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].ModTime.Equal(sessions[j].ModTime) {
			return sessions[i].ModTime.After(sessions[j].ModTime)
		}
		return sessions[i].Path < sessions[j].Path
	})

	return sessions, nil
}

// parseSessionFromPath returns a record for transcript files, nil otherwise
func parseSessionFromPath(path string, info os.FileInfo, projectsDir string) *SessionRecord {
	if info == nil || info.IsDir() {
		return nil
	}
	if !strings.HasSuffix(info.Name(), TranscriptExt) {
		return nil
	}

	parent := filepath.Dir(path)
	relPath, err := filepath.Rel(projectsDir, parent)
	if err != nil {
		relPath = filepath.Base(parent)
	}

	stem := strings.TrimSuffix(info.Name(), TranscriptExt)
	var sessionID string
	if _, err := uuid.Parse(stem); err == nil {
		sessionID = stem
	}

	return &SessionRecord{
		Path:       path,
		Project:    strings.ReplaceAll(filepath.Base(parent), "-", "/"),
		ProjectDir: relPath,
		SessionID:  sessionID,
		ModTime:    info.ModTime(),
		SizeBytes:  info.Size(),
	}
}

func isExcluded(project string, exclude []string) bool {
	for _, sub := range exclude {
		if sub != "" && strings.Contains(project, sub) {
			return true
		}
	}
	return false
}

// reportSkippedPaths prints a user-friendly warning about paths that couldn't be accessed
func reportSkippedPaths(skippedPaths []string) {
	if len(skippedPaths) == 0 {
		return
	}

	fmt.Fprintf(os.Stderr, "\n⚠ Warning: Could not access %d path(s) during scan:\n", len(skippedPaths))
	for _, p := range skippedPaths {
		fmt.Fprintf(os.Stderr, "  - %s\n", p)
	}
	fmt.Fprintf(os.Stderr, "Check permissions or see logs at ~/.ccretro/logs/ccretro.log\n\n")
}
