package prompt

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/discovery"
	"github.com/santaclaude2025/ccretro/pkg/logger"
	"github.com/santaclaude2025/ccretro/pkg/redactor"
	"github.com/santaclaude2025/ccretro/pkg/transcript"
	"github.com/santaclaude2025/ccretro/pkg/utils"
)

// FormatOptions bounds the sessions section of the prompt
type FormatOptions struct {
	MaxSessions     int // sessions with at least one message
	MaxMessageChars int // display cap per message, no marker added
	Redactor        *redactor.Redactor
}

// DefaultFormatOptions returns the standard prompt budgets
func DefaultFormatOptions(r *redactor.Redactor) FormatOptions {
	return FormatOptions{
		MaxSessions:     config.MaxSessionsInPrompt,
		MaxMessageChars: config.MaxPromptMessageChars,
		Redactor:        r,
	}
}

// GatherStats summarizes a Gather call
type GatherStats struct {
	Read   int // transcripts opened
	Empty  int // transcripts that produced no messages
	Failed int // transcripts that could not be read
}

// Gather extracts sessions in the given (recency) order until max sessions
// with at least one message have been collected. Unreadable transcripts are
// logged and skipped.
func Gather(fs afero.Fs, recs []discovery.SessionRecord, limits transcript.Limits, max int) ([]transcript.Session, GatherStats) {
	var sessions []transcript.Session
	var stats GatherStats

	for _, rec := range recs {
		if len(sessions) >= max {
			break
		}

		stats.Read++
		sess, err := transcript.ExtractFile(fs, rec, limits)
		if err != nil {
			logger.Warn("Skipping transcript: %v", err)
			stats.Failed++
			continue
		}
		if len(sess.Messages) == 0 {
			stats.Empty++
			continue
		}
		sessions = append(sessions, *sess)
	}

	return sessions, stats
}

// FormatSessions renders sessions for the prompt, most recent first.
// Sessions without messages are skipped and at most opts.MaxSessions are
// rendered. Returns the text and the number of sessions included.
func FormatSessions(sessions []transcript.Session, opts FormatOptions) (string, int) {
	var lines []string
	included := 0

	for _, sess := range sessions {
		if included >= opts.MaxSessions {
			break
		}
		if len(sess.Messages) == 0 {
			continue
		}
		included++

		lines = append(lines,
			"\n### Session: "+sess.Record.ShortProject(),
			"Date: "+sess.Record.ModTime.Format("2006-01-02 15:04"),
		)
		if sess.GitBranch != "" {
			lines = append(lines, "Branch: "+sess.GitBranch)
		}
		lines = append(lines, fmt.Sprintf("Messages: %d", len(sess.Messages)), "")

		for _, msg := range sess.Messages {
			lines = append(lines, fmt.Sprintf("**%s**: %s", rolePrefix(msg.Role), displayContent(msg.Content, opts)))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n"), included
}

func rolePrefix(role string) string {
	if role == transcript.TypeUser {
		return "USER"
	}
	return "CLAUDE"
}

// displayContent redacts, cuts and flattens one message for the prompt
func displayContent(content string, opts FormatOptions) string {
	if content == "" {
		return "[empty]"
	}
	content = opts.Redactor.Redact(content)
	content = utils.TruncateRunes(content, opts.MaxMessageChars)
	return utils.CollapseNewlines(content)
}
