package transcript

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/discovery"
	"github.com/santaclaude2025/ccretro/pkg/logger"
	"github.com/santaclaude2025/ccretro/pkg/redactor"
	"github.com/santaclaude2025/ccretro/pkg/utils"
)

// ErrLineTooLong is returned with a partial extraction when a record
// exceeds config.MaxJSONLLineSize
var ErrLineTooLong = errors.New("transcript line exceeds maximum size")

// Message is one normalized user or assistant turn
type Message struct {
	Role      string
	Content   string
	Timestamp string // raw record timestamp, may be empty
}

// Limits bounds the extracted message list. When Redactor is set, content
// is redacted before it is cut so a secret straddling the cut still matches.
type Limits struct {
	MaxCharsPerMessage    int
	MaxMessagesPerSession int
	Redactor              *redactor.Redactor
}

// LimitsFromConfig derives extraction limits from the tool configuration
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		MaxCharsPerMessage:    cfg.MaxCharsPerMessage(),
		MaxMessagesPerSession: cfg.MaxMessagesPerSession,
	}
}

// Extraction is the result of reading one transcript
type Extraction struct {
	Messages  []Message
	Skipped   int // lines that failed to parse
	GitBranch string
	CWD       string
	Title     string
}

// Session is an extracted transcript together with its selection record
type Session struct {
	Record    discovery.SessionRecord
	Messages  []Message
	GitBranch string
	CWD       string
	Title     string
}

// Extract reads JSONL records from r. Unparsable lines are skipped and
// counted; meta records are dropped; content over the character budget is
// cut with an ellipsis; only the earliest MaxMessagesPerSession turns are kept.
//
// On an over-long line the messages gathered so far are returned together
// with ErrLineTooLong.
func Extract(r io.Reader, limits Limits) (*Extraction, error) {
	ext := &Extraction{}
	titles := titleCandidates{}

	scanner := NewJSONLScanner(r)
	for scanner.Scan() {
		data := scanner.Bytes()
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}

		line, err := ParseLine(data)
		if err != nil {
			ext.Skipped++
			continue
		}

		if ext.GitBranch == "" && line.GitBranch != "" {
			ext.GitBranch = line.GitBranch
		}
		if ext.CWD == "" && line.CWD != "" {
			ext.CWD = line.CWD
		}
		titles.observe(line)

		if !line.IsTurn() {
			continue
		}

		content := line.Text()
		if line.IsMeta {
			continue
		}
		if len(ext.Messages) >= limits.MaxMessagesPerSession {
			continue
		}

		ext.Messages = append(ext.Messages, Message{
			Role:      line.Role(),
			Content:   utils.TruncateEllipsis(limits.Redactor.Redact(content), limits.MaxCharsPerMessage),
			Timestamp: line.Timestamp,
		})
	}

	ext.Title = limits.Redactor.Redact(titles.best())

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return ext, ErrLineTooLong
		}
		return ext, fmt.Errorf("failed to read transcript: %w", err)
	}
	return ext, nil
}

// ExtractFile extracts the transcript named by rec. An over-long line ends
// the read early but is not an error; the condition is logged.
func ExtractFile(fs afero.Fs, rec discovery.SessionRecord, limits Limits) (*Session, error) {
	f, err := fs.Open(rec.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()

	ext, err := Extract(f, limits)
	switch {
	case errors.Is(err, ErrLineTooLong):
		logger.Warn("Transcript %s has a line over %d bytes; kept %d messages read before it",
			rec.Path, config.MaxJSONLLineSize, len(ext.Messages))
	case err != nil:
		return nil, fmt.Errorf("%s: %w", rec.Path, err)
	}

	if ext.Skipped > 0 {
		logger.Debug("Skipped %d unparsable lines in %s", ext.Skipped, rec.Path)
	}

	return &Session{
		Record:    rec,
		Messages:  ext.Messages,
		GitBranch: ext.GitBranch,
		CWD:       ext.CWD,
		Title:     ext.Title,
	}, nil
}
