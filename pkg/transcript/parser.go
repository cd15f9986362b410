package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/santaclaude2025/ccretro/pkg/config"
)

// Record types we look at
const (
	TypeUser      = "user"
	TypeAssistant = "assistant"
	TypeSummary   = "summary"
)

// Line is a single record from a Claude Code transcript. Only the fields
// the extractor needs are decoded.
type Line struct {
	Type      string       `json:"type"`
	Timestamp string       `json:"timestamp,omitempty"`
	IsMeta    bool         `json:"isMeta,omitempty"`
	GitBranch string       `json:"gitBranch,omitempty"`
	CWD       string       `json:"cwd,omitempty"`
	Summary   string       `json:"summary,omitempty"`
	Message   *MessageBody `json:"message,omitempty"`
}

// MessageBody is the nested message of a user/assistant record.
// Content is either a string or a list of typed segments.
type MessageBody struct {
	Role    string          `json:"role,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// Segment is one typed element of a segmented content list
type Segment struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ParseLine decodes a single JSONL line
func ParseLine(data []byte) (*Line, error) {
	var line Line
	if err := json.Unmarshal(data, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

// IsTurn reports whether the record is a user or assistant turn
func (l *Line) IsTurn() bool {
	return l.Type == TypeUser || l.Type == TypeAssistant
}

// Role returns message.role, falling back to the record type
func (l *Line) Role() string {
	if l.Message != nil && l.Message.Role != "" {
		return l.Message.Role
	}
	return l.Type
}

// Text resolves the turn's content. String content is returned as-is;
// for segment lists only "text" segments are kept, newline-joined.
// Anything else resolves to "".
func (l *Line) Text() string {
	if l.Message == nil {
		return ""
	}
	raw := bytes.TrimSpace(l.Message.Content)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		var parts []string
		for _, item := range items {
			var seg Segment
			if err := json.Unmarshal(item, &seg); err != nil {
				// not an object
				continue
			}
			if seg.Type == "text" {
				parts = append(parts, seg.Text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

// NewJSONLScanner returns a line scanner sized for transcript records.
// Lines with thinking blocks or large tool results exceed bufio's 64KB default.
func NewJSONLScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, config.TranscriptScanBufferSize), config.MaxJSONLLineSize)
	return scanner
}
