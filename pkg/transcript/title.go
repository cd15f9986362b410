package transcript

import (
	"html"
	"regexp"
	"strings"

	"github.com/santaclaude2025/ccretro/pkg/utils"
)

// MaxTitleLength is the maximum length for extracted titles
const MaxTitleLength = 100

// htmlTagRegex matches HTML tags for removal
var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// titleCandidates picks a display title while records stream past.
// A summary record wins; otherwise the first human-typed user message is used.
type titleCandidates struct {
	summary   string
	firstUser string
}

func (c *titleCandidates) observe(l *Line) {
	if c.summary == "" && l.Type == TypeSummary && l.Summary != "" {
		c.summary = sanitizeTitleText(l.Summary)
		return
	}
	if c.firstUser != "" || l.Type != TypeUser || l.IsMeta || l.Message == nil {
		return
	}
	// tool results arrive as segment lists on user records
	raw := strings.TrimSpace(string(l.Message.Content))
	if !strings.HasPrefix(raw, `"`) {
		return
	}
	if text := sanitizeTitleText(l.Text()); text != "" {
		c.firstUser = utils.TruncateRunes(text, MaxTitleLength)
	}
}

func (c *titleCandidates) best() string {
	if c.summary != "" {
		return c.summary
	}
	return c.firstUser
}

// sanitizeTitleText removes HTML tags, decodes entities and collapses whitespace
func sanitizeTitleText(input string) string {
	cleaned := htmlTagRegex.ReplaceAllString(input, "")
	decoded := html.UnescapeString(cleaned)
	return strings.Join(strings.Fields(decoded), " ")
}
