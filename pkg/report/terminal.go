package report

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultTerminalWidth is used when the terminal size is unknown
const DefaultTerminalWidth = 100

// RenderTerminal renders Markdown for display. On renderer failure the
// Markdown is returned unchanged.
func RenderTerminal(md string, width int) string {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// SummaryMarkdown formats SummaryLines as a short Markdown block
func SummaryMarkdown(title string, lines []string) string {
	var b strings.Builder
	b.WriteString("## " + title + "\n\n")
	for _, l := range lines {
		b.WriteString("- " + l + "\n")
	}
	return b.String()
}
