package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/santaclaude2025/ccretro/pkg/types"
)

// NotAvailable stands in for any field the model left out
const NotAvailable = "N/A"

// Metadata describes the run that produced a result
type Metadata struct {
	GeneratedAt  time.Time
	SessionCount int // sessions included in the prompt
	Days         int
}

var severityMarkers = map[string]string{
	types.SeverityCritical: "🔴",
	types.SeverityMedium:   "🟡",
	types.SeverityLow:      "🔵",
	types.SeverityPositive: "🟢",
}

// unknownMarker is used for missing or unrecognized severities
const unknownMarker = "•"

// Marker returns the display marker for a severity
func Marker(severity string) string {
	if m, ok := severityMarkers[severity]; ok {
		return m
	}
	return unknownMarker
}

// Render projects result into the Markdown report. Output depends only on
// its arguments.
func Render(result *types.AnalysisResult, meta Metadata) string {
	if result == nil {
		result = &types.AnalysisResult{}
	}
	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add(
		"# Claude Code Session Analysis",
		fmt.Sprintf("Generated: %s | Analyzed: %d sessions over %d days",
			meta.GeneratedAt.Format("2006-01-02 15:04"), meta.SessionCount, meta.Days),
		"",
	)

	add("## Statistics")
	add("- **Sessions analyzed**: " + statValue(result.Statistics, types.StatSessionsAnalyzed, strconv.Itoa(meta.SessionCount)))
	add("- **User messages**: " + statValue(result.Statistics, types.StatTotalUserMessages, NotAvailable))
	add("- **Projects**: " + projects(result))
	if result.IsDryRun() {
		add("- **Dry run**: yes")
	}
	if kind := result.ErrorKind(); kind != "" {
		add("- **Error**: " + kind)
	}
	add("")

	if result.RawResponse != "" {
		add("## Raw Response (excerpt)", "")
		add(fenced(result.RawResponse)...)
		add("")
	}

	add("## Key Findings", "")
	if len(result.Findings) == 0 {
		add("No findings reported.", "")
	}
	for _, f := range result.Findings {
		add(
			fmt.Sprintf("### %s %s", Marker(f.Severity), orNA(f.Title)),
			"**Category**: "+orNA(f.Category),
			"- **Evidence**: "+orNA(f.Evidence),
			"- **Impact**: "+orNA(f.Impact),
			"- **Recommendation**: "+orNA(f.Recommendation),
			"",
		)
	}

	add("## Proposed Changes", "")
	if len(result.ProposedChanges) == 0 {
		add("No changes proposed.", "")
	}
	for i, c := range result.ProposedChanges {
		add(
			fmt.Sprintf("### %d. %s: `%s`", i+1, orNA(c.Action), orNA(c.File)),
			"**Reason**: "+orNA(c.Reason),
			"",
		)
		add(fenced(orNA(c.Content))...)
		add("")
	}

	add("---", "## Quick Summary (for SessionStart)", "")
	for _, l := range SummaryLines(result) {
		add("- " + l)
	}

	return strings.Join(lines, "\n") + "\n"
}

// SummaryLines returns the compact summary shown at the end of the report
// and on the terminal
func SummaryLines(result *types.AnalysisResult) []string {
	var out []string

	if kind := result.ErrorKind(); kind != "" {
		out = append(out, fmt.Sprintf("⚠️ Analysis incomplete (%s)", kind))
	}

	critical := result.CountSeverity(types.SeverityCritical)
	medium := result.CountSeverity(types.SeverityMedium)
	changes := len(result.ProposedChanges)

	if critical > 0 {
		out = append(out, fmt.Sprintf("🔴 %d critical finding(s)", critical))
	}
	if medium > 0 {
		out = append(out, fmt.Sprintf("🟡 %d medium finding(s)", medium))
	}
	if changes > 0 {
		out = append(out, fmt.Sprintf("📝 %d proposed change(s)", changes))
	}
	if len(out) == 0 {
		out = append(out, "✅ No significant issues found")
	}
	return out
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// statValue formats a statistic; integral JSON numbers print without a
// fractional part
func statValue(stats map[string]any, key, fallback string) string {
	v, ok := stats[key]
	if !ok || v == nil {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return orNA(n)
	}
	return fmt.Sprint(v)
}

func projects(result *types.AnalysisResult) string {
	list, ok := result.ProjectsTouched()
	if !ok || len(list) == 0 {
		return NotAvailable
	}
	return strings.Join(list, ", ")
}

// fenced wraps content in a code fence longer than any backtick run inside it
func fenced(content string) []string {
	longest, run := 0, 0
	for _, r := range content {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", max(3, longest+1))
	return []string{fence, content, fence}
}
