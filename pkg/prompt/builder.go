package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/redactor"
	"github.com/santaclaude2025/ccretro/pkg/types"
	"github.com/santaclaude2025/ccretro/pkg/utils"
)

// Builder assembles the analysis instruction document
type Builder struct {
	Redactor *redactor.Redactor
}

// Build combines the rendered sessions and the configuration snapshot into
// the full prompt. Every embedded field is cut to its own budget, so the
// result is bounded whatever the input size.
func (b *Builder) Build(sessionsText string, snap *config.Snapshot) string {
	if snap == nil {
		snap = &config.Snapshot{}
	}

	var sb strings.Builder

	sb.WriteString("You are analyzing Claude Code conversation history to improve the user's configuration.\n\n")
	sb.WriteString("## Current Configuration\n\n")

	sb.WriteString("### settings.json\n```json\n")
	sb.WriteString(b.settingsJSON(snap.Settings))
	sb.WriteString("\n```\n\n")

	sb.WriteString("### CLAUDE.md (truncated)\n```markdown\n")
	sb.WriteString(utils.TruncateRunes(b.Redactor.Redact(snap.ClaudeMD), config.MaxClaudeMDChars))
	sb.WriteString("\n```\n\n")

	sb.WriteString("### Available Agents\n")
	sb.WriteString(b.listing(snap.Agents, "", config.MaxAgentListingChars, "No agents configured"))
	sb.WriteString("\n\n")

	sb.WriteString("### Available Commands\n")
	sb.WriteString(b.listing(snap.Commands, "/", config.MaxCommandListingChars, "No commands configured"))
	sb.WriteString("\n\n")

	sb.WriteString("### Installed Hooks\n")
	sb.WriteString(b.hooks(snap.HookEvents))
	sb.WriteString("\n\n")

	sb.WriteString("## Recent Conversations\n\n")
	sb.WriteString(sessionsText)
	sb.WriteString("\n\n")

	sb.WriteString(analysisTask)
	sb.WriteString("\n\n")
	sb.WriteString(externalResources)
	sb.WriteString("\n\n")
	sb.WriteString(outputContract)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Be specific and actionable. Propose real changes with real content, not vague suggestions.\n"+
		"Focus on the most impactful improvements (limit to top %d findings and %d proposed changes).",
		config.MaxFindings, config.MaxProposedChanges)

	return sb.String()
}

// settingsJSON renders settings indented, redacted and cut to budget
func (b *Builder) settingsJSON(settings map[string]any) string {
	if settings == nil {
		settings = map[string]any{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(settings); err != nil {
		return "{}"
	}
	text := strings.TrimSuffix(buf.String(), "\n")
	return utils.TruncateRunes(b.Redactor.Redact(text), config.MaxSettingsChars)
}

// listing renders "- `<prefix><name>` (<description>): <content>..." lines,
// or empty when there are no definitions. The description part is omitted
// when the front matter has none.
func (b *Builder) listing(defs []config.Definition, prefix string, maxChars int, empty string) string {
	if len(defs) == 0 {
		return empty
	}
	lines := make([]string, 0, len(defs))
	for _, d := range defs {
		content := utils.TruncateRunes(b.Redactor.Redact(d.Content), maxChars)
		desc := ""
		if d.Description != "" {
			text := utils.CollapseNewlines(b.Redactor.Redact(d.Description))
			desc = " (" + utils.TruncateEllipsis(text, config.MaxDescriptionChars) + ")"
		}
		lines = append(lines, fmt.Sprintf("- `%s%s`%s: %s...", prefix, d.Name, desc, content))
	}
	return strings.Join(lines, "\n")
}

// hooks lists at most MaxHookEvents events, each cut to MaxHookEventChars
func (b *Builder) hooks(events []string) string {
	if len(events) == 0 {
		return "No hooks configured"
	}
	shown := events
	if len(shown) > config.MaxHookEvents {
		shown = shown[:config.MaxHookEvents]
	}
	lines := make([]string, 0, len(shown)+1)
	for _, event := range shown {
		lines = append(lines, "- "+utils.TruncateEllipsis(event, config.MaxHookEventChars))
	}
	if extra := len(events) - len(shown); extra > 0 {
		lines = append(lines, fmt.Sprintf("- ... and %d more", extra))
	}
	return strings.Join(lines, "\n")
}

const analysisTask = `## Analysis Task

Analyze these conversations and identify:

1. **Repeated Requests** - What does the user ask for frequently that could become a command or agent?
2. **Pain Points** - Where did things take multiple turns or go wrong?
3. **Missing Context** - What did the user have to re-explain that should be in CLAUDE.md?
4. **Agent Effectiveness** - Which agents were used? Which weren't? How did they perform?
5. **Hook Opportunities** - What manual actions could be automated with hooks?
6. **Workflow Friction** - What patterns suggest inefficiency?
7. **External Resources** - What plugins, skills, or tools from the ecosystem would help?`

const externalResources = `## Known External Resources (suggest these when relevant)

**Plugins:**
- ` + "`context7`" + ` - Live documentation lookup (useful if user frequently asks about API docs)
- ` + "`hookify`" + ` - Create hooks conversationally (useful if user creates hooks often)
- ` + "`pr-review-toolkit`" + ` - PR automation (useful for PR-heavy workflows)
- ` + "`mgrep`" + ` - Semantic code search (useful for large codebases)

**Skills/Agents (from github):**
- ` + "`obra/superpowers`" + ` - SDLC bundle: planning, reviewing, testing, debugging
- ` + "`glittercowboy/taches-cc-resources`" + ` - Meta-skills: skill-auditor, hook creation
- ` + "`fcakyon/claude-codex-settings`" + ` - Hooks for code quality and tool regulation
- ` + "`affaan-m/everything-claude-code`" + ` - security-reviewer, e2e-runner, tdd-guide agents`

var outputContract = fmt.Sprintf(`Provide your response as JSON with this structure:
{
    "statistics": {
        "sessions_analyzed": <number>,
        "total_user_messages": <number>,
        "projects_touched": [<list of project names>]
    },
    "findings": [
        {
            "severity": "%s",
            "category": "%s",
            "title": "<short title>",
            "evidence": "<specific examples from conversations>",
            "impact": "<how this affects productivity>",
            "recommendation": "<what to do about it>"
        }
    ],
    "proposed_changes": [
        {
            "file": "<exact file path or '%s' or '%s'>",
            "action": "%s",
            "reason": "<why this change helps>",
            "content": "<the actual content, diff, or install command>"
        }
    ]
}`,
	strings.Join([]string{types.SeverityCritical, types.SeverityMedium, types.SeverityLow, types.SeverityPositive}, "|"),
	strings.Join(types.Categories, "|"),
	types.FileInstallPlugin, types.FileInstallSkill,
	strings.Join([]string{types.ActionCreate, types.ActionEdit, types.ActionDelete, types.ActionInstall}, "|"),
)
