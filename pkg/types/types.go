package types

import "fmt"

// Finding severities
const (
	SeverityCritical = "critical"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	SeverityPositive = "positive"
)

// Finding categories the model is asked to choose from
const (
	CategoryRepeatedRequests   = "repeated_requests"
	CategoryPainPoints         = "pain_points"
	CategoryMissingContext     = "missing_context"
	CategoryAgentEffectiveness = "agent_effectiveness"
	CategoryHookOpportunities  = "hook_opportunities"
	CategoryWorkflowFriction   = "workflow_friction"
	CategoryExternalResources  = "external_resources"
)

// Categories lists every category in prompt order
var Categories = []string{
	CategoryRepeatedRequests,
	CategoryPainPoints,
	CategoryMissingContext,
	CategoryAgentEffectiveness,
	CategoryHookOpportunities,
	CategoryWorkflowFriction,
	CategoryExternalResources,
}

// Proposed change actions
const (
	ActionCreate  = "CREATE"
	ActionEdit    = "EDIT"
	ActionDelete  = "DELETE"
	ActionInstall = "INSTALL"
)

// File sentinels used by INSTALL changes
const (
	FileInstallPlugin = "INSTALL_PLUGIN"
	FileInstallSkill  = "INSTALL_SKILL"
)

// Error kinds stored under statistics["error"]
const (
	ErrorCLI         = "cli_error"
	ErrorTimeout     = "timeout"
	ErrorParseFailed = "parse_failed"
	ErrorAPI         = "api_error"
)

// Statistics keys
const (
	StatSessionsAnalyzed  = "sessions_analyzed"
	StatTotalUserMessages = "total_user_messages"
	StatProjectsTouched   = "projects_touched"
	StatDryRun            = "dry_run"
	StatError             = "error"
)

// AnalysisResult is the model's structured answer, or a sentinel standing in
// for it when the call was skipped or failed.
type AnalysisResult struct {
	Statistics      map[string]any   `json:"statistics"`
	Findings        []Finding        `json:"findings"`
	ProposedChanges []ProposedChange `json:"proposed_changes"`

	// RawResponse holds a diagnostic excerpt on error results
	RawResponse string `json:"raw_response,omitempty"`
}

// Finding is one observation about the user's workflow.
// Empty fields were absent in the model output.
type Finding struct {
	Severity       string `json:"severity"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Evidence       string `json:"evidence"`
	Impact         string `json:"impact"`
	Recommendation string `json:"recommendation"`
}

// ProposedChange is one concrete edit or installation
type ProposedChange struct {
	File    string `json:"file"`
	Action  string `json:"action"`
	Reason  string `json:"reason"`
	Content string `json:"content"`
}

// NewDryRunResult returns the sentinel produced when no model call is made
func NewDryRunResult() *AnalysisResult {
	return &AnalysisResult{
		Statistics: map[string]any{
			StatSessionsAnalyzed: 0,
			StatDryRun:           true,
		},
		Findings:        []Finding{},
		ProposedChanges: []ProposedChange{},
	}
}

// NewErrorResult returns an error-tagged result carrying a diagnostic excerpt
func NewErrorResult(kind, raw string) *AnalysisResult {
	return &AnalysisResult{
		Statistics:      map[string]any{StatError: kind},
		Findings:        []Finding{},
		ProposedChanges: []ProposedChange{},
		RawResponse:     raw,
	}
}

// Normalize replaces nil collections with empty ones
func (r *AnalysisResult) Normalize() {
	if r.Statistics == nil {
		r.Statistics = map[string]any{}
	}
	if r.Findings == nil {
		r.Findings = []Finding{}
	}
	if r.ProposedChanges == nil {
		r.ProposedChanges = []ProposedChange{}
	}
}

// ErrorKind returns statistics["error"], or "" for a normal result
func (r *AnalysisResult) ErrorKind() string {
	v, ok := r.Statistics[StatError]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IsDryRun reports whether the result is the dry-run sentinel
func (r *AnalysisResult) IsDryRun() bool {
	b, _ := r.Statistics[StatDryRun].(bool)
	return b
}

// SessionsAnalyzed returns the model-reported session count
func (r *AnalysisResult) SessionsAnalyzed() (int, bool) {
	return intStat(r.Statistics, StatSessionsAnalyzed)
}

// TotalUserMessages returns the model-reported user message count
func (r *AnalysisResult) TotalUserMessages() (int, bool) {
	return intStat(r.Statistics, StatTotalUserMessages)
}

// ProjectsTouched returns the model-reported project names.
// Non-string entries are formatted with fmt.Sprint.
func (r *AnalysisResult) ProjectsTouched() ([]string, bool) {
	v, ok := r.Statistics[StatProjectsTouched]
	if !ok || v == nil {
		return nil, false
	}
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out, true
	case string:
		return []string{list}, true
	}
	return nil, false
}

// CountSeverity counts findings with the given severity
func (r *AnalysisResult) CountSeverity(severity string) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == severity {
			n++
		}
	}
	return n
}

// intStat reads a numeric statistic. JSON numbers decode as float64.
func intStat(stats map[string]any, key string) (int, bool) {
	switch v := stats[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
