package redactor

// Config is the content of ~/.ccretro/redaction.json.
// When the file exists its patterns replace the defaults.
type Config struct {
	// Disabled turns redaction off entirely
	Disabled bool      `json:"disabled,omitempty"`
	Patterns []Pattern `json:"patterns"`
}

// Pattern is one redaction rule. With CaptureGroup > 0 only that group is
// replaced; otherwise the whole match is.
type Pattern struct {
	Name         string `json:"name"`
	Pattern      string `json:"pattern"`
	Type         string `json:"type"`
	CaptureGroup int    `json:"capture_group,omitempty"`
}
