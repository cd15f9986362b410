package redactor

import (
	"fmt"
	"regexp"
	"strings"
)

// Redactor replaces secrets in text with [REDACTED:TYPE] markers before the
// text is embedded in the analysis prompt.
type Redactor struct {
	patterns []compiledPattern
	count    int
}

type compiledPattern struct {
	name         string
	regex        *regexp.Regexp
	marker       string
	captureGroup int
}

// New compiles cfg. A disabled config yields a Redactor that changes nothing.
func New(cfg Config) (*Redactor, error) {
	r := &Redactor{}
	if cfg.Disabled {
		return r, nil
	}

	for _, p := range cfg.Patterns {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern '%s': %w", p.Name, err)
		}
		if p.CaptureGroup > regex.NumSubexp() {
			return nil, fmt.Errorf("pattern '%s' has no capture group %d", p.Name, p.CaptureGroup)
		}

		r.patterns = append(r.patterns, compiledPattern{
			name:         p.Name,
			regex:        regex,
			marker:       fmt.Sprintf("[REDACTED:%s]", strings.ToUpper(p.Type)),
			captureGroup: p.CaptureGroup,
		})
	}
	return r, nil
}

// Nop returns a Redactor with no patterns
func Nop() *Redactor {
	return &Redactor{}
}

// Redact applies every pattern in order. Safe on a nil receiver.
func (r *Redactor) Redact(input string) string {
	if r == nil {
		return input
	}
	result := input
	for _, p := range r.patterns {
		result = r.apply(result, p)
	}
	return result
}

// Count returns how many replacements Redact has made so far
func (r *Redactor) Count() int {
	if r == nil {
		return 0
	}
	return r.count
}

// PatternCount returns the number of active patterns
func (r *Redactor) PatternCount() int {
	if r == nil {
		return 0
	}
	return len(r.patterns)
}

// apply rewrites every match of p, replacing either the whole match or
// only the configured capture group
func (r *Redactor) apply(input string, p compiledPattern) string {
	matches := p.regex.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if p.captureGroup > 0 {
			start, end = m[2*p.captureGroup], m[2*p.captureGroup+1]
			if start < 0 {
				// group did not participate in this match
				continue
			}
		}
		b.WriteString(input[last:start])
		b.WriteString(p.marker)
		last = end
		r.count++
	}
	b.WriteString(input[last:])
	return b.String()
}
