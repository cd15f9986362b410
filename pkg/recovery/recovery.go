// Package recovery pulls the structured analysis result out of free-form
// model output.
//
// Candidate selection and decoding are separate steps: strategies never
// fail, they only decline, and Decode is the single fallible step.
package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/types"
	"github.com/santaclaude2025/ccretro/pkg/utils"
)

// ErrNotObject is returned by Decode when the candidate is not a JSON object
var ErrNotObject = errors.New("response is not a JSON object")

// Strategy proposes the text believed to hold the JSON object.
// ok=false means the strategy does not apply.
type Strategy func(text string) (candidate string, ok bool)

// Strategies lists the strategies in priority order
var Strategies = []Strategy{FencedBlock, LeadingObject, BraceSlice}

// fencedObject matches the first ``` or ```json fence whose body is an
// object. The object match is non-greedy, so the closing fence nearest to
// a "}" wins.
var fencedObject = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// FencedBlock extracts the object from a fenced code block
func FencedBlock(text string) (string, bool) {
	m := fencedObject.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LeadingObject accepts text whose first non-whitespace character is "{".
// The text is returned unchanged.
func LeadingObject(text string) (string, bool) {
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		return text, true
	}
	return "", false
}

// BraceSlice returns the span from the first "{" to the last "}" inclusive
func BraceSlice(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// Candidate runs the strategies in order and returns the first proposal,
// or text itself when none applies
func Candidate(text string) string {
	for _, s := range Strategies {
		if c, ok := s(text); ok {
			return c
		}
	}
	return text
}

// Decode parses a candidate into an AnalysisResult. Missing collections are
// normalized to empty ones.
func Decode(candidate string) (*types.AnalysisResult, error) {
	if !strings.HasPrefix(strings.TrimSpace(candidate), "{") {
		return nil, ErrNotObject
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	// the model contract has no raw_response
	result.RawResponse = ""
	result.Normalize()
	return &result, nil
}

// Recover turns raw model output into a result. It never returns nil: when
// decoding fails the parse_failed sentinel is returned with the first
// characters of raw for diagnosis.
func Recover(raw string) *types.AnalysisResult {
	result, err := Decode(Candidate(raw))
	if err != nil {
		return ParseFailed(raw)
	}
	return result
}

// ParseFailed returns the parse_failed sentinel for raw
func ParseFailed(raw string) *types.AnalysisResult {
	return types.NewErrorResult(types.ErrorParseFailed, utils.TruncateRunes(raw, config.MaxRawResponseExcerpt))
}
