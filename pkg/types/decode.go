package types

import (
	"bytes"
	"encoding/json"
)

// Model answers are decoded leniently so one off-type field does not cost
// the whole result. A statistics value that is not an object becomes empty,
// list entries that are not objects are dropped, and text fields holding
// non-string JSON keep that JSON in compact form.

// UnmarshalJSON implements json.Unmarshaler
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Statistics      json.RawMessage `json:"statistics"`
		Findings        json.RawMessage `json:"findings"`
		ProposedChanges json.RawMessage `json:"proposed_changes"`
		RawResponse     json.RawMessage `json:"raw_response"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var stats map[string]any
	if isObject(aux.Statistics) {
		if err := json.Unmarshal(aux.Statistics, &stats); err != nil {
			stats = nil
		}
	}

	*r = AnalysisResult{
		Statistics:      stats,
		Findings:        decodeObjects[Finding](aux.Findings),
		ProposedChanges: decodeObjects[ProposedChange](aux.ProposedChanges),
		RawResponse:     lenientText(aux.RawResponse),
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Finding) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*f = Finding{
		Severity:       lenientText(fields["severity"]),
		Category:       lenientText(fields["category"]),
		Title:          lenientText(fields["title"]),
		Evidence:       lenientText(fields["evidence"]),
		Impact:         lenientText(fields["impact"]),
		Recommendation: lenientText(fields["recommendation"]),
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (c *ProposedChange) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*c = ProposedChange{
		File:    lenientText(fields["file"]),
		Action:  lenientText(fields["action"]),
		Reason:  lenientText(fields["reason"]),
		Content: lenientText(fields["content"]),
	}
	return nil
}

// decodeObjects decodes the object entries of a JSON array. Anything that
// is not an array yields nil.
func decodeObjects[T any](raw json.RawMessage) []T {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// lenientText returns a JSON string's value, "" for null or absent, and
// compact JSON for any other value
func lenientText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
