package types

import (
	"encoding/json"
	"testing"
)

func TestLenientText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{``, ""},
		{`null`, ""},
		{`"plain"`, "plain"},
		{`42`, "42"},
		{`true`, "true"},
		{`[ "a", "b" ]`, `["a","b"]`},
		{`{"k": {"n": 1}}`, `{"k":{"n":1}}`},
	}
	for _, tt := range tests {
		if got := lenientText(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("lenientText(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFindingUnmarshalRejectsNonObject(t *testing.T) {
	var f Finding
	if err := json.Unmarshal([]byte(`"text"`), &f); err == nil {
		t.Error("expected error for a string finding")
	}
}
