package layout

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planline/planline/pkg/errors"
)

func TestReadJSON(t *testing.T) {
	input := `{
		"sequence": ["the", "cat", "sat", "on", "mat"],
		"links": [
			{"from": "cat", "to": "sat"},
			{"from": "the", "to": "on", "type": "D"}
		]
	}`

	l, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(l.Sequence) != 5 {
		t.Errorf("sequence length = %d, want 5", len(l.Sequence))
	}
	if len(l.Links) != 2 {
		t.Fatalf("links length = %d, want 2", len(l.Links))
	}
	if l.Links[1].Type != "D" {
		t.Errorf("link type = %q, want D", l.Links[1].Type)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"sequence": [`, errors.ErrCodeInvalidFormat},
		{"duplicate point", `{"sequence": ["a", "b", "a"]}`, errors.ErrCodeInvalidLayout},
		{"unknown from", `{"sequence": ["a", "b"], "links": [{"from": "x", "to": "b"}]}`, errors.ErrCodePointNotFound},
		{"unknown to", `{"sequence": ["a", "b"], "links": [{"from": "a", "to": "x"}]}`, errors.ErrCodePointNotFound},
		{"self link", `{"sequence": ["a", "b"], "links": [{"from": "a", "to": "a"}]}`, errors.ErrCodeInvalidLayout},
		{"empty point", `{"sequence": [""]}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	orig := &Layout{
		Sequence: []string{"a", "b", "c"},
		Links:    []Link{{From: "a", To: "c", Type: "S"}, {From: "a", To: "b", NonPlanar: false}},
	}

	var buf bytes.Buffer
	if err := orig.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got.Sequence) != 3 || len(got.Links) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.Links[0].Type != "S" {
		t.Errorf("link type = %q, want S", got.Links[0].Type)
	}
}

func TestImportExportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")

	l := &Layout{Sequence: []string{"x", "y"}, Links: []Link{{From: "x", To: "y"}}}
	if err := l.ExportJSON(path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(got.Sequence) != 2 || len(got.Links) != 1 {
		t.Errorf("imported layout = %+v", got)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeFileNotFound {
		t.Errorf("code = %s, want %s", got, errors.ErrCodeFileNotFound)
	}
}
