package gen

import (
	"strings"
	"testing"

	"github.com/planline/planline/pkg/errors"
)

const sampleDict = `
[[section]]
point = "cat"
connectors = ["S", "O"]

[[section]]
point = "sat"
connectors = ["S"]

[[section]]
point = "mat"
connectors = ["O"]
`

func TestReadDictionary(t *testing.T) {
	d, err := ReadDictionary(strings.NewReader(sampleDict))
	if err != nil {
		t.Fatalf("ReadDictionary: %v", err)
	}

	if d.Len() != 3 {
		t.Errorf("Len = %d, want 3", d.Len())
	}

	s := d.Sections("S")
	if len(s) != 2 || s[0].Point != "cat" || s[1].Point != "sat" {
		t.Errorf("Sections(S) = %v", s)
	}
	if o := d.Sections("O"); len(o) != 2 {
		t.Errorf("Sections(O) = %v", o)
	}
	if unknown := d.Sections("X"); len(unknown) != 0 {
		t.Errorf("Sections(X) = %v, want empty", unknown)
	}
}

func TestReadDictionaryErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code errors.Code
	}{
		{
			name: "Empty",
			toml: "",
			code: errors.ErrCodeInvalidDictionary,
		},
		{
			name: "Malformed",
			toml: "[[section]\npoint=",
			code: errors.ErrCodeInvalidDictionary,
		},
		{
			name: "MissingPoint",
			toml: "[[section]]\nconnectors = [\"S\"]",
			code: errors.ErrCodeInvalidDictionary,
		},
		{
			name: "BadConnector",
			toml: "[[section]]\npoint = \"a\"\nconnectors = [\"has space\"]",
			code: errors.ErrCodeInvalidDictionary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDictionary(strings.NewReader(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %q, want %q (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestDictionaryAddValidation(t *testing.T) {
	d := NewDictionary()
	if err := d.Add(Section{Point: ""}); err == nil {
		t.Error("Add should reject an empty point")
	}
	if err := d.Add(Section{Point: "ok", Connectors: []Connector{{Type: ""}}}); err == nil {
		t.Error("Add should reject an empty connector type")
	}
	if err := d.Add(Section{Point: "ok", Connectors: []Connector{{Type: "S"}}}); err != nil {
		t.Errorf("Add valid section: %v", err)
	}
}

func TestLoadDictionaryMissingFile(t *testing.T) {
	_, err := LoadDictionary("/no/such/dictionary.toml")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
