package gen

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/planline/planline/pkg/errors"
)

// Dictionary is a read-only catalog of sections indexed by connector type.
// It backs the standalone [Planar] adapter: when no inner Callback is
// wrapped, Select falls back to the dictionary's first matching entry.
//
// Build a dictionary with Add calls or load one from TOML:
//
//	[[section]]
//	point = "cat"
//	connectors = ["S", "O"]
//
// A Dictionary is safe for concurrent reads once fully built.
type Dictionary struct {
	sections []Section
	byType   map[string][]Section
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{byType: make(map[string][]Section)}
}

// Add appends a section and indexes it under each of its connector types.
// Returns a validation error if the point or a connector type is malformed.
func (d *Dictionary) Add(s Section) error {
	if err := errors.ValidatePointID(s.Point); err != nil {
		return err
	}
	for _, c := range s.Connectors {
		if err := errors.ValidateConnectorType(c.Type); err != nil {
			return err
		}
	}

	d.sections = append(d.sections, s)
	for _, c := range s.Connectors {
		d.byType[c.Type] = append(d.byType[c.Type], s)
	}
	return nil
}

// Sections returns the sections carrying a connector of the given type, in
// insertion order. The returned slice is shared; treat it as read-only.
func (d *Dictionary) Sections(connectorType string) []Section {
	return d.byType[connectorType]
}

// All returns every section in insertion order.
// The returned slice is shared; treat it as read-only.
func (d *Dictionary) All() []Section {
	return d.sections
}

// Len returns the number of sections in the dictionary.
func (d *Dictionary) Len() int { return len(d.sections) }

// tomlDictionary is the on-disk dictionary layout.
type tomlDictionary struct {
	Sections []tomlSection `toml:"section"`
}

type tomlSection struct {
	Point      string   `toml:"point"`
	Connectors []string `toml:"connectors"`
}

// ReadDictionary parses a TOML dictionary from r.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDictionary, err, "read dictionary")
	}

	var doc tomlDictionary
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDictionary, err, "parse dictionary TOML")
	}
	if len(doc.Sections) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDictionary, "dictionary has no [[section]] entries")
	}

	d := NewDictionary()
	for _, ts := range doc.Sections {
		s := Section{Point: ts.Point}
		for _, typ := range ts.Connectors {
			s.Connectors = append(s.Connectors, Connector{Type: typ})
		}
		if err := d.Add(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDictionary, err, "section %q", ts.Point)
		}
	}
	return d, nil
}

// LoadDictionary reads a TOML dictionary from a file.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dictionary %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open dictionary %s", path)
	}
	defer f.Close()
	return ReadDictionary(f)
}
