package layout

import (
	"encoding/json"
	"io"
	"os"

	"github.com/planline/planline/pkg/errors"
)

// Link is one connection between two named points of a layout.
type Link struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Type      string `json:"type,omitempty"`
	NonPlanar bool   `json:"non_planar,omitempty"`
}

// Layout is an ordered point sequence plus the links drawn between points.
type Layout struct {
	Sequence []string `json:"sequence"`
	Links    []Link   `json:"links,omitempty"`
}

// ReadJSON decodes a JSON layout from r.
//
// The sequence must not contain duplicate points, and every link must
// reference points present in the sequence. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// ImportJSON reads a JSON layout file at path.
func ImportJSON(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open layout file: %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes the layout as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func (l *Layout) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return nil
}

// ExportJSON writes the layout to a JSON file at path.
func (l *Layout) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create layout file: %s", path)
	}
	defer f.Close()
	return l.WriteJSON(f)
}

// Validate checks the structural invariants: non-empty point names, no
// duplicate sequence points, and link endpoints that exist in the sequence.
func (l *Layout) Validate() error {
	seen := make(map[string]bool, len(l.Sequence))
	for _, p := range l.Sequence {
		if err := errors.ValidatePointID(p); err != nil {
			return err
		}
		if seen[p] {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate point in sequence: %s", p)
		}
		seen[p] = true
	}
	for _, ln := range l.Links {
		if !seen[ln.From] {
			return errors.New(errors.ErrCodePointNotFound, "link references unknown point: %s", ln.From)
		}
		if !seen[ln.To] {
			return errors.New(errors.ErrCodePointNotFound, "link references unknown point: %s", ln.To)
		}
		if ln.From == ln.To {
			return errors.New(errors.ErrCodeInvalidLayout, "link connects point to itself: %s", ln.From)
		}
	}
	return nil
}
