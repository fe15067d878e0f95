package gen

import (
	"slices"
	"testing"

	"github.com/planline/planline/pkg/errors"
)

func growDictionary(t *testing.T) *Dictionary {
	t.Helper()
	d := NewDictionary()
	sections := []Section{
		{Point: "cat", Connectors: []Connector{{Type: "S"}}},
		{Point: "mat", Connectors: []Connector{{Type: "O"}}},
	}
	for _, s := range sections {
		if err := d.Add(s); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestGrow(t *testing.T) {
	d := growDictionary(t)
	p := NewPlanarDict(d, WithLogger(quietLogger()))

	roots := []Section{{Point: "sat", Connectors: []Connector{{Type: "S"}, {Type: "O"}}}}
	result, err := Grow(p, roots, GrowOptions{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Links) != 2 {
		t.Fatalf("Links = %d, want 2", len(result.Links))
	}
	if result.Links[0].From != "sat" || result.Links[0].To != "cat" {
		t.Errorf("first link = %s-%s, want sat-cat", result.Links[0].From, result.Links[0].To)
	}
	if result.Links[1].From != "sat" || result.Links[1].To != "mat" {
		t.Errorf("second link = %s-%s, want sat-mat", result.Links[1].From, result.Links[1].To)
	}
	if !slices.Equal(result.Sequence, []string{"sat", "cat", "mat"}) {
		t.Errorf("Sequence = %v", result.Sequence)
	}
	if result.Unmet != 0 {
		t.Errorf("Unmet = %d, want 0", result.Unmet)
	}
	if !p.Constraints().IsPlanar() {
		t.Error("generated layout should be planar")
	}
}

func TestGrowUnmetConnector(t *testing.T) {
	p := NewPlanarDict(NewDictionary(), WithLogger(quietLogger()))

	roots := []Section{{Point: "lonely", Connectors: []Connector{{Type: "S"}}}}
	result, err := Grow(p, roots, GrowOptions{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}

	if result.Unmet != 1 {
		t.Errorf("Unmet = %d, want 1", result.Unmet)
	}
	if len(result.Links) != 0 {
		t.Errorf("Links = %d, want 0", len(result.Links))
	}
	if !slices.Equal(result.Sequence, []string{"lonely"}) {
		t.Errorf("Sequence = %v", result.Sequence)
	}
}

func TestGrowStepBudget(t *testing.T) {
	d := growDictionary(t)
	p := NewPlanarDict(d, WithLogger(quietLogger()))

	roots := []Section{{Point: "sat", Connectors: []Connector{{Type: "S"}, {Type: "O"}}}}
	result, err := Grow(p, roots, GrowOptions{MaxSteps: 1, Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}

	if result.Steps != 1 {
		t.Errorf("Steps = %d, want 1", result.Steps)
	}
	if len(result.Links) != 1 {
		t.Errorf("Links = %d, want 1 with a one-step budget", len(result.Links))
	}
}

func TestGrowSelfLinkSkipped(t *testing.T) {
	d := NewDictionary()
	// The only candidate for S is the requesting point itself.
	if err := d.Add(Section{Point: "loop", Connectors: []Connector{{Type: "S"}}}); err != nil {
		t.Fatal(err)
	}
	p := NewPlanarDict(d, WithLogger(quietLogger()))

	roots := []Section{{Point: "loop", Connectors: []Connector{{Type: "S"}}}}
	result, err := Grow(p, roots, GrowOptions{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Links) != 0 || result.Unmet != 1 {
		t.Errorf("self-link should be skipped: links=%d unmet=%d", len(result.Links), result.Unmet)
	}
}

func TestGrowNoRoots(t *testing.T) {
	p := NewPlanarDict(NewDictionary(), WithLogger(quietLogger()))
	_, err := Grow(p, nil, GrowOptions{Logger: quietLogger()})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %q, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestGrowCycleTerminates(t *testing.T) {
	d := NewDictionary()
	// a and b both expose X; expansion could ping-pong forever without the
	// expanded-point guard.
	if err := d.Add(Section{Point: "a", Connectors: []Connector{{Type: "X"}, {Type: "X"}}}); err != nil {
		t.Fatal(err)
	}
	if err := d.Add(Section{Point: "b", Connectors: []Connector{{Type: "X"}, {Type: "X"}}}); err != nil {
		t.Fatal(err)
	}
	p := NewPlanarDict(d, WithLogger(quietLogger()))

	roots := []Section{{Point: "root", Connectors: []Connector{{Type: "X"}}}}
	result, err := Grow(p, roots, GrowOptions{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if result.Steps > DefaultMaxSteps {
		t.Errorf("Steps = %d exceeds budget", result.Steps)
	}
}
