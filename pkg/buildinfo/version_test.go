package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	if !strings.Contains(s, Version) || !strings.Contains(s, Commit) || !strings.Contains(s, Date) {
		t.Errorf("String() = %q, missing build fields", s)
	}
	if strings.Contains(s, "\n") {
		t.Errorf("String() = %q, should be a single line", s)
	}
}

func TestTemplate(t *testing.T) {
	tpl := Template()
	if !strings.Contains(tpl, "{{.Name}}") {
		t.Errorf("Template() = %q, missing command name placeholder", tpl)
	}
	if !strings.Contains(tpl, Version) || !strings.Contains(tpl, Commit) {
		t.Errorf("Template() = %q, missing build fields", tpl)
	}
}
