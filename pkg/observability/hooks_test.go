package observability

import (
	"testing"
	"time"
)

type recordingConstraintHooks struct {
	checks    int
	committed int
	rejected  int
	optimized int
}

func (r *recordingConstraintHooks) OnPlanarityCheck(bool)          { r.checks++ }
func (r *recordingConstraintHooks) OnLinkCommitted(string, string) { r.committed++ }
func (r *recordingConstraintHooks) OnLinkRejected(string, string)  { r.rejected++ }
func (r *recordingConstraintHooks) OnOptimize(int, int, int, time.Duration) {
	r.optimized++
}

func TestConstraintHooksRegistration(t *testing.T) {
	defer Reset()

	rec := &recordingConstraintHooks{}
	SetConstraintHooks(rec)

	Constraints().OnPlanarityCheck(true)
	Constraints().OnLinkCommitted("a", "b")
	Constraints().OnLinkRejected("c", "d")
	Constraints().OnOptimize(3, 1, 2, time.Millisecond)

	if rec.checks != 1 || rec.committed != 1 || rec.rejected != 1 || rec.optimized != 1 {
		t.Errorf("hooks not invoked: %+v", rec)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	rec := &recordingConstraintHooks{}
	SetConstraintHooks(rec)
	SetConstraintHooks(nil)

	Constraints().OnPlanarityCheck(false)
	if rec.checks != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingConstraintHooks{}
	SetConstraintHooks(rec)
	Reset()

	Constraints().OnLinkCommitted("a", "b")
	if rec.committed != 0 {
		t.Error("Reset should restore noop hooks")
	}

	// Defaults never panic.
	Generation().OnSelect("S", true)
	Generation().OnMakeLink(false)
	Generation().OnGenerateComplete(0, 0, 0, 0)
	HTTP().OnRequest("GET", "/healthz")
	HTTP().OnResponse("GET", "/healthz", 200, time.Millisecond)
}
