package diag

import (
	"strings"
	"testing"

	"github.com/sentra-lang/typeset/internal/world"
)

func TestSinkCollectsAll(t *testing.T) {
	var sink Sink
	sink.Errorf(world.DetachedSpan, "first problem")
	sink.Warnf(world.DetachedSpan, "a warning")
	sink.Errorf(world.DetachedSpan, "second problem")

	if len(sink.All()) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(sink.All()))
	}
	if !sink.HasErrors() {
		t.Fatal("expected HasErrors to be true")
	}
}

func TestSinkNoErrors(t *testing.T) {
	var sink Sink
	sink.Warnf(world.DetachedSpan, "just a warning")
	if sink.HasErrors() {
		t.Fatal("expected HasErrors to be false with only warnings")
	}
}

func TestDiagnosticErrorIncludesTraceAndHints(t *testing.T) {
	d := Error(world.DetachedSpan, "unexpected type %s", "integer").
		WithTrace(world.DetachedSpan, "evaluating this call").
		WithHint("did you mean to convert it first?")

	msg := d.Error()
	if !strings.Contains(msg, "unexpected type integer") {
		t.Fatalf("missing base message: %q", msg)
	}
	if !strings.Contains(msg, "evaluating this call") {
		t.Fatalf("missing trace: %q", msg)
	}
	if !strings.Contains(msg, "did you mean to convert it first?") {
		t.Fatalf("missing hint: %q", msg)
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		SeverityError:   "error",
		SeverityWarning: "warning",
		SeverityHint:    "hint",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Fatalf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
