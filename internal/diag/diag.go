// Package diag implements the evaluator and layouter's diagnostic model: an
// open set of severities, a span-attributed message, optional trace points
// accumulated as a diagnostic propagates out through nested calls, and a
// sink that collects every diagnostic produced during a compilation instead
// of stopping at the first one.
//
// Grounded on the teacher's internal/errors/errors.go (SentraError's
// Type/Message/Location/CallStack/Source shape), generalized from a single
// struct carrying one call stack into an open Severity tag with a growing
// Trace slice, and from a single thrown value into a Sink collecting many.
// Multi-line message indentation uses github.com/kr/text, matching the
// pack's convention for wrapping diagnostic text.
package diag

import (
	"fmt"
	"strings"

	"github.com/kr/text"

	"github.com/sentra-lang/typeset/internal/world"
)

// Severity tags how a Diagnostic should be surfaced.
type Severity byte

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Tracepoint records one step of context as a diagnostic propagates out of
// nested evaluation (e.g. "while evaluating this show rule", "while calling
// this function").
type Tracepoint struct {
	Span    world.Span
	Message string
}

// Diagnostic is one reported problem, attributed to a source span, with an
// optional chain of trace points showing how evaluation got there and a
// list of hints suggesting a fix.
type Diagnostic struct {
	Severity Severity
	Span     world.Span
	Message  string
	Trace    []Tracepoint
	Hints    []string
}

// Error builds an error-severity diagnostic.
func Error(span world.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Span: span, Message: fmt.Sprintf(format, args...)}
}

// Warning builds a warning-severity diagnostic.
func Warning(span world.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: SeverityWarning, Span: span, Message: fmt.Sprintf(format, args...)}
}

// WithHint appends a suggested fix.
func (d *Diagnostic) WithHint(format string, args ...any) *Diagnostic {
	d.Hints = append(d.Hints, fmt.Sprintf(format, args...))
	return d
}

// WithTrace appends a context frame, nearest-call-first.
func (d *Diagnostic) WithTrace(span world.Span, format string, args ...any) *Diagnostic {
	d.Trace = append(d.Trace, Tracepoint{Span: span, Message: fmt.Sprintf(format, args...)})
	return d
}

// Error implements the error interface so a Diagnostic can be returned and
// wrapped like any other Go error.
func (d *Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", d.Severity, d.Message)
	for _, tp := range d.Trace {
		fmt.Fprintf(&sb, "\n%s", text.Indent(fmt.Sprintf("while %s", tp.Message), "  "))
	}
	for _, h := range d.Hints {
		fmt.Fprintf(&sb, "\n%s", text.Indent(fmt.Sprintf("hint: %s", h), "  "))
	}
	return sb.String()
}

// Sink collects diagnostics produced over the course of a compilation
// instead of aborting at the first one, matching spec.md §5's "collect all
// diagnostics; do not stop at the first error" requirement.
type Sink struct {
	diags []*Diagnostic
}

// Emit records a diagnostic.
func (s *Sink) Emit(d *Diagnostic) {
	s.diags = append(s.diags, d)
}

// Errorf emits and returns an error-severity diagnostic in one step.
func (s *Sink) Errorf(span world.Span, format string, args ...any) *Diagnostic {
	d := Error(span, format, args...)
	s.Emit(d)
	return d
}

// Warnf emits a warning-severity diagnostic.
func (s *Sink) Warnf(span world.Span, format string, args ...any) {
	s.Emit(Warning(span, format, args...))
}

// All returns every diagnostic emitted so far, in emission order.
func (s *Sink) All() []*Diagnostic {
	return s.diags
}

// HasErrors reports whether any emitted diagnostic is error severity.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
