// Command typeset is the evaluation-and-layout core's demo CLI: it wires a
// local-file world.World, evaluates a source file, realizes it, lays it out
// into frames, and prints a frame summary. There is no rasterizer behind
// it — source parsing and glyph emission are both out of scope (see
// SPEC_FULL.md's Non-goals) — so "evaluating a source file" here means
// treating its text as a sequence of plain paragraphs (split on blank
// lines) rather than running it through a markup parser; this still
// exercises the full eval -> realize -> layout pipeline end to end.
//
// Grounded on cmd/sentra/main.go's alias-map command dispatch and
// cmd/sentra/commands/build.go's "resolve a project-root path, build a
// worker, run it" shape, reduced to the handful of commands this engine's
// demo actually needs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/diag"
	"github.com/sentra-lang/typeset/internal/eval"
	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
	"github.com/sentra-lang/typeset/internal/layout/flow"
	"github.com/sentra-lang/typeset/internal/layout/inline"
	"github.com/sentra-lang/typeset/internal/logging"
	"github.com/sentra-lang/typeset/internal/realize"
	"github.com/sentra-lang/typeset/internal/style"
	"github.com/sentra-lang/typeset/internal/value"
	"github.com/sentra-lang/typeset/internal/world"
)

const version = "0.1.0"

// commands maps a subcommand name to its handler, the same alias-map
// dispatch shape cmd/sentra/main.go uses, scaled down to this engine's
// two real commands.
var commands = map[string]func(args []string) error{
	"run":     runCommand,
	"version": versionCommand,
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(2)
	}

	name := os.Args[1]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "typeset: unknown command %q\n", name)
		showUsage()
		os.Exit(2)
	}

	if err := cmd(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "typeset: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Fprintln(os.Stderr, "usage: typeset run <file> [--page=WIDTHxHEIGHT] [--trace=none|normal|debug]")
	fmt.Fprintln(os.Stderr, "       typeset version")
}

func versionCommand(args []string) error {
	fmt.Println("typeset", version)
	return nil
}

func runCommand(args []string) (err error) {
	if len(args) == 0 {
		return fmt.Errorf("run requires a source file")
	}
	path := args[0]
	page := geom.Size{Width: 455 * geom.Pt, Height: 648 * geom.Pt} // A4-ish default
	trace := logging.LevelNormal

	for _, a := range args[1:] {
		switch {
		case strings.HasPrefix(a, "--page="):
			p, err := parsePageSize(strings.TrimPrefix(a, "--page="))
			if err != nil {
				return err
			}
			page = p
		case strings.HasPrefix(a, "--trace="):
			trace = logging.Level(strings.TrimPrefix(a, "--trace="))
		default:
			return fmt.Errorf("unrecognized flag %q", a)
		}
	}

	logger, closeLog, err := logging.New(logging.Config{
		Console: trace,
		Color:   isatty.IsTerminal(os.Stderr.Fd()),
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logging.Close(&err, closeLog)

	traceID := uuid.NewString()
	sugar := logger.Sugar()
	sugar.Infow("compilation started", "trace_id", traceID, "file", path)

	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	w := newLocalWorld(dir)
	fileID := w.Main(file)

	sink := &diag.Sink{}
	ev := eval.NewEvaluator(w, w.library, sink)

	source, err := w.Source(fileID)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	root, err := ev.Eval(sourceExpr(source))
	if err != nil {
		return err
	}
	elem, ok := root.(content.Element)
	if !ok {
		return fmt.Errorf("source did not evaluate to content (got %T)", root)
	}

	pairs, err := realize.Realize(realize.Document{}, elem, style.Empty(), sink)
	if err != nil {
		return err
	}

	if sink.HasErrors() {
		for _, d := range sink.All() {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		return fmt.Errorf("compilation failed with %d diagnostic(s)", len(sink.All()))
	}

	frames, err := layoutDocument(pairs, page)
	if err != nil {
		return err
	}

	sugar.Infow("compilation finished", "trace_id", traceID, "file", path, "frames", len(frames))
	printSummary(frames)
	return nil
}

// sourceExpr wraps the whole file as a sequence of paragraph text runs
// split on blank lines, the minimal stand-in for a real parser's output
// (source parsing is explicitly out of scope for this module).
func sourceExpr(source string) eval.Expr {
	paragraphs := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n\n")
	pieces := make([]eval.Expr, 0, len(paragraphs)*2)
	for i, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if i > 0 && len(pieces) > 0 {
			pieces = append(pieces, parbreakExpr{})
		}
		pieces = append(pieces, textExpr(p))
	}
	return &eval.ContentLit{Pieces: pieces}
}

// textExpr and parbreakExpr evaluate straight to content, standing in for
// the text-run and parbreak nodes a real parser would produce.
type textExpr string

func (t textExpr) Accept(eval.ExprVisitor) (any, error) { return content.Text(string(t)), nil }
func (textExpr) Span() world.Span                       { return world.DetachedSpan }

type parbreakExpr struct{}

func (parbreakExpr) Accept(eval.ExprVisitor) (any, error) {
	return content.New(content.KindParbreak), nil
}

func (parbreakExpr) Span() world.Span { return world.DetachedSpan }

func parsePageSize(s string) (geom.Size, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return geom.Size{}, fmt.Errorf("invalid --page value %q, expected WIDTHxHEIGHT in points", s)
	}
	wf, err1 := strconv.ParseFloat(w, 64)
	hf, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil {
		return geom.Size{}, fmt.Errorf("invalid --page value %q, expected WIDTHxHEIGHT in points", s)
	}
	return geom.Size{Width: geom.Abs(wf) * geom.Pt, Height: geom.Abs(hf) * geom.Pt}, nil
}

// layoutDocument turns realized paragraphs into flow children and lays
// them out across pages. Non-paragraph pairs (images, headings, and the
// rest of the element set) are not laid out by this demo CLI — they are
// fully modeled by internal/content and internal/style, but wiring every
// kind through a layouter is beyond what a frame-summary demo needs.
func layoutDocument(pairs []realize.Pair, page geom.Size) ([]layout.Frame, error) {
	const fontSize = 10 * geom.Pt
	const lineHeight = 13 * geom.Pt
	measure := func(word string) geom.Abs {
		return geom.Abs(len([]rune(word))) * fontSize * 0.5
	}

	var children []flow.Child
	for i, pair := range pairs {
		if pair.Element.Tag() != content.KindParagraph {
			continue
		}
		if i > 0 {
			children = append(children, flow.SpacingChild{Amount: lineHeight, Weak: true, Weakness: 1})
		}
		text := paragraphText(pair.Element)
		items := inline.BuildItems(text, measure, fontSize*0.3, fontSize*0.15)
		lines := inline.BreakLines(items, page.Width)
		for _, frame := range inline.Layout(lines, page.Width, lineHeight, true) {
			children = append(children, flow.FrameChild{Frame: frame})
		}
	}

	regions := layout.NewRegions(page, geom.Axes[bool]{X: false, Y: false})
	last := page.Height
	regions.Last = &last
	return flow.Layout(children, regions)
}

func paragraphText(par content.Element) string {
	var b strings.Builder
	for _, child := range par.Children() {
		switch child.Tag() {
		case content.KindText:
			if v, ok := child.Field("text"); ok {
				b.WriteString(string(v.(value.String)))
			}
		case content.KindSpace:
			b.WriteString(" ")
		}
	}
	return b.String()
}

func printSummary(frames []layout.Frame) {
	fmt.Printf("%d page(s)\n", len(frames))
	for i, f := range frames {
		fmt.Printf("  page %d: %.1fpt x %.1fpt, %d item(s)\n", i+1, float64(f.Size.Width), float64(f.Size.Height), len(f.Items()))
	}
}
