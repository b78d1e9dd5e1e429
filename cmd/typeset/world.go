package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sentra-lang/typeset/internal/eval"
	"github.com/sentra-lang/typeset/internal/scope"
	"github.com/sentra-lang/typeset/internal/world"
)

// localWorld wires world.World directly from the local filesystem, rooted
// at a single directory. Package resolution and font discovery are left as
// stubs a real host would fill in (network package fetching and font
// shaping are both out of scope here); only the local-file source path
// spec.md §6 requires for a standalone compile is implemented.
//
// Grounded on the teacher's internal/module/module.go loader: one root
// directory, paths resolved and read relative to it, the same shape
// NewBuilder/loadManifest uses for a project root in cmd/sentra.
type localWorld struct {
	root     string
	interner *world.Interner
	library  *scope.Library
}

func newLocalWorld(root string) *localWorld {
	return &localWorld{
		root:     root,
		interner: world.NewInterner(),
		library:  eval.StandardLibrary(),
	}
}

// Main interns and returns the FileID for the entry file, a path relative
// to the world's root.
func (w *localWorld) Main(relPath string) world.FileID {
	return w.interner.Intern("", filepath.ToSlash(relPath))
}

func (w *localWorld) Library() world.Library { return libraryAdapter{w.library} }

// libraryAdapter narrows *scope.Library's concretely-typed Lookup/MathLookup
// (value.Value, bool) down to world.Library's (any, bool), since Go
// requires an exact method-signature match for interface satisfaction and
// internal/scope intentionally stays free of a world.World import (scope
// sits below world in the package dependency order).
type libraryAdapter struct{ lib *scope.Library }

func (a libraryAdapter) Lookup(name string) (any, bool)     { return a.lib.Lookup(name) }
func (a libraryAdapter) MathLookup(name string) (any, bool) { return a.lib.MathLookup(name) }

func (w *localWorld) Source(id world.FileID) (string, error) {
	data, err := w.File(id)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (w *localWorld) File(id world.FileID) ([]byte, error) {
	if id == world.Detached {
		return nil, fmt.Errorf("typeset: no file bound to a detached id")
	}
	path := w.interner.Path(id)
	if pkg := w.interner.Package(id); pkg != "" {
		return nil, fmt.Errorf("typeset: package resolution is not implemented (requested %q from %q)", path, pkg)
	}
	return os.ReadFile(filepath.Join(w.root, filepath.FromSlash(path)))
}

// FontCount and Font report no fonts: glyph metrics/shaping are out of
// scope per spec.md §1, so layout in this CLI runs against the same
// abstracted Metrics interface internal/layout/math already uses rather
// than a real font lookup.
func (w *localWorld) FontCount() int                  { return 0 }
func (w *localWorld) Font(int) (world.FontInfo, bool) { return world.FontInfo{}, false }

func (w *localWorld) Today(utcOffsetHours *int) time.Time {
	now := time.Now().UTC()
	if utcOffsetHours != nil {
		now = now.Add(time.Duration(*utcOffsetHours) * time.Hour)
	}
	return now
}
func (w *localWorld) Packages() []world.PackageSpec { return nil }
func (w *localWorld) ResolvePackage(spec world.PackageSpec) (world.PackageManifest, world.FileID, error) {
	return world.PackageManifest{}, world.Detached, fmt.Errorf("typeset: package fetching is not implemented (requested %s)", spec)
}

var _ world.World = (*localWorld)(nil)
