// Package migrate converts template files into JavaScript modules,
// rewrites the imports that reference them and removes the originals.
//
// A run has three phases. Plan reads, renders and verifies every template
// without touching the disk. Apply writes each module and rewrites its
// referencing files. Delete removes the originals of every template whose
// apply phase succeeded. A failure is confined to the template it happened
// on; the run always continues with the next one.
package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/opmodel/tplmigrate/internal/discovery"
	oerrors "github.com/opmodel/tplmigrate/internal/errors"
	"github.com/opmodel/tplmigrate/internal/jsmodule"
	"github.com/opmodel/tplmigrate/internal/output"
	"github.com/opmodel/tplmigrate/internal/references"
)

// Default extensions.
const (
	DefaultMarkupExt = ".html"
	DefaultModuleExt = ".js"
)

// Options configures a Migrator.
type Options struct {
	// Root is the project root. Discovery, reference search and every
	// reported path are relative to it. Defaults to ".".
	Root string

	// Pattern selects templates below Root. Defaults to discovery.DefaultPattern.
	Pattern string

	// MarkupExt is the trailing extension replaced on each template path.
	MarkupExt string

	// ModuleExt is the extension of generated modules and of the files
	// searched for references.
	ModuleExt string

	// Scope selects flat or recursive reference search.
	Scope references.Scope

	// Verify evaluates each generated module before anything is written.
	Verify bool
}

func (o *Options) applyDefaults() {
	if o.Root == "" {
		o.Root = "."
	}
	if o.Pattern == "" {
		o.Pattern = discovery.DefaultPattern
	}
	if o.MarkupExt == "" {
		o.MarkupExt = DefaultMarkupExt
	}
	if o.ModuleExt == "" {
		o.ModuleExt = DefaultModuleExt
	}
	if o.Scope == "" {
		o.Scope = references.ScopeRecursive
	}
}

// Migrator runs template migrations. It is not safe for concurrent use.
type Migrator struct {
	opts     Options
	verifier *jsmodule.Verifier
	index    *references.Index
	rewriter *references.Rewriter
}

// New creates a Migrator.
func New(opts Options) (*Migrator, error) {
	opts.applyDefaults()

	if err := discovery.ValidatePattern(opts.Pattern); err != nil {
		return nil, err
	}
	if _, err := jsmodule.ModulePath("x"+opts.MarkupExt, opts.MarkupExt, opts.ModuleExt); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), "", "moduleExt",
			"Use distinct extensions for templates and generated modules.")
	}

	index, err := references.NewIndex(opts.ModuleExt, opts.Scope)
	if err != nil {
		return nil, err
	}

	m := &Migrator{
		opts:     opts,
		index:    index,
		rewriter: references.NewRewriter(index),
	}
	if opts.Verify {
		m.verifier = jsmodule.NewVerifier()
	}
	return m, nil
}

// Options returns the options with defaults applied.
func (m *Migrator) Options() Options {
	return m.opts
}

// Discover lists the templates the next Migrate call would convert.
func (m *Migrator) Discover() ([]string, error) {
	return discovery.Discover(m.opts.Root, m.opts.Pattern)
}

// Run discovers templates and migrates them.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	paths, err := m.Discover()
	if err != nil {
		return nil, err
	}
	return m.Migrate(ctx, paths), nil
}

// Migrate converts the given templates, given as slash-separated paths
// relative to the root. Cancelling ctx stops the run at the next file
// boundary; templates already written are still deleted so that none is
// left with both a module and its original.
func (m *Migrator) Migrate(ctx context.Context, paths []string) *Report {
	report := &Report{
		RunID:      uuid.NewString(),
		Root:       m.opts.Root,
		Pattern:    m.opts.Pattern,
		Discovered: len(paths),
		Converted:  []Conversion{},
		Updated:    []ReferenceUpdate{},
		Failures:   []Failure{},
		Warnings:   []Failure{},
	}

	if len(paths) == 0 {
		output.Info("no template files found to convert", "root", m.opts.Root, "pattern", m.opts.Pattern)
		return report
	}

	output.Info(fmt.Sprintf("found %d template files to convert", len(paths)))
	output.Debug("migration started",
		"run", report.RunID,
		"root", m.opts.Root,
		"references", m.opts.Scope,
		"verify", m.opts.Verify,
	)

	planned := m.plan(ctx, paths, report)
	written := m.apply(ctx, planned, report)
	m.deleteOriginals(written, report)

	return report
}

// plan reads, renders and optionally verifies every template.
func (m *Migrator) plan(ctx context.Context, paths []string, report *Report) []*Conversion {
	planned := make([]*Conversion, 0, len(paths))

	for _, rel := range paths {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		c, failure := m.planOne(rel)
		if failure != nil {
			output.Error("conversion failed", "template", rel, "stage", failure.Stage, "error", failure.Err)
			report.Failures = append(report.Failures, *failure)
			continue
		}
		planned = append(planned, c)
	}

	return planned
}

func (m *Migrator) planOne(rel string) (*Conversion, *Failure) {
	moduleRel, err := jsmodule.ModulePath(rel, m.opts.MarkupExt, m.opts.ModuleExt)
	if err != nil {
		f := newFailure(rel, StageRender, err)
		return nil, &f
	}

	path := m.path(rel)
	info, err := os.Stat(path)
	if err != nil {
		f := newFailure(rel, StageRead, err)
		return nil, &f
	}
	data, err := os.ReadFile(path)
	if err != nil {
		f := newFailure(rel, StageRead, err)
		return nil, &f
	}
	if !utf8.Valid(data) {
		f := newFailure(rel, StageRead, fmt.Errorf("%s is not valid UTF-8", rel))
		return nil, &f
	}

	content := normalizeNewlines(string(data))
	module := jsmodule.Render(content)

	if m.verifier != nil {
		if err := m.verifier.Verify(module, content); err != nil {
			f := newFailure(rel, StageVerify, err)
			return nil, &f
		}
	}

	output.Debug("planned conversion " + output.FormatConversion(rel, moduleRel), "bytes", len(data))

	return &Conversion{
		Template: rel,
		Module:   moduleRel,
		Size:     len(data),
		State:    StateDiscovered,
		content:  module,
		perm:     info.Mode().Perm(),
	}, nil
}

// apply writes each planned module and rewrites its references.
func (m *Migrator) apply(ctx context.Context, planned []*Conversion, report *Report) []*Conversion {
	for _, c := range planned {
		m.index.Exclude(m.path(c.Module))
	}

	written := make([]*Conversion, 0, len(planned))
	for _, c := range planned {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		fileLog := output.FileLogger(c.Template)

		if err := writeFileAtomic(m.path(c.Module), []byte(c.content), c.perm); err != nil {
			fileLog.Error("writing module failed", "module", c.Module, "error", err)
			report.Failures = append(report.Failures, newFailure(c.Template, StageWrite, err))
			continue
		}
		c.State = StateConverted
		c.content = ""
		fileLog.Info(output.FormatFileLine(c.Module, output.StatusConverted))

		updates, errs := m.rewriter.Rewrite(m.path(c.Template), m.path(c.Module))
		for _, u := range updates {
			file := m.display(u.File)
			report.Updated = append(report.Updated, ReferenceUpdate{Template: c.Template, File: file, Count: u.Count})
			fileLog.Info(output.FormatFileLine(file, output.StatusUpdated))
		}
		for _, e := range errs {
			file := m.display(e.File)
			fileLog.Warn("could not update references", "file", file, "error", e.Err)
			report.Warnings = append(report.Warnings, newFailure(file, StageReferences, e.Err))
		}
		c.State = StateReferencesRewritten

		written = append(written, c)
	}

	return written
}

// deleteOriginals removes every template whose module was written.
func (m *Migrator) deleteOriginals(written []*Conversion, report *Report) {
	for _, c := range written {
		if err := os.Remove(m.path(c.Template)); err != nil {
			output.Error("deleting template failed", "template", c.Template, "error", err)
			report.Failures = append(report.Failures, newFailure(c.Template, StageDelete, err))
			report.Stranded = append(report.Stranded, *c)
			continue
		}
		c.State = StateDeleted
		output.FileLogger(c.Template).Info(output.FormatFileLine(c.Template, output.StatusDeleted))
		report.Converted = append(report.Converted, *c)
	}
}

// path maps a slash-separated root-relative path to a filesystem path.
func (m *Migrator) path(rel string) string {
	return filepath.Join(m.opts.Root, filepath.FromSlash(rel))
}

// display maps a filesystem path back to a slash-separated root-relative path.
func (m *Migrator) display(path string) string {
	rel, err := filepath.Rel(m.opts.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// normalizeNewlines converts CRLF and lone CR to LF. JavaScript template
// literals normalize line terminators the same way, so keeping CR would
// make the module evaluate to different text.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
