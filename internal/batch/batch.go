// Package batch implements the metadata update sweep over a directory tree.
package batch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"epubstamp/epub"
	"epubstamp/internal/config"
	"epubstamp/internal/report"
	"epubstamp/internal/template"
)

// Updater runs one batch pass over the configured directory.
type Updater struct {
	cfg     config.Config
	matcher *template.Matcher
	out     io.Writer
	log     *slog.Logger
}

// New compiles the filename template and prepares an Updater. Tables and
// per-file reports go to out; diagnostics go to the logger.
func New(cfg config.Config, out io.Writer, log *slog.Logger) (*Updater, error) {
	matcher, err := template.Compile(cfg.Template)
	if err != nil {
		return nil, err
	}
	return &Updater{cfg: cfg, matcher: matcher, out: out, log: log}, nil
}

// Run sweeps the directory once. Per-file failures are logged and counted
// but do not abort the sweep; the returned error covers only the sweep
// itself (unwalkable directory, cancellation).
func (u *Updater) Run(ctx context.Context) (report.Summary, error) {
	var summary report.Summary

	files, err := u.findEpubs(u.cfg.Directory)
	if err != nil {
		return summary, fmt.Errorf("scan %s: %w", u.cfg.Directory, err)
	}
	if len(files) == 0 {
		u.log.Info("no EPUB files found", "directory", u.cfg.Directory)
		return summary, nil
	}

	u.log.Info("starting sweep", "directory", u.cfg.Directory, "files", len(files), "dry_run", u.cfg.DryRun)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome, err := u.updateFile(path)
		summary.Processed++
		switch {
		case err != nil:
			summary.Failed++
			u.log.Error("update failed", "file", path, "error", err)
		case outcome == outcomeSkipped:
			summary.Skipped++
			u.log.Info("filename does not match template", "file", path)
		case outcome == outcomeUpdated:
			summary.Updated++
		}
	}

	report.RenderSummary(u.out, summary)
	return summary, nil
}

type outcome int

const (
	outcomeUnchanged outcome = iota
	outcomeUpdated
	outcomeSkipped
)

// updateFile applies the configured templates to a single EPUB in place.
func (u *Updater) updateFile(path string) (outcome, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	fields, ok := u.matcher.Extract(stem)
	if !ok {
		return outcomeSkipped, nil
	}

	book, err := epub.Open(path)
	if err != nil {
		return outcomeUnchanged, err
	}
	defer book.Close()

	before := snapshot(book.Package)
	u.apply(book.Package, fields)
	after := snapshot(book.Package)

	changes := report.Diff(before, after)
	report.RenderDiff(u.out, path, changes)

	if !report.AnyChanged(changes) {
		return outcomeUnchanged, nil
	}
	if u.cfg.DryRun {
		u.log.Info("dry run, not saving", "file", path)
		return outcomeUnchanged, nil
	}

	if err := book.Save(path); err != nil {
		return outcomeUnchanged, err
	}
	return outcomeUpdated, nil
}

// apply derives the new metadata values from the extracted fields and writes
// them into the package document.
func (u *Updater) apply(pkg *epub.Package, fields template.Fields) {
	author := fields[template.FieldAuthor]

	title := u.titleFor(fields)
	subject := u.subjectFor(fields, author, title)

	if author != "" {
		pkg.SetAuthor(author)
		pkg.SetKeywords(author)
	}
	pkg.SetTitle(title)
	pkg.SetSubjects([]string{subject})

	if u.cfg.Description != "" {
		pkg.SetDescription(template.Expand(u.cfg.Description, fields))
	}
	if date := fields.Date(); date != "" {
		pkg.SetDate(date)
	}
	pkg.ClearProducer()
}

// titleFor expands the TITLE template, defaulting to "<ausgabe>/<yy>".
func (u *Updater) titleFor(fields template.Fields) string {
	if u.cfg.Title != "" {
		return template.Expand(u.cfg.Title, fields)
	}
	year := fields[template.FieldYear]
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	return fields[template.FieldAusgabe] + "/" + year
}

// subjectFor expands the SUBJECT template, defaulting to "author type title".
func (u *Updater) subjectFor(fields template.Fields, author, title string) string {
	if u.cfg.Subject != "" {
		return template.Expand(u.cfg.Subject, fields)
	}
	return strings.TrimSpace(author + " " + fields[template.FieldType] + " " + title)
}

// snapshot captures the properties the sweep can touch, for diff reporting.
func snapshot(pkg *epub.Package) map[string]string {
	return map[string]string{
		"title":       pkg.GetTitle(),
		"author":      pkg.GetAuthor(),
		"subject":     strings.Join(pkg.GetSubjects(), ", "),
		"description": pkg.GetDescription(),
		"date":        pkg.GetDate(),
		"keywords":    pkg.GetKeywords(),
		"producer":    pkg.GetProducer(),
	}
}

// findEpubs walks root recursively and returns all EPUB paths, sorted for a
// deterministic sweep order. An unreadable subtree is not fatal, but every
// skipped path is logged so dropped files are visible in the run output.
func (u *Updater) findEpubs(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			u.log.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".epub") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
