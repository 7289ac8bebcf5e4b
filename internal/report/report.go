// Package report renders the per-file before/after metadata tables and the
// end-of-run summary.
package report

import (
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// maxCell keeps long descriptions from blowing up the table layout.
const maxCell = 48

// Change is one metadata property's before and after values.
type Change struct {
	Property string
	Before   string
	After    string
}

// Changed reports whether the property value actually differs.
func (c Change) Changed() bool {
	return c.Before != c.After
}

// Diff builds the property rows for a file, covering the union of keys in
// both snapshots, sorted by property name.
func Diff(before, after map[string]string) []Change {
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	props := make([]string, 0, len(keys))
	for k := range keys {
		props = append(props, k)
	}
	sort.Strings(props)

	changes := make([]Change, 0, len(props))
	for _, p := range props {
		changes = append(changes, Change{Property: p, Before: before[p], After: after[p]})
	}
	return changes
}

// AnyChanged reports whether at least one property differs.
func AnyChanged(changes []Change) bool {
	for _, c := range changes {
		if c.Changed() {
			return true
		}
	}
	return false
}

// RenderDiff writes the property table for one file.
func RenderDiff(w io.Writer, path string, changes []Change) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(path)
	tw.AppendHeader(table.Row{"", "Property", "Current Value", "Updated Value"})

	for _, c := range changes {
		marker := ""
		if c.Changed() {
			marker = "*"
		}
		tw.AppendRow(table.Row{marker, c.Property, cell(c.Before), cell(c.After)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, WidthMax: maxCell},
		{Number: 4, Align: text.AlignLeft, WidthMax: maxCell},
	})
	tw.Render()
}

// Summary totals one batch run.
type Summary struct {
	Processed int // files opened
	Updated   int // files rewritten
	Skipped   int // filename did not match the template
	Failed    int // open/parse/save errors
}

// RenderSummary writes the end-of-run totals.
func RenderSummary(w io.Writer, s Summary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Processed", "Updated", "Skipped", "Failed"})
	tw.AppendRow(table.Row{s.Processed, s.Updated, s.Skipped, s.Failed})
	tw.Render()
}

// cell flattens newlines and truncates a value for table display.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxCell {
		return s
	}
	return string(runes[:maxCell-3]) + "..."
}
