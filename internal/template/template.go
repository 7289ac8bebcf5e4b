// Package template implements the filename template language used to pull
// metadata fields out of ebook filenames, and the output templates used to
// format those fields back into metadata values.
//
// A filename template mixes literal text with placeholders:
//
//	{author} {type} {year}-{month}-{day} Ausgabe {ausgabe}
//
// Output templates use the same placeholders and additionally support a
// slice suffix, e.g. {year[-2:]} for the last two digits of the year.
package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field names recognized in templates.
const (
	FieldAuthor  = "author"
	FieldType    = "type"
	FieldYear    = "year"
	FieldAusgabe = "ausgabe"
	FieldMonth   = "month"
	FieldDay     = "day"
)

// capture patterns per placeholder. Free-text fields match lazily so the
// literal text between placeholders drives the split.
var capturePatterns = map[string]string{
	FieldAuthor:  `(.+?)`,
	FieldType:    `(.+?)`,
	FieldYear:    `(\d{4})`,
	FieldAusgabe: `(\d+)`,
	FieldMonth:   `(\d{2})`,
	FieldDay:     `(\d{2})`,
}

var placeholderRe = regexp.MustCompile(`\{(author|type|year|ausgabe|month|day)\}`)

// expandRe matches placeholders in output templates, with an optional slice
// suffix such as {year[-2:]}.
var expandRe = regexp.MustCompile(`\{([a-z]+)(\[[^\]]*\])?\}`)

// Fields holds the values extracted from one filename. Keys are the Field*
// constants; absent fields expand to the empty string.
type Fields map[string]string

// Date returns an ISO 8601 date (YYYY-MM-DD) when year, month and day were
// all captured, otherwise the empty string.
func (f Fields) Date() string {
	year, month, day := f[FieldYear], f[FieldMonth], f[FieldDay]
	if year == "" || month == "" || day == "" {
		return ""
	}
	return year + "-" + month + "-" + day
}

// Matcher is a compiled filename template.
type Matcher struct {
	re     *regexp.Regexp
	groups []string // capture group i+1 holds field groups[i]
}

// Compile converts a filename template into a Matcher. Literal text is taken
// verbatim (regex metacharacters included); the resulting pattern is anchored
// to the whole filename stem.
func Compile(pattern string) (*Matcher, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty template")
	}

	var groups []string
	for _, m := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		groups = append(groups, m[1])
	}

	escaped := regexp.QuoteMeta(pattern)
	for field, capture := range capturePatterns {
		escaped = strings.ReplaceAll(escaped, `\{`+field+`\}`, capture)
	}

	re, err := regexp.Compile("^" + escaped + "$")
	if err != nil {
		return nil, fmt.Errorf("compile template %q: %w", pattern, err)
	}
	return &Matcher{re: re, groups: groups}, nil
}

// Extract matches a filename stem (no extension) against the template and
// returns the captured fields. ok is false when the stem does not match.
func (m *Matcher) Extract(stem string) (fields Fields, ok bool) {
	match := m.re.FindStringSubmatch(stem)
	if match == nil {
		return nil, false
	}
	fields = make(Fields, len(m.groups))
	for i, field := range m.groups {
		fields[field] = match[i+1]
	}
	return fields, true
}

// Expand substitutes field values into an output template. Unknown fields
// expand to the empty string. A slice suffix is applied when the value is
// non-empty; an invalid slice leaves the value unsliced.
func Expand(tmpl string, fields Fields) string {
	return expandRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		parts := expandRe.FindStringSubmatch(match)
		value := fields[parts[1]]
		if value != "" && parts[2] != "" {
			value = applySlice(value, parts[2])
		}
		return value
	})
}

// applySlice applies a Python-style slice or index expression, e.g. [-2:],
// [1:], [:3] or [0]. Slice bounds clamp to the value length; an out-of-range
// single index or unparsable expression returns the value unchanged.
func applySlice(value, spec string) string {
	inner := spec[1 : len(spec)-1]
	runes := []rune(value)
	n := len(runes)

	if !strings.Contains(inner, ":") {
		i, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil {
			return value
		}
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return value
		}
		return string(runes[i])
	}

	bounds := strings.SplitN(inner, ":", 2)
	start, ok := parseBound(bounds[0], 0, n)
	if !ok {
		return value
	}
	end, ok := parseBound(bounds[1], n, n)
	if !ok {
		return value
	}
	if start > end {
		return ""
	}
	return string(runes[start:end])
}

// parseBound resolves one slice bound: empty means the default, negative
// counts from the end, and everything clamps into [0, n].
func parseBound(s string, def, n int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if i < 0 {
		i += n
	}
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i, true
}
