package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndExtract(t *testing.T) {
	m, err := Compile("{author} {type} {year} - Ausgabe {ausgabe} ({year}-{month}-{day})")
	require.NoError(t, err)

	fields, ok := m.Extract("Jane Doe Magazin 2024 - Ausgabe 12 (2024-12-01)")
	require.True(t, ok)

	assert.Equal(t, "Jane Doe", fields[FieldAuthor])
	assert.Equal(t, "Magazin", fields[FieldType])
	assert.Equal(t, "2024", fields[FieldYear])
	assert.Equal(t, "12", fields[FieldAusgabe])
	assert.Equal(t, "12", fields[FieldMonth])
	assert.Equal(t, "01", fields[FieldDay])
	assert.Equal(t, "2024-12-01", fields.Date())
}

func TestExtractNoMatch(t *testing.T) {
	m, err := Compile("{author} {year}")
	require.NoError(t, err)

	_, ok := m.Extract("completely different filename")
	assert.False(t, ok)

	// Anchored: trailing garbage must not match.
	_, ok = m.Extract("Jane Doe 2024 extra")
	assert.False(t, ok)
}

func TestExtractAnchoredDigits(t *testing.T) {
	m, err := Compile("{type} {year}")
	require.NoError(t, err)

	// year must be exactly four digits
	_, ok := m.Extract("Magazin 202")
	assert.False(t, ok)

	fields, ok := m.Extract("Magazin 2024")
	require.True(t, ok)
	assert.Equal(t, "2024", fields[FieldYear])
}

func TestCompileEscapesLiterals(t *testing.T) {
	m, err := Compile("{author} ({year}) [scan]")
	require.NoError(t, err)

	fields, ok := m.Extract("Jane Doe (2024) [scan]")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", fields[FieldAuthor])

	// The brackets are literals, not character classes.
	_, ok = m.Extract("Jane Doe (2024) s")
	assert.False(t, ok)
}

func TestCompileEmpty(t *testing.T) {
	_, err := Compile("   ")
	assert.Error(t, err)
}

func TestDatePartial(t *testing.T) {
	m, err := Compile("{author} {year}")
	require.NoError(t, err)

	fields, ok := m.Extract("Jane Doe 2024")
	require.True(t, ok)
	assert.Empty(t, fields.Date())
}

func TestExpand(t *testing.T) {
	fields := Fields{
		FieldAuthor:  "Jane Doe",
		FieldType:    "Magazin",
		FieldYear:    "2024",
		FieldAusgabe: "12",
	}

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"plain", "{author} - {type}", "Jane Doe - Magazin"},
		{"sliceNegative", "{ausgabe}/{year[-2:]}", "12/24"},
		{"sliceFrom", "{year[2:]}", "24"},
		{"sliceTo", "{year[:2]}", "20"},
		{"sliceIndex", "{year[0]}", "2"},
		{"sliceOutOfRangeIndex", "{year[9]}", "2024"},
		{"sliceInvalid", "{year[a:b]}", "2024"},
		{"sliceEmptyRange", "{year[3:1]}", ""},
		{"unknownField", "x{month}y", "xy"},
		{"noPlaceholders", "literal text", "literal text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.tmpl, fields))
		})
	}
}

func TestExpandEmptyFieldSkipsSlice(t *testing.T) {
	// A slice on an absent field stays empty rather than erroring.
	assert.Equal(t, "", Expand("{month[-2:]}", Fields{}))
}

func TestExpandClampsBounds(t *testing.T) {
	fields := Fields{FieldYear: "2024"}
	assert.Equal(t, "2024", Expand("{year[-10:]}", fields))
	assert.Equal(t, "2024", Expand("{year[:99]}", fields))
}
