package surface_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/surface"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want surface.Format
	}{
		{"text", surface.FormatText},
		{"terminal", surface.FormatText},
		{"JSON", surface.FormatJSON},
		{"md", surface.FormatMarkdown},
		{" markdown ", surface.FormatMarkdown},
		{"xlsx", surface.FormatXLSX},
	}
	for _, tt := range tests {
		got, err := surface.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := surface.ParseFormat("pdf")
	assert.Error(t, err)
}

func TestForFormatCoversEveryFormat(t *testing.T) {
	rep := sampleReport()
	for _, f := range surface.Formats() {
		r, err := surface.ForFormat(f)
		require.NoError(t, err, f)

		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, rep), f)
		assert.NotZero(t, buf.Len(), f)
		assert.NotEmpty(t, f.ContentType())
		assert.True(t, strings.HasPrefix(f.Extension(), "."))
	}

	_, err := surface.ForFormat("pdf")
	assert.Error(t, err)
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&surface.JSONRenderer{}).Render(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "GAII Test", decoded["title"])
	assert.Contains(t, decoded, "methodology")
	assert.Contains(t, decoded, "global")

	global := decoded["global"].(map[string]any)
	assert.NotContains(t, global, "Dataset", "dataset back-reference is not serialized")
	assert.Len(t, global["regions"], len(country.Regions()))
}

func TestMarkdownRenderer(t *testing.T) {
	md := surface.BuildMarkdown(sampleReport())

	for _, want := range []string{
		"# GAII Test",
		"## Key Findings",
		"## North / South",
		"## Regions",
		"## Most Equal",
		"## Least Equal",
		"## Fastest Improving",
		"## Methodology",
		"| access | 0.40 |",
		"| Critical | 70 to 100 |",
		"India (IN)",
	} {
		assert.Contains(t, md, want)
	}
}

func TestXLSXRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&surface.XLSXRenderer{}).Render(&buf, sampleReport()))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	countries, ok := f.Sheet[surface.SheetCountries]
	require.True(t, ok)
	require.Len(t, countries.Rows, 4, "header plus three countries")
	assert.Equal(t, "Code", countries.Rows[0].Cells[0].String())
	assert.Equal(t, "DE", countries.Rows[1].Cells[0].String())

	regions, ok := f.Sheet[surface.SheetRegions]
	require.True(t, ok)
	assert.Len(t, regions.Rows, len(country.Regions())+2, "header, regions and global total")

	_, ok = f.Sheet[surface.SheetMethodology]
	assert.True(t, ok)
}
