package goquery_test

import (
	"testing"

	"github.com/fwojciec/webtab"
	"github.com/fwojciec/webtab/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, html string, mode webtab.Mode, selector string) *webtab.Table {
	t.Helper()
	table, err := goquery.NewExtractor().Extract(html, webtab.ExtractionRequest{
		URL:      "https://example.com",
		Mode:     mode,
		Selector: selector,
	})
	require.NoError(t, err)
	require.NoError(t, table.Validate())
	return table
}

func strs(values ...string) []webtab.Cell {
	cells := make([]webtab.Cell, len(values))
	for i, v := range values {
		cells[i] = webtab.TextCell(v)
	}
	return cells
}

func TestExtractor_AllTables(t *testing.T) {
	t.Parallel()

	t.Run("uses thead as header", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead><tr><th>Name</th><th>Age</th></tr></thead>
<tbody><tr><td>Alice</td><td>30</td></tr><tr><td>Bob</td><td>25</td></tr></tbody></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"Name", "Age"}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{strs("Alice", "30"), strs("Bob", "25")}, table.Rows)
	})

	t.Run("uses leading th row as header without thead", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>City</th><th>Country</th></tr><tr><td>Paris</td><td>France</td></tr></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"City", "Country"}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{strs("Paris", "France")}, table.Rows)
	})

	t.Run("names columns by position without header", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"0", "1"}, table.Columns)
		assert.Len(t, table.Rows, 2)
	})

	t.Run("takes first table in document order", func(t *testing.T) {
		t.Parallel()

		html := `<div><table><tr><th>First</th></tr><tr><td>1</td></tr></table></div>
<table><tr><th>Second</th></tr><tr><td>2</td></tr></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"First"}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{strs("1")}, table.Rows)
	})

	t.Run("reports page without tables", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<html><body><p>hello</p></body></html>`, webtab.ModeAllTables, "")

		assert.Equal(t, []string{webtab.ColumnNoTablesFound}, table.Columns)
		assert.Empty(t, table.Rows)
	})

	t.Run("treats blank cells as null and pads ragged rows", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>A</th><th>B</th><th>C</th></tr>
<tr><td>1</td><td>  </td><td>3</td></tr>
<tr><td>4</td></tr></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"A", "B", "C"}, table.Columns)
		require.Len(t, table.Rows, 2)
		assert.True(t, table.Rows[0][1].IsNull())
		assert.Equal(t, webtab.StringCell("4"), table.Rows[1][0])
		assert.True(t, table.Rows[1][1].IsNull())
		assert.True(t, table.Rows[1][2].IsNull())
	})

	t.Run("adds positional columns for rows wider than header", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>A</th></tr><tr><td>1</td><td>2</td></tr></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"A", "1"}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{strs("1", "2")}, table.Rows)
	})

	t.Run("drops wholly empty rows", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>A</th></tr><tr><td> </td></tr><tr><td>x</td></tr></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, [][]webtab.Cell{strs("x")}, table.Rows)
	})

	t.Run("normalizes whitespace in cells", func(t *testing.T) {
		t.Parallel()

		html := "<table><tr><th>\n  Full\n  Name </th></tr><tr><td>  Ada \t Lovelace </td></tr></table>"

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"Full Name"}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{strs("Ada Lovelace")}, table.Rows)
	})

	t.Run("expands colspan and rowspan", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Key</th><th>Value</th><th>Note</th></tr>
<tr><td rowspan="2">k</td><td colspan="2">wide</td></tr>
<tr><td>v</td><td>n</td></tr>
</table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, [][]webtab.Cell{
			strs("k", "wide", "wide"),
			strs("k", "v", "n"),
		}, table.Rows)
	})

	t.Run("repeats trailing rowspan into shorter rows", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>A</th><th>B</th></tr>
<tr><td>1</td><td rowspan="2">shared</td></tr>
<tr><td>2</td></tr>
</table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, [][]webtab.Cell{
			strs("1", "shared"),
			strs("2", "shared"),
		}, table.Rows)
	})

	t.Run("joins multiple header rows", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead>
<tr><th colspan="2">Name</th><th rowspan="2">Age</th></tr>
<tr><th>First</th><th>Last</th></tr>
</thead><tbody><tr><td>Ada</td><td>Lovelace</td><td>36</td></tr></tbody></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"Name First", "Name Last", "Age"}, table.Columns)
	})

	t.Run("suffixes duplicate column names", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>X</th><th>X</th></tr><tr><td>1</td><td>2</td></tr></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"X", "X.1"}, table.Columns)
	})

	t.Run("ignores rows of nested tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Outer</th></tr>
<tr><td><table><tr><td>inner</td></tr><tr><td>inner2</td></tr></table></td></tr>
<tr><td>last</td></tr></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"Outer"}, table.Columns)
		assert.Len(t, table.Rows, 2)
	})

	t.Run("moves footer rows after body rows", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead><tr><th>Item</th></tr></thead>
<tfoot><tr><td>total</td></tr></tfoot>
<tbody><tr><td>apple</td></tr></tbody></table>`

		table := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, [][]webtab.Cell{strs("apple"), strs("total")}, table.Rows)
	})

	t.Run("reports empty table element", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<table></table>`, webtab.ModeAllTables, "")

		assert.Equal(t, []string{webtab.ColumnNoData}, table.Columns)
		assert.Empty(t, table.Rows)
	})
}

func TestExtractor_Headings(t *testing.T) {
	t.Parallel()

	t.Run("lists h1 to h4 in document order", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Intro</h2><p>text</p><h1>Title</h1><h4>Deep</h4><h5>Ignored</h5><h3>Sub</h3>`

		table := extract(t, html, webtab.ModeHeadings, "")

		assert.Equal(t, []string{webtab.ColumnHeadingLevel, webtab.ColumnText}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{
			strs("h2", "Intro"),
			strs("h1", "Title"),
			strs("h4", "Deep"),
			strs("h3", "Sub"),
		}, table.Rows)
	})

	t.Run("skips blank headings", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<h1>   </h1><h2>Real</h2>`, webtab.ModeHeadings, "")

		assert.Equal(t, [][]webtab.Cell{strs("h2", "Real")}, table.Rows)
	})

	t.Run("returns empty table without headings", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<p>nothing</p>`, webtab.ModeHeadings, "")

		assert.Equal(t, []string{webtab.ColumnHeadingLevel, webtab.ColumnText}, table.Columns)
		assert.Empty(t, table.Rows)
	})
}

func TestExtractor_SpecificCell(t *testing.T) {
	t.Parallel()

	t.Run("returns only the first data row", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Name</th><th>Age</th></tr><tr><td>Alice</td><td>30</td></tr><tr><td>Bob</td><td>25</td></tr></table>`

		table := extract(t, html, webtab.ModeSpecificCell, "")

		assert.Equal(t, []string{"Name", "Age"}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{strs("Alice", "30")}, table.Rows)
	})

	t.Run("reports table without data rows", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<table><tr><th>Only</th><th>Header</th></tr></table>`, webtab.ModeSpecificCell, "")

		assert.Equal(t, []string{webtab.ColumnNoData}, table.Columns)
		assert.Empty(t, table.Rows)
	})

	t.Run("reports page without tables", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<p>none</p>`, webtab.ModeSpecificCell, "")

		assert.Equal(t, []string{webtab.ColumnNoTablesFound}, table.Columns)
	})
}

func TestExtractor_CustomSelector(t *testing.T) {
	t.Parallel()

	t.Run("extracts text of matching elements", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li class="price"> $10 </li><li>skip</li><li class="price">$20</li></ul>`

		table := extract(t, html, webtab.ModeCustomSelector, "li.price")

		assert.Equal(t, []string{webtab.ColumnExtractedData}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{strs("$10"), strs("$20")}, table.Rows)
	})

	t.Run("skips elements with blank text", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<p class="x"> </p><p class="x">kept</p>`, webtab.ModeCustomSelector, "p.x")

		assert.Equal(t, [][]webtab.Cell{strs("kept")}, table.Rows)
	})

	t.Run("returns empty table when nothing matches", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<p>text</p>`, webtab.ModeCustomSelector, "div.missing")

		assert.Equal(t, []string{webtab.ColumnExtractedData}, table.Columns)
		assert.Empty(t, table.Rows)
	})

	t.Run("returns empty table for invalid selector", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<p>text</p>`, webtab.ModeCustomSelector, "[[[")

		assert.Equal(t, []string{webtab.ColumnExtractedData}, table.Columns)
		assert.Empty(t, table.Rows)
	})

	t.Run("supports selector groups", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<b>one</b><i>two</i>`, webtab.ModeCustomSelector, "b, i")

		assert.Equal(t, [][]webtab.Cell{strs("one"), strs("two")}, table.Rows)
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract(`<p>x</p>`, webtab.ExtractionRequest{Mode: "images"})

		require.Error(t, err)
		assert.Equal(t, webtab.EINVALID, webtab.ErrorCode(err))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>A</th></tr><tr><td>1</td></tr></table>`

		first := extract(t, html, webtab.ModeAllTables, "")
		second := extract(t, html, webtab.ModeAllTables, "")

		assert.Equal(t, first, second)
	})

	t.Run("tolerates malformed html", func(t *testing.T) {
		t.Parallel()

		table := extract(t, `<table><tr><th>A<tr><td>1</table><h1>Unclosed`, webtab.ModeAllTables, "")

		assert.Equal(t, []string{"A"}, table.Columns)
		assert.Equal(t, [][]webtab.Cell{strs("1")}, table.Rows)
	})
}
