package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webtab"
)

// Upper bounds for span attributes, matching the HTML parsing rules.
const (
	maxColspan = 1000
	maxRowspan = 65534
)

// parseTable converts a <table> element into a webtab.Table.
//
// Header rows come from <thead>, or when there is none, from the leading
// rows made only of <th> cells. Rows of nested tables are ignored. Cells
// spanning several rows or columns are repeated into every slot they cover.
func parseTable(table *goquery.Selection) *webtab.Table {
	head, body := tableRows(table)

	headGrid := expandSpans(head)
	bodyGrid := expandSpans(body)
	if len(head) == 0 {
		n := leadingHeaderRows(body)
		headGrid, bodyGrid = bodyGrid[:n], bodyGrid[n:]
	}

	width := 0
	for _, row := range headGrid {
		width = max(width, len(row))
	}
	for _, row := range bodyGrid {
		width = max(width, len(row))
	}

	t := webtab.NewTable(columnNames(headGrid, width)...)
	for _, row := range bodyGrid {
		if blankRow(row) {
			continue
		}
		cells := make([]webtab.Cell, len(row))
		for i, text := range row {
			cells[i] = webtab.TextCell(text)
		}
		_ = t.AppendRow(cells...)
	}
	return t
}

// tableRows returns the table's own rows split into header rows and the
// rest. Footer rows are moved after the body rows.
func tableRows(table *goquery.Selection) (head, body []*goquery.Selection) {
	var foot []*goquery.Selection
	table.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "thead":
			head = append(head, rowsOf(child)...)
		case "tbody":
			body = append(body, rowsOf(child)...)
		case "tfoot":
			foot = append(foot, rowsOf(child)...)
		case "tr":
			body = append(body, child)
		}
	})
	return head, append(body, foot...)
}

func rowsOf(section *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	section.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, tr)
	})
	return rows
}

// leadingHeaderRows counts the rows at the start of rows whose cells are
// all <th>.
func leadingHeaderRows(rows []*goquery.Selection) int {
	n := 0
	for _, tr := range rows {
		cells := tr.ChildrenFiltered("td, th")
		if cells.Length() == 0 || cells.Length() != cells.Filter("th").Length() {
			break
		}
		n++
	}
	return n
}

type pendingCell struct {
	text string
	left int
}

// expandSpans lays the cells of rows out on a grid, repeating cells with
// colspan or rowspan into every slot they cover.
func expandSpans(rows []*goquery.Selection) [][]string {
	grid := make([][]string, 0, len(rows))
	pending := make(map[int]*pendingCell)

	for _, tr := range rows {
		var out []string
		fillPending := func() {
			for {
				p, ok := pending[len(out)]
				if !ok {
					return
				}
				out = append(out, p.text)
				p.left--
				if p.left == 0 {
					delete(pending, len(out)-1)
				}
			}
		}

		tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			fillPending()
			text := normalizeText(cell.Text())
			colspan := spanAttr(cell, "colspan", maxColspan)
			rowspan := spanAttr(cell, "rowspan", maxRowspan)
			for range colspan {
				if rowspan > 1 {
					pending[len(out)] = &pendingCell{text: text, left: rowspan - 1}
				}
				out = append(out, text)
			}
		})

		// Cells spanning down from earlier rows may sit after the last
		// cell of this row, possibly with gaps in between.
		last := -1
		for col := range pending {
			last = max(last, col)
		}
		for len(out) <= last {
			if _, ok := pending[len(out)]; ok {
				fillPending()
			} else {
				out = append(out, "")
			}
		}

		grid = append(grid, out)
	}
	return grid
}

func spanAttr(cell *goquery.Selection, name string, limit int) int {
	v, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, limit)
}

// columnNames joins header rows per column. Columns without a header get
// their position as name and repeated names get a numeric suffix.
func columnNames(head [][]string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := range width {
		var parts []string
		for _, row := range head {
			if i >= len(row) || row[i] == "" {
				continue
			}
			if len(parts) > 0 && parts[len(parts)-1] == row[i] {
				continue
			}
			parts = append(parts, row[i])
		}
		name := strings.Join(parts, " ")
		if name == "" {
			name = strconv.Itoa(i)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

func blankRow(row []string) bool {
	for _, text := range row {
		if text != "" {
			return false
		}
	}
	return true
}
