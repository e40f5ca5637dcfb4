// Package goquery implements webtab.Extractor on top of goquery and cascadia.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/webtab"
	"golang.org/x/net/html"
)

// headingSelector matches the heading levels reported in headings mode.
const headingSelector = "h1, h2, h3, h4"

// Ensure Extractor implements webtab.Extractor at compile time.
var _ webtab.Extractor = (*Extractor)(nil)

// Extractor parses page HTML into tables.
// Extractor is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses page once and applies the strategy named by req.Mode.
func (e *Extractor) Extract(page string, req webtab.ExtractionRequest) (*webtab.Table, error) {
	doc, err := parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	switch req.Mode {
	case webtab.ModeAllTables:
		return extractAllTables(doc), nil
	case webtab.ModeHeadings:
		return extractHeadings(doc), nil
	case webtab.ModeSpecificCell:
		return extractFirstRow(doc), nil
	case webtab.ModeCustomSelector:
		return extractSelector(doc, req.Selector), nil
	}
	return nil, webtab.Errorf(webtab.EINVALID, "unknown mode %q", req.Mode)
}

func parse(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, webtab.Errorf(webtab.EPARSE, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// extractAllTables returns the first table of the document.
func extractAllTables(doc *goquery.Document) *webtab.Table {
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return webtab.NewTable(webtab.ColumnNoTablesFound)
	}
	t := parseTable(tables.First())
	if len(t.Columns) == 0 {
		return webtab.NewTable(webtab.ColumnNoData)
	}
	return t
}

// extractFirstRow returns only the first data row of the first table.
func extractFirstRow(doc *goquery.Document) *webtab.Table {
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return webtab.NewTable(webtab.ColumnNoTablesFound)
	}
	t := parseTable(tables.First())
	if len(t.Rows) == 0 {
		return webtab.NewTable(webtab.ColumnNoData)
	}
	t.Rows = t.Rows[:1]
	return t
}

func extractHeadings(doc *goquery.Document) *webtab.Table {
	t := webtab.NewTable(webtab.ColumnHeadingLevel, webtab.ColumnText)
	doc.Find(headingSelector).Each(func(_ int, sel *goquery.Selection) {
		text := normalizeText(sel.Text())
		if text == "" {
			return
		}
		_ = t.AppendRow(webtab.StringCell(goquery.NodeName(sel)), webtab.StringCell(text))
	})
	return t
}

// extractSelector returns the text of every element matching selector.
// Invalid selectors produce an empty table.
func extractSelector(doc *goquery.Document, selector string) *webtab.Table {
	t := webtab.NewTable(webtab.ColumnExtractedData)
	m, err := cascadia.Compile(selector)
	if err != nil {
		return t
	}
	doc.FindMatcher(m).Each(func(_ int, sel *goquery.Selection) {
		text := normalizeText(sel.Text())
		if text == "" {
			return
		}
		_ = t.AppendRow(webtab.StringCell(text))
	})
	return t
}

// normalizeText trims s and collapses internal whitespace runs to one space.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
