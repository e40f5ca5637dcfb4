package webtab

import (
	"context"
	"strings"
)

// Mode is the extraction strategy applied to a fetched page.
type Mode string

// Mode constants.
const (
	ModeAllTables      Mode = "tables"
	ModeHeadings       Mode = "headings"
	ModeSpecificCell   Mode = "row"
	ModeCustomSelector Mode = "custom"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeAllTables, ModeHeadings, ModeSpecificCell, ModeCustomSelector}

// Column names used by the extraction strategies.
const (
	ColumnHeadingLevel  = "HeadingLevel"
	ColumnText          = "Text"
	ColumnExtractedData = "ExtractedData"
	ColumnNoData        = "NoData"
	ColumnNoTablesFound = "NoTablesFound"
)

// ParseMode parses a mode name. Both the short names ("tables", "headings",
// "row", "custom") and the long labels ("All Tables", "Headings",
// "Specific Row/Column", "Custom Selector") are accepted, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tables", "all tables", "all-tables":
		return ModeAllTables, nil
	case "headings":
		return ModeHeadings, nil
	case "row", "specific row/column", "specific-cell", "specific cell":
		return ModeSpecificCell, nil
	case "custom", "custom selector", "custom-selector":
		return ModeCustomSelector, nil
	}
	return "", Errorf(EINVALID, "unknown mode %q", s)
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeAllTables, ModeHeadings, ModeSpecificCell, ModeCustomSelector:
		return true
	}
	return false
}

// ExtractionRequest describes a single extraction: what page to load and
// how to turn it into a table.
type ExtractionRequest struct {
	URL  string `json:"url"`
	Mode Mode   `json:"mode"`

	// Selector is the CSS selector used in custom mode.
	Selector string `json:"selector,omitempty"`

	// Instruction is free text translated into a selector when custom
	// mode is requested without one.
	Instruction string `json:"instruction,omitempty"`
}

// Validate returns an error if the request is malformed. URL problems are
// reported as EINVALIDURL so callers can reject them before any network
// activity.
func (r *ExtractionRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALIDURL, "URL required")
	}
	if !IsValidURL(r.URL) {
		return Errorf(EINVALIDURL, "invalid URL %q", r.URL)
	}
	if !r.Mode.Valid() {
		return Errorf(EINVALID, "unknown mode %q", r.Mode)
	}
	hasSelector := strings.TrimSpace(r.Selector) != ""
	hasInstruction := strings.TrimSpace(r.Instruction) != ""
	if r.Mode == ModeCustomSelector {
		if !hasSelector && !hasInstruction {
			return Errorf(EINVALID, "selector or instruction required in %s mode", r.Mode)
		}
		return nil
	}
	if hasSelector || hasInstruction {
		return Errorf(EINVALID, "selector and instruction are only valid in %s mode", ModeCustomSelector)
	}
	return nil
}

// Extractor turns page HTML into a table according to the request mode.
type Extractor interface {
	// Extract parses html once and applies the strategy named by req.Mode.
	// Finding nothing is not an error: the result is an empty table.
	// Returns EPARSE if the HTML cannot be parsed.
	Extract(html string, req ExtractionRequest) (*Table, error)
}

// ExtractionResult is the outcome of a full extraction: the table and how
// it was obtained.
type ExtractionResult struct {
	Table *Table `json:"table"`

	// Source is the retrieval path that produced the page.
	Source SourcePath `json:"source"`

	// Selector is the selector applied in custom mode, after any
	// translation of an instruction.
	Selector string `json:"selector,omitempty"`
}

// ExtractionService runs the whole pipeline for one request: validation,
// selector translation, page retrieval, and extraction.
type ExtractionService interface {
	// Extract returns EINVALIDURL or EINVALID for malformed requests
	// without touching the network, a *FetchError when the page cannot be
	// retrieved, and EPARSE when it cannot be parsed.
	Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResult, error)
}
