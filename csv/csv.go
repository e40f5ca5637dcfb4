// Package csv encodes webtab tables as CSV.
package csv

import (
	"encoding/csv"
	"io"

	"github.com/fwojciec/webtab"
)

// Encode writes t to w as CSV: a header row of column names followed by
// one record per row. Null cells are written as empty fields.
func Encode(w io.Writer, t *webtab.Table) error {
	if t == nil {
		return webtab.Errorf(webtab.EINVALID, "table required")
	}
	if err := t.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			record[i] = cell.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
