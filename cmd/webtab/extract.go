package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/webtab"
	"github.com/fwojciec/webtab/csv"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	mode, err := webtab.ParseMode(c.Mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webtab.ErrorMessage(err))
		return err
	}

	req := webtab.ExtractionRequest{
		URL:         c.URL,
		Mode:        mode,
		Selector:    c.Selector,
		Instruction: c.Instruction,
	}
	result, err := deps.Service.Extract(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webtab.ErrorMessage(err))
		return err
	}

	if c.CSV != "" {
		if err := writeCSVFile(c.CSV, result.Table); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", c.CSV, err)
			return err
		}
	}

	var runID string
	if c.Save {
		run := &webtab.Run{
			URL:      req.URL,
			Mode:     req.Mode,
			Selector: result.Selector,
			Table:    result.Table,
		}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webtab.ErrorMessage(err))
			return err
		}
		runID = run.ID
	}

	if err := writeTable(deps.Stdout, c.Format, result.Table, jsonOutput{
		URL:      req.URL,
		Mode:     req.Mode,
		Source:   result.Source,
		Selector: result.Selector,
		RunID:    runID,
	}); err != nil {
		return err
	}

	if runID != "" {
		fmt.Fprintf(deps.Stderr, "Saved run %s\n", runID)
	}
	return nil
}

// jsonOutput is the document written by --format json.
type jsonOutput struct {
	URL      string            `json:"url"`
	Mode     webtab.Mode       `json:"mode"`
	Source   webtab.SourcePath `json:"source,omitempty"`
	Selector string            `json:"selector,omitempty"`
	RunID    string            `json:"runId,omitempty"`
	Table    *webtab.Table     `json:"table"`
	Summary  webtab.Summary    `json:"summary"`
}

// writeTable renders t to w in the named format. The table format is the
// aligned grid followed by a one-line summary.
func writeTable(w io.Writer, format string, t *webtab.Table, meta jsonOutput) error {
	switch format {
	case "csv":
		return csv.Encode(w, t)
	case "json":
		meta.Table = t
		meta.Summary = webtab.Summarize(t)
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	default:
		fmt.Fprint(w, webtab.FormatTable(t))
		fmt.Fprintln(w)
		fmt.Fprintln(w, webtab.FormatSummary(webtab.Summarize(t)))
		return nil
	}
}

func writeCSVFile(path string, t *webtab.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := csv.Encode(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
