package main

import (
	"fmt"

	"github.com/fwojciec/webtab"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if webtab.ErrorCode(err) == webtab.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'webtab history' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webtab.ErrorMessage(err))
		}
		return err
	}

	return writeTable(deps.Stdout, c.Format, run.Table, jsonOutput{
		URL:      run.URL,
		Mode:     run.Mode,
		Selector: run.Selector,
		RunID:    run.ID,
	})
}
