package webtab

import (
	"context"
	"time"
)

// Run is a saved extraction: the request that produced a table and the
// table itself.
type Run struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Mode     Mode   `json:"mode"`
	Selector string `json:"selector,omitempty"`
	Table    *Table `json:"table"`

	// ContentHash fingerprints the table so repeated runs against the same
	// page show whether its data changed.
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "run URL required")
	}
	if !r.Mode.Valid() {
		return Errorf(EINVALID, "run mode %q invalid", r.Mode)
	}
	if r.Table == nil {
		return Errorf(EINVALID, "run table required")
	}
	return r.Table.Validate()
}

// RunService represents a service for managing saved runs.
type RunService interface {
	// CreateRun saves a run, assigning its ID, hash and timestamp.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
