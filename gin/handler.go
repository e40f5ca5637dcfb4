package gin

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/webtab"
	"github.com/fwojciec/webtab/csv"
	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (rt *router) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status: "healthy",
		Uptime: time.Since(rt.started).Round(time.Second).String(),
	})
}

type extractRequest struct {
	URL         string `json:"url"`
	Mode        string `json:"mode"`
	Selector    string `json:"selector"`
	Instruction string `json:"instruction"`
	Save        bool   `json:"save"`
}

type extractResponse struct {
	Success  bool              `json:"success"`
	Table    *webtab.Table     `json:"table"`
	Summary  webtab.Summary    `json:"summary"`
	Source   webtab.SourcePath `json:"source"`
	Selector string            `json:"selector,omitempty"`
	RunID    string            `json:"runId,omitempty"`
}

func (rt *router) extract(c *gin.Context) {
	var body extractRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, webtab.Errorf(webtab.EINVALID, "invalid request body: %v", err))
		return
	}

	mode := webtab.ModeAllTables
	if body.Mode != "" {
		m, err := webtab.ParseMode(body.Mode)
		if err != nil {
			respondError(c, err)
			return
		}
		mode = m
	}

	req := webtab.ExtractionRequest{
		URL:         body.URL,
		Mode:        mode,
		Selector:    body.Selector,
		Instruction: body.Instruction,
	}
	result, err := rt.extraction.Extract(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := extractResponse{
		Success:  true,
		Table:    result.Table,
		Summary:  webtab.Summarize(result.Table),
		Source:   result.Source,
		Selector: result.Selector,
	}

	if body.Save {
		if rt.runs == nil {
			respondError(c, webtab.Errorf(webtab.EINVALID, "run history is not enabled"))
			return
		}
		run := &webtab.Run{
			URL:      req.URL,
			Mode:     req.Mode,
			Selector: result.Selector,
			Table:    result.Table,
		}
		if err := rt.runs.CreateRun(c.Request.Context(), run); err != nil {
			respondError(c, err)
			return
		}
		resp.RunID = run.ID
	}

	c.JSON(http.StatusOK, resp)
}

type runSummary struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	Mode        webtab.Mode `json:"mode"`
	Selector    string      `json:"selector,omitempty"`
	Rows        int         `json:"rows"`
	Columns     int         `json:"columns"`
	ContentHash string      `json:"contentHash"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type listRunsResponse struct {
	Success bool         `json:"success"`
	Runs    []runSummary `json:"runs"`
}

func (rt *router) listRuns(c *gin.Context) {
	var filter webtab.RunFilter
	if u := c.Query("url"); u != "" {
		filter.URL = &u
	}
	var err error
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		respondError(c, err)
		return
	}
	if filter.Offset, err = intQuery(c, "offset"); err != nil {
		respondError(c, err)
		return
	}

	runs, err := rt.runs.FindRuns(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := listRunsResponse{Success: true, Runs: make([]runSummary, 0, len(runs))}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, runSummary{
			ID:          r.ID,
			URL:         r.URL,
			Mode:        r.Mode,
			Selector:    r.Selector,
			Rows:        len(r.Table.Rows),
			Columns:     len(r.Table.Columns),
			ContentHash: r.ContentHash,
			CreatedAt:   r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

type runResponse struct {
	Success bool           `json:"success"`
	Run     *webtab.Run    `json:"run"`
	Summary webtab.Summary `json:"summary"`
}

func (rt *router) getRun(c *gin.Context) {
	run, err := rt.runs.FindRunByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, runResponse{Success: true, Run: run, Summary: webtab.Summarize(run.Table)})
}

func (rt *router) getRunCSV(c *gin.Context) {
	run, err := rt.runs.FindRunByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := csv.Encode(&buf, run.Table); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, run.ID))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (rt *router) deleteRun(c *gin.Context) {
	if err := rt.runs.DeleteRun(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func intQuery(c *gin.Context, name string) (int, error) {
	s := c.Query(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, webtab.Errorf(webtab.EINVALID, "%s must be a non-negative integer", name)
	}
	return n, nil
}
