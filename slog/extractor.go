package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webtab"
)

// Ensure LoggingExtractor implements webtab.Extractor.
var _ webtab.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   webtab.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next webtab.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the size of the resulting table and delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string, req webtab.ExtractionRequest) (table *webtab.Table, err error) {
	defer func(begin time.Time) {
		rows, cols := tableSize(table)
		e.logger.Debug("extract",
			"mode", req.Mode,
			"selector", req.Selector,
			"rows", rows,
			"columns", cols,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, req)
}

// Ensure LoggingExtractionService implements webtab.ExtractionService.
var _ webtab.ExtractionService = (*LoggingExtractionService)(nil)

// LoggingExtractionService wraps an ExtractionService with logging.
type LoggingExtractionService struct {
	next   webtab.ExtractionService
	logger *slog.Logger
}

// NewLoggingExtractionService creates a new LoggingExtractionService.
func NewLoggingExtractionService(next webtab.ExtractionService, logger *slog.Logger) *LoggingExtractionService {
	return &LoggingExtractionService{next: next, logger: logger}
}

// Extract logs the request outcome and delegates to the wrapped service.
func (s *LoggingExtractionService) Extract(ctx context.Context, req webtab.ExtractionRequest) (result *webtab.ExtractionResult, err error) {
	defer func(begin time.Time) {
		var table *webtab.Table
		var source webtab.SourcePath
		if result != nil {
			table, source = result.Table, result.Source
		}
		rows, _ := tableSize(table)
		s.logger.Info("extraction",
			"url", req.URL,
			"mode", req.Mode,
			"source", source,
			"rows", rows,
			"duration", time.Since(begin),
			"code", webtab.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(ctx, req)
}

func tableSize(t *webtab.Table) (rows, cols int) {
	if t == nil {
		return 0, 0
	}
	return len(t.Rows), len(t.Columns)
}
