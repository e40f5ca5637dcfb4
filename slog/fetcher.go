// Package slog provides log/slog decorators for webtab services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webtab"
)

// Ensure LoggingFetcher implements webtab.Fetcher.
var _ webtab.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   webtab.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webtab.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingPageFetcher implements webtab.PageFetcher.
var _ webtab.PageFetcher = (*LoggingPageFetcher)(nil)

// LoggingPageFetcher wraps a PageFetcher with logging.
type LoggingPageFetcher struct {
	next   webtab.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next webtab.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// FetchPage logs which path produced the page and delegates to the wrapped fetcher.
func (f *LoggingPageFetcher) FetchPage(ctx context.Context, url string) (result *webtab.FetchResult, err error) {
	defer func(begin time.Time) {
		var source webtab.SourcePath
		var bytes int
		if result != nil {
			source, bytes = result.Source, len(result.HTML)
		}
		f.logger.Info("fetch page",
			"url", url,
			"source", source,
			"bytes", bytes,
			"duration", time.Since(begin),
			"code", webtab.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchPage(ctx, url)
}
