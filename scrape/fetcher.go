// Package scrape runs the extraction pipeline: it validates requests,
// resolves selectors, retrieves pages over the render and plain paths, and
// hands the HTML to an extractor.
package scrape

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/webtab"
)

// Ensure FallbackFetcher implements webtab.PageFetcher at compile time.
var _ webtab.PageFetcher = (*FallbackFetcher)(nil)

// FallbackFetcher retrieves a page with the renderer first and falls back
// to the plain fetcher when rendering fails. Either may be nil to disable
// that path. Each path is attempted at most once, one after the other.
type FallbackFetcher struct {
	Renderer webtab.Fetcher
	Plain    webtab.Fetcher
	Logger   *slog.Logger
}

// FetchPage returns the page HTML and the path that produced it.
//
// A blank page is reported as EEMPTY and does not trigger the fallback.
// When both paths fail the error is EFETCH and carries both causes; with a
// single configured path the error is ERENDER or EPLAINFETCH.
func (f *FallbackFetcher) FetchPage(ctx context.Context, url string) (*webtab.FetchResult, error) {
	if f.Renderer == nil && f.Plain == nil {
		return nil, webtab.Errorf(webtab.EINTERNAL, "no fetcher configured")
	}

	var renderErr error
	if f.Renderer != nil {
		html, err := f.Renderer.Fetch(ctx, url)
		if err == nil {
			return result(html, webtab.SourceRendered)
		}
		if f.Plain == nil {
			return nil, &webtab.FetchError{Code: webtab.ERENDER, RenderErr: err}
		}
		renderErr = err
		f.logger().Warn("render failed, falling back to plain fetch", "url", url, "err", err)
	}

	html, err := f.Plain.Fetch(ctx, url)
	if err != nil {
		if renderErr != nil {
			return nil, &webtab.FetchError{Code: webtab.EFETCH, RenderErr: renderErr, PlainErr: err}
		}
		return nil, &webtab.FetchError{Code: webtab.EPLAINFETCH, PlainErr: err}
	}
	return result(html, webtab.SourcePlainFetch)
}

func result(html string, source webtab.SourcePath) (*webtab.FetchResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, &webtab.FetchError{Code: webtab.EEMPTY}
	}
	return &webtab.FetchResult{HTML: html, Source: source}, nil
}

func (f *FallbackFetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}
