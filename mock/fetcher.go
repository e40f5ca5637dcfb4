package mock

import (
	"context"

	"github.com/fwojciec/webtab"
)

var _ webtab.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webtab.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ webtab.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of webtab.PageFetcher.
type PageFetcher struct {
	FetchPageFn func(ctx context.Context, url string) (*webtab.FetchResult, error)
}

func (f *PageFetcher) FetchPage(ctx context.Context, url string) (*webtab.FetchResult, error) {
	return f.FetchPageFn(ctx, url)
}
