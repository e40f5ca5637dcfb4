package webtab

import "context"

// Fetcher retrieves HTML from URLs over a single retrieval path.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// SourcePath identifies which retrieval path produced a page.
type SourcePath string

// SourcePath constants.
const (
	SourceRendered   SourcePath = "rendered"
	SourcePlainFetch SourcePath = "plain_fetch"
)

// FetchResult holds the HTML of a retrieved page and the path that produced it.
type FetchResult struct {
	HTML   string     `json:"-"`
	Source SourcePath `json:"source"`
}

// PageFetcher retrieves a page by trying every configured retrieval path
// in order until one succeeds.
type PageFetcher interface {
	// FetchPage returns the page HTML, or a *FetchError describing why no
	// path produced non-blank content.
	FetchPage(ctx context.Context, url string) (*FetchResult, error)
}
