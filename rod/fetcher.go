// Package rod implements webtab.Fetcher with a headless Chrome browser
// driven through go-rod.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/webtab"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Default timeouts for the render path.
const (
	DefaultNavigationTimeout = 120 * time.Second
	DefaultIdleTimeout       = 30 * time.Second
)

// requestIdleWindow is how long the network must stay quiet before the
// page counts as loaded.
const requestIdleWindow = 500 * time.Millisecond

// Media requests are ignored when waiting for network idle; long-lived
// streams would otherwise keep the page busy forever.
var idleExcludedTypes = []proto.NetworkResourceType{
	proto.NetworkResourceTypeImage,
	proto.NetworkResourceTypeMedia,
	proto.NetworkResourceTypeWebSocket,
	proto.NetworkResourceTypeEventSource,
}

// Ensure Fetcher implements webtab.Fetcher at compile time.
var _ webtab.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Every call to Fetch launches its own browser and releases it before
// returning; no browser state is shared between calls.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	navigationTimeout time.Duration
	idleTimeout       time.Duration
	bin               string
	noSandbox         bool
	stealth           bool
	closed            atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithNavigationTimeout bounds navigation and the network idle wait.
// Defaults to DefaultNavigationTimeout (120s) if not specified.
func WithNavigationTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.navigationTimeout = d
	}
}

// WithIdleTimeout bounds the wait for the DOM to settle after load.
// Defaults to DefaultIdleTimeout (30s) if not specified.
func WithIdleTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.idleTimeout = d
	}
}

// WithBin sets the Chrome binary to launch. By default the launcher looks
// for a local installation and downloads one if none is found.
func WithBin(path string) Option {
	return func(f *Fetcher) {
		f.bin = path
	}
}

// WithNoSandbox disables the Chrome sandbox, which is required when
// running as root inside containers.
func WithNoSandbox() Option {
	return func(f *Fetcher) {
		f.noSandbox = true
	}
}

// WithStealth injects the go-rod stealth script into every page to reduce
// headless browser detection.
func WithStealth() Option {
	return func(f *Fetcher) {
		f.stealth = true
	}
}

// NewFetcher creates a new browser-backed Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		navigationTimeout: DefaultNavigationTimeout,
		idleTimeout:       DefaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.bin == "" {
		if path, found := launcher.LookPath(); found {
			f.bin = path
		}
	}
	return f
}

// Fetch launches a browser, navigates to the URL, waits for the network
// and the DOM to settle, and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", webtab.Errorf(webtab.EINVALID, "fetcher closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l := f.newLauncher().Context(ctx)
	u, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launching browser: %w", err)
	}
	defer l.Cleanup()
	defer l.Kill()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	if f.stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			return "", fmt.Errorf("injecting stealth script: %w", err)
		}
	}

	if err := f.navigate(ctx, page, url); err != nil {
		return "", err
	}

	// Secondary settle: wait until the DOM stops changing.
	idleCtx, cancelIdle := context.WithTimeout(ctx, f.idleTimeout)
	defer cancelIdle()
	if err := page.Context(idleCtx).WaitDOMStable(requestIdleWindow, 0.1); err != nil {
		return "", fmt.Errorf("waiting for page to settle: %w", err)
	}

	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("reading page HTML: %w", err)
	}
	return html, nil
}

// navigate loads url and waits until the load event has fired and the
// network has been idle for requestIdleWindow.
func (f *Fetcher) navigate(ctx context.Context, page *rod.Page, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, f.navigationTimeout)
	defer cancel()
	p := page.Context(navCtx)

	// The idle waiter must be registered before navigation starts so no
	// request is missed.
	waitIdle := p.WaitRequestIdle(requestIdleWindow, nil, nil, idleExcludedTypes)

	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for load: %w", err)
	}
	waitIdle()

	if err := navCtx.Err(); err != nil {
		return fmt.Errorf("waiting for network idle: %w", err)
	}
	return nil
}

// newLauncher builds a launcher with flags that keep headless Chrome
// stable in long-running and containerized processes.
func (f *Fetcher) newLauncher() *launcher.Launcher {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if f.bin != "" {
		l = l.Bin(f.bin)
	}
	if f.noSandbox {
		l = l.NoSandbox(true)
	}
	return l
}

// Close marks the fetcher closed. Browsers are released at the end of each
// Fetch, so there is nothing else to free. Close is safe to call multiple
// times.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return nil
}
