package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeRenderer opens headless Chrome rendering sessions. Each session owns
// its own browser process and must be closed by the caller.
type ChromeRenderer struct {
	navTimeout time.Duration
}

// NewChromeRenderer builds a renderer whose navigations are bounded by
// navTimeout. A zero timeout disables the bound.
func NewChromeRenderer(navTimeout time.Duration) *ChromeRenderer {
	return &ChromeRenderer{navTimeout: navTimeout}
}

// Session is a single headless browser tab. Not safe for concurrent use.
type Session struct {
	ctx        context.Context
	navTimeout time.Duration
	cancels    []context.CancelFunc
}

// NewSession starts a headless Chrome and returns a session bound to it. The
// browser is launched eagerly so a missing Chrome binary fails here, not on
// the first navigation.
func (r *ChromeRenderer) NewSession(ctx context.Context) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}
	return &Session{
		ctx:        browserCtx,
		navTimeout: r.navTimeout,
		cancels:    []context.CancelFunc{cancelBrowser, cancelAlloc},
	}, nil
}

// PageSource navigates to url and returns the rendered document.
func (s *Session) PageSource(url string) (string, error) {
	ctx := s.ctx
	if s.navTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.navTimeout)
		defer cancel()
	}
	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// Close tears down the browser process.
func (s *Session) Close() error {
	for _, cancel := range s.cancels {
		cancel()
	}
	return nil
}
