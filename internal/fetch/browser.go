package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// Below these many visible characters a page is assumed to be rendered by
// JavaScript. Resumes are shorter than job postings.
const (
	MinResumeLength  = 200
	MinPostingLength = 500
)

// ShouldUseBrowser reports whether text has fewer than minChars
// non-whitespace characters.
func ShouldUseBrowser(text string, minChars int) bool {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
			if n >= minChars {
				return false
			}
		}
	}
	return true
}

// Renderer returns the rendered HTML of a page.
type Renderer func(ctx context.Context, url string) (string, error)

// BrowserOptions configures headless rendering.
type BrowserOptions struct {
	Timeout time.Duration
	// Settle is how long to wait after WaitSelector is ready for client-side
	// rendering to finish.
	Settle       time.Duration
	WaitSelector string
	UserAgent    string
}

// DefaultBrowserOptions waits for body and gives scripts two seconds.
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{
		Timeout:      30 * time.Second,
		Settle:       2 * time.Second,
		WaitSelector: "body",
		UserAgent:    DefaultUserAgent,
	}
}

func (o BrowserOptions) withDefaults() BrowserOptions {
	d := DefaultBrowserOptions()
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	if o.Settle < 0 {
		o.Settle = 0
	}
	if strings.TrimSpace(o.WaitSelector) == "" {
		o.WaitSelector = d.WaitSelector
	}
	if o.UserAgent == "" {
		o.UserAgent = d.UserAgent
	}
	return o
}

func allocatorOptions(o BrowserOptions) []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(o.UserAgent),
	)
}

// BrowserRenderer renders pages with headless Chrome. Chrome or Chromium
// must be installed.
func BrowserRenderer(opts BrowserOptions, log logrus.FieldLogger) Renderer {
	return func(ctx context.Context, url string) (string, error) {
		return WithBrowser(ctx, url, opts, log)
	}
}

// WithBrowser loads url in headless Chrome and returns the rendered HTML.
func WithBrowser(ctx context.Context, url string, opts BrowserOptions, log logrus.FieldLogger) (string, error) {
	if err := checkURL(url); err != nil {
		return "", err
	}
	opts = opts.withDefaults()
	if log == nil {
		log = logrus.New()
	}
	log = log.WithField("url", url)
	log.WithField("options", opts.String()).Debug("starting headless browser")

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancelTimeout()

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady(opts.WaitSelector),
	}
	if opts.Settle > 0 {
		actions = append(actions, chromedp.Sleep(opts.Settle))
	}
	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	log.WithField("bytes", len(html)).Debug("browser rendered page")
	return html, nil
}

// String describes the options for logs.
func (o BrowserOptions) String() string {
	o = o.withDefaults()
	return fmt.Sprintf("timeout=%s settle=%s wait=%q", o.Timeout, o.Settle, o.WaitSelector)
}
