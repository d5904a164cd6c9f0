package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNoContent is returned when a page yields no description text.
var ErrNoContent = errors.New("no job description text found")

// Posting is the description text extracted from a job-posting URL.
type Posting struct {
	URL      string
	Platform Platform
	Text     string
	// Rendered is set when the text came from a headless browser render.
	Rendered bool
}

// JobOptions configures JobText.
type JobOptions struct {
	Fetch *Options
	// UseBrowser enables the headless render fallback for short pages.
	UseBrowser     bool
	BrowserTimeout time.Duration
	// Render overrides the browser renderer. Nil uses RenderWithBrowser.
	Render RenderFunc
	Logger *slog.Logger
}

// JobText fetches urlStr and extracts the job description using the
// platform's selectors. When the plain fetch yields too little text and
// UseBrowser is set, the page is rendered in a headless browser and the text
// re-extracted. A failed render keeps the plain text.
func JobText(ctx context.Context, urlStr string, opts JobOptions) (*Posting, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "fetch", "url", urlStr)

	platform := DetectPlatform(urlStr)
	logger.Debug("fetching job posting", "platform", platform)

	page, err := Get(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, err
	}

	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)

	text, err := ExtractMainText(page.HTML, content, noise...)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", urlStr, err)
	}
	logger.Debug("extracted text", "chars", len(text))

	posting := &Posting{URL: urlStr, Platform: platform, Text: text}

	if opts.UseBrowser && NeedsBrowser(text) {
		render := opts.Render
		if render == nil {
			render = RenderWithBrowser
		}
		timeout := opts.BrowserTimeout
		if timeout <= 0 {
			timeout = DefaultBrowserTimeout
		}

		logger.Debug("content too short, rendering in browser", "chars", len(text), "min", MinContentLength)
		if html, err := render(ctx, urlStr, timeout); err != nil {
			logger.Warn("browser rendering failed, using fetched content", "error", err)
		} else if rendered, err := ExtractMainText(html, content, noise...); err != nil {
			logger.Warn("failed to extract rendered text", "error", err)
		} else if len(rendered) > len(text) {
			posting.Text = rendered
			posting.Rendered = true
		}
	}

	if posting.Text == "" {
		return nil, fmt.Errorf("%s: %w", urlStr, ErrNoContent)
	}
	return posting, nil
}
