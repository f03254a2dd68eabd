package ingestion

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/jonathan/talent-search/internal/fetch"
	"github.com/jonathan/talent-search/internal/logging"
	"github.com/sirupsen/logrus"
)

// Target selects the page selectors used for a URL.
type Target string

// URL targets.
const (
	TargetResume     Target = "resume"
	TargetJobPosting Target = "job"
)

// Fetcher retrieves a URL. *fetch.CachedFetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string) (*fetch.CachedResult, error)
}

// URLOptions configures IngestFromURL.
type URLOptions struct {
	Target Target
	// UseBrowser re-renders pages whose text is too short with Renderer.
	UseBrowser bool
	Renderer   fetch.Renderer
	Fetcher    Fetcher
	Log        logrus.FieldLogger
}

// IngestFromURL fetches a hosted resume or job posting and returns its
// cleaned text. PDF and DOCX downloads are extracted like local files.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewCachedFetcher(nil, nil, 0, log)
	}
	log = log.WithField("url", urlStr)

	result, err := fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return "", nil, err
	}
	log.WithFields(logrus.Fields{"bytes": len(result.Body), "cached": result.FromCache}).Debug("fetched page")

	if !result.IsHTML() {
		return ingestDownload(urlStr, result)
	}

	platform := fetch.PlatformUnknown
	contentSelectors := fetch.ResumeSelectors()
	var noiseSelectors []string
	if opts.Target == TargetJobPosting {
		platform = fetch.DetectPlatform(urlStr)
		contentSelectors = fetch.PlatformContentSelectors(platform)
		noiseSelectors = fetch.PlatformNoiseSelectors(platform)
	}

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("content extraction failed: %w", err)
	}

	minChars := fetch.MinResumeLength
	if opts.Target == TargetJobPosting {
		minChars = fetch.MinPostingLength
	}
	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent, minChars) {
		renderer := opts.Renderer
		if renderer == nil {
			renderer = fetch.BrowserRenderer(fetch.DefaultBrowserOptions(), log)
		}
		log.WithField("chars", len(textContent)).Debug("content too short, rendering in browser")

		browserHTML, browserErr := renderer(ctx, urlStr)
		if browserErr != nil {
			log.WithError(browserErr).Warn("browser rendering failed, using HTTP content")
		} else if rendered, err := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); err == nil {
			textContent = rendered
		}
	}

	cleaned := CleanText(textContent)
	if cleaned == "" {
		return "", nil, ErrEmptyContent
	}

	metadata := NewMetadata(cleaned, SourceURL, urlStr, FormatHTML)
	if platform != fetch.PlatformUnknown {
		metadata.Platform = string(platform)
	}
	metadata.FromCache = result.FromCache
	return cleaned, metadata, nil
}

// ingestDownload handles a URL that served a document instead of a page.
func ingestDownload(urlStr string, result *fetch.CachedResult) (string, *Metadata, error) {
	name := documentName(urlStr, result.ContentType)
	text, format, err := ExtractDocument(name, result.Body)
	if err != nil {
		return "", nil, err
	}
	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, ErrEmptyContent
	}
	metadata := NewMetadata(cleaned, SourceURL, urlStr, format)
	metadata.FromCache = result.FromCache
	return cleaned, metadata, nil
}

// documentName derives a file name whose extension matches the content type.
func documentName(urlStr, contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return "download.pdf"
	case strings.Contains(ct, "wordprocessingml"):
		return "download.docx"
	case strings.Contains(ct, "markdown"):
		return "download.md"
	}
	if parsed, err := url.Parse(urlStr); err == nil {
		if base := path.Base(parsed.Path); base != "" && base != "/" && base != "." {
			return base
		}
	}
	return "download"
}
