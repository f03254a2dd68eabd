package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/store"
	"github.com/sirupsen/logrus"
)

// DefaultCacheTTL is how long a fetched page is reused.
const DefaultCacheTTL = 24 * time.Hour

// cacheKeyPrefix namespaces cached pages next to the candidate list.
const cacheKeyPrefix = "talent_search_page_"

// cachedPage is the stored form of a fetched page.
type cachedPage struct {
	URL         string    `json:"url"`
	Body        []byte    `json:"body"`
	ContentType string    `json:"contentType"`
	StatusCode  int       `json:"statusCode"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// CachedFetcher wraps URL with a cache kept in a storage backend, so
// repeated searches against the same job posting do not refetch it.
type CachedFetcher struct {
	backend store.Backend
	options *Options
	ttl     time.Duration
	now     func() time.Time
	log     logrus.FieldLogger
}

// NewCachedFetcher returns a fetcher caching into backend. A nil backend
// disables caching.
func NewCachedFetcher(backend store.Backend, options *Options, ttl time.Duration, log logrus.FieldLogger) *CachedFetcher {
	if options == nil {
		options = DefaultOptions()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logging.Discard()
	}
	return &CachedFetcher{
		backend: backend,
		options: options,
		ttl:     ttl,
		now:     time.Now,
		log:     log.WithField("component", "fetch"),
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch returns a fresh cached copy of urlStr when there is one and fetches
// it otherwise. Cache failures never fail the fetch.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	key := CacheKey(urlStr)

	if f.backend != nil {
		if page, ok := f.lookup(ctx, key); ok {
			return &CachedResult{
				Result: &Result{
					URL:         page.URL,
					Body:        page.Body,
					HTML:        string(page.Body),
					ContentType: page.ContentType,
					StatusCode:  page.StatusCode,
				},
				FromCache: true,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	if f.backend != nil {
		data, err := json.Marshal(cachedPage{
			URL:         result.URL,
			Body:        result.Body,
			ContentType: result.ContentType,
			StatusCode:  result.StatusCode,
			FetchedAt:   f.now().UTC(),
		})
		if err == nil {
			err = f.backend.Put(ctx, key, data)
		}
		if err != nil {
			f.log.WithError(err).WithField("url", urlStr).Warn("failed to cache page")
		}
	}

	return &CachedResult{Result: result}, nil
}

func (f *CachedFetcher) lookup(ctx context.Context, key string) (*cachedPage, bool) {
	data, err := f.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			f.log.WithError(err).Warn("page cache read failed")
		}
		return nil, false
	}
	var page cachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false
	}
	if f.now().Sub(page.FetchedAt) > f.ttl {
		return nil, false
	}
	return &page, true
}

// CacheKey returns the storage key for a URL.
func CacheKey(urlStr string) string {
	sum := sha256.Sum256([]byte(urlStr))
	return cacheKeyPrefix + hex.EncodeToString(sum[:8])
}
