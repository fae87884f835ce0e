package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/reshetovitsme/feed-announcer/internal/modules/feed/domain"
	"github.com/reshetovitsme/feed-announcer/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const (
	userAgent           = "Mozilla/5.0 (compatible; feed-announcer/1.0; +https://github.com/reshetovitsme/feed-announcer)"
	defaultFetchTimeout = 30 * time.Second
)

// Fetcher downloads and parses a syndication feed (RSS, Atom or JSON Feed)
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a feed fetcher. A non-positive timeout uses the default.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &uaTransport{base: http.DefaultTransport},
		},
		timeout: timeout,
	}
}

// Fetch returns the feed entries in the order the feed lists them.
// Every failure is wrapped with errors.ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.Client = f.client
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, oops.
			Code("fetch_failed").
			With("feed_url", feedURL).
			Wrap(fmt.Errorf("%w: %w", errors.ErrFetch, err))
	}

	return entriesFromFeed(feed), nil
}

func entriesFromFeed(feed *gofeed.Feed) []domain.Entry {
	return lo.FilterMap(feed.Items, func(item *gofeed.Item, _ int) (domain.Entry, bool) {
		if item == nil {
			return domain.Entry{}, false
		}
		return domain.Entry{
			ID:        strings.TrimSpace(item.GUID),
			Link:      strings.TrimSpace(item.Link),
			Title:     strings.TrimSpace(item.Title),
			Published: itemPublished(item),
		}, true
	})
}

func itemPublished(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

// uaTransport injects a User-Agent header into every request.
type uaTransport struct {
	base http.RoundTripper
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(req)
}
