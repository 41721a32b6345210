package extractor

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrNoResult means a strategy could not resolve a business name.
var ErrNoResult = eris.New("extractor: no result")

// Strategy is one independent way of locating a business from a search string.
// A miss is reported as an error wrapping ErrNoResult; any other error is
// treated the same way by the orchestrator.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, query string) (RawFields, error)
}

// PageRenderer loads url in a browser and hands the page to fn. The page and
// everything behind it are released before Render returns.
type PageRenderer interface {
	Render(ctx context.Context, url string, fn func(Page) error) error
}

// PageFetcher fetches url and parses the markup into a static page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}
