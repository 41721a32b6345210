package extractor

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// SearchStrategy reads the knowledge panel of a static search-results page.
type SearchStrategy struct {
	fetcher PageFetcher
	sel     SearchSelectors
}

func NewSearchStrategy(fetcher PageFetcher, sel SearchSelectors) *SearchStrategy {
	return &SearchStrategy{fetcher: fetcher, sel: sel}
}

func (s *SearchStrategy) Name() string { return "google_search" }

// SearchURL builds the results-page URL, e.g. ...?q=Blue+Bottle+Coffee+google+business.
func (s *SearchStrategy) SearchURL(query string) string {
	params := url.Values{}
	params.Set("q", query+s.sel.QuerySuffix)
	return s.sel.SearchURL + "?" + params.Encode()
}

func (s *SearchStrategy) Attempt(ctx context.Context, query string) (RawFields, error) {
	page, err := s.fetcher.Fetch(ctx, s.SearchURL(query))
	if err != nil {
		return nil, eris.Wrap(err, "google_search")
	}

	name, ok := lookupFirstText(ctx, page, s.sel.Name)
	if !ok {
		return nil, eris.Wrap(ErrNoResult, "google_search: business name not found")
	}
	fields := RawFields{FieldName: name}

	if label, ok := lookupAttr(ctx, page, s.sel.Rating, "aria-label"); ok {
		if rating := ExtractRating(label); rating != "" {
			fields[FieldRating] = rating
		}
	}
	if label, ok := lookupAttr(ctx, page, s.sel.ReviewCount, "aria-label"); ok {
		if n, ok := ExtractReviewCount(label); ok {
			fields[FieldReviewCount] = n
		}
	}
	if v, ok := lookupText(ctx, page, s.sel.Address); ok {
		fields[FieldAddress] = v
	}
	if v, ok := lookupText(ctx, page, s.sel.Phone); ok {
		fields[FieldPhone] = v
	}
	if v, ok := lookupAttr(ctx, page, s.sel.Website, "href"); ok && strings.HasPrefix(v, "http") {
		fields[FieldWebsite] = v
	}
	if v, ok := lookupText(ctx, page, s.sel.Description); ok {
		fields[FieldDescription] = v
	}
	return fields, nil
}

var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Upgrade-Insecure-Requests": "1",
}

// HTTPFetcher fetches pages over plain HTTP with browser-like headers.
type HTTPFetcher struct {
	client  *http.Client
	maxBody int64
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		maxBody: 2 * 1024 * 1024,
	}
}

func (h *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("fetch: status %d", resp.StatusCode)
	}

	page, err := NewHTMLPage(resp.Request.URL.String(), io.LimitReader(resp.Body, h.maxBody))
	if err != nil {
		return nil, err
	}
	return page, nil
}
