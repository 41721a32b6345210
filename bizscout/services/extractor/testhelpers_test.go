package extractor

import (
	"context"
	"errors"
	"strings"
)

func htmlPageFromString(pageURL, markup string) (*HTMLPage, error) {
	return NewHTMLPage(pageURL, strings.NewReader(markup))
}

// fakeRenderer serves fixed markup as a rendered page and counts releases.
type fakeRenderer struct {
	markup  string
	pageURL string
	err     error

	renders  int
	releases int
	gotURL   string
}

func (f *fakeRenderer) Render(_ context.Context, url string, fn func(Page) error) error {
	f.renders++
	f.gotURL = url
	defer func() { f.releases++ }()
	if f.err != nil {
		return f.err
	}
	page, err := htmlPageFromString(f.pageURL, f.markup)
	if err != nil {
		return err
	}
	return fn(page)
}

var errDetached = errors.New("element detached from document")

// brokenElement fails every query, like a page that navigated away mid-walk.
type brokenElement struct{}

func (brokenElement) Find(context.Context, string) (Element, error)      { return nil, errDetached }
func (brokenElement) FindAll(context.Context, string) ([]Element, error) { return nil, errDetached }
func (brokenElement) Text(context.Context) (string, error)               { return "", errDetached }
func (brokenElement) Attr(context.Context, string) (string, error)       { return "", errDetached }

// brokenReviewsPage is a working page whose review list query fails.
type brokenReviewsPage struct {
	*HTMLPage
	reviewSelector string
}

func (p brokenReviewsPage) FindAll(ctx context.Context, selector string) ([]Element, error) {
	if selector == p.reviewSelector {
		return nil, errDetached
	}
	return p.HTMLPage.FindAll(ctx, selector)
}

// stubStrategy returns canned results and records how often it ran.
type stubStrategy struct {
	name   string
	fields RawFields
	err    error
	panics bool
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Attempt(context.Context, string) (RawFields, error) {
	s.calls++
	if s.panics {
		panic("selector engine exploded")
	}
	return s.fields, s.err
}

const mapsListingHTML = `<html><body>
<h1 class="fontHeadlineLarge">  Blue Bottle   Coffee </h1>
<div class="fontDisplayLarge" aria-label="4.3 stars">4.3</div>
<button aria-label="2,847 reviews">(2,847)</button>
<button data-item-id="address">1 Ferry Building,
  San Francisco, CA 94111</button>
<button data-item-id="phone:tel:+14155434080">+1 415-543-4080</button>
<a data-item-id="authority" href="https://bluebottlecoffee.com/">bluebottlecoffee.com</a>
<div data-item-id="oh-hours">Mon-Fri 7am-6:30pm</div>
<button data-item-id="category">Coffee shop</button>
<button data-item-id="category">Cafe</button>
<button aria-label="Photo of Blue Bottle Coffee"><img src="https://lh5.googleusercontent.com/p/abc"></button>
<div class="PYvSYb">Locally owned, sustainable coffee roaster offering barista training.</div>
<div data-review-id="r1">
  <span aria-label="5 stars"></span>
  <span class="review-snippet">Amazing pour-over.</span>
</div>
<div data-review-id="r2">
  <span aria-label="4.0 stars"></span>
  <span class="review-snippet">  Great   cold brew. </span>
</div>
<div data-review-id="r3">
  <span class="review-snippet">No stars on this one.</span>
</div>
<div data-review-id="r4">
  <span aria-label="3 stars"></span>
</div>
</body></html>`
