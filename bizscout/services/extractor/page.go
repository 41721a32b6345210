package extractor

import (
	"context"

	"github.com/rotisserie/eris"
)

var (
	ErrElementNotFound  = eris.New("extractor: element not found")
	ErrAttributeMissing = eris.New("extractor: attribute missing")
)

// Element is the query surface both the rendered and the static page offer.
type Element interface {
	Find(ctx context.Context, selector string) (Element, error)
	FindAll(ctx context.Context, selector string) ([]Element, error)
	Text(ctx context.Context) (string, error)
	Attr(ctx context.Context, name string) (string, error)
}

// Page is the root element of a loaded document plus where it ended up.
type Page interface {
	Element
	URL() string
}

// lookupText returns the cleaned text of the first match of selector.
// Any failure is a field miss, reported as ok=false.
func lookupText(ctx context.Context, root Element, selector string) (string, bool) {
	if selector == "" {
		return "", false
	}
	el, err := root.Find(ctx, selector)
	if err != nil {
		return "", false
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", false
	}
	text = CleanText(text)
	return text, text != ""
}

func lookupAttr(ctx context.Context, root Element, selector, attr string) (string, bool) {
	if selector == "" {
		return "", false
	}
	el, err := root.Find(ctx, selector)
	if err != nil {
		return "", false
	}
	v, err := el.Attr(ctx, attr)
	if err != nil {
		return "", false
	}
	v = CleanText(v)
	return v, v != ""
}

// lookupLabel prefers the element's aria-label and falls back to its text.
func lookupLabel(ctx context.Context, root Element, selector string) (string, bool) {
	if selector == "" {
		return "", false
	}
	el, err := root.Find(ctx, selector)
	if err != nil {
		return "", false
	}
	if label, err := el.Attr(ctx, "aria-label"); err == nil && CleanText(label) != "" {
		return CleanText(label), true
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", false
	}
	text = CleanText(text)
	return text, text != ""
}

// lookupFirstText tries selectors in order and returns the first non-empty text.
func lookupFirstText(ctx context.Context, root Element, selectors []string) (string, bool) {
	for _, sel := range selectors {
		if text, ok := lookupText(ctx, root, sel); ok {
			return text, true
		}
	}
	return "", false
}

// lookupAllText collects the cleaned, non-empty text of every match.
func lookupAllText(ctx context.Context, root Element, selector string) ([]string, bool) {
	if selector == "" {
		return nil, false
	}
	els, err := root.FindAll(ctx, selector)
	if err != nil {
		return nil, false
	}
	var out []string
	for _, el := range els {
		text, err := el.Text(ctx)
		if err != nil {
			continue
		}
		if text = CleanText(text); text != "" {
			out = append(out, text)
		}
	}
	return out, len(out) > 0
}
