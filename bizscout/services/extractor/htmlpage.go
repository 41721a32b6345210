package extractor

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// HTMLPage is a Page over static markup, used for plain search-result pages.
type HTMLPage struct {
	htmlElement
	url string
}

// NewHTMLPage parses markup read from r. pageURL is reported by URL().
func NewHTMLPage(pageURL string, r io.Reader) (*HTMLPage, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, eris.Wrap(err, "extractor: parse html")
	}
	doc := goquery.NewDocumentFromNode(root)
	return &HTMLPage{htmlElement: htmlElement{sel: doc.Selection}, url: pageURL}, nil
}

func (p *HTMLPage) URL() string { return p.url }

type htmlElement struct {
	sel *goquery.Selection
}

func (e htmlElement) Find(_ context.Context, selector string) (Element, error) {
	found := e.sel.Find(selector)
	if found.Length() == 0 {
		return nil, eris.Wrapf(ErrElementNotFound, "selector %q", selector)
	}
	return htmlElement{sel: found.First()}, nil
}

func (e htmlElement) FindAll(_ context.Context, selector string) ([]Element, error) {
	found := e.sel.Find(selector)
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, htmlElement{sel: s})
	})
	return out, nil
}

// Text renders visible text only; script, style and noscript are skipped.
func (e htmlElement) Text(_ context.Context) (string, error) {
	var sb strings.Builder
	for _, n := range e.sel.Nodes {
		writeVisibleText(&sb, n)
	}
	return sb.String(), nil
}

func (e htmlElement) Attr(_ context.Context, name string) (string, error) {
	v, ok := e.sel.Attr(name)
	if !ok {
		return "", eris.Wrapf(ErrAttributeMissing, "attribute %q", name)
	}
	return v, nil
}

func writeVisibleText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisibleText(sb, c)
	}
}
