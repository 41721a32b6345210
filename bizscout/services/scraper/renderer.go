package scraper

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"bizscout/bizscout/services/extractor"
	"bizscout/bizscout/utils/logging"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// RendererOptions controls browser sessions. Zero values fall back to defaults.
type RendererOptions struct {
	Headless      bool
	NavTimeout    time.Duration
	LookupTimeout time.Duration
	SettleDelay   time.Duration
	// MaxBrowsers caps concurrently open browsers.
	MaxBrowsers int
}

func (o *RendererOptions) applyDefaults() {
	if o.NavTimeout <= 0 {
		o.NavTimeout = 15 * time.Second
	}
	if o.LookupTimeout <= 0 {
		o.LookupTimeout = 2 * time.Second
	}
	if o.SettleDelay < 0 {
		o.SettleDelay = 0
	}
	if o.MaxBrowsers <= 0 {
		o.MaxBrowsers = 2
	}
}

var _ extractor.PageRenderer = (*Renderer)(nil)

// Renderer drives headless Chromium. Each Render call gets its own browser,
// closed before Render returns.
type Renderer struct {
	pw   *playwright.Playwright
	opts RendererOptions
	sem  chan struct{}
}

// NewRenderer starts the Playwright driver.
func NewRenderer(opts RendererOptions) (*Renderer, error) {
	opts.applyDefaults()
	pw, err := playwright.Run()
	if err != nil {
		return nil, eris.Wrap(err, "scraper: start playwright")
	}
	return &Renderer{pw: pw, opts: opts, sem: make(chan struct{}, opts.MaxBrowsers)}, nil
}

// Close stops Playwright.
func (r *Renderer) Close() {
	if r.pw == nil {
		return
	}
	if err := r.pw.Stop(); err != nil {
		logging.ErrorLogger.Error("playwright stop failed", zap.Error(err))
	}
}

// Render opens targetURL and hands the loaded page to fn. The browser is
// released on every path, including when fn fails or panics.
func (r *Renderer) Render(ctx context.Context, targetURL string, fn func(extractor.Page) error) error {
	defer logging.LogDuration(ctx, "Renderer.Render")()

	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "scraper: waiting for browser")
	}

	browser, err := r.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(r.opts.Headless),
		Args: []string{
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		return eris.Wrap(err, "scraper: launch chromium")
	}
	defer func() {
		if err := browser.Close(); err != nil {
			logging.ErrorLogger.Warn("browser close failed", zap.Error(err))
		}
	}()

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
		Locale:    playwright.String("en-US"),
	})
	if err != nil {
		return eris.Wrap(err, "scraper: new browser context")
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return eris.Wrap(err, "scraper: new page")
	}
	page.SetDefaultTimeout(float64(r.opts.LookupTimeout.Milliseconds()))

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if _, err := page.Goto(targetURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(r.opts.NavTimeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return eris.Wrapf(err, "scraper: goto %s", targetURL)
	}
	if r.opts.SettleDelay > 0 {
		page.WaitForTimeout(float64(r.opts.SettleDelay.Milliseconds()))
	}

	return fn(&livePage{
		locatorElement: locatorElement{root: page.Locator(":root"), timeout: r.opts.LookupTimeout},
		page:           page,
	})
}

// livePage adapts a Playwright page to extractor.Page.
type livePage struct {
	locatorElement
	page playwright.Page
}

func (p *livePage) URL() string { return p.page.URL() }

type locatorElement struct {
	root    playwright.Locator
	timeout time.Duration
}

// Find waits up to the lookup timeout for the first match to be attached.
func (e locatorElement) Find(ctx context.Context, selector string) (extractor.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := e.root.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(e.timeout.Milliseconds())),
	}); err != nil {
		return nil, eris.Wrapf(extractor.ErrElementNotFound, "selector %q: %v", selector, err)
	}
	return locatorElement{root: loc, timeout: e.timeout}, nil
}

// FindAll returns whatever is attached right now; it does not wait.
func (e locatorElement) FindAll(ctx context.Context, selector string) ([]extractor.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := e.root.Locator(selector)
	n, err := loc.Count()
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: count %q", selector)
	}
	out := make([]extractor.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, locatorElement{root: loc.Nth(i), timeout: e.timeout})
	}
	return out, nil
}

func (e locatorElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := e.root.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(float64(e.timeout.Milliseconds())),
	})
	if err != nil {
		return "", eris.Wrap(err, "scraper: inner text")
	}
	return text, nil
}

// Attr maps a missing attribute to extractor.ErrAttributeMissing.
func (e locatorElement) Attr(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := e.root.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(float64(e.timeout.Milliseconds())),
	})
	if err != nil {
		return "", eris.Wrapf(err, "scraper: attribute %q", name)
	}
	if v == "" {
		return "", eris.Wrapf(extractor.ErrAttributeMissing, "attribute %q", name)
	}
	return v, nil
}
