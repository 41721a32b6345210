package app

import (
	"context"

	"go.uber.org/zap"

	"bizscout/bizscout/config"
	"bizscout/bizscout/controllers"
	"bizscout/bizscout/services/extractor"
	"bizscout/bizscout/services/scraper"
	"bizscout/bizscout/services/webhook"
	"bizscout/bizscout/sources/psql"
	"bizscout/bizscout/sources/psql/dao"
	"bizscout/bizscout/sources/storage"
	"bizscout/bizscout/utils/logging"
)

// App holds the long-lived pieces shared by the server and the CLI.
type App struct {
	Config       config.Config
	Selectors    extractor.Selectors
	Orchestrator *extractor.Orchestrator
	Webhook      *webhook.Client
	Extract      *controllers.ExtractController

	renderer *scraper.Renderer
	db       *psql.Database
}

// New wires the pipeline from cfg. Selector files must load; the browser,
// cache and database are optional and only logged when unavailable.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	sel, err := extractor.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Selectors: sel}

	var renderer extractor.PageRenderer
	r, err := scraper.NewRenderer(scraper.RendererOptions{
		Headless:      cfg.BrowserHeadless,
		NavTimeout:    cfg.BrowserNavTimeout,
		LookupTimeout: cfg.BrowserLookupTimeout,
		SettleDelay:   cfg.BrowserSettleDelay,
	})
	if err != nil {
		logging.ErrorLogger.Error("browser unavailable, maps strategy disabled", zap.Error(err))
	} else {
		a.renderer = r
		renderer = r
	}

	var cache controllers.RecordCache
	if cfg.CacheEnabled() {
		mc, err := storage.NewMinIOClient(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio unavailable, cache disabled", zap.Error(err))
		} else {
			cache = mc
		}
	}

	var history controllers.HistoryStore
	if cfg.DatabaseEnabled() {
		db, err := psql.NewDatabase(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("database unavailable, history disabled", zap.Error(err))
		} else {
			a.db = db
			history = dao.NewExtractionDAO(db.DB)
		}
	}

	a.Orchestrator = NewOrchestrator(cfg, sel, renderer, extractor.NewHTTPFetcher(cfg.SearchTimeout))
	a.Webhook = webhook.NewClient(cfg.WebhookURL, cfg.WebhookTimeout)
	a.Extract = controllers.NewExtractController(a.Orchestrator, a.Webhook, cache, history)
	return a, nil
}

// NewOrchestrator orders the strategies: the rendered maps page first, then
// the static search page. A nil renderer drops the maps strategy.
func NewOrchestrator(cfg config.Config, sel extractor.Selectors, renderer extractor.PageRenderer, fetcher extractor.PageFetcher) *extractor.Orchestrator {
	var strategies []extractor.Strategy
	if renderer != nil {
		strategies = append(strategies, extractor.NewMapsStrategy(renderer, sel.Maps))
	}
	strategies = append(strategies, extractor.NewSearchStrategy(fetcher, sel.Search))
	logging.AppLogger.Info("extraction pipeline ready",
		zap.Int("strategies", len(strategies)),
		zap.Bool("webhook", cfg.WebhookURL != ""),
	)
	return extractor.NewOrchestrator(strategies...)
}

// Close releases the browser driver and database.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
