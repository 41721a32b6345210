package controllers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"bizscout/bizscout/services/extractor"
	"bizscout/bizscout/sources/psql/models"
	"bizscout/bizscout/sources/storage"
	"bizscout/bizscout/utils/logging"
	"bizscout/bizscout/utils/types"
)

var (
	ErrEmptyQuery       = eris.New("Please provide either 'business_name' or 'website_url' in the request body.")
	ErrBusinessNotFound   = eris.New(types.NotFoundMessage)
	ErrExtractionNotFound = eris.New("extraction not found")
)

type Extractor interface {
	Extract(ctx context.Context, query string) types.ExtractionOutcome
}

type WebhookDeliverer interface {
	Deliver(ctx context.Context, record types.BusinessRecord) types.WebhookStatus
}

type RecordCache interface {
	GetRecord(ctx context.Context, query string) (storage.CachedRecord, error)
	PutRecord(ctx context.Context, query, source string, record types.BusinessRecord) (string, error)
}

type HistoryStore interface {
	Create(ctx context.Context, e *models.Extraction) error
	ListRecent(ctx context.Context, limit int) ([]models.Extraction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Extraction, error)
}

// ExtractController runs one extraction per request: cache lookup, strategy
// chain, webhook relay and history row. Cache and history are optional.
type ExtractController struct {
	extractor Extractor
	webhook   WebhookDeliverer
	cache     RecordCache
	history   HistoryStore
}

func NewExtractController(extractor Extractor, webhook WebhookDeliverer, cache RecordCache, history HistoryStore) *ExtractController {
	return &ExtractController{
		extractor: extractor,
		webhook:   webhook,
		cache:     cache,
		history:   history,
	}
}

// Extract returns ErrEmptyQuery when the query names nothing and
// ErrBusinessNotFound when every strategy missed.
func (c *ExtractController) Extract(ctx context.Context, q types.BusinessQuery) (*types.ExtractResponse, error) {
	if q.Empty() {
		return nil, ErrEmptyQuery
	}
	started := time.Now()
	search := extractor.SearchString(q)

	outcome := c.lookup(ctx, search)
	if !outcome.Found() {
		c.record(ctx, q, search, outcome, "", started)
		return nil, ErrBusinessNotFound
	}

	status := c.webhook.Deliver(ctx, *outcome.Record)
	c.record(ctx, q, search, outcome, status.Status, started)

	return &types.ExtractResponse{BusinessRecord: *outcome.Record, WebhookStatus: status}, nil
}

// ListExtractions returns recent history, or an empty list without a store.
func (c *ExtractController) ListExtractions(ctx context.Context, limit int) ([]models.Extraction, error) {
	if c.history == nil {
		return []models.Extraction{}, nil
	}
	return c.history.ListRecent(ctx, limit)
}

// GetExtraction returns ErrExtractionNotFound for unknown ids and when no
// history store is configured.
func (c *ExtractController) GetExtraction(ctx context.Context, id uuid.UUID) (*models.Extraction, error) {
	if c.history == nil {
		return nil, ErrExtractionNotFound
	}
	e, err := c.history.GetByID(ctx, id)
	if err != nil {
		return nil, eris.Wrapf(err, "get extraction %s", id)
	}
	if e == nil {
		return nil, ErrExtractionNotFound
	}
	return e, nil
}

func (c *ExtractController) lookup(ctx context.Context, search string) types.ExtractionOutcome {
	if c.cache != nil {
		cached, err := c.cache.GetRecord(ctx, search)
		if err == nil {
			logging.AppLogger.Info("cache hit", zap.String("query", search), zap.String("source", cached.Source))
			rec := cached.Record
			return types.ExtractionOutcome{Record: &rec, Source: cached.Source, Cached: true}
		}
		if !eris.Is(err, storage.ErrCacheMiss) {
			logging.ErrorLogger.Warn("cache read failed", zap.String("query", search), zap.Error(err))
		}
	}

	outcome := c.extractor.Extract(ctx, search)
	// Placeholder reviews are not cached so a later run can pick up real ones.
	if outcome.Found() && c.cache != nil && !outcome.Record.ReviewsPlaceholder {
		if _, err := c.cache.PutRecord(ctx, search, outcome.Source, *outcome.Record); err != nil {
			logging.ErrorLogger.Warn("cache write failed", zap.String("query", search), zap.Error(err))
		}
	}
	return outcome
}

func (c *ExtractController) record(ctx context.Context, q types.BusinessQuery, search string, outcome types.ExtractionOutcome, webhookStatus string, started time.Time) {
	if c.history == nil {
		return
	}
	e := &models.Extraction{
		Query:         q.BusinessName,
		SearchString:  search,
		Source:        outcome.Source,
		Found:         outcome.Found(),
		Cached:        outcome.Cached,
		Record:        outcome.Record,
		WebhookStatus: webhookStatus,
		DurationMs:    time.Since(started).Milliseconds(),
	}
	if q.WebsiteURL != "" {
		e.Query = q.WebsiteURL
	}
	if outcome.Record != nil {
		e.BusinessName = outcome.Record.BusinessName
	}
	if err := c.history.Create(ctx, e); err != nil {
		logging.ErrorLogger.Warn("history write failed", zap.String("query", search), zap.Error(err))
	}
}
