package controllers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizscout/bizscout/sources/psql/models"
	"bizscout/bizscout/sources/storage"
	"bizscout/bizscout/utils/types"
)

type fakeExtractor struct {
	outcome types.ExtractionOutcome
	queries []string
}

func (f *fakeExtractor) Extract(_ context.Context, query string) types.ExtractionOutcome {
	f.queries = append(f.queries, query)
	return f.outcome
}

type fakeWebhook struct {
	status    types.WebhookStatus
	delivered []types.BusinessRecord
}

func (f *fakeWebhook) Deliver(_ context.Context, rec types.BusinessRecord) types.WebhookStatus {
	f.delivered = append(f.delivered, rec)
	return f.status
}

type fakeCache struct {
	entries map[string]storage.CachedRecord
	getErr  error
	putErr  error
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]storage.CachedRecord{}}
}

func (f *fakeCache) GetRecord(_ context.Context, query string) (storage.CachedRecord, error) {
	if f.getErr != nil {
		return storage.CachedRecord{}, f.getErr
	}
	c, ok := f.entries[query]
	if !ok {
		return storage.CachedRecord{}, storage.ErrCacheMiss
	}
	return c, nil
}

func (f *fakeCache) PutRecord(_ context.Context, query, source string, rec types.BusinessRecord) (string, error) {
	f.puts++
	if f.putErr != nil {
		return "", f.putErr
	}
	f.entries[query] = storage.CachedRecord{Query: query, Source: source, Record: rec}
	return storage.RecordKey(query), nil
}

type fakeHistory struct {
	rows      []*models.Extraction
	createErr error
}

func (f *fakeHistory) Create(_ context.Context, e *models.Extraction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows = append(f.rows, e)
	return nil
}

func (f *fakeHistory) GetByID(_ context.Context, id uuid.UUID) (*models.Extraction, error) {
	for _, e := range f.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeHistory) ListRecent(_ context.Context, limit int) ([]models.Extraction, error) {
	out := []models.Extraction{}
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.rows[i])
	}
	return out, nil
}

func foundOutcome(name string) types.ExtractionOutcome {
	rec := types.NewBusinessRecord()
	rec.BusinessName = name
	return types.ExtractionOutcome{Record: &rec, Source: "google_maps"}
}

var okWebhook = types.WebhookStatus{Status: types.WebhookSuccess, Message: "Data sent to webhook successfully"}

func TestExtract_EmptyQuery(t *testing.T) {
	ext := &fakeExtractor{}
	c := NewExtractController(ext, &fakeWebhook{}, nil, nil)

	_, err := c.Extract(context.Background(), types.BusinessQuery{BusinessName: "  "})

	assert.True(t, eris.Is(err, ErrEmptyQuery))
	assert.Empty(t, ext.queries)
}

func TestExtract_Found(t *testing.T) {
	ext := &fakeExtractor{outcome: foundOutcome("Blue Bottle Coffee")}
	hook := &fakeWebhook{status: okWebhook}
	hist := &fakeHistory{}
	c := NewExtractController(ext, hook, nil, hist)

	resp, err := c.Extract(context.Background(), types.BusinessQuery{BusinessName: "Blue Bottle Coffee"})
	require.NoError(t, err)

	assert.Equal(t, "Blue Bottle Coffee", resp.BusinessName)
	assert.Equal(t, okWebhook, resp.WebhookStatus)
	require.Len(t, hook.delivered, 1)
	assert.Equal(t, "Blue Bottle Coffee", hook.delivered[0].BusinessName)

	require.Len(t, hist.rows, 1)
	assert.True(t, hist.rows[0].Found)
	assert.Equal(t, "google_maps", hist.rows[0].Source)
	assert.Equal(t, types.WebhookSuccess, hist.rows[0].WebhookStatus)
}

func TestExtract_WebsiteURLWinsAndIsReducedToDomain(t *testing.T) {
	ext := &fakeExtractor{outcome: foundOutcome("Freedom Finders Firm")}
	hist := &fakeHistory{}
	c := NewExtractController(ext, &fakeWebhook{status: okWebhook}, nil, hist)

	_, err := c.Extract(context.Background(), types.BusinessQuery{
		BusinessName: "Freedom Finders Firm",
		WebsiteURL:   "https://www.freedomfindersfirm.com/about",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"freedomfindersfirm.com"}, ext.queries)
	assert.Equal(t, "https://www.freedomfindersfirm.com/about", hist.rows[0].Query)
}

func TestExtract_InvalidWebsiteURLIsSearchedAsText(t *testing.T) {
	ext := &fakeExtractor{outcome: foundOutcome("Acme")}
	c := NewExtractController(ext, &fakeWebhook{status: okWebhook}, nil, nil)

	_, err := c.Extract(context.Background(), types.BusinessQuery{WebsiteURL: "https://acme widgets"})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://acme widgets"}, ext.queries)
}

func TestExtract_NotFoundSkipsWebhook(t *testing.T) {
	ext := &fakeExtractor{outcome: types.NotFoundOutcome()}
	hook := &fakeWebhook{}
	hist := &fakeHistory{}
	c := NewExtractController(ext, hook, newFakeCache(), hist)

	resp, err := c.Extract(context.Background(), types.BusinessQuery{BusinessName: "zzz"})

	assert.Nil(t, resp)
	assert.True(t, eris.Is(err, ErrBusinessNotFound))
	assert.Empty(t, hook.delivered)
	require.Len(t, hist.rows, 1)
	assert.False(t, hist.rows[0].Found)
	assert.Nil(t, hist.rows[0].Record)
}

func TestExtract_WebhookFailureKeepsRecord(t *testing.T) {
	failed := types.WebhookStatus{Status: types.WebhookError, Message: "Webhook request failed with status 500"}
	c := NewExtractController(&fakeExtractor{outcome: foundOutcome("Acme")}, &fakeWebhook{status: failed}, nil, nil)

	resp, err := c.Extract(context.Background(), types.BusinessQuery{BusinessName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", resp.BusinessName)
	assert.Equal(t, failed, resp.WebhookStatus)
}

func TestExtract_CacheHitSkipsExtraction(t *testing.T) {
	cache := newFakeCache()
	rec := types.NewBusinessRecord()
	rec.BusinessName = "Cached Co"
	cache.entries["Cached Co"] = storage.CachedRecord{Source: "google_search", Record: rec}

	ext := &fakeExtractor{outcome: foundOutcome("Fresh Co")}
	hook := &fakeWebhook{status: okWebhook}
	hist := &fakeHistory{}
	c := NewExtractController(ext, hook, cache, hist)

	resp, err := c.Extract(context.Background(), types.BusinessQuery{BusinessName: "Cached Co"})
	require.NoError(t, err)

	assert.Equal(t, "Cached Co", resp.BusinessName)
	assert.Empty(t, ext.queries)
	assert.Len(t, hook.delivered, 1)
	assert.True(t, hist.rows[0].Cached)
	assert.Equal(t, "google_search", hist.rows[0].Source)
}

func TestExtract_CacheMissStoresRecord(t *testing.T) {
	cache := newFakeCache()
	c := NewExtractController(&fakeExtractor{outcome: foundOutcome("Acme")}, &fakeWebhook{status: okWebhook}, cache, nil)

	_, err := c.Extract(context.Background(), types.BusinessQuery{BusinessName: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, "Acme", cache.entries["Acme"].Record.BusinessName)
	assert.Equal(t, "google_maps", cache.entries["Acme"].Source)
}

func TestExtract_PlaceholderReviewsAreNotCached(t *testing.T) {
	out := foundOutcome("Acme")
	out.Record.TopReviews = []types.Review{{Stars: 5, Text: "Great service!"}}
	out.Record.ReviewsPlaceholder = true
	cache := newFakeCache()
	hook := &fakeWebhook{status: okWebhook}
	c := NewExtractController(&fakeExtractor{outcome: out}, hook, cache, nil)

	resp, err := c.Extract(context.Background(), types.BusinessQuery{BusinessName: "Acme"})
	require.NoError(t, err)

	assert.True(t, resp.ReviewsPlaceholder)
	assert.Equal(t, 0, cache.puts)
	assert.Empty(t, cache.entries)
	assert.Len(t, hook.delivered, 1)
}

func TestExtract_StoreFailuresAreNotSurfaced(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = eris.New("minio unreachable")
	cache.putErr = eris.New("minio unreachable")
	hist := &fakeHistory{createErr: eris.New("db down")}
	ext := &fakeExtractor{outcome: foundOutcome("Acme")}
	c := NewExtractController(ext, &fakeWebhook{status: okWebhook}, cache, hist)

	resp, err := c.Extract(context.Background(), types.BusinessQuery{BusinessName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", resp.BusinessName)
	assert.Len(t, ext.queries, 1)
}

func TestListExtractions(t *testing.T) {
	c := NewExtractController(&fakeExtractor{}, &fakeWebhook{}, nil, nil)
	got, err := c.ListExtractions(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	hist := &fakeHistory{}
	hist.rows = append(hist.rows, &models.Extraction{Query: "a"}, &models.Extraction{Query: "b"})
	c = NewExtractController(&fakeExtractor{}, &fakeWebhook{}, nil, hist)
	got, err = c.ListExtractions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Query)
}

func TestGetExtraction(t *testing.T) {
	c := NewExtractController(&fakeExtractor{}, &fakeWebhook{}, nil, nil)
	_, err := c.GetExtraction(context.Background(), uuid.New())
	assert.True(t, eris.Is(err, ErrExtractionNotFound))

	row := &models.Extraction{ID: uuid.New(), Query: "Acme"}
	hist := &fakeHistory{rows: []*models.Extraction{row}}
	c = NewExtractController(&fakeExtractor{}, &fakeWebhook{}, nil, hist)

	got, err := c.GetExtraction(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Query)

	_, err = c.GetExtraction(context.Background(), uuid.New())
	assert.True(t, eris.Is(err, ErrExtractionNotFound))
}
