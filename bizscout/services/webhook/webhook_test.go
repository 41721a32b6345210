package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizscout/bizscout/utils/types"
)

func testRecord() types.BusinessRecord {
	rec := types.NewBusinessRecord()
	rec.BusinessName = "Blue Bottle Coffee"
	rec.StarRating = "4.3"
	return rec
}

func TestDeliver_Success(t *testing.T) {
	var got types.WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.now = func() time.Time { return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC) }

	status := c.Deliver(context.Background(), testRecord())

	assert.Equal(t, types.WebhookSuccess, status.Status)
	assert.Equal(t, "Data sent to webhook successfully", status.Message)
	require.NotNil(t, status.WebhookResponse)
	assert.Equal(t, `{"status":"success"}`, *status.WebhookResponse)

	assert.Equal(t, Source, got.Source)
	assert.Equal(t, "2026-10-16T09:30:00Z", got.Timestamp)
	assert.Equal(t, "Blue Bottle Coffee", got.BusinessData.BusinessName)
	assert.Equal(t, []string{}, got.BusinessData.Categories)
}

func TestDeliver_AcceptedAndCreatedAreSuccess(t *testing.T) {
	for _, code := range []int{http.StatusCreated, http.StatusAccepted} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		status := NewClient(srv.URL, time.Second).Deliver(context.Background(), testRecord())
		srv.Close()

		assert.Equal(t, types.WebhookSuccess, status.Status, "status %d", code)
	}
}

func TestDeliver_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	status := NewClient(srv.URL, time.Second).Deliver(context.Background(), testRecord())

	assert.Equal(t, types.WebhookError, status.Status)
	assert.Equal(t, "Webhook request failed with status 503", status.Message)
	require.NotNil(t, status.WebhookResponse)
	assert.Equal(t, "maintenance", *status.WebhookResponse)
}

func TestDeliver_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	status := NewClient(url, time.Second).Deliver(context.Background(), testRecord())

	assert.Equal(t, types.WebhookError, status.Status)
	assert.Contains(t, status.Message, "Failed to send to webhook: ")
	assert.Nil(t, status.WebhookResponse)
}

func TestDeliver_NotConfigured(t *testing.T) {
	status := NewClient("", 0).Deliver(context.Background(), testRecord())

	assert.Equal(t, types.WebhookError, status.Status)
	assert.Equal(t, "Webhook URL not configured", status.Message)
}
