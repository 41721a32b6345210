package httputils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON(t *testing.T) {
	var gotType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	status, body, err := PostJSON(context.Background(), srv.Client(), srv.URL, map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, `{"id":"abc"}`, body)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, map[string]string{"k": "v"}, gotBody)
}

func TestPostJSON_ErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	status, body, err := PostJSON(context.Background(), nil, srv.URL, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "nope\n", body)
}

func TestPostJSON_TransportError(t *testing.T) {
	_, _, err := PostJSON(context.Background(), nil, "http://127.0.0.1:1/hook", struct{}{})
	assert.Error(t, err)
}

func TestIsSuccess(t *testing.T) {
	for _, s := range []int{200, 201, 202} {
		assert.True(t, IsSuccess(s), s)
	}
	for _, s := range []int{204, 301, 400, 500} {
		assert.False(t, IsSuccess(s), s)
	}
}
