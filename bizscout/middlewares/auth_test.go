package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizscout/bizscout/config"
)

func subjectEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, _ := r.Context().Value(SubjectKey).(string)
		_, _ = w.Write([]byte(sub))
	})
}

func signed(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware_DisabledWithoutSecret(t *testing.T) {
	h := AuthMiddleware(config.Config{})(subjectEcho())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/extract", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.Config{JWTSecret: "s3cret"}
	h := AuthMiddleware(cfg)(subjectEcho())
	valid := signed(t, "s3cret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "zapier",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	expired := signed(t, "s3cret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "zapier",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signed(t, "other", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "zapier"})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/extract", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.code, rr.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "zapier", rr.Body.String())
			} else {
				assert.JSONEq(t, `{"error":"unauthorized"}`, rr.Body.String())
			}
		})
	}
}
