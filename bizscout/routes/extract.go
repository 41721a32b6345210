package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"bizscout/bizscout/controllers"
	"bizscout/bizscout/utils/types"
)

var errNoJSON = errors.New("No JSON data provided. Please send a JSON object with 'business_name' or 'website_url'.")

// ExtractRoutes registers the extraction routes on r.
func ExtractRoutes(r chi.Router, ctrl *controllers.ExtractController) {
	// POST /extract
	r.Post("/extract", handleJSON(func(r *http.Request) (any, int, error) {
		q, err := decodeQuery(r)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		resp, err := ctrl.Extract(r.Context(), q)
		switch {
		case eris.Is(err, controllers.ErrEmptyQuery):
			return nil, http.StatusBadRequest, controllers.ErrEmptyQuery
		case eris.Is(err, controllers.ErrBusinessNotFound):
			return types.ErrorOutcome{Error: types.NotFoundMessage}, http.StatusNotFound, nil
		case err != nil:
			return nil, http.StatusInternalServerError, err
		}
		return resp, http.StatusOK, nil
	}))

	// GET /extractions?limit=N
	r.Get("/extractions", handleJSON(func(r *http.Request) (any, int, error) {
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return nil, http.StatusBadRequest, errors.New("limit must be a positive integer")
			}
			limit = n
		}
		rows, err := ctrl.ListExtractions(r.Context(), limit)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return rows, http.StatusOK, nil
	}))

	// GET /extractions/{id}
	r.Get("/extractions/{id}", handleJSON(func(r *http.Request) (any, int, error) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			return nil, http.StatusBadRequest, errors.New("id must be a UUID")
		}
		row, err := ctrl.GetExtraction(r.Context(), id)
		switch {
		case eris.Is(err, controllers.ErrExtractionNotFound):
			return nil, http.StatusNotFound, controllers.ErrExtractionNotFound
		case err != nil:
			return nil, http.StatusInternalServerError, err
		}
		return row, http.StatusOK, nil
	}))
}

// decodeQuery requires a non-empty JSON object body.
func decodeQuery(r *http.Request) (types.BusinessQuery, error) {
	var q types.BusinessQuery
	if r.Body == nil {
		return q, errNoJSON
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || len(raw) == 0 {
		return q, errNoJSON
	}
	fields := []struct {
		name string
		dst  *string
	}{
		{"business_name", &q.BusinessName},
		{"website_url", &q.WebsiteURL},
	}
	for _, f := range fields {
		v, ok := raw[f.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return q, fmt.Errorf("'%s' must be a string.", f.name)
		}
	}
	return q, nil
}
