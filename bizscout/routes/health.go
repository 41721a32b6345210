package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizscout/bizscout/controllers"
	"bizscout/bizscout/utils/types"
)

func HealthRoutes(ctrl *controllers.HealthController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", ctrl.HealthCheck)
	return r
}

// usage is the GET / document.
func usage(*http.Request) (any, int, error) {
	return map[string]any{
		"service": controllers.ServiceName,
		"version": controllers.ServiceVersion,
		"usage": map[string]any{
			"endpoint":     "/extract",
			"method":       "POST",
			"content_type": "application/json",
			"example_payload": types.BusinessQuery{
				BusinessName: "Freedom Finders Firm",
				WebsiteURL:   "https://freedomfindersfirm.com",
			},
		},
		"endpoints": map[string]string{
			"/extract":          "Extract business data and send to webhook",
			"/extractions":      "Recent extraction history",
			"/extractions/{id}": "One extraction by id",
			"/health":           "Health check",
			"/":                 "This help message",
		},
	}, http.StatusOK, nil
}
