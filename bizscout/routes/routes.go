package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"bizscout/bizscout/config"
	"bizscout/bizscout/controllers"
	"bizscout/bizscout/middlewares"
	"bizscout/bizscout/utils/logging"
	"bizscout/bizscout/utils/types"
)

// NewRouter assembles the middleware stack and every route.
func NewRouter(cfg config.Config, extractCtrl *controllers.ExtractController, healthCtrl *controllers.HealthController) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestBudget()))
	r.Use(middlewares.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.Get("/", handleJSON(usage))
	r.Mount("/health", HealthRoutes(healthCtrl))
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))
		ExtractRoutes(gr, extractCtrl)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, types.ErrorOutcome{Error: "Endpoint not found. Use /extract for business data extraction."})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, types.ErrorOutcome{Error: "Method not allowed."})
	})
	return r
}

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.ErrorLogger.Error("handler panicked",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)
				writeJSON(w, http.StatusInternalServerError, unexpected(fmt.Errorf("%v", rec)))
			}
		}()

		res, status, err := handler(r)
		if err != nil {
			if status == http.StatusInternalServerError {
				logging.ErrorLogger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
				writeJSON(w, status, unexpected(err))
				return
			}
			writeJSON(w, status, types.ErrorOutcome{Error: err.Error()})
			return
		}
		writeJSON(w, status, res)
	}
}

func unexpected(err error) types.ErrorOutcome {
	return types.ErrorOutcome{Error: "An unexpected error occurred: " + err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
