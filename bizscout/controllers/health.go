package controllers

import (
	"encoding/json"
	"net/http"
)

const (
	ServiceName    = "Google Business Scraper"
	ServiceVersion = "1.0.0"
)

type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthStatus{Status: "healthy", Service: ServiceName, Version: ServiceVersion})
}
