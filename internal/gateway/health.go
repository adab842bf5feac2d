package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/flemzord/chacha/internal/provider"
)

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status   string `json:"status"` // "ok" or "degraded"
	Sessions int    `json:"sessions"`
	Model    string `json:"model,omitempty"`
}

// handleHealth returns an http.HandlerFunc for GET /health.
// Returns 200 when the backend is reachable, 503 when degraded.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok"}

		if g.store != nil {
			resp.Sessions = g.store.Sessions()
		}

		if g.gen != nil {
			resp.Model = g.gen.ModelName()
			if hc, ok := g.gen.(provider.HealthChecker); ok {
				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				defer cancel()
				if err := hc.HealthCheck(ctx); err != nil {
					resp.Status = "degraded"
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status == "degraded" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
