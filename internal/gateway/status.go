package gateway

import (
	"encoding/json"
	"net/http"
	"time"
)

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	Uptime       float64 `json:"uptime_seconds"`
	Sessions     int     `json:"sessions"`
	Model        string  `json:"model,omitempty"`
	RateTracked  int     `json:"rate_tracked"`
	QuotaTracked int     `json:"quota_tracked"`
	DebugEnabled bool    `json:"debug_enabled"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := StatusResponse{
			Uptime:       time.Since(g.startedAt).Truncate(time.Second).Seconds(),
			DebugEnabled: g.config.Debug,
		}

		if g.store != nil {
			resp.Sessions = g.store.Sessions()
		}
		if g.gen != nil {
			resp.Model = g.gen.ModelName()
		}
		if g.rate != nil {
			resp.RateTracked = g.rate.Len()
		}
		if g.quota != nil {
			resp.QuotaTracked = g.quota.Len()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
