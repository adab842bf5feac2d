package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flemzord/chacha/internal/admission"
)

// LimitSnapshot is the JSON shape of one counter's state for an identifier.
type LimitSnapshot struct {
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	ResetAt   string `json:"reset_at"`
}

// LimitsResponse is the JSON response for GET /api/admin/limits/{id}.
type LimitsResponse struct {
	ID    string         `json:"id"`
	Rate  *LimitSnapshot `json:"rate,omitempty"`
	Quota *LimitSnapshot `json:"quota,omitempty"`
}

func snapshot(res admission.Result) *LimitSnapshot {
	return &LimitSnapshot{
		Limit:     res.Limit,
		Remaining: res.Remaining,
		ResetAt:   res.ResetAt.UTC().Format(time.RFC3339),
	}
}

// handleLimitStats reports the current window state for an identifier
// without debiting either counter.
func (g *Gateway) handleLimitStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		resp := LimitsResponse{ID: id}

		if g.rate != nil {
			resp.Rate = snapshot(g.rate.Stats(id))
		}
		if g.quota != nil {
			resp.Quota = snapshot(g.quota.Stats(id))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// handleLimitReset clears the identifier's windows on both counters.
// The next request starts a fresh window with the full budget.
func (g *Gateway) handleLimitReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if g.rate != nil {
			g.rate.Reset(id)
		}
		if g.quota != nil {
			g.quota.Reset(id)
		}

		g.logger.Info("admin reset limits", "id", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// handlePurgeSession drops a session transcript entirely.
func (g *Gateway) handlePurgeSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if g.store == nil {
			http.Error(w, "no transcript store", http.StatusServiceUnavailable)
			return
		}

		id := chi.URLParam(r, "id")
		if err := g.store.Purge(id); err != nil {
			g.logger.Error("purge session failed", "session_id", id, "error", err)
			http.Error(w, "purge failed", http.StatusInternalServerError)
			return
		}

		g.logger.Info("admin purged session", "session_id", id)
		w.WriteHeader(http.StatusNoContent)
	}
}
