package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/flemzord/chacha/internal/profile"
)

const (
	msgNotAuthenticated = "User not authenticated."
	msgNotDeveloper     = "Only developers can access view counts."
)

// ViewsResponse is the JSON response for GET /api/game/views.
type ViewsResponse struct {
	ActiveGame string            `json:"activeGame"`
	Views      profile.ViewStats `json:"views"`
}

// handleGameViews returns view statistics for the caller's active game.
// Developer profiles only.
func (g *Gateway) handleGameViews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r.Context())
		if userID == "" {
			writeError(w, http.StatusBadRequest, errorResponse{Error: msgNotAuthenticated})
			return
		}

		if g.profiles == nil {
			writeError(w, http.StatusForbidden, errorResponse{Error: msgNotDeveloper})
			return
		}

		p, ok := g.profiles.Lookup(userID)
		if !ok {
			writeError(w, http.StatusForbidden, errorResponse{Error: msgNotDeveloper})
			return
		}
		dev, ok := p.(profile.Developer)
		if !ok {
			writeError(w, http.StatusForbidden, errorResponse{Error: msgNotDeveloper})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ViewsResponse{
			ActiveGame: dev.ActiveGame,
			Views:      dev.Views,
		})
	}
}
