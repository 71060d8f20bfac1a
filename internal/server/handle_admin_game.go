package server

import (
	"log/slog"
	"net/http"

	"github.com/playperu/stationhunt/internal/hunt"
)

// SetGameRequest is the request body for PUT /api/admin/game.
type SetGameRequest struct {
	Active *bool `json:"active"`
}

func handleAdminSetGame(logger *slog.Logger, gate *hunt.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetGameRequest
		if err := readJSON(r, &req); err != nil || req.Active == nil {
			writeError(w, http.StatusBadRequest, "active is required")
			return
		}

		if err := gate.SetActive(r.Context(), *req.Active); err != nil {
			logger.Error("writing game state", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("game state changed", "active", *req.Active, "admin", adminFrom(r).Email)
		writeJSON(w, http.StatusOK, GameStateResponse{Active: *req.Active})
	}
}
