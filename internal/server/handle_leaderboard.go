package server

import (
	"log/slog"
	"net/http"

	"github.com/playperu/stationhunt/internal/hunt"
)

type LeaderboardRow struct {
	Rank   int    `json:"rank"`
	Team   string `json:"team"`
	Points int    `json:"points"`
}

func handleLeaderboard(logger *slog.Logger, board *hunt.Scoreboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := board.Leaderboard(r.Context())
		if err != nil {
			logger.Error("computing leaderboard", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := make([]LeaderboardRow, len(rows))
		for i, row := range rows {
			resp[i] = LeaderboardRow{
				Rank:   row.Rank,
				Team:   string(row.Team),
				Points: row.Points,
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
