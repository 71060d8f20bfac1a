package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/stationhunt/internal/hunt"
)

type FeedEvent struct {
	Team        string `json:"team"`
	TeamDisplay string `json:"team_display"`
	Station     string `json:"station"`
	Time        string `json:"time"`
	Timestamp   string `json:"timestamp"`
	IsSpecial   bool   `json:"is_special"`
	IsFirst     bool   `json:"is_first"`
}

func handleFeed(logger *slog.Logger, feed *hunt.FeedProjector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := hunt.FeedFilter{
			Team:    q.Get("team"),
			Station: q.Get("station"),
		}

		events, err := feed.Feed(r.Context(), filter)
		if err != nil {
			logger.Error("computing feed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := make([]FeedEvent, len(events))
		for i, e := range events {
			resp[i] = FeedEvent{
				Team:        string(e.Team),
				TeamDisplay: teamDisplay(e.Team),
				Station:     string(e.Station),
				Time:        e.Time,
				Timestamp:   e.At.Format(time.RFC3339),
				IsSpecial:   e.IsSpecial,
				IsFirst:     e.IsFirst,
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
