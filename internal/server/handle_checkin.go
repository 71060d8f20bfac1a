package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/stationhunt/internal/hunt"
)

// CheckInResponse reports the outcome of a scan. Status is the outcome
// discriminator: success, warning:alreadyRecorded, error:invalidStation,
// error:invalidTeam, error:gameNotActive or error:storage.
type CheckInResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Station string `json:"station,omitempty"`
	Team    string `json:"team,omitempty"`
	Time    string `json:"time,omitempty"`
}

var checkInMessages = map[hunt.Outcome]string{
	hunt.Recorded:        "check-in recorded",
	hunt.AlreadyRecorded: "team already checked in at this station",
	hunt.GameNotActive:   "game is not active",
	hunt.InvalidStation:  "invalid station id",
	hunt.InvalidTeam:     "invalid team id",
	hunt.StorageFailure:  "internal error",
}

func checkInStatus(o hunt.Outcome) int {
	switch o {
	case hunt.InvalidStation, hunt.InvalidTeam:
		return http.StatusBadRequest
	case hunt.StorageFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func handleCheckIn(logger *slog.Logger, rec *hunt.Recorder, stations hunt.StationSet, loc *time.Location, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawStation := chi.URLParam(r, "station")
		rawTeam := chi.URLParam(r, "team")

		res, err := rec.Record(r.Context(), rawStation, rawTeam)
		if err != nil {
			logger.Error("checkin failed", "station", rawStation, "team", rawTeam, "error", err)
		}

		resp := CheckInResponse{
			Status:  res.Outcome.String(),
			Message: checkInMessages[res.Outcome],
			Station: string(res.Station),
			Team:    string(res.Team),
		}

		switch res.Outcome {
		case hunt.Recorded:
			resp.Time = res.At.In(loc).Format(time.RFC3339)
			logger.Info("checkin recorded", "station", res.Station, "team", res.Team)
			broker.Publish(CheckInEvent{
				Type:        "checkin",
				Team:        string(res.Team),
				TeamDisplay: teamDisplay(res.Team),
				Station:     string(res.Station),
				Time:        res.At.In(loc).Format("15:04"),
				IsSpecial:   stations.IsSpecial(res.Station),
			})
		case hunt.AlreadyRecorded:
			logger.Info("checkin duplicate", "station", res.Station, "team", res.Team)
		}

		writeJSON(w, checkInStatus(res.Outcome), resp)
	}
}
