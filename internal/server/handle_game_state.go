package server

import (
	"log/slog"
	"net/http"

	"github.com/playperu/stationhunt/internal/hunt"
)

type GameStateResponse struct {
	Active bool `json:"active"`
}

type RosterResponse struct {
	Stations        []string `json:"stations"`
	SpecialStations []string `json:"specialStations"`
	Teams           []string `json:"teams"`
}

func handleGameState(logger *slog.Logger, gate *hunt.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := gate.Active(r.Context())
		if err != nil {
			logger.Error("reading game state", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, GameStateResponse{Active: active})
	}
}

func handleRoster(stations hunt.StationSet, teams hunt.TeamSet) http.HandlerFunc {
	resp := RosterResponse{
		Stations:        []string{},
		SpecialStations: []string{},
		Teams:           []string{},
	}
	for _, st := range stations.All() {
		resp.Stations = append(resp.Stations, string(st))
	}
	for _, st := range stations.Special() {
		resp.SpecialStations = append(resp.SpecialStations, string(st))
	}
	for _, t := range teams.All() {
		resp.Teams = append(resp.Teams, string(t))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}
