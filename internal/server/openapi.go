package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/stationhunt/internal/handler/health"
)

type checkInPath struct {
	Station string `path:"station" description:"Station code printed in the QR code."`
	Team    string `path:"team" description:"Team id, e.g. team7."`
}

type feedQuery struct {
	Team    string `query:"team" description:"Only this team; empty or \"all\" for every team."`
	Station string `query:"station" description:"Only this station; empty or \"all\" for every station."`
}

type eventsQuery struct {
	Team string `query:"team" description:"Only this team; empty or \"all\" for every team."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Station Hunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Check-in and scoring backend for the station hunt.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /{station}/{team}
	checkIn, _ := r.NewOperationContext(http.MethodGet, "/{station}/{team}")
	checkIn.SetSummary("Check in")
	checkIn.SetDescription("Records the team's first visit to the station. Duplicate scans and a paused game are reported in the status field with 200.")
	checkIn.AddReqStructure(checkInPath{})
	checkIn.AddRespStructure(CheckInResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	checkIn.AddRespStructure(CheckInResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	checkIn.AddRespStructure(CheckInResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(checkIn)

	// GET /api/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaderboard.SetSummary("Leaderboard")
	getLeaderboard.SetDescription("Teams ranked by points, recomputed from every check-in.")
	getLeaderboard.AddRespStructure([]LeaderboardRow{}, openapi.WithHTTPStatus(http.StatusOK))
	getLeaderboard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getLeaderboard)

	// GET /api/feed
	getFeed, _ := r.NewOperationContext(http.MethodGet, "/api/feed")
	getFeed.SetSummary("Activity feed")
	getFeed.SetDescription("Discoveries, most recent first, with first-finder flags.")
	getFeed.AddReqStructure(feedQuery{})
	getFeed.AddRespStructure([]FeedEvent{}, openapi.WithHTTPStatus(http.StatusOK))
	getFeed.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getFeed)

	// GET /api/feed/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/feed/events")
	getEvents.SetSummary("Live feed")
	getEvents.SetDescription("Server-Sent Events stream with one checkin event per new check-in.")
	getEvents.AddReqStructure(eventsQuery{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/game
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/game")
	getGame.SetSummary("Game state")
	getGame.SetDescription("Whether check-ins are currently accepted.")
	getGame.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getGame)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// PUT /api/admin/game
	putGame, _ := r.NewOperationContext(http.MethodPut, "/api/admin/game")
	putGame.SetSummary("Start or pause the game")
	putGame.SetDescription("Turns check-ins on or off. Requires admin_session cookie.")
	putGame.AddReqStructure(SetGameRequest{})
	putGame.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(putGame)

	// GET /api/admin/roster
	getRoster, _ := r.NewOperationContext(http.MethodGet, "/api/admin/roster")
	getRoster.SetSummary("Roster")
	getRoster.SetDescription("Station and team allow-lists. Requires admin_session cookie.")
	getRoster.AddRespStructure(RosterResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getRoster.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getRoster)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
