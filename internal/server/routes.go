package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/stationhunt/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, app App) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Station Hunt API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, app.Checks).Routes())

	// Read side and game state.
	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", handleLeaderboard(logger, app.Scoreboard))
		r.Get("/feed", handleFeed(logger, app.Feed))
		r.Get("/feed/events", handleEvents(broker))
		r.Get("/game", handleGameState(logger, app.Gate))

		// Operator routes. The roster holds every station code, so it is
		// not public.
		r.Post("/admin/login", handleAdminLogin(logger, app.Admin))
		r.Post("/admin/logout", handleAdminLogout(logger, app.Admin))
		r.Get("/admin/me", handleAdminMe(app.Admin))
		r.Group(func(r chi.Router) {
			r.Use(adminAuthMiddleware(app.Admin))
			r.Put("/admin/game", handleAdminSetGame(logger, app.Gate))
			r.Get("/admin/roster", handleRoster(app.Stations, app.Teams))
		})
	})

	// QR codes encode /{station}/{team}.
	r.Get("/{station}/{team}", handleCheckIn(logger, app.Recorder, app.Stations, app.Location, broker))

	scannerURL := app.ScannerURL
	if app.SPADir != "" {
		if info, err := os.Stat(app.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", app.SPADir)
			r.Mount("/scanner", http.StripPrefix("/scanner", handleSPA(app.SPADir)))
			scannerURL = "/scanner/"
		}
	}
	r.Get("/", handleScannerRedirect(scannerURL))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "404 Not Found")
	})
}
