package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/stationhunt/internal/config"
	"github.com/playperu/stationhunt/internal/database"
	"github.com/playperu/stationhunt/internal/handler/health"
	"github.com/playperu/stationhunt/internal/hunt"
	"github.com/playperu/stationhunt/internal/ledger"
	"github.com/playperu/stationhunt/internal/migrations"
	"github.com/playperu/stationhunt/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	stations, teams, err := cfg.Roster()
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("migrations applied")

	store := ledger.New(db)
	admin, err := server.NewAdminDocStore(ctx, db, cfg.AdminEmail, cfg.AdminPasswordHash)
	if err != nil {
		return fmt.Errorf("initializing admin store: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Hunt ---
	gate := hunt.NewGate(store)
	active, err := gate.Active(ctx)
	if err != nil {
		return fmt.Errorf("reading game state: %w", err)
	}
	logger.Info("hunt ready",
		"stations", len(stations.All()),
		"teams", len(teams.All()),
		"zone", loc.String(),
		"active", active,
	)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.App{
		Gate:       gate,
		Recorder:   hunt.NewRecorder(gate, store, stations, teams),
		Scoreboard: hunt.NewScoreboard(store, stations),
		Feed:       hunt.NewFeedProjector(store, stations, loc),
		Stations:   stations,
		Teams:      teams,
		Location:   loc,
		Admin:      admin,
		Checks:     map[string]health.Checker{"sqlite": store},
		SPADir:     cfg.SPADir,
		ScannerURL: cfg.ScannerURL,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
