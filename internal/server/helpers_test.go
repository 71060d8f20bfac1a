package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/stationhunt/internal/database"
	"github.com/playperu/stationhunt/internal/handler/health"
	"github.com/playperu/stationhunt/internal/hunt"
	"github.com/playperu/stationhunt/internal/ledger"
	"github.com/playperu/stationhunt/internal/migrations"
)

const (
	clue1         = "clue1-7K9P2L5N6Q3W"
	adminEmail    = "ops@stationhunt.test"
	adminPassword = "changeme"
)

var start = time.Date(2025, 5, 17, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	app    App
	router *chi.Mux
	store  *ledger.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "hunt.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	store := ledger.New(db)
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	admin, err := NewAdminDocStore(ctx, db, adminEmail, string(hash))
	if err != nil {
		t.Fatalf("init admin store: %v", err)
	}

	stations, err := hunt.NewStationSet(hunt.DefaultStations, hunt.DefaultSpecialStations)
	if err != nil {
		t.Fatalf("stations: %v", err)
	}
	teams, err := hunt.NewTeamRange("team", 100)
	if err != nil {
		t.Fatalf("teams: %v", err)
	}
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("zone: %v", err)
	}

	gate := hunt.NewGate(store)
	rec := hunt.NewRecorder(gate, store, stations, teams)
	clock := start
	rec.Clock = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	app := App{
		Gate:       gate,
		Recorder:   rec,
		Scoreboard: hunt.NewScoreboard(store, stations),
		Feed:       hunt.NewFeedProjector(store, stations, loc),
		Stations:   stations,
		Teams:      teams,
		Location:   loc,
		Admin:      admin,
		Checks:     map[string]health.Checker{"sqlite": store},
		ScannerURL: "https://scanner.example",
	}
	return &testEnv{app: app, router: newRouter(discardLogger(), app), store: store}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (e *testEnv) activate(t *testing.T, active bool) {
	t.Helper()
	if err := e.app.Gate.SetActive(context.Background(), active); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) checkIn(t *testing.T, station, team string) CheckInResponse {
	t.Helper()
	w := e.do(t, http.MethodGet, "/"+station+"/"+team, nil)
	var resp CheckInResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding check-in response: %v", err)
	}
	return resp
}

func (e *testEnv) login(t *testing.T) []*http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/admin/login", AdminLoginRequest{Email: adminEmail, Password: adminPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}
