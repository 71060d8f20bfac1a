// Package ledger stores check-ins in libSQL. Each station gets its own
// table, created on first use, with a unique index on team. Singleton
// documents such as the game state live in the settings table.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/playperu/stationhunt/internal/hunt"
)

const (
	subLedgerPrefix = "ledger_"
	timeLayout      = "2006-01-02T15:04:05.000000000Z"
)

// checkInDoc is the JSONB body of a sub-ledger row.
type checkInDoc struct {
	ID        string `json:"id"`
	Station   string `json:"station"`
	Team      string `json:"team"`
	Timestamp string `json:"timestamp"`
}

// Store implements hunt.Ledger and hunt.StateStore.
type Store struct {
	db *sql.DB
}

// New returns a Store over db. The settings table comes from the
// migrations package.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Check reports whether the database is reachable.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func tableName(station hunt.Station) string {
	return subLedgerPrefix + string(station)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *Store) CreateSubLedger(ctx context.Context, station hunt.Station) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		seq  INTEGER PRIMARY KEY AUTOINCREMENT,
		team TEXT NOT NULL,
		at   TEXT NOT NULL,
		data JSONB NOT NULL
	)`, quoteIdent(tableName(station))))
	return err
}

func (s *Store) EnsureUniqueTeam(ctx context.Context, station hunt.Station) error {
	table := tableName(station)
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (team)`,
		quoteIdent(table+"_team"), quoteIdent(table),
	))
	return err
}

// Insert writes c unless the unique index already holds its team. The
// conflict is resolved by SQLite inside the single INSERT statement.
func (s *Store) Insert(ctx context.Context, c hunt.CheckIn) error {
	id := c.ID
	if id == "" {
		id = ulid.Make().String()
	}
	at := c.At.UTC().Format(timeLayout)
	data, err := json.Marshal(checkInDoc{
		ID:        id,
		Station:   string(c.Station),
		Team:      string(c.Team),
		Timestamp: at,
	})
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (team, at, data) VALUES (?, ?, jsonb(?))
		 ON CONFLICT DO NOTHING`, quoteIdent(tableName(c.Station))),
		string(c.Team), at, string(data),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return hunt.ErrDuplicate
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return hunt.ErrDuplicate
	}
	return nil
}

func (s *Store) ReadAll(ctx context.Context, station hunt.Station) ([]hunt.CheckIn, error) {
	table := tableName(station)

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT seq, json(data) FROM %s ORDER BY at, seq`, quoteIdent(table),
	))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []hunt.CheckIn
	for rows.Next() {
		var (
			seq  int64
			data string
			doc  checkInDoc
		)
		if err := rows.Scan(&seq, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, err
		}
		at, err := time.Parse(timeLayout, doc.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", doc.Timestamp, err)
		}
		entries = append(entries, hunt.CheckIn{
			ID:      doc.ID,
			Station: station,
			Team:    hunt.Team(doc.Team),
			At:      at,
			Seq:     seq,
		})
	}
	return entries, rows.Err()
}

func (s *Store) SubLedgers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name GLOB ?
		ORDER BY name
	`, subLedgerPrefix+"*")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, strings.TrimPrefix(name, subLedgerPrefix))
	}
	return names, rows.Err()
}
