// Package hunt holds the check-in and scoring rules of the station hunt:
// the allow-lists, the game-state gate, the check-in recorder, the
// leaderboard and the discovery feed. It has zero external dependencies;
// storage is reached through the Ledger and StateStore interfaces.
package hunt

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicate is returned by Ledger.Insert when the team already has an
	// entry in the station's sub-ledger.
	ErrDuplicate = errors.New("duplicate check-in")
	// ErrNotFound is returned by StateStore.ReadSingleton for an absent key.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks a genuine store failure surfaced by the core.
	ErrStorage = errors.New("storage failure")
)

// CheckIn is one ledger entry. It is written once and never changed.
type CheckIn struct {
	ID      string
	Station Station
	Team    Team
	At      time.Time
	Seq     int64
}

// GameState is the process-wide on/off switch record.
type GameState struct {
	Active bool `json:"active"`
}

// Ledger is the check-in store, partitioned into one sub-ledger per station.
type Ledger interface {
	// CreateSubLedger creates the station's sub-ledger if it does not exist.
	CreateSubLedger(ctx context.Context, station Station) error
	// EnsureUniqueTeam creates the unique constraint on team for the
	// station's sub-ledger if it does not exist.
	EnsureUniqueTeam(ctx context.Context, station Station) error
	// Insert appends c to its station's sub-ledger. The uniqueness decision
	// must be made by the store in the same operation; a violation returns
	// ErrDuplicate.
	Insert(ctx context.Context, c CheckIn) error
	// ReadAll returns the station's entries ordered by At, then Seq. A
	// station without a sub-ledger reads as empty.
	ReadAll(ctx context.Context, station Station) ([]CheckIn, error)
	// SubLedgers lists the names of all existing sub-ledgers.
	SubLedgers(ctx context.Context) ([]string, error)
}

// StateStore keeps keyed singleton documents.
type StateStore interface {
	ReadSingleton(ctx context.Context, key string, dest any) error
	UpsertSingleton(ctx context.Context, key string, v any) error
	// CreateSingleton writes v only if key is absent. An existing document
	// is left untouched and no error is returned.
	CreateSingleton(ctx context.Context, key string, v any) error
}
