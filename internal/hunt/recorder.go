package hunt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Outcome is the result discriminator of a check-in attempt.
type Outcome int

const (
	Recorded Outcome = iota
	AlreadyRecorded
	GameNotActive
	InvalidStation
	InvalidTeam
	StorageFailure
)

func (o Outcome) String() string {
	switch o {
	case Recorded:
		return "success"
	case AlreadyRecorded:
		return "warning:alreadyRecorded"
	case GameNotActive:
		return "error:gameNotActive"
	case InvalidStation:
		return "error:invalidStation"
	case InvalidTeam:
		return "error:invalidTeam"
	case StorageFailure:
		return "error:storage"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes one check-in attempt. Station and Team are set once
// they have been validated; At is set only for Recorded.
type Result struct {
	Outcome Outcome
	Station Station
	Team    Team
	At      time.Time
}

// Recorder appends first visits to the ledger.
type Recorder struct {
	gate     *Gate
	ledger   Ledger
	stations StationSet
	teams    TeamSet

	// Clock stamps new entries. Defaults to time.Now.
	Clock func() time.Time

	ensured sync.Map // Station -> struct{}
}

func NewRecorder(gate *Gate, ledger Ledger, stations StationSet, teams TeamSet) *Recorder {
	return &Recorder{
		gate:     gate,
		ledger:   ledger,
		stations: stations,
		teams:    teams,
		Clock:    time.Now,
	}
}

// Record checks team in at station. A non-nil error is returned only with
// the StorageFailure outcome and wraps ErrStorage.
func (r *Recorder) Record(ctx context.Context, rawStation, rawTeam string) (Result, error) {
	active, err := r.gate.Active(ctx)
	if err != nil {
		return Result{Outcome: StorageFailure}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !active {
		return Result{Outcome: GameNotActive}, nil
	}

	station, ok := r.stations.Parse(rawStation)
	if !ok {
		return Result{Outcome: InvalidStation}, nil
	}
	team, ok := r.teams.Parse(rawTeam)
	if !ok {
		return Result{Outcome: InvalidTeam, Station: station}, nil
	}
	res := Result{Station: station, Team: team}

	if err := r.ensure(ctx, station); err != nil {
		res.Outcome = StorageFailure
		return res, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	at := r.Clock().UTC()
	err = r.ledger.Insert(ctx, CheckIn{Station: station, Team: team, At: at})
	switch {
	case errors.Is(err, ErrDuplicate):
		res.Outcome = AlreadyRecorded
		return res, nil
	case err != nil:
		res.Outcome = StorageFailure
		return res, fmt.Errorf("%w: inserting check-in: %w", ErrStorage, err)
	}

	res.Outcome = Recorded
	res.At = at
	return res, nil
}

// ensure makes sure the station's sub-ledger and its unique index exist.
// Both store calls are idempotent, so a race between two first check-ins
// at the same station is harmless.
func (r *Recorder) ensure(ctx context.Context, station Station) error {
	if _, ok := r.ensured.Load(station); ok {
		return nil
	}
	if err := r.ledger.CreateSubLedger(ctx, station); err != nil {
		return fmt.Errorf("creating sub-ledger %q: %w", station, err)
	}
	if err := r.ledger.EnsureUniqueTeam(ctx, station); err != nil {
		return fmt.Errorf("ensuring unique index on %q: %w", station, err)
	}
	r.ensured.Store(station, struct{}{})
	return nil
}
