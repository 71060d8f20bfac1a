package hunt

import (
	"context"
	"errors"
	"fmt"
)

// GameStateKey is the singleton key the gate reads and writes.
const GameStateKey = "game_state"

// Gate decides whether new check-ins are accepted.
type Gate struct {
	store StateStore
}

func NewGate(store StateStore) *Gate {
	return &Gate{store: store}
}

// Active reports whether the game is running. A missing record is created
// as inactive, unless a concurrent SetActive got there first.
func (g *Gate) Active(ctx context.Context) (bool, error) {
	var st GameState
	err := g.store.ReadSingleton(ctx, GameStateKey, &st)
	if errors.Is(err, ErrNotFound) {
		if err := g.store.CreateSingleton(ctx, GameStateKey, GameState{Active: false}); err != nil {
			return false, fmt.Errorf("creating game state: %w", err)
		}
		err = g.store.ReadSingleton(ctx, GameStateKey, &st)
	}
	if err != nil {
		return false, fmt.Errorf("reading game state: %w", err)
	}
	return st.Active, nil
}

// SetActive overwrites the game state. Concurrent calls race; the last
// write wins.
func (g *Gate) SetActive(ctx context.Context, active bool) error {
	if err := g.store.UpsertSingleton(ctx, GameStateKey, GameState{Active: active}); err != nil {
		return fmt.Errorf("writing game state: %w", err)
	}
	return nil
}
