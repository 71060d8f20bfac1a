package hunt

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
)

const (
	stationBasePoints  = 20
	stationBonusPool   = 120
	firstFinderPercent = 1.25
)

// Standing is a team's accumulated score before presentation.
type Standing struct {
	Team   Team
	Points float64
}

// LeaderboardRow is one presented leaderboard line.
type LeaderboardRow struct {
	Rank   int
	Team   Team
	Points int
}

// StationPoints returns the base points every team earns at a station
// visited by n teams: 20 plus 120/n rounded half-up.
func StationPoints(n int) float64 {
	if n <= 0 {
		return 0
	}
	return stationBasePoints + math.Round(stationBonusPool/float64(n))
}

// Tally scores the given per-station ledgers. Each ledger must already be
// ordered earliest first. The result is sorted by points descending; equal
// totals keep the order in which the teams were first seen.
func Tally(ledgers [][]CheckIn) []Standing {
	index := make(map[Team]int)
	var standings []Standing

	for _, entries := range ledgers {
		if len(entries) == 0 {
			continue
		}
		base := StationPoints(len(entries))
		for i, c := range entries {
			points := base
			if i == 0 {
				points *= firstFinderPercent
			}
			j, ok := index[c.Team]
			if !ok {
				j = len(standings)
				index[c.Team] = j
				standings = append(standings, Standing{Team: c.Team})
			}
			standings[j].Points += points
		}
	}

	sort.SliceStable(standings, func(a, b int) bool {
		return standings[a].Points > standings[b].Points
	})
	return standings
}

// Rows presents standings with 1-based ranks and points truncated toward
// zero.
func Rows(standings []Standing) []LeaderboardRow {
	rows := make([]LeaderboardRow, len(standings))
	for i, s := range standings {
		rows[i] = LeaderboardRow{
			Rank:   i + 1,
			Team:   s.Team,
			Points: int(s.Points),
		}
	}
	return rows
}

// Scoreboard computes the leaderboard from the ledger on every call.
type Scoreboard struct {
	ledger   Ledger
	stations StationSet
}

func NewScoreboard(ledger Ledger, stations StationSet) *Scoreboard {
	return &Scoreboard{ledger: ledger, stations: stations}
}

// Leaderboard reads every allow-listed station that has a sub-ledger and
// ranks the teams. Any read failure fails the whole computation.
func (s *Scoreboard) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	names, err := s.ledger.SubLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sub-ledgers: %w", err)
	}

	var ledgers [][]CheckIn
	for _, st := range s.stations.All() {
		if !slices.Contains(names, string(st)) {
			continue
		}
		entries, err := s.ledger.ReadAll(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("reading sub-ledger %q: %w", st, err)
		}
		ledgers = append(ledgers, entries)
	}
	return Rows(Tally(ledgers)), nil
}
