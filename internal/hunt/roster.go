package hunt

import (
	"fmt"
	"strconv"
	"strings"
)

type Station string

type Team string

// DefaultStations is the station allow-list used when none is configured.
var DefaultStations = []string{
	"clue1-7K9P2L5N6Q3W",
	"clue2-R4T9YU2I6O1S",
	"clue3-F9G3HJ7K2LZ4",
	"clue4-X8CV6B1NM3Q9",
	"clue5-W5E1R3Y7U2I9",
	"clue6-O4P8AS1D7FG5",
	"clue7-H9JK3L1ZX7C2",
	"clue8-V9N4MQ2W8ER6",
	"clue9-T1YU5I9OP3S7",
	"clue10-D8G2HJ4K6LZ1",
	"clue11-X9CV5B3NM2Q8",
	"clue12-W7R4TY9U1IO3",
	"Teo",
	"Alex",
}

// DefaultSpecialStations are the designated bonus stations.
var DefaultSpecialStations = []string{"Teo", "Alex"}

// StationSet is the finite set of valid stations. The zero value is empty
// and rejects every identifier.
type StationSet struct {
	order   []Station
	members map[Station]bool
	special map[Station]bool
}

// NewStationSet builds the allow-list. Every special station must also be
// listed in ids.
func NewStationSet(ids, special []string) (StationSet, error) {
	s := StationSet{
		members: make(map[Station]bool, len(ids)),
		special: make(map[Station]bool, len(special)),
	}
	// Sub-ledger names are matched without regard to case by the store, so
	// ids that differ only in case would share one sub-ledger.
	folded := make(map[string]string, len(ids))
	for _, id := range ids {
		st := Station(id)
		if id == "" {
			return StationSet{}, fmt.Errorf("empty station id")
		}
		if s.members[st] {
			return StationSet{}, fmt.Errorf("duplicate station %q", id)
		}
		key := strings.ToLower(id)
		if prev, ok := folded[key]; ok {
			return StationSet{}, fmt.Errorf("station %q differs from %q only in case", id, prev)
		}
		folded[key] = id
		s.members[st] = true
		s.order = append(s.order, st)
	}
	for _, id := range special {
		st := Station(id)
		if !s.members[st] {
			return StationSet{}, fmt.Errorf("special station %q is not a station", id)
		}
		s.special[st] = true
	}
	return s, nil
}

// Parse returns the station for raw if it is a member of the set.
func (s StationSet) Parse(raw string) (Station, bool) {
	st := Station(raw)
	return st, s.members[st]
}

// All returns the stations in configured order.
func (s StationSet) All() []Station {
	out := make([]Station, len(s.order))
	copy(out, s.order)
	return out
}

func (s StationSet) IsSpecial(st Station) bool { return s.special[st] }

// Special returns the bonus stations in configured order.
func (s StationSet) Special() []Station {
	var out []Station
	for _, st := range s.order {
		if s.special[st] {
			out = append(out, st)
		}
	}
	return out
}

// TeamSet is the finite set of valid teams.
type TeamSet struct {
	order   []Team
	members map[Team]bool
}

// NewTeamRange returns the teams prefix1..prefixN.
func NewTeamRange(prefix string, n int) (TeamSet, error) {
	if n < 1 {
		return TeamSet{}, fmt.Errorf("team count must be positive, got %d", n)
	}
	ts := TeamSet{members: make(map[Team]bool, n)}
	for i := 1; i <= n; i++ {
		t := Team(prefix + strconv.Itoa(i))
		ts.members[t] = true
		ts.order = append(ts.order, t)
	}
	return ts, nil
}

func (ts TeamSet) Parse(raw string) (Team, bool) {
	t := Team(raw)
	return t, ts.members[t]
}

func (ts TeamSet) All() []Team {
	out := make([]Team, len(ts.order))
	copy(out, ts.order)
	return out
}
