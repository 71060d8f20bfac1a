package hunt

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// FilterAll is the filter value that disables a feed filter.
const FilterAll = "all"

// FeedFilter restricts the feed to one team and/or one station. Empty or
// FilterAll fields do not restrict.
type FeedFilter struct {
	Team    string
	Station string
}

func (f FeedFilter) match(c CheckIn) bool {
	if f.Team != "" && f.Team != FilterAll && string(c.Team) != f.Team {
		return false
	}
	if f.Station != "" && f.Station != FilterAll && string(c.Station) != f.Station {
		return false
	}
	return true
}

// FeedEvent is one discovery in the activity feed.
type FeedEvent struct {
	Team      Team
	Station   Station
	At        time.Time // in the display zone
	Time      string    // HH:MM in the display zone
	IsSpecial bool
	IsFirst   bool
}

// Project turns check-ins into feed events, most recent first. An event is
// a first find when its timestamp equals the earliest timestamp at its
// station, so simultaneous earliest entries are all flagged. Events with
// equal times keep their input order.
func Project(entries []CheckIn, stations StationSet, loc *time.Location, filter FeedFilter) []FeedEvent {
	first := make(map[Station]time.Time)
	for _, c := range entries {
		if t, ok := first[c.Station]; !ok || c.At.Before(t) {
			first[c.Station] = c.At
		}
	}

	events := make([]FeedEvent, 0, len(entries))
	for _, c := range entries {
		if !filter.match(c) {
			continue
		}
		at := c.At.In(loc)
		events = append(events, FeedEvent{
			Team:      c.Team,
			Station:   c.Station,
			At:        at,
			Time:      at.Format("15:04"),
			IsSpecial: stations.IsSpecial(c.Station),
			IsFirst:   c.At.Equal(first[c.Station]),
		})
	}

	sort.SliceStable(events, func(a, b int) bool {
		return events[a].At.After(events[b].At)
	})
	return events
}

// FeedProjector builds the feed from the ledger on every call.
type FeedProjector struct {
	ledger   Ledger
	stations StationSet
	loc      *time.Location
}

func NewFeedProjector(ledger Ledger, stations StationSet, loc *time.Location) *FeedProjector {
	return &FeedProjector{ledger: ledger, stations: stations, loc: loc}
}

// Feed reads every allow-listed station and projects the events. Stations
// that were never visited have no sub-ledger and read as empty.
func (p *FeedProjector) Feed(ctx context.Context, filter FeedFilter) ([]FeedEvent, error) {
	var all []CheckIn
	for _, st := range p.stations.All() {
		entries, err := p.ledger.ReadAll(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("reading sub-ledger %q: %w", st, err)
		}
		all = append(all, entries...)
	}
	return Project(all, p.stations, p.loc, filter), nil
}
