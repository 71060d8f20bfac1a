package hunt

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"
)

func testStations(t *testing.T) StationSet {
	t.Helper()
	s, err := NewStationSet(DefaultStations, DefaultSpecialStations)
	if err != nil {
		t.Fatalf("stations: %v", err)
	}
	return s
}

func rome(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("loading zone: %v", err)
	}
	return loc
}

func TestProjectOrderAndFlags(t *testing.T) {
	entries := []CheckIn{
		{Station: clue1, Team: "team1", At: t0},
		{Station: clue1, Team: "team2", At: t0.Add(10 * time.Minute)},
		{Station: "Teo", Team: "team2", At: t0.Add(5 * time.Minute)},
		{Station: "Teo", Team: "team3", At: t0.Add(20 * time.Minute)},
	}

	events := Project(entries, testStations(t), rome(t), FeedFilter{})
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}

	want := []struct {
		team    Team
		station Station
		time    string
		special bool
		first   bool
	}{
		{"team3", "Teo", "10:20", true, false},
		{"team2", clue1, "10:10", false, false},
		{"team2", "Teo", "10:05", true, true},
		{"team1", clue1, "10:00", false, true},
	}
	for i, w := range want {
		e := events[i]
		if e.Team != w.team || e.Station != w.station || e.Time != w.time || e.IsSpecial != w.special || e.IsFirst != w.first {
			t.Errorf("event %d = %+v, want %+v", i, e, w)
		}
	}
}

func TestProjectTiedFirstFinders(t *testing.T) {
	entries := []CheckIn{
		{Station: clue1, Team: "team1", At: t0, Seq: 1},
		{Station: clue1, Team: "team2", At: t0, Seq: 2},
		{Station: clue1, Team: "team3", At: t0.Add(time.Second), Seq: 3},
	}

	events := Project(entries, testStations(t), time.UTC, FeedFilter{})
	firsts := 0
	for _, e := range events {
		if e.IsFirst {
			firsts++
			if e.Team == "team3" {
				t.Error("team3 is not a first finder")
			}
		}
	}
	if firsts != 2 {
		t.Errorf("flagged %d first finders, want 2", firsts)
	}
}

func TestProjectFilters(t *testing.T) {
	entries := []CheckIn{
		{Station: clue1, Team: "team1", At: t0},
		{Station: clue1, Team: "team2", At: t0.Add(time.Minute)},
		{Station: "Teo", Team: "team1", At: t0.Add(2 * time.Minute)},
		{Station: "Alex", Team: "team2", At: t0.Add(3 * time.Minute)},
	}
	stations := testStations(t)

	tests := []struct {
		name   string
		filter FeedFilter
		want   []Station
	}{
		{name: "none", filter: FeedFilter{}, want: []Station{"Alex", "Teo", clue1, clue1}},
		{name: "all", filter: FeedFilter{Team: FilterAll, Station: FilterAll}, want: []Station{"Alex", "Teo", clue1, clue1}},
		{name: "team1", filter: FeedFilter{Team: "team1"}, want: []Station{"Teo", clue1}},
		{name: "station", filter: FeedFilter{Station: clue1}, want: []Station{clue1, clue1}},
		{name: "both", filter: FeedFilter{Team: "team2", Station: clue1}, want: []Station{clue1}},
		{name: "no match", filter: FeedFilter{Team: "team42"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := Project(entries, stations, time.UTC, tt.filter)
			if len(events) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(events), len(tt.want))
			}
			for i, e := range events {
				if e.Station != tt.want[i] {
					t.Errorf("event %d station = %s, want %s", i, e.Station, tt.want[i])
				}
				if tt.filter.Team != "" && tt.filter.Team != FilterAll && string(e.Team) != tt.filter.Team {
					t.Errorf("event %d team = %s", i, e.Team)
				}
				if i > 0 && e.At.After(events[i-1].At) {
					t.Errorf("event %d out of order", i)
				}
			}
		})
	}
}

func TestProjectFirstFinderIgnoresFilter(t *testing.T) {
	entries := []CheckIn{
		{Station: clue1, Team: "team1", At: t0},
		{Station: clue1, Team: "team2", At: t0.Add(time.Minute)},
	}
	events := Project(entries, testStations(t), time.UTC, FeedFilter{Team: "team2"})
	if len(events) != 1 || events[0].IsFirst {
		t.Errorf("team2 must not become first finder when team1 is filtered out: %+v", events)
	}
}

func TestFeedProjector(t *testing.T) {
	ctx := context.Background()
	rec, ledger, _ := newTestRecorder(t, true)
	clock := t0
	rec.Clock = func() time.Time { clock = clock.Add(time.Minute); return clock }

	p := NewFeedProjector(ledger, rec.stations, time.UTC)
	events, err := p.Feed(ctx, FeedFilter{})
	if err != nil {
		t.Fatalf("empty feed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("empty ledger gave %d events", len(events))
	}

	for _, pair := range [][2]string{{clue1, "team1"}, {"Alex", "team1"}, {clue1, "team2"}} {
		if _, err := rec.Record(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	events, err = p.Feed(ctx, FeedFilter{Team: "team1"})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Station != "Alex" || !events[0].IsSpecial || !events[0].IsFirst {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].Station != clue1 || !events[1].IsFirst {
		t.Errorf("event 1 = %+v", events[1])
	}

	ledger.failRead = errBoom
	if _, err := p.Feed(ctx, FeedFilter{}); err == nil {
		t.Error("expected read failure to fail the feed")
	}
}
