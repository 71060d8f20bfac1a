package server

import (
	"encoding/json"
	"sync"
)

// allTeams is the topic that receives every team's events.
const allTeams = ""

// CheckInEvent is the payload streamed to feed subscribers.
type CheckInEvent struct {
	Type        string `json:"type"`
	Team        string `json:"team"`
	TeamDisplay string `json:"team_display"`
	Station     string `json:"station"`
	Time        string `json:"time"`
	IsSpecial   bool   `json:"is_special"`
}

// Broker is an in-process pub/sub for live feed events, keyed by team.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel receiving JSON-encoded events for team, or
// for every team when team is empty.
func (b *Broker) Subscribe(team string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[team] == nil {
		b.subs[team] = make(map[chan []byte]struct{})
	}
	b.subs[team][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(team string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[team], ch)
	if len(b.subs[team]) == 0 {
		delete(b.subs, team)
	}
	b.mu.Unlock()
}

// Publish delivers event to the team's subscribers and to the all-teams
// subscribers. Slow subscribers miss events.
func (b *Broker) Publish(event CheckInEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, topic := range []string{event.Team, allTeams} {
		for ch := range b.subs[topic] {
			select {
			case ch <- data:
			default:
			}
		}
	}
}
