package hunt

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
)

// memLedger is an in-memory Ledger. Like a document collection, a
// sub-ledger accepts duplicate teams until its unique index exists.
type memLedger struct {
	mu      sync.Mutex
	subs    map[Station][]CheckIn
	unique  map[Station]bool
	seq     int64
	creates int
	indexes int

	failInsert error
	failRead   error
}

func newMemLedger() *memLedger {
	return &memLedger{
		subs:   make(map[Station][]CheckIn),
		unique: make(map[Station]bool),
	}
}

func (m *memLedger) CreateSubLedger(_ context.Context, st Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if _, ok := m.subs[st]; !ok {
		m.subs[st] = nil
	}
	return nil
}

func (m *memLedger) EnsureUniqueTeam(_ context.Context, st Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexes++
	m.unique[st] = true
	return nil
}

func (m *memLedger) Insert(_ context.Context, c CheckIn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert != nil {
		return m.failInsert
	}
	if m.unique[c.Station] {
		for _, e := range m.subs[c.Station] {
			if e.Team == c.Team {
				return ErrDuplicate
			}
		}
	}
	m.seq++
	c.Seq = m.seq
	m.subs[c.Station] = append(m.subs[c.Station], c)
	return nil
}

func (m *memLedger) ReadAll(_ context.Context, st Station) ([]CheckIn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRead != nil {
		return nil, m.failRead
	}
	out := append([]CheckIn(nil), m.subs[st]...)
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].At.Equal(out[b].At) {
			return out[a].At.Before(out[b].At)
		}
		return out[a].Seq < out[b].Seq
	})
	return out, nil
}

func (m *memLedger) SubLedgers(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for st := range m.subs {
		names = append(names, string(st))
	}
	sort.Strings(names)
	return names, nil
}

func (m *memLedger) count(st Station) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs[st])
}

type memState struct {
	mu   sync.Mutex
	docs map[string][]byte
	fail error
}

func newMemState() *memState {
	return &memState{docs: make(map[string][]byte)}
}

func (m *memState) ReadSingleton(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	data, ok := m.docs[key]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (m *memState) UpsertSingleton(_ context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.docs[key] = data
	return nil
}

func (m *memState) CreateSingleton(_ context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.docs[key]; ok {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.docs[key] = data
	return nil
}

var errBoom = errors.New("boom")
