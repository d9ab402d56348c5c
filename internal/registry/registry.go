// Package registry tracks live game sessions so other parts of the program
// can discover and watch them. Each session publishes snapshots; watchers
// subscribe and receive them without ever touching the engine.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/closing-walls/internal/games/walls"
)

// Info is the public description of a live session.
type Info struct {
	ID         string      `json:"id"`
	Player     string      `json:"player"`
	Difficulty string      `json:"difficulty"`
	StartedAt  time.Time   `json:"started_at"`
	State      walls.State `json:"state"`
	Coverage   int         `json:"coverage"`
	TimeLeft   int         `json:"time_left"`
	Watchers   int         `json:"watchers"`
}

// subscriberBuffer is how many snapshots a slow watcher may lag behind
// before frames are dropped for it.
const subscriberBuffer = 8

// Entry is one registered session.
type Entry struct {
	id         string
	player     string
	difficulty string
	startedAt  time.Time

	mu     sync.Mutex
	latest walls.Snapshot
	subs   map[int]chan walls.Snapshot
	nextID int
	closed bool
}

// ID returns the session's unique identifier.
func (e *Entry) ID() string {
	return e.id
}

// Publish stores snap as the latest snapshot and fans it out to watchers.
// It never blocks: a watcher whose buffer is full misses this snapshot.
func (e *Entry) Publish(snap walls.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.latest = snap
	for _, ch := range e.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Latest returns the most recent snapshot.
func (e *Entry) Latest() walls.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest
}

// Subscribe returns a channel of snapshots and a function that ends the
// subscription. The channel is closed when either cancel is called or the
// session is removed.
func (e *Entry) Subscribe() (<-chan walls.Snapshot, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan walls.Snapshot, subscriberBuffer)
	if e.closed {
		close(ch)
		return ch, func() {}
	}

	id := e.nextID
	e.nextID++
	e.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if c, ok := e.subs[id]; ok {
				delete(e.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Info describes the entry.
func (e *Entry) Info() Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Info{
		ID:         e.id,
		Player:     e.player,
		Difficulty: e.difficulty,
		StartedAt:  e.startedAt,
		State:      e.latest.State,
		Coverage:   e.latest.Coverage,
		TimeLeft:   e.latest.TimeLeft,
		Watchers:   len(e.subs),
	}
}

func (e *Entry) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}

// Registry holds every live session.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Register adds a session and returns its entry.
func (r *Registry) Register(player, difficulty string) *Entry {
	e := &Entry{
		id:         uuid.NewString(),
		player:     player,
		difficulty: difficulty,
		startedAt:  r.now(),
		subs:       make(map[int]chan walls.Snapshot),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.id] = e
	return e
}

// Remove drops a session and closes every subscription to it.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if ok {
		e.close()
	}
}

// Get looks up a session by ID.
// Returns an error if the session is not registered.
func (r *Registry) Get(id string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown session %q", id)
	}
	return e, nil
}

// List returns every live session, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Info())
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartedAt.Equal(result[j].StartedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartedAt.Before(result[j].StartedAt)
	})

	return result
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
