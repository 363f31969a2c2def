// Package wishlist persists the user's saved games and notifies every open
// view when a game's membership changes.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/kv"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/metrics"
)

// StorageKey is the key holding the serialized list.
const StorageKey = "wishlist"

// ErrCorrupt is returned when the stored list cannot be decoded.
var ErrCorrupt = errors.New("stored wishlist is corrupt")

// Change describes a membership flip for one game.
type Change struct {
	ID    int
	Saved bool // true when the game is now in the wishlist
	Game  catalog.GameSummary
}

// Listener receives membership changes.
type Listener func(Change)

// entry is the persisted subset of a game summary.
type entry struct {
	ID       int      `json:"id"`
	Slug     string   `json:"slug,omitempty"`
	Name     string   `json:"name"`
	Image    string   `json:"background_image,omitempty"`
	Score    *int     `json:"metacritic,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Platform []string `json:"platforms,omitempty"`
	Released string   `json:"released,omitempty"`
}

func toEntry(g catalog.GameSummary) entry {
	return entry{
		ID:       g.ID,
		Slug:     g.Slug,
		Name:     g.Name,
		Image:    g.Image,
		Score:    g.Score,
		Genres:   g.Genres,
		Platform: g.Platforms,
		Released: g.Released,
	}
}

func (e entry) summary() catalog.GameSummary {
	return catalog.GameSummary{
		ID:        e.ID,
		Slug:      e.Slug,
		Name:      e.Name,
		Image:     e.Image,
		Score:     e.Score,
		Genres:    e.Genres,
		Platforms: e.Platform,
		Released:  e.Released,
	}
}

// Store is the wishlist. It is safe for concurrent use; each Toggle reads,
// mutates and writes back under one lock.
type Store struct {
	kv kv.Store

	mu sync.Mutex

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int
}

// New creates a Store backed by store.
func New(store kv.Store) *Store {
	return &Store{
		kv:   store,
		subs: make(map[int]Listener),
	}
}

// load reads the persisted list. A missing key is an empty list.
func (s *Store) load(ctx context.Context) ([]entry, error) {
	raw, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return entries, nil
}

func (s *Store) save(ctx context.Context, entries []entry) error {
	if entries == nil {
		entries = []entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	return s.kv.Set(ctx, StorageKey, raw)
}

// readAll is load with failures reported as an empty list.
func (s *Store) readAll(ctx context.Context) []entry {
	entries, err := s.load(ctx)
	if err != nil {
		logging.Warn("failed to read wishlist", "error", err)
		return nil
	}
	return entries
}

// GetAll returns the saved games in insertion order.
func (s *Store) GetAll(ctx context.Context) []catalog.GameSummary {
	s.mu.Lock()
	entries := s.readAll(ctx)
	s.mu.Unlock()

	games := make([]catalog.GameSummary, 0, len(entries))
	for _, e := range entries {
		games = append(games, e.summary())
	}
	return games
}

// Has reports whether the game with id is saved.
func (s *Store) Has(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.readAll(ctx), id) >= 0
}

// Count returns the number of saved games.
func (s *Store) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.readAll(ctx))
}

// Toggle flips the membership of game and returns true if it is now saved.
// On a storage failure nothing is written, the returned state is the
// unchanged membership and subscribers are not notified.
func (s *Store) Toggle(ctx context.Context, game catalog.GameSummary) (bool, error) {
	return s.update(ctx, game.ID, func(entries []entry, i int) ([]entry, *catalog.GameSummary) {
		if i >= 0 {
			return slices.Delete(entries, i, i+1), nil
		}
		return append(entries, toEntry(game)), &game
	})
}

// Remove deletes the game with id if present and reports whether it was.
func (s *Store) Remove(ctx context.Context, id int) (bool, error) {
	present := false
	_, err := s.update(ctx, id, func(entries []entry, i int) ([]entry, *catalog.GameSummary) {
		if i < 0 {
			return nil, nil
		}
		present = true
		return slices.Delete(entries, i, i+1), nil
	})
	return present, err
}

// mutate receives the current list and the index of the target id (-1 when
// absent). It returns the new list, or nil to leave storage untouched, and
// the added game when the change is an addition.
type mutate func(entries []entry, i int) ([]entry, *catalog.GameSummary)

func (s *Store) update(ctx context.Context, id int, fn mutate) (bool, error) {
	s.mu.Lock()
	entries, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		logging.Error("wishlist update aborted", "id", id, "error", err)
		return false, fmt.Errorf("wishlist %d: %w", id, err)
	}

	i := indexOf(entries, id)
	var removed catalog.GameSummary
	if i >= 0 {
		removed = entries[i].summary()
	}
	next, added := fn(entries, i)
	if next == nil && added == nil && i < 0 {
		s.mu.Unlock()
		return false, nil
	}

	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		logging.Error("wishlist write failed", "id", id, "error", err)
		return i >= 0, fmt.Errorf("wishlist %d: %w", id, err)
	}
	s.mu.Unlock()

	change := Change{ID: id, Saved: added != nil, Game: removed}
	state := "removed"
	if added != nil {
		state = "added"
		change.Game = *added
	}
	metrics.WishlistToggles.WithLabelValues(state).Inc()
	metrics.WishlistSize.Set(float64(len(next)))
	logging.Debug("wishlist changed", "id", id, "saved", change.Saved, "count", len(next))

	s.publish(change)
	return change.Saved, nil
}

// Subscribe registers fn for membership changes. The returned function
// unregisters it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// publish notifies every subscriber synchronously, in registration order.
func (s *Store) publish(c Change) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	listeners := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
}

func indexOf(entries []entry, id int) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
