package main

import (
	"sort"
	"sync"
)

// World is the entity store: the single source of truth for players and
// food. Every exported method is atomic; no caller ever observes a
// partially-applied mutation. Food is kept as an ordered collection so the
// join snapshot lists items in creation order.
type World struct {
	mu      sync.RWMutex
	cfg     Config
	players map[string]*Player
	food    []*Food
}

// NewWorld creates a store pre-populated with the base food pool.
func NewWorld(cfg Config) *World {
	w := &World{
		cfg:     cfg,
		players: make(map[string]*Player),
		food:    make([]*Food, 0, cfg.FoodCount),
	}
	for i := 0; i < cfg.FoodCount; i++ {
		w.food = append(w.food, NewFood(cfg))
	}
	return w
}

// AddPlayer registers a player, replacing any existing record with the same ID.
func (w *World) AddPlayer(p *Player) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.players[p.ID] = p
}

// RemovePlayer deletes a player. Removing an unknown ID is a no-op and
// reports false.
func (w *World) RemovePlayer(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.players[id]; !ok {
		return false
	}
	delete(w.players, id)
	return true
}

// UpdatePlayer runs fn on the player record while holding the write lock.
// Reports false (and never calls fn) if the ID is unknown.
func (w *World) UpdatePlayer(id string, fn func(*Player)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[id]
	if !ok {
		return false
	}
	fn(p)
	return true
}

// PlayerView returns a detached copy of a player record.
func (w *World) PlayerView(id string) (Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[id]
	if !ok {
		return Player{}, false
	}
	return p.View(), true
}

// PlayerCount returns the number of stored players.
func (w *World) PlayerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.players)
}

// AddFood appends food items to the store.
func (w *World) AddFood(items ...*Food) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.food = append(w.food, items...)
}

// FoodCount returns the number of live food items.
func (w *World) FoodCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.food)
}

// FoodViews returns detached copies of all live food items in store order.
func (w *World) FoodViews() []Food {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Food, len(w.food))
	for i, f := range w.food {
		out[i] = *f
	}
	return out
}

// ClaimFood atomically removes the food item with the given ID. The removal
// is the gate that resolves concurrent claims: the first caller wins, every
// later claim of the same ID reports false with no state change.
//
// Claiming a base-pool item spawns one replacement so the base population
// stays at its target; the replacement is returned for broadcast. Claiming a
// death-drop item removes it without replacement (drops are additive only)
// and returns nil.
func (w *World) ClaimFood(id string) (*FoodDTO, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, f := range w.food {
		if f.ID != id {
			continue
		}
		w.food = append(w.food[:i], w.food[i+1:]...)
		if f.Drop {
			return nil, true
		}
		replacement := NewFood(w.cfg)
		w.food = append(w.food, replacement)
		dto := replacement.ToDTO()
		return &dto, true
	}
	return nil, false
}

// Snapshot returns a momentarily-consistent copy of all players and food,
// used to build the join payload.
func (w *World) Snapshot() ([]PlayerDTO, []FoodDTO) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.playerDTOsLocked(), w.foodDTOsLocked()
}

// TickSnapshot returns the per-tick broadcast view: every player (alive or
// not) plus the leaderboard, computed under one read lock so both halves
// describe the same instant.
func (w *World) TickSnapshot() ([]PlayerDTO, []LeaderboardEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.playerDTOsLocked(), w.leaderboardLocked()
}

func (w *World) playerDTOsLocked() []PlayerDTO {
	out := make([]PlayerDTO, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p.ToDTO())
	}
	return out
}

func (w *World) foodDTOsLocked() []FoodDTO {
	out := make([]FoodDTO, len(w.food))
	for i, f := range w.food {
		out[i] = f.ToDTO()
	}
	return out
}

// leaderboardLocked ranks alive players by descending score. Ties break by
// ID so the order is deterministic for a given state.
func (w *World) leaderboardLocked() []LeaderboardEntry {
	alive := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	sort.Slice(alive, func(i, j int) bool {
		if alive[i].Score != alive[j].Score {
			return alive[i].Score > alive[j].Score
		}
		return alive[i].ID < alive[j].ID
	})
	if len(alive) > w.cfg.LeaderboardSize {
		alive = alive[:w.cfg.LeaderboardSize]
	}
	entries := make([]LeaderboardEntry, len(alive))
	for i, p := range alive {
		entries[i] = LeaderboardEntry{ID: p.ID, Name: p.Name, Score: p.Score, Kills: p.Kills}
	}
	return entries
}
