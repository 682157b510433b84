package main

import (
	"io"
	"log/slog"
	"sync"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGateway records everything the game emits.
type fakeGateway struct {
	mu         sync.Mutex
	unicasts   map[string][]any
	broadcasts []any
	excluded   []string // parallel to broadcasts; "" means sent to everyone
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{unicasts: make(map[string][]any)}
}

func (g *fakeGateway) SendTo(id string, msg any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.unicasts[id] = append(g.unicasts[id], msg)
}

func (g *fakeGateway) SendAll(msg any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcasts = append(g.broadcasts, msg)
	g.excluded = append(g.excluded, "")
}

func (g *fakeGateway) SendAllExcept(id string, msg any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcasts = append(g.broadcasts, msg)
	g.excluded = append(g.excluded, id)
}

func (g *fakeGateway) broadcastCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.broadcasts)
}

// allBroadcasts returns a copy of the broadcast log.
func (g *fakeGateway) allBroadcasts() []any {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]any, len(g.broadcasts))
	copy(out, g.broadcasts)
	return out
}

func (g *fakeGateway) sentTo(id string) []any {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]any, len(g.unicasts[id]))
	copy(out, g.unicasts[id])
	return out
}

func newTestGame(cfg Config) (*Game, *World, *fakeGateway) {
	world := NewWorld(cfg)
	gw := newFakeGateway()
	game := NewGame(cfg, world, gw, testLogger())
	return game, world, gw
}

// smallConfig keeps tests fast while preserving the default ratios.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.WorldWidth = 1000
	cfg.WorldHeight = 1000
	cfg.SpawnMargin = 100
	cfg.FoodCount = 20
	return cfg
}
