package main

import (
	"context"
	"log/slog"
	"time"
)

// Broadcaster pushes the world snapshot to every connection at a fixed tick
// rate, unconditionally — no delta compression, no quiescence skip.
type Broadcaster struct {
	world    *World
	out      Gateway
	interval time.Duration
	log      *slog.Logger
}

// NewBroadcaster creates a broadcaster ticking at the configured rate.
func NewBroadcaster(cfg Config, world *World, out Gateway, log *slog.Logger) *Broadcaster {
	return &Broadcaster{
		world:    world,
		out:      out,
		interval: cfg.TickInterval(),
		log:      log,
	}
}

// Run drives the tick loop until ctx is cancelled. The ticker stops before
// Run returns, so no tick can fire during shutdown.
func (b *Broadcaster) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	b.log.Info("tick broadcaster started", "interval", b.interval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.Tick()
		}
	}
}

// Tick snapshots the store once and broadcasts the result. The snapshot is a
// copy taken under a read lock; serialization and sending happen outside it.
// Per-recipient send failures are handled by the gateway and never abort the
// remaining deliveries.
func (b *Broadcaster) Tick() {
	players, leaderboard := b.world.TickSnapshot()
	b.out.SendAll(GameStateMsg{
		Type:        EvtGameState,
		Players:     players,
		Leaderboard: leaderboard,
	})
}
