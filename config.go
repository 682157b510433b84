package main

import (
	"os"
	"strconv"
	"time"
)

// Server constants
const (
	ServerPort    = ":8080"
	StaticDir     = "../client"
	WebSocketPath = "/ws"

	// Connection admission — gateway-level, not part of the game core
	MaxPlayers    = 200
	IPCooldownSec = 30

	// Bots
	BotCount        = 8
	BotRespawnDelay = 100 // ticks before a dead bot rejoins (~5 sec at 20 tps)
)

// Config holds the world parameters. Set once at startup, never mutated.
type Config struct {
	WorldWidth  float64
	WorldHeight float64

	TickRate int // state broadcasts per second

	FoodCount int // base-pool population target, held constant via claim-and-replace

	InitSegments int     // segments a fresh snake starts with
	SegmentSize  float64 // world units between consecutive segments
	SpawnMargin  float64 // keep spawns this far from the world edge

	MaxDeathDrops   int     // cap on food items dropped by a single death
	DropScatter     float64 // max jitter applied to each death-drop position
	LeaderboardSize int
	MaxNameLen      int
}

// DefaultConfig returns the production parameters.
func DefaultConfig() Config {
	return Config{
		WorldWidth:      5000,
		WorldHeight:     5000,
		TickRate:        20,
		FoodCount:       500,
		InitSegments:    10,
		SegmentSize:     10.0,
		SpawnMargin:     200.0,
		MaxDeathDrops:   50,
		DropScatter:     15.0,
		LeaderboardSize: 10,
		MaxNameLen:      15,
	}
}

// TickInterval returns the broadcast period derived from the tick rate.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// ConfigFromEnv returns DefaultConfig with LADD_* environment overrides applied.
func ConfigFromEnv() Config {
	c := DefaultConfig()
	c.WorldWidth = envFloat("LADD_WORLD_WIDTH", c.WorldWidth)
	c.WorldHeight = envFloat("LADD_WORLD_HEIGHT", c.WorldHeight)
	c.TickRate = envInt("LADD_TICK_RATE", c.TickRate)
	c.FoodCount = envInt("LADD_FOOD_COUNT", c.FoodCount)
	c.InitSegments = envInt("LADD_INIT_SEGMENTS", c.InitSegments)
	c.SegmentSize = envFloat("LADD_SEGMENT_SIZE", c.SegmentSize)
	return c
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
