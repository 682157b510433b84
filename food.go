package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Food is a consumable entity. Base-pool food (Drop=false) is held at a
// constant population: every successful claim spawns one replacement.
// Death-drop food (Drop=true) is additive only and never replenished.
type Food struct {
	ID    string
	X     float64
	Y     float64
	Color string
	Drop  bool
}

// NewFood creates a base-pool item at a uniformly random world position.
func NewFood(cfg Config) *Food {
	return &Food{
		ID:    newFoodID(),
		X:     rand.Float64() * cfg.WorldWidth,
		Y:     rand.Float64() * cfg.WorldHeight,
		Color: randomFoodColor(),
	}
}

// newDropFood creates a death-drop item jittered around (x, y), clamped to
// the world rectangle and colored to match the victim.
func newDropFood(x, y float64, color string, cfg Config) *Food {
	sx := x + (rand.Float64()*2-1)*cfg.DropScatter
	sy := y + (rand.Float64()*2-1)*cfg.DropScatter
	return &Food{
		ID:    newFoodID(),
		X:     clamp(sx, 0, cfg.WorldWidth),
		Y:     clamp(sy, 0, cfg.WorldHeight),
		Color: color,
		Drop:  true,
	}
}

// deathDrops generates the food released by a dying player: one item per
// body segment up to MaxDeathDrops, each placed near a segment chosen
// uniformly at random (repeats allowed).
func deathDrops(victim *Player, cfg Config) []*Food {
	if len(victim.Segments) == 0 {
		return nil
	}
	count := len(victim.Segments)
	if count > cfg.MaxDeathDrops {
		count = cfg.MaxDeathDrops
	}
	drops := make([]*Food, count)
	for i := range drops {
		seg := victim.Segments[rand.Intn(len(victim.Segments))]
		drops[i] = newDropFood(seg.X, seg.Y, victim.Color, cfg)
	}
	return drops
}

// ToDTO converts the food item to its broadcast form.
func (f *Food) ToDTO() FoodDTO {
	return FoodDTO{
		ID:    f.ID,
		X:     roundTo1(f.X),
		Y:     roundTo1(f.Y),
		Color: f.Color,
	}
}

func newFoodID() string {
	return uuid.NewString()
}

// randomFoodColor picks a fully saturated hue.
func randomFoodColor() string {
	return hslColor(rand.Intn(360), 50)
}

func hslColor(hue, lightness int) string {
	return fmt.Sprintf("hsl(%d, 100%%, %d%%)", hue, lightness)
}

// roundTo1 rounds to 1 decimal place to save wire bytes.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
