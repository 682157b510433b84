package main

import (
	"math"
	"testing"
)

func TestNewFoodInBounds(t *testing.T) {
	cfg := smallConfig()
	for i := 0; i < 100; i++ {
		f := NewFood(cfg)
		if f.X < 0 || f.X > cfg.WorldWidth || f.Y < 0 || f.Y > cfg.WorldHeight {
			t.Fatalf("food at (%v, %v) outside %vx%v", f.X, f.Y, cfg.WorldWidth, cfg.WorldHeight)
		}
		if f.Drop {
			t.Fatal("base food marked as drop")
		}
		if f.ID == "" || f.Color == "" {
			t.Fatalf("incomplete food %+v", f)
		}
	}
}

func TestDropFoodJitterIsBounded(t *testing.T) {
	cfg := smallConfig()
	for i := 0; i < 100; i++ {
		f := newDropFood(500, 500, "#abc", cfg)
		if math.Abs(f.X-500) > cfg.DropScatter || math.Abs(f.Y-500) > cfg.DropScatter {
			t.Fatalf("drop at (%v, %v) scattered beyond %v", f.X, f.Y, cfg.DropScatter)
		}
		if !f.Drop || f.Color != "#abc" {
			t.Fatalf("drop food = %+v", f)
		}
	}
}

func TestDropFoodClampedToWorld(t *testing.T) {
	cfg := smallConfig()
	for i := 0; i < 50; i++ {
		f := newDropFood(0, cfg.WorldHeight, "#abc", cfg)
		if f.X < 0 || f.Y > cfg.WorldHeight {
			t.Fatalf("edge drop left the world at (%v, %v)", f.X, f.Y)
		}
	}
}

func TestDeathDropsMatchBody(t *testing.T) {
	cfg := smallConfig()
	p := NewPlayer("p1", "Alice", "#f00", cfg)
	p.Segments = makeSegments(7)

	drops := deathDrops(p, cfg)
	if len(drops) != 7 {
		t.Fatalf("got %d drops, want one per segment", len(drops))
	}
	for _, f := range drops {
		if f.Color != "#f00" {
			t.Fatalf("drop color %q, want victim color", f.Color)
		}
		if !f.Drop {
			t.Fatal("death drop not flagged")
		}
	}

	p.Segments = makeSegments(200)
	if got := len(deathDrops(p, cfg)); got != cfg.MaxDeathDrops {
		t.Fatalf("got %d drops for 200 segments, want cap %d", got, cfg.MaxDeathDrops)
	}
}

func TestDeathDropsUniqueIDs(t *testing.T) {
	cfg := smallConfig()
	p := NewPlayer("p1", "Alice", "", cfg)
	p.Segments = makeSegments(30)

	seen := make(map[string]bool)
	for _, f := range deathDrops(p, cfg) {
		if seen[f.ID] {
			t.Fatalf("duplicate drop ID %s", f.ID)
		}
		seen[f.ID] = true
	}
}
