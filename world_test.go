package main

import (
	"fmt"
	"sync"
	"testing"
)

func baseFoodCount(w *World) int {
	n := 0
	for _, f := range w.FoodViews() {
		if !f.Drop {
			n++
		}
	}
	return n
}

func TestNewWorldSpawnsBasePool(t *testing.T) {
	cfg := smallConfig()
	w := NewWorld(cfg)

	if got := w.FoodCount(); got != cfg.FoodCount {
		t.Fatalf("food count = %d, want %d", got, cfg.FoodCount)
	}
	for _, f := range w.FoodViews() {
		if f.Drop {
			t.Fatalf("initial pool contains drop food %s", f.ID)
		}
		if f.X < 0 || f.X > cfg.WorldWidth || f.Y < 0 || f.Y > cfg.WorldHeight {
			t.Fatalf("food %s spawned out of bounds at (%v, %v)", f.ID, f.X, f.Y)
		}
	}
}

func TestClaimFoodConservesBasePool(t *testing.T) {
	cfg := smallConfig()
	w := NewWorld(cfg)
	target := w.FoodViews()[3]

	replacement, ok := w.ClaimFood(target.ID)
	if !ok {
		t.Fatal("claim of existing food failed")
	}
	if replacement == nil {
		t.Fatal("base-pool claim returned no replacement")
	}
	if replacement.ID == target.ID {
		t.Fatal("replacement reused the claimed ID")
	}
	if got := baseFoodCount(w); got != cfg.FoodCount {
		t.Fatalf("base pool = %d after claim, want %d", got, cfg.FoodCount)
	}
	for _, f := range w.FoodViews() {
		if f.ID == target.ID {
			t.Fatal("claimed food still present")
		}
	}
}

func TestClaimFoodUnknownID(t *testing.T) {
	cfg := smallConfig()
	w := NewWorld(cfg)

	replacement, ok := w.ClaimFood("nope")
	if ok || replacement != nil {
		t.Fatalf("claim of unknown ID = (%v, %v), want (nil, false)", replacement, ok)
	}
	if got := w.FoodCount(); got != cfg.FoodCount {
		t.Fatalf("food count changed to %d on failed claim", got)
	}
}

func TestClaimFoodFirstWriterWins(t *testing.T) {
	cfg := smallConfig()
	w := NewWorld(cfg)
	target := w.FoodViews()[0].ID

	const claimers = 16
	var wg sync.WaitGroup
	successes := make(chan bool, claimers)
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := w.ClaimFood(target)
			successes <- ok
		}()
	}
	wg.Wait()
	close(successes)

	wins := 0
	for ok := range successes {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("%d concurrent claims succeeded, want exactly 1", wins)
	}
	if got := w.FoodCount(); got != cfg.FoodCount {
		t.Fatalf("food count = %d after race, want %d (one replacement)", got, cfg.FoodCount)
	}
}

func TestClaimDropFoodNotReplenished(t *testing.T) {
	cfg := smallConfig()
	w := NewWorld(cfg)
	drop := newDropFood(100, 100, "hsl(1, 100%, 50%)", cfg)
	w.AddFood(drop)

	replacement, ok := w.ClaimFood(drop.ID)
	if !ok {
		t.Fatal("claim of drop food failed")
	}
	if replacement != nil {
		t.Fatalf("drop claim spawned replacement %v", replacement)
	}
	if got := w.FoodCount(); got != cfg.FoodCount {
		t.Fatalf("food count = %d, want drop gone and base pool untouched (%d)", got, cfg.FoodCount)
	}
	if got := baseFoodCount(w); got != cfg.FoodCount {
		t.Fatalf("base pool = %d after drop claim, want %d", got, cfg.FoodCount)
	}
}

func TestRemovePlayerUnknownIsNoop(t *testing.T) {
	w := NewWorld(smallConfig())
	if w.RemovePlayer("ghost") {
		t.Fatal("removing unknown player reported true")
	}
}

func TestUpdatePlayerUnknownSkipsFn(t *testing.T) {
	w := NewWorld(smallConfig())
	called := false
	if w.UpdatePlayer("ghost", func(*Player) { called = true }) {
		t.Fatal("update of unknown player reported true")
	}
	if called {
		t.Fatal("fn ran for unknown player")
	}
}

func TestLeaderboardBoundAndOrder(t *testing.T) {
	cfg := smallConfig()
	w := NewWorld(cfg)

	for i := 0; i < 14; i++ {
		p := NewPlayer(fmt.Sprintf("p%02d", i), fmt.Sprintf("player%d", i), "", cfg)
		p.Score = i * 3
		p.Kills = i
		w.AddPlayer(p)
	}
	dead := NewPlayer("dead", "dead", "", cfg)
	dead.Alive = false
	dead.Score = 1000
	w.AddPlayer(dead)

	_, board := w.TickSnapshot()
	if len(board) != cfg.LeaderboardSize {
		t.Fatalf("leaderboard has %d entries, want %d", len(board), cfg.LeaderboardSize)
	}
	for i := 1; i < len(board); i++ {
		if board[i].Score > board[i-1].Score {
			t.Fatalf("leaderboard not sorted: %d before %d", board[i-1].Score, board[i].Score)
		}
	}
	for _, e := range board {
		if e.ID == "dead" {
			t.Fatal("dead player made the leaderboard")
		}
	}
	if board[0].Score != 13*3 || board[0].Kills != 13 {
		t.Fatalf("top entry = %+v, want score 39 kills 13", board[0])
	}
}

func TestLeaderboardTieBreakDeterministic(t *testing.T) {
	cfg := smallConfig()
	w := NewWorld(cfg)
	for _, id := range []string{"b", "c", "a"} {
		p := NewPlayer(id, id, "", cfg)
		p.Score = 7
		w.AddPlayer(p)
	}

	_, first := w.TickSnapshot()
	for i := 0; i < 10; i++ {
		_, again := w.TickSnapshot()
		for j := range first {
			if again[j].ID != first[j].ID {
				t.Fatalf("tie order changed between snapshots: %v vs %v", again, first)
			}
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	cfg := smallConfig()
	w := NewWorld(cfg)
	p := NewPlayer("p1", "p1", "", cfg)
	w.AddPlayer(p)

	players, _ := w.Snapshot()
	players[0].Segments[0] = Point{X: -999, Y: -999}

	view, _ := w.PlayerView("p1")
	if view.Segments[0].X == -999 {
		t.Fatal("mutating a snapshot reached the store")
	}
}
