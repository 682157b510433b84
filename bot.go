package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Bot AI tuning
const (
	botSpeed      = 4.0   // world units per tick
	botBoostSpeed = 6.5   // speed while boosting toward distant food
	botTurnRate   = 0.15  // max radians per tick
	botSeekRadius = 400.0 // food within this range is targeted
	botEatRadius  = 12.0  // food within this range is claimed
	botEdgeBuffer = 150.0 // steer toward center when this close to the edge
	botGridCell   = 200.0
	botBoostDist  = 250.0 // boost when the targeted food is farther than this
)

var botNames = []string{
	"Viper", "Cobra", "Mamba", "Python", "Sidewinder",
	"Noodle", "Zigzag", "Slinky", "Wiggles", "Garter",
	"Boa", "Taipan", "Adder", "Krait", "Racer",
}

var botNameCounter int

// Bot holds one synthetic client. Bots speak the same protocol as browsers:
// they simulate their own movement and report it through the game's event
// handlers, never mutating the store directly.
type Bot struct {
	id          string
	x, y        float64
	angle       float64
	segments    []Point
	alive       bool
	boosting    bool
	respawnIn   int
	wanderTicks int
	targetAngle float64
}

// BotManager owns all bots and steps them on the shared tick interval.
type BotManager struct {
	cfg   Config
	game  *Game
	world *World
	bots  map[string]*Bot
	index *foodIndex
	log   *slog.Logger
}

// NewBotManager creates an empty manager.
func NewBotManager(cfg Config, game *Game, world *World, log *slog.Logger) *BotManager {
	return &BotManager{
		cfg:   cfg,
		game:  game,
		world: world,
		bots:  make(map[string]*Bot),
		index: newFoodIndex(botGridCell),
		log:   log,
	}
}

// Spawn joins n bots into the game.
func (bm *BotManager) Spawn(n int) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("bot-%d", rand.Int63())
		name := botNames[botNameCounter%len(botNames)]
		botNameCounter++

		bm.game.HandleJoin(id, name, "")
		bot := &Bot{id: id}
		bot.syncFromWorld(bm.world)
		bot.wanderTicks = randomWanderDuration()
		bot.targetAngle = bot.angle
		bm.bots[id] = bot
	}
	bm.log.Info("bots spawned", "count", n)
}

// Run steps the bots at the tick interval until ctx is cancelled.
func (bm *BotManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(bm.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			bm.Step()
		}
	}
}

// Step advances every bot one tick.
func (bm *BotManager) Step() {
	bm.index.Rebuild(bm.world.FoodViews())
	for _, bot := range bm.bots {
		bm.stepBot(bot)
	}
}

func (bm *BotManager) stepBot(bot *Bot) {
	if !bot.alive {
		bot.respawnIn--
		if bot.respawnIn <= 0 {
			bm.game.HandleRespawn(bot.id)
			bot.syncFromWorld(bm.world)
		}
		return
	}

	target, boost := bm.decide(bot)
	bot.steer(target)
	bot.advance(bm.cfg, boost)

	// Boundary is death for bots; they report it like any client would.
	if bot.x < 0 || bot.x > bm.cfg.WorldWidth || bot.y < 0 || bot.y > bm.cfg.WorldHeight {
		bm.game.HandleDied(bot.id, "")
		bot.alive = false
		bot.respawnIn = BotRespawnDelay
		return
	}

	if boost != bot.boosting {
		bot.boosting = boost
		bm.game.HandleBoost(bot.id, boost)
	}
	bm.game.HandleMove(bot.id, bot.x, bot.y, bot.angle, bot.segments)

	if food, ok := bm.index.Nearest(bot.x, bot.y, botEatRadius); ok {
		bm.game.HandleEatFood(bot.id, food.id)
		// Grow optimistically; the server trusts reported segments either way.
		tail := bot.segments[len(bot.segments)-1]
		bot.segments = append(bot.segments, tail)
	}
}

// decide picks the steering target: stay off the edge first, then chase
// nearby food, otherwise wander.
func (bm *BotManager) decide(bot *Bot) (float64, bool) {
	cfg := bm.cfg
	if bot.x < botEdgeBuffer || bot.x > cfg.WorldWidth-botEdgeBuffer ||
		bot.y < botEdgeBuffer || bot.y > cfg.WorldHeight-botEdgeBuffer {
		bot.targetAngle = math.Atan2(cfg.WorldHeight/2-bot.y, cfg.WorldWidth/2-bot.x)
		bot.wanderTicks = randomWanderDuration()
		return bot.targetAngle, false
	}

	if food, ok := bm.index.Nearest(bot.x, bot.y, botSeekRadius); ok {
		bot.targetAngle = math.Atan2(food.y-bot.y, food.x-bot.x)
		dx := food.x - bot.x
		dy := food.y - bot.y
		return bot.targetAngle, dx*dx+dy*dy > botBoostDist*botBoostDist
	}

	bot.wanderTicks--
	if bot.wanderTicks <= 0 {
		bot.targetAngle = bot.angle + (rand.Float64()-0.5)*math.Pi
		bot.wanderTicks = randomWanderDuration()
	}
	return bot.targetAngle, false
}

// steer turns toward target, limited to botTurnRate per tick.
func (b *Bot) steer(target float64) {
	diff := normalizeAngle(target - b.angle)
	if diff > botTurnRate {
		diff = botTurnRate
	} else if diff < -botTurnRate {
		diff = -botTurnRate
	}
	b.angle = normalizeAngle(b.angle + diff)
}

// advance moves the head and drags the body behind it at segment spacing,
// the same follow rule the browser client runs.
func (b *Bot) advance(cfg Config, boost bool) {
	speed := botSpeed
	if boost {
		speed = botBoostSpeed
	}
	b.x += speed * math.Cos(b.angle)
	b.y += speed * math.Sin(b.angle)

	b.segments[0] = Point{X: b.x, Y: b.y}
	for i := 1; i < len(b.segments); i++ {
		prev := b.segments[i-1]
		seg := b.segments[i]
		dx := prev.X - seg.X
		dy := prev.Y - seg.Y
		dist := math.Hypot(dx, dy)
		if dist <= cfg.SegmentSize || dist == 0 {
			continue
		}
		move := dist - cfg.SegmentSize
		b.segments[i] = Point{
			X: seg.X + dx/dist*move,
			Y: seg.Y + dy/dist*move,
		}
	}
}

// syncFromWorld pulls the bot's authoritative record after join/respawn.
func (b *Bot) syncFromWorld(w *World) {
	view, ok := w.PlayerView(b.id)
	if !ok {
		return
	}
	b.x = view.X
	b.y = view.Y
	b.angle = view.Angle
	b.segments = view.Segments
	b.alive = view.Alive
	b.boosting = view.Boosting
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func randomWanderDuration() int {
	return 40 + rand.Intn(80)
}
