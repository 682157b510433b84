package main

import (
	"log/slog"
	"math"
)

// Gateway is the send side of the connection layer. Sends are fire-and-forget
// from the game's perspective; delivery failures are the gateway's problem.
type Gateway interface {
	SendTo(id string, msg any)
	SendAll(msg any)
	SendAllExcept(id string, msg any)
}

// Game is the player lifecycle controller and food economy. It consumes
// inbound events (with sender identity) from the gateway, mutates the World,
// and emits the resulting notifications.
type Game struct {
	cfg   Config
	world *World
	out   Gateway
	log   *slog.Logger
}

// NewGame wires the controller to its store and gateway.
func NewGame(cfg Config, world *World, out Gateway, log *slog.Logger) *Game {
	return &Game{cfg: cfg, world: world, out: out, log: log}
}

// Dispatch routes one inbound event to its handler.
func (g *Game) Dispatch(senderID string, msg ClientMessage) {
	switch msg.Type {
	case EvtJoin:
		g.HandleJoin(senderID, msg.Name, msg.Color)
	case EvtMove:
		g.HandleMove(senderID, msg.X, msg.Y, msg.Angle, msg.Segments)
	case EvtBoost:
		g.HandleBoost(senderID, msg.Boosting)
	case EvtEatFood:
		g.HandleEatFood(senderID, msg.FoodID)
	case EvtDied:
		g.HandleDied(senderID, msg.KilledBy)
	case EvtRespawn:
		g.HandleRespawn(senderID)
	default:
		g.log.Warn("unknown event type", "type", msg.Type, "sender", senderID)
	}
}

// HandleJoin creates a player for the connection, replies with the full
// world snapshot, and announces the newcomer to everyone else.
func (g *Game) HandleJoin(id, name, color string) {
	p := NewPlayer(id, name, color, g.cfg)
	own := p.ToDTO()
	g.world.AddPlayer(p)

	players, food := g.world.Snapshot()
	g.out.SendTo(id, InitMsg{
		Type:     EvtInit,
		PlayerID: id,
		Player:   own,
		Players:  players,
		Food:     food,
		World:    WorldSize{Width: g.cfg.WorldWidth, Height: g.cfg.WorldHeight},
	})
	g.out.SendAllExcept(id, PlayerJoinedMsg{Type: EvtPlayerJoined, Player: own})
	g.log.Info("player joined", "id", id, "name", p.Name)
}

// HandleMove stores client-reported kinematics verbatim. Movement is a
// trust boundary: no bounds or collision validation happens here. The only
// rejected inputs are ones that would corrupt the snapshot itself:
// non-finite floats (unencodable as JSON) and an empty segment chain.
// No-op for absent or dead players.
func (g *Game) HandleMove(id string, x, y, angle float64, segments []Point) {
	if len(segments) == 0 || !finite(x) || !finite(y) || !finite(angle) {
		return
	}
	for _, s := range segments {
		if !finite(s.X) || !finite(s.Y) {
			return
		}
	}
	segs := make([]Point, len(segments))
	copy(segs, segments)

	g.world.UpdatePlayer(id, func(p *Player) {
		if !p.Alive {
			return
		}
		p.X = x
		p.Y = y
		p.Angle = angle
		p.Segments = segs
		p.Score = len(segs)
	})
}

// HandleBoost updates the boosting flag regardless of alive state.
func (g *Game) HandleBoost(id string, boosting bool) {
	g.world.UpdatePlayer(id, func(p *Player) {
		p.Boosting = boosting
	})
}

// HandleEatFood performs the atomic claim. A losing concurrent claim or an
// unknown ID is a silent no-op; exactly one foodEaten broadcast goes out per
// successfully claimed item.
func (g *Game) HandleEatFood(id, foodID string) {
	replacement, ok := g.world.ClaimFood(foodID)
	if !ok {
		return
	}
	g.out.SendAll(FoodEatenMsg{Type: EvtFoodEaten, FoodID: foodID, NewFood: replacement})
}

// HandleDied transitions a living player to dead, scatters death-drop food
// along its body, and credits the killer when the reported ID resolves to a
// live player. Broadcast goes to all connections, victim included.
func (g *Game) HandleDied(id, killedBy string) {
	var drops []*Food
	died := false
	g.world.UpdatePlayer(id, func(p *Player) {
		if !p.Alive {
			return
		}
		p.Alive = false
		drops = deathDrops(p, g.cfg)
		died = true
	})
	if !died {
		return
	}

	if killedBy != "" && killedBy != id {
		g.world.UpdatePlayer(killedBy, func(k *Player) {
			if k.Alive {
				k.Kills++
			}
		})
	}

	g.world.AddFood(drops...)
	dropDTOs := make([]FoodDTO, len(drops))
	for i, f := range drops {
		dropDTOs[i] = f.ToDTO()
	}
	g.out.SendAll(PlayerDiedMsg{
		Type:     EvtPlayerDied,
		PlayerID: id,
		KilledBy: killedBy,
		DropFood: dropDTOs,
	})
	g.log.Info("player died", "id", id, "killedBy", killedBy, "drops", len(drops))
}

// HandleRespawn revives a dead player with a re-rolled spawn; kills carry
// over. No-op for absent or still-living players.
func (g *Game) HandleRespawn(id string) {
	var dto PlayerDTO
	revived := false
	g.world.UpdatePlayer(id, func(p *Player) {
		if p.Alive {
			return
		}
		p.Respawn(g.cfg)
		dto = p.ToDTO()
		revived = true
	})
	if !revived {
		return
	}
	g.out.SendAll(PlayerRespawnedMsg{Type: EvtPlayerRespawned, Player: dto})
}

// HandleDisconnect removes the player and announces the departure. Unknown
// IDs (never joined, or already removed) produce no broadcast.
func (g *Game) HandleDisconnect(id string) {
	if !g.world.RemovePlayer(id) {
		return
	}
	g.out.SendAll(PlayerLeftMsg{Type: EvtPlayerLeft, PlayerID: id})
	g.log.Info("player left", "id", id)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
