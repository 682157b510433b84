package main

import (
	"math"
	"math/rand"
)

// Point is a 2D world coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Player is the authoritative record for one connected player.
// Owned exclusively by the World; everything outside the store refers to
// players by ID and sees value copies only.
type Player struct {
	ID        string
	Name      string
	X         float64
	Y         float64
	Angle     float64 // heading in radians
	Segments  []Point // index 0 = head; never empty while Alive
	Color     string
	HeadColor string
	Alive     bool
	Score     int // always len(Segments)
	Kills     int
	Boosting  bool
}

// NewPlayer creates a player at a random spawn inside the world margin.
// If color is empty a procedural body/head pair is generated.
func NewPlayer(id, name, color string, cfg Config) *Player {
	p := &Player{
		ID:   id,
		Name: truncateName(name, cfg.MaxNameLen),
	}
	if color != "" {
		p.Color = color
		p.HeadColor = color
	} else {
		hue := rand.Intn(360)
		p.Color = hslColor(hue, 50)
		p.HeadColor = hslColor(hue, 35)
	}
	p.rollSpawn(cfg)
	return p
}

// rollSpawn places the player at a fresh random position and rebuilds the
// segment chain trailing backward along the spawn heading.
func (p *Player) rollSpawn(cfg Config) {
	p.X = cfg.SpawnMargin + rand.Float64()*(cfg.WorldWidth-2*cfg.SpawnMargin)
	p.Y = cfg.SpawnMargin + rand.Float64()*(cfg.WorldHeight-2*cfg.SpawnMargin)
	p.Angle = rand.Float64() * 2 * math.Pi

	segments := make([]Point, cfg.InitSegments)
	for i := range segments {
		segments[i] = Point{
			X: p.X - float64(i)*cfg.SegmentSize*math.Cos(p.Angle),
			Y: p.Y - float64(i)*cfg.SegmentSize*math.Sin(p.Angle),
		}
	}
	p.Segments = segments
	p.Score = cfg.InitSegments
	p.Alive = true
	p.Boosting = false
}

// Respawn revives a dead player with a re-rolled position and a reset body.
// Kills carry over.
func (p *Player) Respawn(cfg Config) {
	p.rollSpawn(cfg)
}

// Head returns the head segment.
func (p *Player) Head() Point {
	return p.Segments[0]
}

// ToDTO converts the player to its broadcast form. Coordinates are rounded
// to 1 decimal place to keep the wire payload small.
func (p *Player) ToDTO() PlayerDTO {
	segs := make([]Point, len(p.Segments))
	for i, s := range p.Segments {
		segs[i] = Point{X: roundTo1(s.X), Y: roundTo1(s.Y)}
	}
	return PlayerDTO{
		ID:        p.ID,
		Name:      p.Name,
		X:         roundTo1(p.X),
		Y:         roundTo1(p.Y),
		Angle:     p.Angle,
		Segments:  segs,
		Color:     p.Color,
		HeadColor: p.HeadColor,
		Alive:     p.Alive,
		Score:     p.Score,
		Kills:     p.Kills,
		Boosting:  p.Boosting,
	}
}

// View returns a detached copy of the player.
func (p *Player) View() Player {
	cp := *p
	cp.Segments = make([]Point, len(p.Segments))
	copy(cp.Segments, p.Segments)
	return cp
}

func truncateName(name string, max int) string {
	if name == "" {
		return "Player"
	}
	runes := []rune(name)
	if len(runes) > max {
		return string(runes[:max])
	}
	return name
}
