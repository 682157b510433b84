package main

// Wire protocol: JSON messages with a "type" discriminator.
//
//	Client → Server:
//	  join    {"type":"join","name":"Alice","color":"#f00"}   (color optional)
//	  move    {"type":"move","x":1,"y":2,"angle":0.5,"segments":[{"x":1,"y":2},...]}
//	  boost   {"type":"boost","boosting":true}
//	  eatFood {"type":"eatFood","foodId":"..."}
//	  died    {"type":"died","killedBy":"..."}                (killedBy optional)
//	  respawn {"type":"respawn"}
//	Server → Client:
//	  init, playerJoined, playerRespawned, foodEaten, playerDied,
//	  playerLeft, gameState, error — see the message structs below.
//
// Movement is client-authoritative: the server stores reported kinematics
// verbatim and never recomputes them.

// Inbound event types
const (
	EvtJoin    = "join"
	EvtMove    = "move"
	EvtBoost   = "boost"
	EvtEatFood = "eatFood"
	EvtDied    = "died"
	EvtRespawn = "respawn"
)

// Outbound event types
const (
	EvtInit            = "init"
	EvtPlayerJoined    = "playerJoined"
	EvtPlayerRespawned = "playerRespawned"
	EvtFoodEaten       = "foodEaten"
	EvtPlayerDied      = "playerDied"
	EvtPlayerLeft      = "playerLeft"
	EvtGameState       = "gameState"
	EvtError           = "error"
)

// ClientMessage is the flat inbound envelope; unused fields stay zero.
type ClientMessage struct {
	Type     string  `json:"type"`
	Name     string  `json:"name,omitempty"`
	Color    string  `json:"color,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Angle    float64 `json:"angle,omitempty"`
	Segments []Point `json:"segments,omitempty"`
	Boosting bool    `json:"boosting,omitempty"`
	FoodID   string  `json:"foodId,omitempty"`
	KilledBy string  `json:"killedBy,omitempty"`
}

// PlayerDTO is the broadcast form of a player record.
type PlayerDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Angle     float64 `json:"angle"`
	Segments  []Point `json:"segments"`
	Color     string  `json:"color"`
	HeadColor string  `json:"headColor"`
	Alive     bool    `json:"alive"`
	Score     int     `json:"score"`
	Kills     int     `json:"kills"`
	Boosting  bool    `json:"boosting"`
}

// FoodDTO is the broadcast form of a food item.
type FoodDTO struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// LeaderboardEntry is one row of the top-10 board.
type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Kills int    `json:"kills"`
}

// WorldSize describes the immutable world bounds sent on join.
type WorldSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// InitMsg is unicast to a player right after a successful join.
type InitMsg struct {
	Type     string      `json:"type"`
	PlayerID string      `json:"playerId"`
	Player   PlayerDTO   `json:"player"`
	Players  []PlayerDTO `json:"players"`
	Food     []FoodDTO   `json:"food"`
	World    WorldSize   `json:"worldSize"`
}

// PlayerJoinedMsg announces a new player to everyone else.
type PlayerJoinedMsg struct {
	Type   string    `json:"type"`
	Player PlayerDTO `json:"player"`
}

// PlayerRespawnedMsg announces a revived player to all connections.
type PlayerRespawnedMsg struct {
	Type   string    `json:"type"`
	Player PlayerDTO `json:"player"`
}

// FoodEatenMsg announces a successful claim. NewFood is the base-pool
// replacement; it is omitted when a death-drop item was claimed.
type FoodEatenMsg struct {
	Type    string   `json:"type"`
	FoodID  string   `json:"foodId"`
	NewFood *FoodDTO `json:"newFood,omitempty"`
}

// PlayerDiedMsg announces a death with the food it scattered.
type PlayerDiedMsg struct {
	Type     string    `json:"type"`
	PlayerID string    `json:"playerId"`
	KilledBy string    `json:"killedBy,omitempty"`
	DropFood []FoodDTO `json:"dropFood"`
}

// PlayerLeftMsg announces a disconnect.
type PlayerLeftMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// GameStateMsg is the snapshot broadcast every tick to all connections.
type GameStateMsg struct {
	Type        string             `json:"type"`
	Players     []PlayerDTO        `json:"players"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// ErrorMsg is sent by the gateway before rejecting a connection.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
