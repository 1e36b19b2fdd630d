package stats

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("player index out of roster range")
	ErrInvalidStatName = errors.New("stat cannot be set through the non-shot path")
	ErrInvalidShotType = errors.New("invalid shot type")
	ErrInvalidGameSide = errors.New("invalid game side")
)

// GameSide addresses one of the two rosters in a game. All mutations address
// players by (side, index); index order is roster display order.
type GameSide int

const (
	SideHome GameSide = iota
	SideAway
)

func (s GameSide) String() string {
	switch s {
	case SideHome:
		return "home"
	case SideAway:
		return "away"
	}
	return fmt.Sprintf("GameSide(%d)", int(s))
}

func ParseGameSide(s string) (GameSide, error) {
	switch s {
	case "home":
		return SideHome, nil
	case "away":
		return SideAway, nil
	}
	return 0, ErrInvalidGameSide
}

// ShotType is the closed set of scored attempts. Shot counters and points are
// only ever mutated through the shot path, never by stat name.
type ShotType int

const (
	FreeThrow ShotType = iota
	TwoPointer
	ThreePointer
)

// Value returns the point value of a made shot of this type.
func (t ShotType) Value() int {
	switch t {
	case FreeThrow:
		return 1
	case TwoPointer:
		return 2
	case ThreePointer:
		return 3
	}
	return 0
}

func (t ShotType) String() string {
	switch t {
	case FreeThrow:
		return "freeThrow"
	case TwoPointer:
		return "twoPointer"
	case ThreePointer:
		return "threePointer"
	}
	return fmt.Sprintf("ShotType(%d)", int(t))
}

func ParseShotType(s string) (ShotType, error) {
	switch s {
	case "freeThrow":
		return FreeThrow, nil
	case "twoPointer":
		return TwoPointer, nil
	case "threePointer":
		return ThreePointer, nil
	}
	return 0, ErrInvalidShotType
}

// PlayerStat is the closed set of independent counters a player carries
// outside the shot pairs.
type PlayerStat int

const (
	Assists PlayerStat = iota
	OffensiveRebounds
	DefensiveRebounds
	Steals
	Blocks
	Turnovers
	Fouls
)

func (ps PlayerStat) String() string {
	switch ps {
	case Assists:
		return "assists"
	case OffensiveRebounds:
		return "offensiveRebounds"
	case DefensiveRebounds:
		return "defensiveRebounds"
	case Steals:
		return "steals"
	case Blocks:
		return "blocks"
	case Turnovers:
		return "turnovers"
	case Fouls:
		return "fouls"
	}
	return fmt.Sprintf("PlayerStat(%d)", int(ps))
}

// ParsePlayerStat maps a wire stat name onto the closed counter set. Points
// and the shot pairs are not members: attempts to address them here fail with
// ErrInvalidStatName before any mutation happens.
func ParsePlayerStat(s string) (PlayerStat, error) {
	switch s {
	case "assists":
		return Assists, nil
	case "offensiveRebounds":
		return OffensiveRebounds, nil
	case "defensiveRebounds":
		return DefensiveRebounds, nil
	case "steals":
		return Steals, nil
	case "blocks":
		return Blocks, nil
	case "turnovers":
		return Turnovers, nil
	case "fouls":
		return Fouls, nil
	}
	return 0, ErrInvalidStatName
}

// ShotLine is a made/attempted pair for one shot type. Made never exceeds
// Attempted and neither goes negative.
type ShotLine struct {
	Made      int `json:"made"`
	Attempted int `json:"attempted"`
}

func (l ShotLine) String() string {
	return fmt.Sprintf("%d/%d", l.Made, l.Attempted)
}

// Player is one box-score row. Points always equals
// 1*FreeThrows.Made + 2*TwoPointers.Made + 3*ThreePointers.Made.
type Player struct {
	Name              string   `json:"name"`
	Number            string   `json:"number"`
	Points            int      `json:"points"`
	FreeThrows        ShotLine `json:"free_throw"`
	TwoPointers       ShotLine `json:"two_pointer"`
	ThreePointers     ShotLine `json:"three_pointer"`
	Assists           int      `json:"assists"`
	OffensiveRebounds int      `json:"offensive_rebounds"`
	DefensiveRebounds int      `json:"defensive_rebounds"`
	Steals            int      `json:"steals"`
	Blocks            int      `json:"blocks"`
	Turnovers         int      `json:"turnovers"`
	Fouls             int      `json:"fouls"`
}

// ShotLineFor returns the player's pair for the given shot type.
func (p Player) ShotLineFor(t ShotType) ShotLine {
	switch t {
	case FreeThrow:
		return p.FreeThrows
	case TwoPointer:
		return p.TwoPointers
	case ThreePointer:
		return p.ThreePointers
	}
	return ShotLine{}
}

// FieldGoals sums the two and three point pairs.
func (p Player) FieldGoals() ShotLine {
	return ShotLine{
		Made:      p.TwoPointers.Made + p.ThreePointers.Made,
		Attempted: p.TwoPointers.Attempted + p.ThreePointers.Attempted,
	}
}

func (p Player) counter(stat PlayerStat) int {
	switch stat {
	case Assists:
		return p.Assists
	case OffensiveRebounds:
		return p.OffensiveRebounds
	case DefensiveRebounds:
		return p.DefensiveRebounds
	case Steals:
		return p.Steals
	case Blocks:
		return p.Blocks
	case Turnovers:
		return p.Turnovers
	case Fouls:
		return p.Fouls
	}
	return 0
}

func (p *Player) setCounter(stat PlayerStat, value int) {
	switch stat {
	case Assists:
		p.Assists = value
	case OffensiveRebounds:
		p.OffensiveRebounds = value
	case DefensiveRebounds:
		p.DefensiveRebounds = value
	case Steals:
		p.Steals = value
	case Blocks:
		p.Blocks = value
	case Turnovers:
		p.Turnovers = value
	case Fouls:
		p.Fouls = value
	}
}

func (p *Player) setShotLine(t ShotType, line ShotLine) {
	switch t {
	case FreeThrow:
		p.FreeThrows = line
	case TwoPointer:
		p.TwoPointers = line
	case ThreePointer:
		p.ThreePointers = line
	}
}

// Roster is the ordered player list for one side. Order is the addressing key
// for every mutation call.
type Roster struct {
	TeamName string   `json:"team_name"`
	Players  []Player `json:"players"`
}

func (r Roster) clone() Roster {
	players := make([]Player, len(r.Players))
	copy(players, r.Players)
	return Roster{TeamName: r.TeamName, Players: players}
}
