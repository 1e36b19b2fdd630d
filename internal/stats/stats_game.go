package stats

import "sync"

// GameStatline is the live box score for one game: the store of both rosters
// plus the shot ledger that makes undo exact. Shot commits and their ledger
// pushes happen in lockstep under one mutex, so mutations from any source
// apply one at a time in arrival order.
type GameStatline struct {
	mu     sync.Mutex
	store  *Store
	ledger *Ledger
}

func NewGameStatline(home, away Roster) *GameStatline {
	return &GameStatline{
		store:  NewStore(home, away),
		ledger: NewLedger(),
	}
}

func (g *GameStatline) Roster(side GameSide) Roster {
	return g.store.Roster(side)
}

func (g *GameStatline) Player(side GameSide, index int) (Player, error) {
	return g.store.Player(side, index)
}

// ApplyShot records one shot attempt: the pair gains an attempt, a make gains
// a made and the shot's point value, and the outcome is pushed on the ledger.
func (g *GameStatline) ApplyShot(side GameSide, index int, shot ShotType, made bool) (Player,
	error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := g.store.Player(side, index)
	if err != nil {
		return Player{}, err
	}

	line := current.ShotLineFor(shot)
	line.Attempted++
	pointsDelta := 0
	if made {
		line.Made++
		pointsDelta = shot.Value()
	}

	updated, err := g.store.CommitShot(side, index, shot, line, pointsDelta)
	if err != nil {
		return Player{}, err
	}
	g.ledger.Push(side, index, shot, made)
	return updated, nil
}

// ApplyStat adds delta to one independent counter, clamped at zero. Points
// and the shot pairs are not addressable here.
func (g *GameStatline) ApplyStat(side GameSide, index int, stat PlayerStat, delta int) (Player,
	error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.store.ApplyDelta(side, index, stat, delta)
}

// UndoShot reverses the most recent recorded shot of the given type for the
// player, restoring the exact prior pair and points. With nothing to undo it
// returns the current player unchanged and false; undo never errors on an
// empty history and never drives a counter negative.
func (g *GameStatline) UndoShot(side GameSide, index int, shot ShotType) (Player, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := g.store.Player(side, index)
	if err != nil {
		return Player{}, false, err
	}

	line := current.ShotLineFor(shot)
	if line.Attempted == 0 {
		return current, false, nil
	}
	wasMade, ok := g.ledger.Pop(side, index, shot)
	if !ok {
		return current, false, nil
	}

	line.Attempted--
	pointsDelta := 0
	if wasMade {
		line.Made--
		if line.Made < 0 {
			line.Made = 0
		}
		pointsDelta = -shot.Value()
	}

	updated, err := g.store.CommitShot(side, index, shot, line, pointsDelta)
	if err != nil {
		return Player{}, false, err
	}
	return updated, true, nil
}

// GameStatlineDto is a GameStatline flattened for clients: both rosters with
// derived team points and per-player field goal strings.
type GameStatlineDto struct {
	Home TeamStatlineDto `json:"home"`
	Away TeamStatlineDto `json:"away"`
}

type TeamStatlineDto struct {
	TeamName string              `json:"team_name"`
	Points   int                 `json:"points"`
	Players  []PlayerStatlineDto `json:"players"`
}

type PlayerStatlineDto struct {
	Player
	FieldGoals string `json:"field_goals"`
}

func (g *GameStatline) Dto() GameStatlineDto {
	return GameStatlineDto{
		Home: teamDto(g.store.Roster(SideHome)),
		Away: teamDto(g.store.Roster(SideAway)),
	}
}

func teamDto(r Roster) TeamStatlineDto {
	dto := TeamStatlineDto{
		TeamName: r.TeamName,
		Players:  make([]PlayerStatlineDto, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		dto.Points += p.Points
		dto.Players = append(dto.Players, PlayerStatlineDto{
			Player:     p,
			FieldGoals: p.FieldGoals().String(),
		})
	}
	return dto
}
