package gamehub

import (
	"StatKeeperApi/internal/stats"
)

// GameEvent is one mutation on the game's stream.
type GameEvent interface {
	execute(h *Hub)
}

// EventResult is delivered on an event's Reply channel once the hub has
// applied it. Keeper websocket events carry no Reply; their outcome reaches
// clients through the watcher broadcast instead.
type EventResult struct {
	Player stats.Player
	Undone bool
	Err    error
}

type ShotEvent struct {
	Side        stats.GameSide
	PlayerIndex int
	Shot        stats.ShotType
	Made        bool
	Reply       chan EventResult
}

func (e ShotEvent) execute(h *Hub) {
	p, err := h.Statline.ApplyShot(e.Side, e.PlayerIndex, e.Shot, e.Made)
	if e.Reply != nil {
		e.Reply <- EventResult{Player: p, Err: err}
	}
	if err == nil {
		h.broadcast()
	}
}

type StatEvent struct {
	Side        stats.GameSide
	PlayerIndex int
	Stat        stats.PlayerStat
	Delta       int
	Reply       chan EventResult
}

func (e StatEvent) execute(h *Hub) {
	p, err := h.Statline.ApplyStat(e.Side, e.PlayerIndex, e.Stat, e.Delta)
	if e.Reply != nil {
		e.Reply <- EventResult{Player: p, Err: err}
	}
	if err == nil {
		h.broadcast()
	}
}

type UndoEvent struct {
	Side        stats.GameSide
	PlayerIndex int
	Shot        stats.ShotType
	Reply       chan EventResult
}

func (e UndoEvent) execute(h *Hub) {
	p, undone, err := h.Statline.UndoShot(e.Side, e.PlayerIndex, e.Shot)
	if e.Reply != nil {
		e.Reply <- EventResult{Player: p, Undone: undone, Err: err}
	}
	if err == nil && undone {
		h.broadcast()
	}
}

// GenericEvent is a raw keeper websocket message before parsing.
type GenericEvent map[string]any

func (e GenericEvent) parseEvent() (GameEvent, error) {
	eventType, err := checkAndAssertStringFromMap(e, "type")
	if err != nil {
		return nil, ErrEventParseFailed
	}

	sideName, err := checkAndAssertStringFromMap(e, "side")
	if err != nil {
		return nil, ErrEventParseFailed
	}
	side, err := stats.ParseGameSide(sideName)
	if err != nil {
		return nil, ErrEventValidationFailed
	}

	playerIndex, err := checkAndAssertIntFromMap(e, "player_index")
	if err != nil {
		return nil, ErrEventParseFailed
	}

	switch eventType {
	case "shot":
		shotName, err := checkAndAssertStringFromMap(e, "shot_type")
		if err != nil {
			return nil, ErrEventParseFailed
		}
		shot, err := stats.ParseShotType(shotName)
		if err != nil {
			return nil, ErrEventValidationFailed
		}
		made, err := checkAndAssertBoolFromMap(e, "made")
		if err != nil {
			return nil, ErrEventParseFailed
		}
		return ShotEvent{Side: side, PlayerIndex: playerIndex, Shot: shot, Made: made}, nil
	case "stat":
		statName, err := checkAndAssertStringFromMap(e, "stat")
		if err != nil {
			return nil, ErrEventParseFailed
		}
		stat, err := stats.ParsePlayerStat(statName)
		if err != nil {
			return nil, ErrEventValidationFailed
		}
		delta, err := checkAndAssertIntFromMap(e, "delta")
		if err != nil {
			return nil, ErrEventParseFailed
		}
		return StatEvent{Side: side, PlayerIndex: playerIndex, Stat: stat, Delta: delta}, nil
	case "undo":
		shotName, err := checkAndAssertStringFromMap(e, "shot_type")
		if err != nil {
			return nil, ErrEventParseFailed
		}
		shot, err := stats.ParseShotType(shotName)
		if err != nil {
			return nil, ErrEventValidationFailed
		}
		return UndoEvent{Side: side, PlayerIndex: playerIndex, Shot: shot}, nil
	}

	return nil, ErrEventParseFailed
}
