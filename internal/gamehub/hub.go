package gamehub

import (
	"StatKeeperApi/internal/stats"
	"encoding/json"
	"sync"
	"sync/atomic"
)

// Hub owns one game's live statline. Every mutation, whether it started as an
// HTTP call, a keeper websocket message, or an oracle classification, goes
// through the Events channel and is executed by Run in arrival order: that
// channel is the game's single mutation stream. Watchers receive the full
// box-score DTO after each applied mutation.
type Hub struct {
	Pin      string
	Statline *stats.GameStatline

	keepers  map[*Keeper]bool
	watchers map[*Watcher]bool

	Events       chan GameEvent
	Errors       chan error
	JoinWatcher  chan *Watcher
	LeaveWatcher chan *Watcher
	JoinKeeper   chan *Keeper
	LeaveKeeper  chan *Keeper

	done      chan struct{}
	closeOnce sync.Once

	classifying atomic.Bool
}

func New(pin string, statline *stats.GameStatline) *Hub {
	return &Hub{
		Pin:          pin,
		Statline:     statline,
		keepers:      make(map[*Keeper]bool),
		watchers:     make(map[*Watcher]bool),
		Events:       make(chan GameEvent),
		Errors:       make(chan error),
		JoinWatcher:  make(chan *Watcher),
		LeaveWatcher: make(chan *Watcher),
		JoinKeeper:   make(chan *Keeper),
		LeaveKeeper:  make(chan *Keeper),
		done:         make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case watcher := <-h.JoinWatcher:
			h.watchers[watcher] = true
			if snapshot, err := h.snapshot(); err == nil {
				select {
				case watcher.Receive <- snapshot:
				default:
				}
			}
		case watcher := <-h.LeaveWatcher:
			if _, ok := h.watchers[watcher]; ok {
				delete(h.watchers, watcher)
				close(watcher.Receive)
			}
		case keeper := <-h.JoinKeeper:
			h.keepers[keeper] = true
		case keeper := <-h.LeaveKeeper:
			delete(h.keepers, keeper)
		case event := <-h.Events:
			event.execute(h)
		case <-h.Errors:
			// A failed keeper connection has already left; nothing for the
			// game to do.
		case <-h.done:
			for watcher := range h.watchers {
				delete(h.watchers, watcher)
				close(watcher.Receive)
			}
			for keeper := range h.keepers {
				delete(h.keepers, keeper)
				close(keeper.Close)
			}
			return
		}
	}
}

// Close ends the game: the run loop drops all connections and stops
// accepting events.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) snapshot() ([]byte, error) {
	return json.Marshal(h.Statline.Dto())
}

func (h *Hub) broadcast() {
	msg, err := h.snapshot()
	if err != nil {
		return
	}
	for watcher := range h.watchers {
		select {
		case watcher.Receive <- msg:
		default:
			close(watcher.Receive)
			delete(h.watchers, watcher)
		}
	}
}

// ApplyShot queues a shot event on the mutation stream and waits for its
// result, keeping the call synchronous to the caller.
func (h *Hub) ApplyShot(side stats.GameSide, index int, shot stats.ShotType, made bool) (
	stats.Player, error) {
	reply := make(chan EventResult, 1)
	if err := h.send(ShotEvent{Side: side, PlayerIndex: index, Shot: shot, Made: made,
		Reply: reply}); err != nil {
		return stats.Player{}, err
	}
	result := <-reply
	return result.Player, result.Err
}

func (h *Hub) ApplyStat(side stats.GameSide, index int, stat stats.PlayerStat, delta int) (
	stats.Player, error) {
	reply := make(chan EventResult, 1)
	if err := h.send(StatEvent{Side: side, PlayerIndex: index, Stat: stat, Delta: delta,
		Reply: reply}); err != nil {
		return stats.Player{}, err
	}
	result := <-reply
	return result.Player, result.Err
}

func (h *Hub) UndoShot(side stats.GameSide, index int, shot stats.ShotType) (stats.Player,
	bool, error) {
	reply := make(chan EventResult, 1)
	if err := h.send(UndoEvent{Side: side, PlayerIndex: index, Shot: shot,
		Reply: reply}); err != nil {
		return stats.Player{}, false, err
	}
	result := <-reply
	return result.Player, result.Undone, result.Err
}

func (h *Hub) send(event GameEvent) error {
	select {
	case h.Events <- event:
		return nil
	case <-h.done:
		return ErrGameFinished
	}
}

// BeginClassification marks an audio classification in flight. Only one is
// allowed per game at a time; the trigger is blocked until the previous one
// completes.
func (h *Hub) BeginClassification() bool {
	return h.classifying.CompareAndSwap(false, true)
}

func (h *Hub) EndClassification() {
	h.classifying.Store(false)
}
