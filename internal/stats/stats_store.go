package stats

import "sync"

// Store is the authoritative collection of both rosters and their counters.
// All writes go through ApplyDelta or CommitShot; each returns a copy of the
// updated player, never a reference into the store.
type Store struct {
	mu      sync.Mutex
	rosters [2]Roster
}

func NewStore(home, away Roster) *Store {
	return &Store{
		rosters: [2]Roster{home.clone(), away.clone()},
	}
}

// Roster returns a copy of one side's roster.
func (s *Store) Roster(side GameSide) Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rosters[side].clone()
}

// Player returns a copy of the player at (side, index).
func (s *Store) Player(side GameSide, index int) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rosters[side].Players) {
		return Player{}, ErrIndexOutOfRange
	}
	return s.rosters[side].Players[index], nil
}

// ApplyDelta adds delta to one independent counter, clamping the result at
// zero. Only the addressed counter changes.
func (s *Store) ApplyDelta(side GameSide, index int, stat PlayerStat, delta int) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rosters[side].Players) {
		return Player{}, ErrIndexOutOfRange
	}

	p := &s.rosters[side].Players[index]
	newValue := p.counter(stat) + delta
	if newValue < 0 {
		newValue = 0
	}
	p.setCounter(stat, newValue)
	return *p, nil
}

// CommitShot replaces a shot pair and adjusts points in one critical section,
// so points never reflects a shot the pair hasn't recorded or vice versa.
func (s *Store) CommitShot(side GameSide, index int, shot ShotType, line ShotLine,
	pointsDelta int) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rosters[side].Players) {
		return Player{}, ErrIndexOutOfRange
	}

	p := &s.rosters[side].Players[index]
	p.setShotLine(shot, line)
	p.Points += pointsDelta
	if p.Points < 0 {
		p.Points = 0
	}
	return *p, nil
}
