package stats

type ledgerKey struct {
	side  GameSide
	index int
	shot  ShotType
}

// Ledger holds one made/missed stack per (side, index, shot type). The stack
// is the only reliable record of the most recent shot's outcome: the
// aggregate pair cannot distinguish a trailing make from a trailing miss.
type Ledger struct {
	stacks map[ledgerKey][]bool
}

func NewLedger() *Ledger {
	return &Ledger{stacks: make(map[ledgerKey][]bool)}
}

func (l *Ledger) Push(side GameSide, index int, shot ShotType, made bool) {
	key := ledgerKey{side: side, index: index, shot: shot}
	l.stacks[key] = append(l.stacks[key], made)
}

// Pop removes and returns the most recent outcome for the keyed stack. The
// second return reports whether there was anything to pop.
func (l *Ledger) Pop(side GameSide, index int, shot ShotType) (bool, bool) {
	key := ledgerKey{side: side, index: index, shot: shot}
	stack := l.stacks[key]
	if len(stack) == 0 {
		return false, false
	}
	made := stack[len(stack)-1]
	l.stacks[key] = stack[:len(stack)-1]
	return made, true
}

// Depth reports how many outcomes the keyed stack holds.
func (l *Ledger) Depth(side GameSide, index int, shot ShotType) int {
	return len(l.stacks[ledgerKey{side: side, index: index, shot: shot}])
}
