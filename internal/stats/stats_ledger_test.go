package stats

import (
	"StatKeeperApi/internal/assert"
	"testing"
)

func TestLedgerLIFO(t *testing.T) {
	l := NewLedger()

	l.Push(SideHome, 0, TwoPointer, true)
	l.Push(SideHome, 0, TwoPointer, false)
	l.Push(SideHome, 0, TwoPointer, true)
	assert.Equal(t, l.Depth(SideHome, 0, TwoPointer), 3)

	made, ok := l.Pop(SideHome, 0, TwoPointer)
	assert.True(t, ok)
	assert.True(t, made)

	made, ok = l.Pop(SideHome, 0, TwoPointer)
	assert.True(t, ok)
	assert.False(t, made)

	made, ok = l.Pop(SideHome, 0, TwoPointer)
	assert.True(t, ok)
	assert.True(t, made)

	_, ok = l.Pop(SideHome, 0, TwoPointer)
	assert.False(t, ok)
}

func TestLedgerKeysAreIndependent(t *testing.T) {
	l := NewLedger()

	l.Push(SideHome, 0, TwoPointer, true)
	l.Push(SideHome, 0, ThreePointer, false)
	l.Push(SideAway, 0, TwoPointer, false)
	l.Push(SideHome, 1, TwoPointer, false)

	made, ok := l.Pop(SideHome, 0, TwoPointer)
	assert.True(t, ok)
	assert.True(t, made)
	assert.Equal(t, l.Depth(SideHome, 0, TwoPointer), 0)
	assert.Equal(t, l.Depth(SideHome, 0, ThreePointer), 1)
	assert.Equal(t, l.Depth(SideAway, 0, TwoPointer), 1)
	assert.Equal(t, l.Depth(SideHome, 1, TwoPointer), 1)
}

func TestLedgerPopEmpty(t *testing.T) {
	l := NewLedger()
	_, ok := l.Pop(SideAway, 4, FreeThrow)
	assert.False(t, ok)
}
