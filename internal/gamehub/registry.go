package gamehub

import (
	"StatKeeperApi/internal/stats"
	"sync"
)

// Registry tracks every game currently in progress, keyed by pin.
type Registry struct {
	mu     sync.Mutex
	active map[string]*Hub
}

func NewRegistry() *Registry {
	return &Registry{active: make(map[string]*Hub)}
}

// Start creates a hub for the statline and launches its run loop. It reports
// false if the pin is already taken.
func (r *Registry) Start(pin string, statline *stats.GameStatline) (*Hub, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.active[pin]; exists {
		return nil, false
	}

	hub := New(pin, statline)
	r.active[pin] = hub
	go hub.Run()
	return hub, true
}

func (r *Registry) Get(pin string) (*Hub, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hub, ok := r.active[pin]
	return hub, ok
}

// Remove closes the game's hub and forgets the pin.
func (r *Registry) Remove(pin string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hub, ok := r.active[pin]; ok {
		hub.Close()
		delete(r.active, pin)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
