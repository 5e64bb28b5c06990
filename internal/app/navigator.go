package app

import "sync"

// Navigator tracks the current location and the history of visits
type Navigator struct {
	mu          sync.Mutex
	history     []string
	subscribers []func(string)
}

func NewNavigator(start string) *Navigator {
	return &Navigator{history: []string{start}}
}

// Navigate pushes location onto the history
func (n *Navigator) Navigate(location string) {
	n.mu.Lock()
	n.history = append(n.history, location)
	subscribers := make([]func(string), len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mu.Unlock()

	for _, fn := range subscribers {
		fn(location)
	}
}

// Location returns the current location
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1]
}

// History returns every location visited, oldest first
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

func (n *Navigator) Subscribe(fn func(location string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, fn)
}
