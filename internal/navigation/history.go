// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package navigation

import (
	"errors"
	"sync"
)

// ErrNoHistory is returned by Back and Forward at either end of the stack.
var ErrNoHistory = errors.New("no history entry in that direction")

// Entry is one visited location with its parsed state.
type Entry struct {
	Location string
	State    State
}

// History is a browser-style back/forward stack.
type History struct {
	mu      sync.Mutex
	entries []Entry
	pos     int
}

// NewHistory returns a history positioned at start.
func NewHistory(start string) (*History, error) {
	st, err := Parse(start)
	if err != nil {
		return nil, err
	}
	return &History{entries: []Entry{{Location: start, State: st}}}, nil
}

// Current returns the active entry.
func (h *History) Current() Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.pos]
}

// Push navigates to location, discarding any forward entries.
func (h *History) Push(location string) error {
	st, err := Parse(location)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.entries = append(h.entries[:h.pos+1], Entry{Location: location, State: st})
	h.pos = len(h.entries) - 1
	h.mu.Unlock()
	return nil
}

// Back moves one entry back.
func (h *History) Back() error {
	return h.move(-1)
}

// Forward moves one entry forward.
func (h *History) Forward() error {
	return h.move(1)
}

func (h *History) move(delta int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.pos + delta
	if next < 0 || next >= len(h.entries) {
		return ErrNoHistory
	}
	h.pos = next
	return nil
}
