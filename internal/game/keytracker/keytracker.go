// keytracker.go - edge detection for keys on Ebiten v2.8.8, which only
// reports whether a key is held.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.Press(ebiten.IsKeyPressed(key))
}

// Press records this frame's state and reports a rising edge.
func (k *KeyStateTracker) Press(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// Set tracks several keys by name.
type Set struct {
	keys map[ebiten.Key]*KeyStateTracker
}

// JustPressed reports a rising edge for key. Keys are tracked from their
// first query, so every key must be polled each frame to stay accurate.
func (s *Set) JustPressed(key ebiten.Key) bool {
	if s.keys == nil {
		s.keys = make(map[ebiten.Key]*KeyStateTracker)
	}
	k, ok := s.keys[key]
	if !ok {
		k = &KeyStateTracker{}
		s.keys[key] = k
	}
	return k.IsKeyJustPressed(key)
}
