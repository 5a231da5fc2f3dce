// Package input holds the normalized per-tick input the simulation reads.
// The front end fills it; the player controller consumes it.
package input

import "knightfall/internal/mathutil"

// Snapshot is the input for one tick. Keys are level-triggered: true while
// held. Mouse deltas accumulate between ticks until Consume.
type Snapshot struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool

	Primary   bool // attack
	Secondary bool // defend, held

	MouseDX float64
	MouseDY float64
}

// AddMouseDelta accumulates pointer motion.
func (s *Snapshot) AddMouseDelta(dx, dy float64) {
	if !mathutil.IsFinite(dx) || !mathutil.IsFinite(dy) {
		return
	}
	s.MouseDX += dx
	s.MouseDY += dy
}

// Consume zeroes the mouse deltas once they have been applied.
func (s *Snapshot) Consume() {
	s.MouseDX = 0
	s.MouseDY = 0
}

// Release clears every held key and button, e.g. when the window loses focus.
func (s *Snapshot) Release() {
	deltaX, deltaY := s.MouseDX, s.MouseDY
	*s = Snapshot{MouseDX: deltaX, MouseDY: deltaY}
}

// Axes returns the raw local move axes: right is +1 for the right key and
// forward is +1 for the forward key. Opposing keys cancel.
func (s Snapshot) Axes() (right, forward float64) {
	if s.Forward {
		forward++
	}
	if s.Back {
		forward--
	}
	if s.Right {
		right++
	}
	if s.Left {
		right--
	}
	return right, forward
}

// Moving reports whether the movement keys produce a non-zero direction.
func (s Snapshot) Moving() bool {
	r, f := s.Axes()
	return r != 0 || f != 0
}
