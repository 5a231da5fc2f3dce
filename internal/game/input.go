package game

import (
	"knightfall/internal/input"
	"knightfall/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyState reports whether a key is held. The live game passes
// ebiten.IsKeyPressed.
type keyState func(ebiten.Key) bool

// buttonState reports whether a mouse button is held.
type buttonState func(ebiten.MouseButton) bool

// readKeys fills the held-key part of the snapshot. Mouse deltas are left
// untouched so motion accumulates until the session consumes it.
func readKeys(in *input.Snapshot, key keyState, button buttonState) {
	in.Forward = key(ebiten.KeyW) || key(ebiten.KeyArrowUp)
	in.Back = key(ebiten.KeyS) || key(ebiten.KeyArrowDown)
	in.Left = key(ebiten.KeyA) || key(ebiten.KeyArrowLeft)
	in.Right = key(ebiten.KeyD) || key(ebiten.KeyArrowRight)
	in.Jump = key(ebiten.KeySpace)
	in.Primary = button(ebiten.MouseButtonLeft)
	in.Secondary = button(ebiten.MouseButtonRight)
}

// controlKeys are the keys that map to session intents.
var controlKeys = []ebiten.Key{ebiten.KeyEnter, ebiten.KeyEscape, ebiten.KeyR, ebiten.KeyM}

// intentFor maps a freshly pressed control key to an intent for the current
// state. Keys that mean nothing in that state map to nothing, so the
// session never sees them.
func intentFor(key ebiten.Key, state session.State) (session.Intent, bool) {
	switch key {
	case ebiten.KeyEnter:
		if state == session.Menu {
			return session.StartGame, true
		}
		if state == session.GameOver {
			return session.Restart, true
		}
	case ebiten.KeyEscape:
		if state == session.Playing {
			return session.Pause, true
		}
		if state == session.Paused {
			return session.Resume, true
		}
	case ebiten.KeyR:
		return session.Restart, true
	case ebiten.KeyM:
		return session.ExitToMenu, true
	}
	return 0, false
}

// settingKeys adjust the settings panel while paused.
var settingKeys = map[ebiten.Key]func(*session.Settings){
	ebiten.Key1: func(s *session.Settings) { s.Sensitivity -= 0.1 },
	ebiten.Key2: func(s *session.Settings) { s.Sensitivity += 0.1 },
	ebiten.Key3: func(s *session.Settings) { s.MusicVolume -= 0.1 },
	ebiten.Key4: func(s *session.Settings) { s.MusicVolume += 0.1 },
	ebiten.Key5: func(s *session.Settings) { s.SFXVolume -= 0.1 },
	ebiten.Key6: func(s *session.Settings) { s.SFXVolume += 0.1 },
}

// cursorTracker turns absolute cursor positions into per-frame deltas. The
// first sample after a reset only sets the origin.
type cursorTracker struct {
	x, y  int
	known bool
}

func (c *cursorTracker) delta(x, y int) (dx, dy float64) {
	if c.known {
		dx, dy = float64(x-c.x), float64(y-c.y)
	}
	c.x, c.y, c.known = x, y, true
	return dx, dy
}

func (c *cursorTracker) reset() {
	c.known = false
}

// handleControls turns key edges into session intents and settings changes.
func (g *Game) handleControls() {
	for _, key := range controlKeys {
		if !g.keys.JustPressed(key) {
			continue
		}
		if in, ok := intentFor(key, g.session.State()); ok {
			g.session.Apply(in)
		}
	}

	for key, adjust := range settingKeys {
		if !g.keys.JustPressed(key) || g.session.State() != session.Paused {
			continue
		}
		st := g.session.Settings()
		adjust(&st)
		g.session.ApplySettings(st)
	}

	if g.keys.JustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
}

// captureInput samples the devices into the snapshot. Losing focus releases
// every held key so the player does not keep walking.
func (g *Game) captureInput() {
	if !ebiten.IsFocused() {
		g.input.Release()
		g.cursor.reset()
		return
	}

	readKeys(&g.input, ebiten.IsKeyPressed, ebiten.IsMouseButtonPressed)

	playing := g.session.State() == session.Playing
	if playing {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	dx, dy := g.cursor.delta(ebiten.CursorPosition())
	if playing {
		g.input.AddMouseDelta(dx, dy)
	}
}
