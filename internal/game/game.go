// Package game is the desktop front end: it feeds ebiten input into the
// session, plays its audio intents and draws a top-down view of the arena.
package game

import (
	"fmt"
	"log"
	"path/filepath"

	"knightfall/internal/audio"
	"knightfall/internal/config"
	"knightfall/internal/event"
	"knightfall/internal/game/keytracker"
	"knightfall/internal/input"
	"knightfall/internal/monitoring"
	"knightfall/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game implements ebiten.Game around one session.
type Game struct {
	config     *config.Config
	configPath string

	session *session.Session
	synth   *audio.Synth
	watcher *config.Watcher
	perf    *monitoring.PerformanceMonitor

	input  input.Snapshot
	cursor cursorTracker
	keys   keytracker.Set
	hud    hud
	debug  bool

	whiteImg *ebiten.Image
}

// NewGame builds the session and its collaborators. Audio and hot reload
// are optional; failures there are logged and the game runs without them.
func NewGame(cfg *config.Config, configPath string) (*Game, error) {
	s, err := session.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	g := &Game{
		config:     cfg,
		configPath: configPath,
		session:    s,
		synth:      audio.NewSynth(cfg.Audio),
		perf:       monitoring.NewPerformanceMonitor(),
		debug:      cfg.Display.Debug,
	}
	g.hud.reset(s)

	if err := g.synth.Init(); err != nil {
		log.Printf("Warning: audio disabled: %v", err)
	}

	if configPath != "" {
		dirs := []string{filepath.Dir(configPath)}
		if cfg.Enemy.Script != "" {
			dirs = append(dirs, filepath.Dir(cfg.Enemy.Script))
		}
		w, err := config.NewWatcher(dirs...)
		if err != nil {
			log.Printf("Warning: config hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.flushEvents()
	return g, nil
}

// Session exposes the running session.
func (g *Game) Session() *session.Session {
	return g.session
}

// Update runs one frame: controls, reload, input capture, one simulation
// tick, then audio and HUD bookkeeping.
func (g *Game) Update() error {
	frameTimer := g.perf.StartFrame()
	defer frameTimer.EndFrame()

	g.pollReload()
	g.handleControls()
	g.captureInput()
	g.perf.ProfiledFunction("tick", func() {
		g.session.Tick(1/float64(ebiten.TPS()), &g.input)
	})
	g.flushEvents()
	return nil
}

// flushEvents hands the frame's events to the synth and the HUD.
func (g *Game) flushEvents() {
	events := g.session.Events().Drain()
	g.synth.HandleAll(events)
	for _, e := range events {
		g.hud.apply(e)
	}
}

// pollReload applies changed config or script files without blocking.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Poll() {
		g.reload(path)
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("Warning: config watcher: %v", err)
		}
	default:
	}
}

func (g *Game) reload(path string) {
	var cfg *config.Config
	switch filepath.Ext(path) {
	case ".tengo":
		cfg = g.session.Config()
	default:
		if filepath.Base(path) != filepath.Base(g.configPath) {
			return
		}
		loaded, err := config.LoadConfig(g.configPath)
		if err != nil {
			log.Printf("Warning: config reload failed: %v", err)
			return
		}
		cfg = loaded
	}
	if err := g.session.Reconfigure(cfg); err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	g.config = cfg
	log.Printf("Reloaded %s", path)
}

// Draw renders the arena, then the HUD, then any state overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.perf.ProfiledFunction("draw", func() {
		g.drawWorld(screen)
	})
	g.drawHUD(screen)
	g.drawOverlay(screen)
	if g.debug {
		g.drawDebugInfo(screen)
	}
}

// Layout returns the screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// Close stops the watcher and the speaker.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.synth.Close()
}

// hud mirrors the values the session reports through UI events.
type hud struct {
	health, maxHealth float64
	mana, maxMana     float64
	enemies           map[string][2]float64
}

func (h *hud) reset(s *session.Session) {
	p := s.Player()
	h.health, h.maxHealth = p.Health, p.MaxHealth
	h.mana, h.maxMana = p.Mana.Value, p.Mana.Max
	h.enemies = make(map[string][2]float64, len(s.Enemies()))
	for _, e := range s.Enemies() {
		h.enemies[e.ID] = [2]float64{e.Health, e.MaxHealth}
	}
}

func (h *hud) apply(e event.Event) {
	switch e.Kind {
	case event.KindHealth:
		if e.Source == session.PlayerID {
			h.health, h.maxHealth = e.Value, e.Max
			return
		}
		if h.enemies == nil {
			h.enemies = make(map[string][2]float64)
		}
		h.enemies[e.Source] = [2]float64{e.Value, e.Max}
	case event.KindMana:
		h.mana, h.maxMana = e.Value, e.Max
	}
}
