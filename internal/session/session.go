// Package session owns one game: the arena, the player, the enemies and the
// state machine that decides whether the simulation ticks.
package session

import (
	"fmt"
	"log"
	"math/rand"

	"knightfall/internal/character"
	"knightfall/internal/combat"
	"knightfall/internal/config"
	"knightfall/internal/event"
	"knightfall/internal/input"
	"knightfall/internal/mathutil"
	"knightfall/internal/monster"
	"knightfall/internal/physics"
	"knightfall/internal/player"
	"knightfall/internal/world"
)

// PlayerID is the player's character ID.
const PlayerID = "player"

// Settings are the values exposed on the settings panel.
type Settings struct {
	Sensitivity float64
	MusicVolume float64
	SFXVolume   float64
}

// Session is the explicit context every simulation component runs in.
// It is not safe for concurrent use; the render loop owns it.
type Session struct {
	state State
	clock float64

	cfg      *config.Config
	settings Settings

	env     *world.Environment
	physics *physics.Controller
	combat  *combat.Resolver
	events  *event.Queue

	player  *player.Player
	enemies []*monster.Enemy
	targets []*character.Character

	playerDied bool
	faults     int
	logf       func(format string, args ...any)
}

// New builds a session in the Menu state from cfg.
func New(cfg *config.Config) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	rng := rand.New(rand.NewSource(cfg.Session.Seed))
	env, err := world.Generate(layout(cfg), rng)
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		env:    env,
		events: &event.Queue{},
		logf:   log.Printf,
	}
	s.physics = physics.NewController(cfg.Physics.Gravity, env, env.Obstacles(), rng)
	s.combat = combat.NewResolver(s.events)
	s.combat.OnDeath = s.onDeath

	playerClips, err := config.Registry(cfg.Player.Clips)
	if err != nil {
		return nil, fmt.Errorf("player clips: %w", err)
	}
	ch := character.New(PlayerID, character.KindPlayer, playerStats(cfg), playerClips, spawn(cfg.Player.Spawn))
	s.player = player.New(ch, playerParams(cfg), s.events)

	enemyClips, err := config.Registry(cfg.Enemy.Clips)
	if err != nil {
		return nil, fmt.Errorf("enemy clips: %w", err)
	}
	decider := s.loadDecider(cfg.Enemy)
	for i, sp := range cfg.Enemy.Spawns {
		ch := character.New(fmt.Sprintf("enemy-%d", i+1), character.KindEnemy, enemyStats(cfg), enemyClips, spawn(sp))
		e := monster.New(ch, enemyParams(cfg), monster.ForEnemy(decider))
		s.enemies = append(s.enemies, e)
		s.targets = append(s.targets, ch)
	}

	s.resetCharacters()
	s.settings = Settings{
		Sensitivity: cfg.Camera.Sensitivity,
		MusicVolume: cfg.Audio.MusicVolume,
		SFXVolume:   cfg.Audio.SFXVolume,
	}
	s.ApplySettings(s.settings)
	s.events.Push(event.Music(event.MusicPlay, event.CueMenu))
	return s, nil
}

// loadDecider builds the configured decider. A script that fails to load
// leaves the enemies on the built-in rules.
func (s *Session) loadDecider(cfg config.EnemyConfig) monster.Decider {
	d, err := monster.NewDecider(cfg.Decider, cfg.Script)
	if err != nil {
		s.logf("Warning: %v, using built-in enemy rules", err)
		return monster.RuleDecider{}
	}
	return d
}

// SetLogf routes diagnostics from the session and everything it owns. A nil
// logf silences them.
func (s *Session) SetLogf(logf func(format string, args ...any)) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	s.logf = logf
	s.combat.Logf = logf
	s.player.Logf = logf
	for _, e := range s.enemies {
		e.SetLogf(logf)
	}
}

func (s *Session) State() State                    { return s.state }
func (s *Session) Clock() float64                  { return s.clock }
func (s *Session) Player() *player.Player          { return s.player }
func (s *Session) Enemies() []*monster.Enemy       { return s.enemies }
func (s *Session) Environment() *world.Environment { return s.env }
func (s *Session) Events() *event.Queue            { return s.events }
func (s *Session) Config() *config.Config          { return s.cfg }
func (s *Session) Settings() Settings              { return s.settings }
func (s *Session) PendingAttacks() int             { return s.combat.Pending() }

// Faults counts character updates that panicked and were skipped.
func (s *Session) Faults() int { return s.faults }

// Apply requests a state change. Intents that are not valid from the
// current state are logged and ignored.
func (s *Session) Apply(in Intent) bool {
	from := s.state
	to, ok := next(from, in)
	if !ok {
		s.logf("session: %s ignored in state %s", in, from)
		return false
	}

	switch in {
	case StartGame, Restart:
		s.combat.CancelPending()
		s.resetCharacters()
		s.events.Push(event.Music(event.MusicPlay, event.CueBattle))
	case Pause:
		s.combat.CancelPending()
		s.events.Push(event.Music(event.MusicPause, event.CueBattle))
	case Resume:
		s.events.Push(event.Music(event.MusicResume, event.CueBattle))
	case ExitToMenu:
		s.events.Push(event.Music(event.MusicPlay, event.CueMenu))
	}

	s.events.Push(event.PlaySound(event.SoundClick, ""))
	s.transition(to)
	return true
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	s.events.Push(event.StateChanged(from.String(), to.String()))
	s.logf("session: %s -> %s", from, to)
}

func (s *Session) onDeath(victim *character.Character) {
	if victim.Kind == character.KindPlayer {
		s.playerDied = true
	}
}

func (s *Session) enterGameOver() {
	s.combat.CancelPending()
	s.events.Push(event.Music(event.MusicStop, event.CueBattle))
	s.transition(GameOver)
}

// Tick advances the simulation by dt seconds. Nothing but the dying player
// is updated unless the session is Playing. Mouse deltas in the snapshot are
// consumed either way.
func (s *Session) Tick(dt float64, in *input.Snapshot) {
	if in == nil {
		in = &input.Snapshot{}
	}
	defer in.Consume()

	if !mathutil.IsFinite(dt) || dt <= 0 {
		return
	}

	switch s.state {
	case Playing:
	case GameOver:
		s.settle(dt)
		return
	default:
		return
	}

	s.clock += dt
	now := s.clock

	s.guard(s.player.ID, func() {
		s.player.Update(now, dt, in, player.World{Physics: s.physics, Combat: s.combat, Enemies: s.targets})
	})
	for _, e := range s.enemies {
		s.guard(e.ID, func() {
			e.Update(now, dt, s.player.Character, monster.World{Physics: s.physics, Combat: s.combat})
		})
	}
	s.guard("combat", func() {
		s.combat.ResolvePending(now)
	})

	if s.playerDied {
		s.playerDied = false
		s.enterGameOver()
	}
}

// settle lets the dead player finish falling and its death clip play out.
func (s *Session) settle(dt float64) {
	s.guard(s.player.ID, func() {
		s.player.AdvanceActions(dt)
		s.physics.Settle(s.player.Character, dt)
	})
}

// guard isolates a fault to one character so the rest of the frame runs.
func (s *Session) guard(id string, update func()) {
	defer func() {
		if r := recover(); r != nil {
			s.faults++
			s.logf("session: update of %s failed: %v", id, r)
		}
	}()
	update()
}

// resetCharacters restores everyone in place and puts them on the ground.
func (s *Session) resetCharacters() {
	s.playerDied = false
	s.player.Reset()
	s.physics.Settle(s.player.Character, 0)
	s.player.Camera.Snap(s.player.Position)
	for _, e := range s.enemies {
		e.Reset()
		s.physics.Settle(e.Character, 0)
		s.events.Push(event.Health(e.ID, e.Health, e.MaxHealth))
	}
}

// ApplySettings clamps and applies live settings.
func (s *Session) ApplySettings(st Settings) {
	st.Sensitivity = mathutil.Clamp(st.Sensitivity, 0.1, 5)
	st.MusicVolume = mathutil.Clamp(st.MusicVolume, 0, 1)
	st.SFXVolume = mathutil.Clamp(st.SFXVolume, 0, 1)
	s.settings = st
	s.player.Sensitivity = st.Sensitivity
	s.events.Push(event.Volume(event.ChannelMusic, st.MusicVolume))
	s.events.Push(event.Volume(event.ChannelSFX, st.SFXVolume))
}

// Reconfigure pushes new tunables into the running session without touching
// health, positions or state. The arena layout, clips and the number of
// enemies are fixed for the session's lifetime; new spawn points take effect
// on the next reset.
func (s *Session) Reconfigure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	var decider monster.Decider
	if cfg.Enemy.Decider != s.cfg.Enemy.Decider || cfg.Enemy.Script != s.cfg.Enemy.Script || cfg.Enemy.Decider == "script" {
		d, err := monster.NewDecider(cfg.Enemy.Decider, cfg.Enemy.Script)
		if err != nil {
			return fmt.Errorf("reconfigure: %w", err)
		}
		decider = d
	}

	s.cfg = cfg
	s.physics.Gravity = cfg.Physics.Gravity

	s.player.ApplyStats(playerStats(cfg))
	s.player.ApplyParams(playerParams(cfg))
	s.player.SetSpawn(spawn(cfg.Player.Spawn))

	for i, e := range s.enemies {
		e.ApplyStats(enemyStats(cfg))
		e.ApplyParams(enemyParams(cfg))
		if i < len(cfg.Enemy.Spawns) {
			e.SetSpawn(spawn(cfg.Enemy.Spawns[i]))
		}
		if decider != nil {
			e.Decider = monster.ForEnemy(decider)
			e.SetLogf(s.logf)
		}
	}

	s.ApplySettings(Settings{
		Sensitivity: cfg.Camera.Sensitivity,
		MusicVolume: cfg.Audio.MusicVolume,
		SFXVolume:   cfg.Audio.SFXVolume,
	})
	s.logf("session: configuration reloaded")
	return nil
}

func layout(cfg *config.Config) world.Layout {
	return world.Layout{
		GroundSize:  cfg.World.GroundSize,
		TreeCount:   cfg.World.TreeCount,
		TreeRadius:  cfg.World.TreeRadius,
		ClearRadius: cfg.World.ClearRadius,
	}
}

func spawn(sc config.SpawnConfig) character.Spawn {
	return character.Spawn{
		Position: mathutil.V3(sc.Position[0], sc.Position[1], sc.Position[2]),
		Yaw:      sc.Yaw(),
	}
}

func playerStats(cfg *config.Config) character.Stats {
	p := cfg.Player
	return character.Stats{
		MaxHealth:      p.MaxHealth,
		Radius:         p.Radius,
		AttackDamage:   p.AttackDamage,
		AttackRange:    p.AttackRange,
		AttackAngle:    p.AttackAngle(),
		AttackCooldown: p.AttackCooldown,
	}
}

func playerParams(cfg *config.Config) player.Params {
	p, c := cfg.Player, cfg.Camera
	return player.Params{
		MoveSpeed:         p.MoveSpeed,
		JumpVelocity:      p.JumpVelocity,
		RotationSpeed:     p.RotationSpeed,
		MaxMana:           p.MaxMana,
		AttackManaCost:    p.AttackManaCost,
		ManaRegenRate:     p.ManaRegenRate,
		ManaRegenCooldown: p.ManaRegenCooldown,
		Camera: player.CameraParams{
			Distance:          c.Distance,
			Height:            c.Height,
			Lag:               c.Lag,
			MinPitch:          c.MinPitch(),
			MaxPitch:          c.MaxPitch(),
			InitialPitch:      c.InitialPitch(),
			BaseRotationSpeed: c.BaseRotationSpeed,
			LookAtHeight:      c.LookAtHeight,
		},
	}
}

func enemyStats(cfg *config.Config) character.Stats {
	e := cfg.Enemy
	return character.Stats{
		MaxHealth:      e.MaxHealth,
		Radius:         e.Radius,
		AttackDamage:   e.AttackDamage,
		AttackRange:    e.AttackRange,
		AttackAngle:    e.AttackAngle(),
		AttackCooldown: e.AttackCooldown,
	}
}

func enemyParams(cfg *config.Config) monster.Params {
	e := cfg.Enemy
	return monster.Params{
		SightRange:    e.SightRange,
		AttackRange:   e.AttackRange,
		MovementSpeed: e.MovementSpeed,
		WindUp:        e.AttackWindUp,
	}
}
