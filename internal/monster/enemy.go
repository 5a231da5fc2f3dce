// Package monster drives enemy characters: a pluggable decision policy
// picks what to do, the controller turns it into motion and attacks.
package monster

import (
	"fmt"
	"log"

	"knightfall/internal/character"
	"knightfall/internal/collision"
	"knightfall/internal/combat"
	"knightfall/internal/mathutil"
	"knightfall/internal/physics"
)

// Params are the enemy AI tunables.
type Params struct {
	SightRange    float64
	AttackRange   float64
	MovementSpeed float64
	WindUp        float64 // seconds from attack start to damage
}

// Enemy is an AI-driven character.
type Enemy struct {
	*character.Character
	Params

	Decider Decider
	Logf    func(format string, args ...any)

	last       Decision
	lastReject combat.Outcome
}

// New wraps ch as an enemy. A nil decider uses RuleDecider.
func New(ch *character.Character, params Params, decider Decider) *Enemy {
	if decider == nil {
		decider = RuleDecider{}
	}
	ch.AttackRange = params.AttackRange
	return &Enemy{Character: ch, Params: params, Decider: decider, Logf: log.Printf}
}

// ApplyParams updates tunables in place.
func (e *Enemy) ApplyParams(params Params) {
	e.Params = params
	e.Character.AttackRange = params.AttackRange
}

// Reset returns the enemy to its spawn for a new round.
func (e *Enemy) Reset() {
	e.Character.Reset()
	e.last = DecideIdle
	e.lastReject = combat.Accepted
}

// SetLogf routes the enemy's diagnostics, including its decider's.
func (e *Enemy) SetLogf(logf func(format string, args ...any)) {
	e.Logf = logf
	if sd, ok := e.Decider.(*ScriptDecider); ok {
		sd.Logf = logf
	}
}

// LastDecision is the decision taken on the most recent update.
func (e *Enemy) LastDecision() Decision {
	return e.last
}

// World is what an enemy interacts with during one tick.
type World struct {
	Physics *physics.Controller
	Combat  *combat.Resolver
}

// Context builds the decider input against player, which may be nil.
func (e *Enemy) Context(now float64, player *character.Character) Context {
	ctx := Context{
		SightRange:    e.SightRange,
		AttackRange:   e.Character.AttackRange,
		CooldownReady: e.CooldownReady(now),
		Attacking:     e.IsAttacking,
		PlayerAlive:   player != nil && player.Alive,
	}
	if player != nil {
		ctx.Distance = mathutil.PlanarDistance(e.Position, player.Position)
	}
	return ctx
}

// Update runs one tick. The decision is re-evaluated every frame; an attack
// in progress and a dead or missing player always override the decider.
func (e *Enemy) Update(now, dt float64, player *character.Character, w World) {
	e.AdvanceActions(dt)
	if !e.Alive {
		w.Physics.Settle(e.Character, dt)
		return
	}

	ctx := e.Context(now, player)
	var d Decision
	switch {
	case ctx.Attacking:
		d = DecideFreeze
	case !ctx.PlayerAlive:
		d = DecideIdle
	default:
		d = e.Decider.Decide(ctx)
	}
	e.last = d

	moving := e.act(d, now, player, w)
	e.Animate(moving)

	w.Physics.Step(e.Character, dt)
	if player != nil && player.Alive {
		collision.Separate(e.Character, player, w.Physics.Rand())
	}
}

func (e *Enemy) act(d Decision, now float64, player *character.Character, w World) bool {
	e.Velocity.X = 0
	e.Velocity.Z = 0

	switch d {
	case DecideFace:
		e.FaceToward(player.Position)
	case DecideChase:
		e.FaceToward(player.Position)
		dir := mathutil.Normalize(player.Position.Planar().Sub(e.Position.Planar()))
		e.Velocity.X = dir.X * e.MovementSpeed
		e.Velocity.Z = dir.Y * e.MovementSpeed
		return dir.LengthSq() > 0
	case DecideAttack:
		e.FaceToward(player.Position)
		outcome := w.Combat.TryAttack(e.Character, now, nil)
		if outcome != combat.Accepted {
			if outcome != e.lastReject {
				e.logf("monster: %s attack rejected (%s)", e.ID, outcome)
			}
			e.lastReject = outcome
			return false
		}
		e.lastReject = combat.Accepted
		w.Combat.Schedule(e.Character, player, now, e.WindUp)
	}
	return false
}

func (e *Enemy) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

// ForEnemy returns a decider safe to give one enemy. Script deciders carry
// per-run globals and are cloned; stateless deciders are shared.
func ForEnemy(d Decider) Decider {
	if sd, ok := d.(*ScriptDecider); ok {
		return sd.Clone()
	}
	return d
}

// NewDecider builds a decider by name: "rule" or "script". For scripts,
// path selects the file; empty uses the embedded default.
func NewDecider(kind, path string) (Decider, error) {
	switch kind {
	case "", "rule":
		return RuleDecider{}, nil
	case "script":
		return LoadScriptDecider(path)
	default:
		return nil, fmt.Errorf("unknown decider %q", kind)
	}
}
