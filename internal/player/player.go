// Package player turns the input snapshot into movement, camera orbit and
// combat triggers for the player character.
package player

import (
	"log"
	"math"

	"knightfall/internal/character"
	"knightfall/internal/combat"
	"knightfall/internal/event"
	"knightfall/internal/input"
	"knightfall/internal/mathutil"
	"knightfall/internal/physics"

	"github.com/jakecoffman/cp"
)

// Params are the player controller tunables.
type Params struct {
	MoveSpeed         float64
	JumpVelocity      float64
	RotationSpeed     float64
	MaxMana           float64
	AttackManaCost    float64
	ManaRegenRate     float64
	ManaRegenCooldown float64
	Camera            CameraParams
}

// Player is the input-driven character plus its mana pool and camera.
type Player struct {
	*character.Character

	Mana        *Mana
	Camera      Camera
	Sensitivity float64

	// Logf receives diagnostics; defaults to log.Printf.
	Logf func(format string, args ...any)

	params   Params
	events   *event.Queue
	moveDir  cp.Vector // camera-relative move direction in world space, unit or zero
	lastGate combat.Outcome
}

// New wraps ch as the player.
func New(ch *character.Character, params Params, events *event.Queue) *Player {
	p := &Player{
		Character:   ch,
		Sensitivity: 1,
		Logf:        log.Printf,
		events:      events,
		Mana:        &Mana{owner: ch.ID, events: events},
	}
	p.Camera = NewCamera(params.Camera, ch.Position)
	p.ApplyParams(params)
	p.Mana.Reset()
	return p
}

// ApplyParams updates tunables in place without refilling mana.
func (p *Player) ApplyParams(params Params) {
	p.params = params
	p.Mana.Max = params.MaxMana
	p.Mana.Cost = params.AttackManaCost
	p.Mana.RegenRate = params.ManaRegenRate
	p.Mana.RegenCooldown = params.ManaRegenCooldown
	p.Mana.Value = mathutil.Clamp(p.Mana.Value, 0, p.Mana.Max)
	p.Camera.SetParams(params.Camera)
}

// Params returns the controller tunables.
func (p *Player) Params() Params {
	return p.params
}

// MoveDirection is the world-space direction the player is steering.
func (p *Player) MoveDirection() cp.Vector {
	return p.moveDir
}

// Moving reports whether the player is steering this frame.
func (p *Player) Moving() bool {
	return p.moveDir.LengthSq() > 0.01
}

// World is what the player interacts with during one tick.
type World struct {
	Physics *physics.Controller
	Combat  *combat.Resolver
	Enemies []*character.Character
}

// Update runs one tick for the player. Input first, then mana, animation,
// facing, physics and finally the camera. Mouse deltas are consumed.
func (p *Player) Update(now, dt float64, in *input.Snapshot, w World) {
	defer in.Consume()

	if !p.Alive {
		p.AdvanceActions(dt)
		w.Physics.Settle(p.Character, dt)
		return
	}

	p.handleInput(now, in, w)
	p.Mana.Regenerate(now, dt)

	if p.OnGround && p.IsJumping {
		p.IsJumping = false
	}
	moving := p.Moving()
	p.Animate(moving)

	if moving && p.OnGround && !p.IsAttacking {
		target := mathutil.YawOf(p.moveDir)
		p.Yaw = mathutil.LerpAngle(p.Yaw, target, math.Min(1, dt*p.params.RotationSpeed))
	}

	w.Physics.Step(p.Character, dt)
	p.Camera.Follow(p.Position, dt)
	p.AdvanceActions(dt)
}

func (p *Player) handleInput(now float64, in *input.Snapshot, w World) {
	p.Camera.Rotate(in.MouseDX, in.MouseDY, p.Sensitivity)

	if in.Primary {
		p.tryAttack(now, w)
	} else {
		p.lastGate = combat.Accepted
	}

	if in.Secondary && !p.IsAttacking {
		p.IsDefending = true
	} else if !in.Secondary {
		p.IsDefending = false
	}
	if p.IsAttacking {
		p.IsDefending = false
	}

	if p.IsAttacking || p.IsDefending {
		p.moveDir = cp.Vector{}
		p.Velocity.X = 0
		p.Velocity.Z = 0
		return
	}

	right, forward := in.Axes()
	local := mathutil.Normalize(cp.Vector{X: right, Y: forward})
	camForward, camRight := p.Camera.Basis()
	p.moveDir = camForward.Mult(local.Y).Add(camRight.Mult(local.X))

	vel := p.moveDir.Mult(p.params.MoveSpeed)
	p.Velocity.X = vel.X
	p.Velocity.Z = vel.Y

	if in.Jump && physics.Jump(p.Character, p.params.JumpVelocity) {
		p.IsJumping = true
		p.events.Push(event.PlaySound(event.SoundJump, p.ID))
	}
}

// tryAttack triggers a swing and resolves it against every enemy at once.
// A rejection is logged when the reason changes so a held button does not
// flood the log.
func (p *Player) tryAttack(now float64, w World) {
	outcome := w.Combat.TryAttack(p.Character, now, p.Mana)
	if outcome == combat.Accepted {
		p.lastGate = outcome
		hits := w.Combat.Strike(p.Character, w.Enemies)
		p.logf("player: attack at %.2fs, mana %.0f, %d hit(s)", now, p.Mana.Value, len(hits))
		return
	}
	if outcome != p.lastGate && outcome != combat.RejectedBusy {
		p.logf("player: attack rejected (%s)", outcome)
	}
	p.lastGate = outcome
}

func (p *Player) logf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}

// ResetControlsAndCamera restores default camera angles, stops all motion,
// snaps the camera and clears action flags.
func (p *Player) ResetControlsAndCamera() {
	p.moveDir = cp.Vector{}
	p.Velocity = mathutil.Vec3{}
	p.IsAttacking = false
	p.IsDefending = false
	p.IsJumping = false
	p.lastGate = combat.Accepted
	p.Camera.Reset(p.Position)
}

// Reset restores the player in place for a new round.
func (p *Player) Reset() {
	p.Character.Reset()
	p.Mana.Reset()
	p.ResetControlsAndCamera()
	p.events.Push(event.Health(p.ID, p.Health, p.MaxHealth))
}
