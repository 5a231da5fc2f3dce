package character

import (
	"math"

	"knightfall/internal/action"
	"knightfall/internal/mathutil"

	"github.com/jakecoffman/cp"
)

// HitFlashDuration is how long a damaged character flashes.
const HitFlashDuration = 0.15

// Kind distinguishes the player from enemies. Both share the same aggregate.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Stats are the tunables a character is built from.
type Stats struct {
	MaxHealth      float64
	Radius         float64
	AttackDamage   float64
	AttackRange    float64
	AttackAngle    float64 // full cone angle in radians
	AttackCooldown float64
}

// Spawn is where a character starts and returns to on reset.
type Spawn struct {
	Position mathutil.Vec3
	Yaw      float64
}

// Character is the physical, health and combat state shared by the player
// and enemies. Controllers and the combat resolver operate on it by
// reference; it owns no behavior policy of its own.
type Character struct {
	ID   string
	Kind Kind

	// Physical state, mutated by the character controller.
	Position mathutil.Vec3
	Velocity mathutil.Vec3
	OnGround bool
	Yaw      float64
	Radius   float64

	// Health, mutated by the combat resolver.
	Health    float64
	MaxHealth float64
	Alive     bool

	Actions *action.Machine

	// Combat gating.
	IsAttacking    bool
	IsDefending    bool
	IsJumping      bool
	LastAttackTime float64
	AttackCooldown float64
	AttackDamage   float64
	AttackRange    float64
	AttackAngle    float64

	// HitFlash counts down after taking damage; drawn as a red tint.
	HitFlash float64

	spawn Spawn
}

// New creates a live character standing at its spawn.
func New(id string, kind Kind, stats Stats, clips action.Registry, spawn Spawn) *Character {
	c := &Character{
		ID:      id,
		Kind:    kind,
		Actions: action.NewMachine(clips),
		spawn:   spawn,
	}
	c.ApplyStats(stats)
	c.Reset()
	return c
}

// ApplyStats updates tunables in place. Current health is kept but clamped
// to the new maximum.
func (c *Character) ApplyStats(s Stats) {
	c.MaxHealth = s.MaxHealth
	c.Radius = s.Radius
	c.AttackDamage = s.AttackDamage
	c.AttackRange = s.AttackRange
	c.AttackAngle = s.AttackAngle
	c.AttackCooldown = s.AttackCooldown
	c.Health = mathutil.Clamp(c.Health, 0, c.MaxHealth)
}

// Spawn returns the reset point.
func (c *Character) Spawn() Spawn {
	return c.spawn
}

// SetSpawn changes the reset point without moving the character.
func (c *Character) SetSpawn(s Spawn) {
	c.spawn = s
}

// Reset restores full health, the spawn transform and a clean action state.
// It is the only way back to life after death.
func (c *Character) Reset() {
	c.Position = c.spawn.Position
	c.Yaw = c.spawn.Yaw
	c.Velocity = mathutil.Vec3{}
	c.OnGround = false

	c.Health = c.MaxHealth
	c.Alive = c.MaxHealth > 0

	c.IsAttacking = false
	c.IsDefending = false
	c.IsJumping = false
	c.LastAttackTime = math.Inf(-1)
	c.HitFlash = 0

	c.Actions.Reset()
}

// CooldownReady reports whether enough time has passed since the last attack.
func (c *Character) CooldownReady(now float64) bool {
	return now-c.LastAttackTime >= c.AttackCooldown
}

// Forward is the planar facing direction.
func (c *Character) Forward() cp.Vector {
	return mathutil.Forward(c.Yaw)
}

// FaceToward snaps the yaw to look at p on the ground plane.
func (c *Character) FaceToward(p mathutil.Vec3) {
	dir := p.Planar().Sub(c.Position.Planar())
	if dir.LengthSq() == 0 {
		return
	}
	c.Yaw = mathutil.YawOf(dir)
}

// TakeDamage applies amount and returns the health actually removed and
// whether this hit killed the character. Dead characters ignore damage.
func (c *Character) TakeDamage(amount float64) (float64, bool) {
	if !c.Alive || amount <= 0 {
		return 0, false
	}
	before := c.Health
	c.Health = mathutil.Clamp(c.Health-amount, 0, c.MaxHealth)
	dealt := before - c.Health
	c.HitFlash = HitFlashDuration
	if c.Health <= 0 {
		return dealt, c.Die()
	}
	return dealt, false
}

// Die moves the character to its terminal state. It returns false if the
// character was already dead.
func (c *Character) Die() bool {
	if !c.Alive {
		return false
	}
	c.Alive = false
	c.Health = 0
	c.IsAttacking = false
	c.IsDefending = false
	c.IsJumping = false
	c.Velocity.X = 0
	c.Velocity.Z = 0
	c.Actions.Die()
	return true
}

// Intent builds the action-machine input from the current flags.
func (c *Character) Intent(moving bool) action.Intent {
	return action.Intent{
		Attacking: c.IsAttacking,
		Defending: c.IsDefending,
		Jumping:   c.IsJumping,
		Grounded:  c.OnGround,
		Moving:    moving,
	}
}

// Animate pushes the current intent into the action machine.
func (c *Character) Animate(moving bool) (action.Transition, bool) {
	return c.Actions.Apply(c.Intent(moving))
}

// AdvanceActions runs the action clock. A finished attack releases the
// attacking flag; this completion check is the normal way an attack ends.
func (c *Character) AdvanceActions(dt float64) (action.Action, bool) {
	if c.HitFlash > 0 {
		c.HitFlash = math.Max(0, c.HitFlash-dt)
	}
	a, finished := c.Actions.Advance(dt)
	if finished {
		c.onFinished(a)
	}
	return a, finished
}

// NotifyActionFinished accepts an external finish event. Stale events for an
// action that is no longer playing are ignored.
func (c *Character) NotifyActionFinished(a action.Action) bool {
	if !c.Actions.Notify(a) {
		return false
	}
	c.onFinished(a)
	return true
}

func (c *Character) onFinished(a action.Action) {
	if a == action.Attack {
		c.IsAttacking = false
	}
}

// AbortAttack clears the attack commitment without waiting for the clip.
func (c *Character) AbortAttack() {
	if !c.IsAttacking {
		return
	}
	c.IsAttacking = false
	if c.Actions.Current() == action.Attack {
		c.Actions.Interrupt()
	}
}
