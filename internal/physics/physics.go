// Package physics integrates character motion: horizontal displacement,
// gravity, ground contact and static obstacle push-apart.
package physics

import (
	"math"
	"math/rand"

	"knightfall/internal/character"
	"knightfall/internal/collision"
)

// DefaultGravity is the vertical acceleration in units/s².
const DefaultGravity = -18.0

// Ground reports the terrain height under a point.
type Ground interface {
	HeightAt(x, z float64) float64
}

// GroundFunc adapts a function to Ground.
type GroundFunc func(x, z float64) float64

func (f GroundFunc) HeightAt(x, z float64) float64 { return f(x, z) }

// Flat is level ground at a fixed height.
type Flat float64

func (f Flat) HeightAt(float64, float64) float64 { return float64(f) }

// Step is what happened during one integration step.
type Step struct {
	Landed   bool // airborne at the start, grounded at the end
	Contacts int  // obstacle contacts resolved
}

// Controller moves characters through the world. It holds no per-character
// state; one controller serves every character.
type Controller struct {
	Gravity   float64
	Ground    Ground
	Obstacles []collision.Obstacle
	rng       *rand.Rand
}

// NewController creates a controller over ground and obstacles. rng feeds the
// degenerate-overlap nudge.
func NewController(gravity float64, ground Ground, obstacles []collision.Obstacle, rng *rand.Rand) *Controller {
	if ground == nil {
		ground = Flat(0)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Controller{
		Gravity:   gravity,
		Ground:    ground,
		Obstacles: obstacles,
		rng:       rng,
	}
}

// Rand exposes the controller's random source so character push-apart shares it.
func (pc *Controller) Rand() *rand.Rand {
	return pc.rng
}

// Step advances ch by dt in the fixed order: horizontal displacement,
// gravity, vertical displacement, ground clamp, obstacle push-apart.
func (pc *Controller) Step(ch *character.Character, dt float64) Step {
	wasAirborne := !ch.OnGround

	ch.Position.X += ch.Velocity.X * dt
	ch.Position.Z += ch.Velocity.Z * dt

	pc.vertical(ch, dt)

	res := Step{Landed: wasAirborne && ch.OnGround}
	res.Contacts = collision.ResolveObstacles(ch, pc.Obstacles, pc.rng)
	return res
}

// Settle applies only gravity and ground contact. Dead characters use it so
// they come to rest without moving sideways.
func (pc *Controller) Settle(ch *character.Character, dt float64) Step {
	wasAirborne := !ch.OnGround
	pc.vertical(ch, dt)
	return Step{Landed: wasAirborne && ch.OnGround}
}

func (pc *Controller) vertical(ch *character.Character, dt float64) {
	if !ch.OnGround {
		ch.Velocity.Y += pc.Gravity * dt
	} else {
		ch.Velocity.Y = math.Max(0, ch.Velocity.Y)
	}
	ch.Position.Y += ch.Velocity.Y * dt
	pc.clampToGround(ch)
}

func (pc *Controller) clampToGround(ch *character.Character) {
	h := pc.Ground.HeightAt(ch.Position.X, ch.Position.Z)
	if ch.Position.Y <= h {
		ch.Position.Y = h
		ch.Velocity.Y = 0
		ch.OnGround = true
		return
	}
	ch.OnGround = false
}

// Jump launches a grounded character. It returns false when airborne.
func Jump(ch *character.Character, velocity float64) bool {
	if !ch.OnGround {
		return false
	}
	ch.Velocity.Y = velocity
	ch.OnGround = false
	return true
}
