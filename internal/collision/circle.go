package collision

import (
	"math/rand"

	"knightfall/internal/character"
	"knightfall/internal/mathutil"

	"github.com/jakecoffman/cp"
)

// Damping factors applied to velocity after a push.
const (
	ObstacleDamping  = 0.5 // fraction of the into-obstacle velocity removed
	CharacterDamping = 0.8 // velocity multiplier for a pushed character moving toward the other
	NudgeMax         = 0.05
)

// Circle is a collision footprint on the ground plane.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// Overlap returns the unit push direction from b toward a and the overlap
// depth. ok is false when the circles do not overlap. A zero normal with ok
// true means the centres coincide.
func Overlap(a, b Circle) (normal cp.Vector, depth float64, ok bool) {
	combined := a.Radius + b.Radius
	delta := a.Center.Sub(b.Center)
	distSq := delta.LengthSq()
	if distSq >= combined*combined {
		return cp.Vector{}, 0, false
	}
	dist := delta.Length()
	if dist == 0 {
		return cp.Vector{}, combined, true
	}
	return delta.Mult(1 / dist), combined - dist, true
}

// Obstacle is a static circular blocker such as a tree.
type Obstacle struct {
	Position mathutil.Vec3
	Radius   float64
}

func (o Obstacle) circle() Circle {
	return Circle{Center: o.Position.Planar(), Radius: o.Radius}
}

func footprint(c *character.Character) Circle {
	return Circle{Center: c.Position.Planar(), Radius: c.Radius}
}

// Nudge displaces c by a small random offset on the ground plane. Used when
// two centres coincide and there is no push direction.
func Nudge(c *character.Character, rng *rand.Rand) {
	dx := (rng.Float64()*2 - 1) * NudgeMax
	dz := (rng.Float64()*2 - 1) * NudgeMax
	c.Position.X += dx
	c.Position.Z += dz
}

// ResolveObstacles pushes c out of every obstacle it overlaps and removes half
// of its velocity into each one. It returns the number of contacts.
func ResolveObstacles(c *character.Character, obstacles []Obstacle, rng *rand.Rand) int {
	contacts := 0
	for _, o := range obstacles {
		normal, depth, ok := Overlap(footprint(c), o.circle())
		if !ok {
			continue
		}
		contacts++
		if normal.LengthSq() == 0 {
			Nudge(c, rng)
			continue
		}
		c.Position = c.Position.WithPlanar(c.Position.Planar().Add(normal.Mult(depth)))

		// Velocity component pointing into the obstacle is along -normal.
		planarVel := c.Velocity.Planar()
		into := -planarVel.Dot(normal)
		if into > 0 {
			planarVel = planarVel.Add(normal.Mult(into * ObstacleDamping))
			c.Velocity = c.Velocity.WithPlanar(planarVel)
		}
	}
	return contacts
}

// Separate pushes the pushed character out of other by the full overlap. If
// pushed was moving toward other its velocity is scaled by CharacterDamping.
// It reports whether the two overlapped.
func Separate(pushed, other *character.Character, rng *rand.Rand) bool {
	normal, depth, ok := Overlap(footprint(pushed), footprint(other))
	if !ok {
		return false
	}
	if normal.LengthSq() == 0 {
		Nudge(pushed, rng)
		return true
	}
	pushed.Position = pushed.Position.WithPlanar(pushed.Position.Planar().Add(normal.Mult(depth)))
	if pushed.Velocity.Planar().Dot(normal) < 0 {
		pushed.Velocity = pushed.Velocity.Scale(CharacterDamping)
	}
	return true
}

// Nearby returns the obstacles whose centres lie within radius of p on the
// ground plane.
func Nearby(obstacles []Obstacle, p mathutil.Vec3, radius float64) []Obstacle {
	var out []Obstacle
	for _, o := range obstacles {
		if mathutil.PlanarDistance(o.Position, p) <= radius+o.Radius {
			out = append(out, o)
		}
	}
	return out
}
