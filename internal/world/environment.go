package world

import (
	"fmt"
	"math/rand"

	"knightfall/internal/collision"
	"knightfall/internal/mathutil"
)

// Layout describes how the arena is generated.
type Layout struct {
	GroundSize   float64 // edge length of the square ground plane, centred on the origin
	GroundHeight float64
	TreeCount    int
	TreeRadius   float64
	ClearRadius  float64 // no tree centre closer than this to the origin
}

// Tree is a static obstacle with a cosmetic scale used only for drawing.
type Tree struct {
	collision.Obstacle
	Scale float64
}

// Environment is the static arena: flat ground plus scattered trees.
type Environment struct {
	layout    Layout
	trees     []Tree
	obstacles []collision.Obstacle
}

// maxPlacementAttempts bounds the rejection sampling per tree.
const maxPlacementAttempts = 1000

// Generate scatters trees over the ground with rng. Trees land inside 90% of
// the ground and outside the clear radius around the spawn area.
func Generate(layout Layout, rng *rand.Rand) (*Environment, error) {
	if layout.GroundSize <= 0 {
		return nil, fmt.Errorf("ground size must be positive, got %f", layout.GroundSize)
	}
	span := layout.GroundSize * 0.9
	if layout.TreeCount > 0 && layout.ClearRadius >= span*0.7 {
		return nil, fmt.Errorf("clear radius %f leaves no room for trees on ground %f", layout.ClearRadius, layout.GroundSize)
	}

	env := &Environment{layout: layout}
	for i := 0; i < layout.TreeCount; i++ {
		placed := false
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			x := (rng.Float64() - 0.5) * span
			z := (rng.Float64() - 0.5) * span
			p := mathutil.V3(x, 0, z)
			if p.Length() <= layout.ClearRadius {
				continue
			}
			p.Y = env.HeightAt(x, z)
			env.trees = append(env.trees, Tree{
				Obstacle: collision.Obstacle{Position: p, Radius: layout.TreeRadius},
				Scale:    rng.Float64()*0.5 + 0.75,
			})
			placed = true
			break
		}
		if !placed {
			return nil, fmt.Errorf("could not place tree %d after %d attempts", i, maxPlacementAttempts)
		}
	}

	env.obstacles = make([]collision.Obstacle, len(env.trees))
	for i, t := range env.trees {
		env.obstacles[i] = t.Obstacle
	}
	return env, nil
}

// HeightAt is the ground height under (x, z). The arena is flat.
func (e *Environment) HeightAt(x, z float64) float64 {
	return e.layout.GroundHeight
}

// Obstacles is the read-only obstacle registry.
func (e *Environment) Obstacles() []collision.Obstacle {
	return e.obstacles
}

// Trees returns the trees with their drawing scale.
func (e *Environment) Trees() []Tree {
	return e.trees
}

// Layout returns the generation parameters.
func (e *Environment) Layout() Layout {
	return e.layout
}

// Contains reports whether (x, z) lies on the ground plane.
func (e *Environment) Contains(x, z float64) bool {
	half := e.layout.GroundSize / 2
	return x >= -half && x <= half && z >= -half && z <= half
}
