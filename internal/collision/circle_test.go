package collision

import (
	"math"
	"math/rand"
	"testing"

	"knightfall/internal/action"
	"knightfall/internal/character"
	"knightfall/internal/mathutil"

	"github.com/jakecoffman/cp"
)

func newBody(id string, radius float64, pos mathutil.Vec3) *character.Character {
	clips := action.Registry{action.Idle: {Loop: true}}
	return character.New(id, character.KindEnemy, character.Stats{MaxHealth: 10, Radius: radius}, clips,
		character.Spawn{Position: pos})
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Circle
		ok    bool
		depth float64
	}{
		{"apart", Circle{cp.Vector{X: 0}, 1}, Circle{cp.Vector{X: 3}, 1}, false, 0},
		{"touching", Circle{cp.Vector{X: 0}, 1}, Circle{cp.Vector{X: 2}, 1}, false, 0},
		{"overlap", Circle{cp.Vector{X: 0}, 1}, Circle{cp.Vector{X: 1.5}, 1}, true, 0.5},
		{"coincident", Circle{cp.Vector{}, 1}, Circle{cp.Vector{}, 1}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, depth, ok := Overlap(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(depth-tt.depth) > 1e-9 {
				t.Errorf("depth = %f, want %f", depth, tt.depth)
			}
		})
	}
}

func TestResolveObstaclePushesOut(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tree := Obstacle{Position: mathutil.V3(0, 0, 0), Radius: 0.8}
	c := newBody("p", 0.4, mathutil.V3(1.0, 0, 0))
	c.Velocity = mathutil.V3(-4, 0, 2)

	if n := ResolveObstacles(c, []Obstacle{tree}, rng); n != 1 {
		t.Fatalf("contacts = %d", n)
	}
	if d := mathutil.PlanarDistance(c.Position, tree.Position); math.Abs(d-1.2) > 1e-9 {
		t.Errorf("distance after push = %f, want 1.2", d)
	}
	if math.Abs(c.Velocity.X+2) > 1e-9 {
		t.Errorf("vx = %f, want -2 after 50%% damping", c.Velocity.X)
	}
	if c.Velocity.Z != 2 {
		t.Errorf("tangential velocity changed: vz = %f", c.Velocity.Z)
	}
}

func TestResolveObstacleMovingAwayKeepsVelocity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tree := Obstacle{Position: mathutil.V3(0, 0, 0), Radius: 0.8}
	c := newBody("p", 0.4, mathutil.V3(1.0, 0, 0))
	c.Velocity = mathutil.V3(3, 0, 0)

	ResolveObstacles(c, []Obstacle{tree}, rng)
	if c.Velocity.X != 3 {
		t.Errorf("vx = %f, want unchanged", c.Velocity.X)
	}
}

func TestCoincidentCentresNudge(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := Obstacle{Position: mathutil.V3(2, 0, 2), Radius: 0.8}
	c := newBody("p", 0.4, mathutil.V3(2, 0, 2))

	ResolveObstacles(c, []Obstacle{tree}, rng)
	for _, v := range []float64{c.Position.X, c.Position.Z} {
		if !mathutil.IsFinite(v) {
			t.Fatalf("position not finite: %+v", c.Position)
		}
	}
	if math.Abs(c.Position.X-2) > NudgeMax || math.Abs(c.Position.Z-2) > NudgeMax {
		t.Errorf("nudge too large: %+v", c.Position)
	}
}

func TestSeparateDampsApproach(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player := newBody("player", 0.4, mathutil.V3(0, 0, 0))
	enemy := newBody("enemy", 0.5, mathutil.V3(0.5, 0, 0))
	enemy.Velocity = mathutil.V3(-1.5, 0, 0)

	if !Separate(enemy, player, rng) {
		t.Fatal("expected overlap")
	}
	if d := mathutil.PlanarDistance(enemy.Position, player.Position); math.Abs(d-0.9) > 1e-9 {
		t.Errorf("distance = %f, want 0.9", d)
	}
	if math.Abs(enemy.Velocity.X+1.2) > 1e-9 {
		t.Errorf("vx = %f, want -1.2", enemy.Velocity.X)
	}
	if player.Position != mathutil.V3(0, 0, 0) {
		t.Error("other party moved")
	}
}

func TestNearby(t *testing.T) {
	obs := []Obstacle{
		{Position: mathutil.V3(1, 0, 0), Radius: 0.8},
		{Position: mathutil.V3(10, 0, 0), Radius: 0.8},
	}
	if got := Nearby(obs, mathutil.V3(0, 0, 0), 1); len(got) != 1 {
		t.Errorf("nearby = %d, want 1", len(got))
	}
}
