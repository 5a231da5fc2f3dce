package physics

import (
	"math"
	"math/rand"
	"testing"

	"knightfall/internal/action"
	"knightfall/internal/character"
	"knightfall/internal/collision"
	"knightfall/internal/mathutil"
)

const dt = 1.0 / 120

func newBody(pos mathutil.Vec3) *character.Character {
	clips := action.Registry{action.Idle: {Loop: true}}
	return character.New("body", character.KindPlayer, character.Stats{MaxHealth: 100, Radius: 0.4}, clips,
		character.Spawn{Position: pos})
}

func TestGroundClampIdempotent(t *testing.T) {
	pc := NewController(DefaultGravity, Flat(0), nil, nil)
	c := newBody(mathutil.V3(0, 0, 0))

	pc.Step(c, dt)
	if !c.OnGround || c.Position.Y != 0 {
		t.Fatalf("after first step: onGround=%v y=%f", c.OnGround, c.Position.Y)
	}
	for i := 0; i < 240; i++ {
		pc.Step(c, dt)
		if !c.OnGround || c.Position.Y != 0 || c.Velocity.Y != 0 {
			t.Fatalf("step %d: onGround=%v y=%f vy=%f", i, c.OnGround, c.Position.Y, c.Velocity.Y)
		}
	}
}

func TestFallingLands(t *testing.T) {
	pc := NewController(DefaultGravity, Flat(0), nil, nil)
	c := newBody(mathutil.V3(0, 3, 0))

	landed := false
	for i := 0; i < 240 && !landed; i++ {
		landed = pc.Step(c, dt).Landed
	}
	if !landed {
		t.Fatal("never landed")
	}
	if c.Position.Y != 0 || c.Velocity.Y != 0 {
		t.Errorf("landed at y=%f vy=%f", c.Position.Y, c.Velocity.Y)
	}
}

func TestJumpArc(t *testing.T) {
	pc := NewController(DefaultGravity, Flat(0), nil, nil)
	c := newBody(mathutil.V3(0, 0, 0))
	pc.Step(c, dt)

	if !Jump(c, 7) {
		t.Fatal("grounded jump refused")
	}
	if Jump(c, 7) {
		t.Fatal("airborne jump accepted")
	}

	peak, elapsed := 0.0, 0.0
	for i := 0; i < 240; i++ {
		r := pc.Step(c, dt)
		elapsed += dt
		peak = math.Max(peak, c.Position.Y)
		if r.Landed {
			break
		}
	}
	// v²/2g = 49/36, airtime 2v/g = 7/9.
	if math.Abs(peak-49.0/36) > 0.05 {
		t.Errorf("peak = %f, want about %f", peak, 49.0/36)
	}
	if math.Abs(elapsed-7.0/9) > 0.03 {
		t.Errorf("airtime = %f, want about %f", elapsed, 7.0/9)
	}
}

func TestSettleIgnoresHorizontal(t *testing.T) {
	pc := NewController(DefaultGravity, Flat(0), nil, nil)
	c := newBody(mathutil.V3(1, 1, 1))
	c.Velocity = mathutil.V3(5, 0, 5)

	for i := 0; i < 120; i++ {
		pc.Settle(c, dt)
	}
	if c.Position.X != 1 || c.Position.Z != 1 {
		t.Errorf("settle moved sideways: %+v", c.Position)
	}
	if !c.OnGround {
		t.Error("did not settle onto ground")
	}
}

func TestStepResolvesTrees(t *testing.T) {
	trees := []collision.Obstacle{{Position: mathutil.V3(0, 0, 2), Radius: 0.8}}
	pc := NewController(DefaultGravity, Flat(0), trees, rand.New(rand.NewSource(3)))
	c := newBody(mathutil.V3(0, 0, 0))
	c.Velocity = mathutil.V3(0, 0, 5)

	for i := 0; i < 120; i++ {
		pc.Step(c, dt)
		if d := mathutil.PlanarDistance(c.Position, trees[0].Position); d < 1.2-1e-9 {
			t.Fatalf("step %d: penetrated tree, distance %f", i, d)
		}
	}
}

func TestGroundFunc(t *testing.T) {
	pc := NewController(DefaultGravity, GroundFunc(func(x, z float64) float64 { return 2 }), nil, nil)
	c := newBody(mathutil.V3(0, 1, 0))
	pc.Step(c, dt)
	if c.Position.Y != 2 || !c.OnGround {
		t.Errorf("y = %f onGround = %v", c.Position.Y, c.OnGround)
	}
}
