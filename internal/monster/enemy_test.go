package monster

import (
	"math"
	"testing"

	"knightfall/internal/action"
	"knightfall/internal/character"
	"knightfall/internal/combat"
	"knightfall/internal/event"
	"knightfall/internal/mathutil"
	"knightfall/internal/physics"
)

const dt = 1.0 / 60

func clips() action.Registry {
	return action.Registry{
		action.Idle:   {Loop: true},
		action.Walk:   {Loop: true},
		action.Attack: {Duration: 1.0},
		action.Death:  {Duration: 1.0},
	}
}

func defaultParams() Params {
	return Params{SightRange: 20, AttackRange: 2, MovementSpeed: 1.5, WindUp: 0.5}
}

func newEnemy(pos mathutil.Vec3) *Enemy {
	ch := character.New("enemy-1", character.KindEnemy, character.Stats{
		MaxHealth:      50,
		Radius:         0.5,
		AttackDamage:   10,
		AttackRange:    2,
		AttackAngle:    math.Pi,
		AttackCooldown: 2,
	}, clips(), character.Spawn{Position: pos})
	e := New(ch, defaultParams(), nil)
	e.Logf = func(string, ...any) {}
	return e
}

func newTarget() *character.Character {
	return character.New("player", character.KindPlayer, character.Stats{MaxHealth: 100, Radius: 0.4},
		clips(), character.Spawn{})
}

func newWorld() World {
	r := combat.NewResolver(&event.Queue{})
	r.Logf = func(string, ...any) {}
	return World{
		Physics: physics.NewController(physics.DefaultGravity, physics.Flat(0), nil, nil),
		Combat:  r,
	}
}

// TestPursuitThreshold walks an enemy through the three awareness bands.
func TestPursuitThreshold(t *testing.T) {
	w := newWorld()
	player := newTarget()
	e := newEnemy(mathutil.V3(25, 0, 0))
	now := 0.0

	e.Update(now, dt, player, w)
	t.Logf("at 25: decision=%v vel=%+v", e.LastDecision(), e.Velocity)
	if e.LastDecision() != DecideIdle || e.Velocity.X != 0 || e.Velocity.Z != 0 {
		t.Fatalf("enemy out of sight should idle, got %v", e.LastDecision())
	}
	if e.Position.X != 25 {
		t.Errorf("idle enemy moved to %+v", e.Position)
	}

	e.Position = mathutil.V3(15, 0, 0)
	now += dt
	e.Update(now, dt, player, w)
	t.Logf("at 15: decision=%v vel=%+v", e.LastDecision(), e.Velocity)
	if e.LastDecision() != DecideChase {
		t.Fatalf("decision = %v, want chase", e.LastDecision())
	}
	if math.Abs(e.Velocity.X+1.5) > 1e-9 || math.Abs(e.Velocity.Z) > 1e-9 {
		t.Errorf("velocity = %+v, want 1.5 toward the player", e.Velocity)
	}
	if e.Position.X >= 15 {
		t.Errorf("enemy did not close in: %+v", e.Position)
	}
	if e.Actions.Current() != action.Walk {
		t.Errorf("action = %v, want walk", e.Actions.Current())
	}

	e.Position = mathutil.V3(1.5, 0, 0)
	now += dt
	e.Update(now, dt, player, w)
	t.Logf("at 1.5: decision=%v attacking=%v", e.LastDecision(), e.IsAttacking)
	if e.LastDecision() != DecideAttack || !e.IsAttacking {
		t.Fatalf("enemy in reach should attack, got %v", e.LastDecision())
	}
	if e.Velocity.X != 0 || e.Velocity.Z != 0 {
		t.Errorf("attacking enemy moving: %+v", e.Velocity)
	}
	if w.Combat.Pending() != 1 {
		t.Errorf("pending wind-ups = %d, want 1", w.Combat.Pending())
	}
}

func TestFaceSnapsInstantly(t *testing.T) {
	w := newWorld()
	player := newTarget()
	e := newEnemy(mathutil.V3(0, 0, -10))
	e.Yaw = math.Pi

	e.Update(0, dt, player, w)
	f := e.Forward()
	if math.Abs(f.X) > 1e-9 || math.Abs(f.Y-1) > 1e-9 {
		t.Errorf("forward = %+v, want facing +Z toward the player", f)
	}
}

func TestOnCooldownHoldsPosition(t *testing.T) {
	w := newWorld()
	player := newTarget()
	e := newEnemy(mathutil.V3(1.5, 0, 0))
	e.LastAttackTime = 0

	e.Update(1, dt, player, w)
	if e.LastDecision() != DecideFace || e.IsAttacking {
		t.Errorf("decision = %v attacking=%v, want face without attacking", e.LastDecision(), e.IsAttacking)
	}
	if e.Position.X != 1.5 {
		t.Errorf("enemy retreated or advanced: %+v", e.Position)
	}
}

func TestAttackingOverridesDecider(t *testing.T) {
	w := newWorld()
	player := newTarget()
	e := newEnemy(mathutil.V3(10, 0, 0))
	e.Decider = constDecider(DecideChase)
	e.IsAttacking = true
	e.Actions.Trigger(action.Attack)

	e.Update(0, dt, player, w)
	if e.LastDecision() != DecideFreeze || e.Velocity.X != 0 {
		t.Errorf("decision = %v vel=%+v", e.LastDecision(), e.Velocity)
	}

	player.TakeDamage(1000)
	e.IsAttacking = false
	e.Update(dt, dt, player, w)
	if e.LastDecision() != DecideIdle {
		t.Errorf("decision with dead player = %v, want idle", e.LastDecision())
	}
	e.Update(2*dt, dt, nil, w)
	if e.LastDecision() != DecideIdle {
		t.Errorf("decision with no player = %v, want idle", e.LastDecision())
	}
}

func TestWindUpHitsThenReleases(t *testing.T) {
	w := newWorld()
	player := newTarget()
	e := newEnemy(mathutil.V3(1.5, 0, 0))

	now := 0.0
	for i := 0; i < 90; i++ {
		e.Update(now, dt, player, w)
		w.Combat.ResolvePending(now)
		now += dt
	}
	if player.Health != 90 {
		t.Errorf("player health = %f, want 90 after one swing", player.Health)
	}
	if e.IsAttacking {
		t.Error("enemy still attacking after the clip finished")
	}
}

func TestDeadEnemySettles(t *testing.T) {
	w := newWorld()
	player := newTarget()
	e := newEnemy(mathutil.V3(3, 1, 0))
	e.TakeDamage(1000)

	for i := 0; i < 60; i++ {
		e.Update(float64(i)*dt, dt, player, w)
	}
	if !e.OnGround || e.Position.Y != 0 {
		t.Errorf("dead enemy did not settle: %+v", e.Position)
	}
	if e.Position.X != 3 {
		t.Errorf("dead enemy moved sideways: %+v", e.Position)
	}
}

func TestEnemyPushedOffPlayer(t *testing.T) {
	w := newWorld()
	player := newTarget()
	e := newEnemy(mathutil.V3(0.5, 0, 0))
	e.LastAttackTime = 0 // on cooldown, so it faces and holds

	e.Update(1, dt, player, w)
	if d := mathutil.PlanarDistance(e.Position, player.Position); d < 0.9-1e-9 {
		t.Errorf("enemy still overlapping player: distance %f", d)
	}
	if player.Position != (mathutil.Vec3{}) {
		t.Error("player was pushed")
	}
}

type constDecider Decision

func (c constDecider) Decide(Context) Decision { return Decision(c) }

func TestResetReturnsToSpawn(t *testing.T) {
	w := newWorld()
	e := newEnemy(mathutil.V3(5, 0, 0))
	player := newTarget()

	for i := 0; i < 60; i++ {
		e.Update(float64(i)*dt, dt, player, w)
	}
	if e.Position.X >= 5 {
		t.Fatalf("enemy did not chase: x = %v", e.Position.X)
	}
	e.TakeDamage(e.MaxHealth)

	e.Reset()
	if !e.Alive || e.Health != e.MaxHealth {
		t.Errorf("reset enemy alive=%v health=%v", e.Alive, e.Health)
	}
	if e.Position != mathutil.V3(5, 0, 0) {
		t.Errorf("reset position = %+v", e.Position)
	}
	if e.LastDecision() != DecideIdle {
		t.Errorf("last decision = %s", e.LastDecision())
	}
}
