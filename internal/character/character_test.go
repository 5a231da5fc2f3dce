package character

import (
	"math"
	"testing"

	"knightfall/internal/action"
	"knightfall/internal/mathutil"
)

func testClips() action.Registry {
	return action.Registry{
		action.Idle:   {Loop: true},
		action.Walk:   {Loop: true},
		action.Attack: {Duration: 1.0},
		action.Death:  {Duration: 1.0},
	}
}

func newTestCharacter() *Character {
	return New("enemy-1", KindEnemy, Stats{
		MaxHealth:      50,
		Radius:         0.5,
		AttackDamage:   10,
		AttackRange:    2,
		AttackAngle:    math.Pi,
		AttackCooldown: 2,
	}, testClips(), Spawn{Position: mathutil.V3(5, 0, 0)})
}

func TestNewCharacterStartsAtSpawn(t *testing.T) {
	c := newTestCharacter()
	if c.Position != mathutil.V3(5, 0, 0) {
		t.Errorf("position = %+v", c.Position)
	}
	if !c.Alive || c.Health != 50 {
		t.Errorf("alive=%v health=%f", c.Alive, c.Health)
	}
	if !c.CooldownReady(0) {
		t.Error("fresh character should be able to attack at t=0")
	}
	if c.Actions.Current() != action.Idle {
		t.Errorf("action = %v", c.Actions.Current())
	}
}

func TestHealthClamp(t *testing.T) {
	c := newTestCharacter()
	hits := []float64{10, 25, 30, 5}
	deaths := 0
	for _, h := range hits {
		_, died := c.TakeDamage(h)
		if died {
			deaths++
		}
		if c.Health < 0 || c.Health > c.MaxHealth {
			t.Fatalf("health %f out of [0,%f]", c.Health, c.MaxHealth)
		}
		if c.Alive != (c.Health > 0) {
			t.Fatalf("alive=%v with health %f", c.Alive, c.Health)
		}
	}
	if deaths != 1 {
		t.Errorf("died %d times, want exactly once", deaths)
	}
	if c.Actions.Current() != action.Death {
		t.Errorf("action = %v, want death", c.Actions.Current())
	}
	if dealt, _ := c.TakeDamage(10); dealt != 0 || c.Alive {
		t.Error("dead character took damage or revived")
	}
}

func TestResetRevivesInPlace(t *testing.T) {
	c := newTestCharacter()
	c.Position = mathutil.V3(1, 2, 3)
	c.LastAttackTime = 4
	c.TakeDamage(100)

	c.Reset()
	if !c.Alive || c.Health != c.MaxHealth {
		t.Errorf("reset: alive=%v health=%f", c.Alive, c.Health)
	}
	if c.Position != c.Spawn().Position {
		t.Errorf("reset position = %+v", c.Position)
	}
	if !math.IsInf(c.LastAttackTime, -1) {
		t.Errorf("last attack time = %f", c.LastAttackTime)
	}
	if c.Actions.Dead() {
		t.Error("action machine still dead after reset")
	}
}

func TestAttackFlagClearsOnFinish(t *testing.T) {
	c := newTestCharacter()
	c.IsAttacking = true
	c.Actions.Trigger(action.Attack)

	c.AdvanceActions(0.5)
	if !c.IsAttacking {
		t.Fatal("attack cleared before clip finished")
	}
	c.AdvanceActions(0.5)
	if c.IsAttacking {
		t.Fatal("attack flag still set after clip finished")
	}
}

func TestStaleNotifyIgnored(t *testing.T) {
	c := newTestCharacter()
	c.IsAttacking = true
	c.Actions.Trigger(action.Attack)
	if c.NotifyActionFinished(action.Jump) {
		t.Error("stale notify accepted")
	}
	if !c.IsAttacking {
		t.Error("stale notify cleared attack flag")
	}
	if !c.NotifyActionFinished(action.Attack) || c.IsAttacking {
		t.Error("attack notify did not clear the flag")
	}
}

func TestFaceToward(t *testing.T) {
	c := newTestCharacter()
	c.FaceToward(mathutil.V3(5, 0, 10))
	f := c.Forward()
	if math.Abs(f.X) > 1e-9 || math.Abs(f.Y-1) > 1e-9 {
		t.Errorf("forward = %+v, want +Z", f)
	}
	yaw := c.Yaw
	c.FaceToward(c.Position)
	if c.Yaw != yaw {
		t.Error("facing own position changed yaw")
	}
}

func TestApplyStatsClampsHealth(t *testing.T) {
	c := newTestCharacter()
	c.ApplyStats(Stats{MaxHealth: 20, Radius: 0.5})
	if c.Health != 20 {
		t.Errorf("health = %f, want clamped to 20", c.Health)
	}
}

func TestHitFlashDecays(t *testing.T) {
	c := newTestCharacter()
	c.TakeDamage(5)
	if c.HitFlash != HitFlashDuration {
		t.Fatalf("flash = %f", c.HitFlash)
	}
	c.AdvanceActions(0.1)
	c.AdvanceActions(0.1)
	if c.HitFlash != 0 {
		t.Errorf("flash = %f after 0.2s, want 0", c.HitFlash)
	}
}
