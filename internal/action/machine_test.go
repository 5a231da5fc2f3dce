package action

import "testing"

func fullRegistry() Registry {
	return Registry{
		Idle:   {Loop: true},
		Walk:   {Loop: true},
		Defend: {Loop: true},
		Attack: {Duration: 0.9},
		Jump:   {Duration: 0.8},
		Death:  {Duration: 1.2},
	}
}

func TestSelectPriority(t *testing.T) {
	m := NewMachine(fullRegistry())
	tests := []struct {
		name string
		in   Intent
		want Action
	}{
		{"nothing", Intent{Grounded: true}, Idle},
		{"walking", Intent{Grounded: true, Moving: true}, Walk},
		{"moving airborne without jump falls back to idle", Intent{Moving: true}, Idle},
		{"jumping airborne", Intent{Jumping: true, Moving: true}, Jump},
		{"jump flag on ground", Intent{Jumping: true, Grounded: true}, Idle},
		{"defend beats jump", Intent{Defending: true, Jumping: true}, Defend},
		{"attack beats defend", Intent{Attacking: true, Defending: true, Grounded: true, Moving: true}, Attack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Select(tt.in); got != tt.want {
				t.Errorf("Select(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBlendVersusCut(t *testing.T) {
	m := NewMachine(fullRegistry())

	tr, ok := m.Apply(Intent{Grounded: true, Moving: true})
	if !ok || tr.To != Walk || tr.Blend != BlendLocomotion {
		t.Fatalf("idle->walk = %+v ok=%v, want blend %v", tr, ok, BlendLocomotion)
	}
	tr, ok = m.Apply(Intent{Grounded: true, Defending: true})
	if !ok || tr.Blend != BlendDefend {
		t.Fatalf("walk->defend = %+v, want blend %v", tr, BlendDefend)
	}
	tr, ok = m.Trigger(Attack)
	if !ok || !tr.Cut() {
		t.Fatalf("defend->attack = %+v, want cut", tr)
	}
}

func TestSameActionIsNoop(t *testing.T) {
	m := NewMachine(fullRegistry())
	m.Apply(Intent{Grounded: true, Moving: true})
	if _, ok := m.Apply(Intent{Grounded: true, Moving: true}); ok {
		t.Error("re-entering running walk should be a no-op")
	}
	m.Trigger(Attack)
	m.Advance(0.3)
	if _, ok := m.Trigger(Attack); ok {
		t.Error("re-triggering a running attack should be a no-op")
	}
	if m.Elapsed() != 0.3 {
		t.Errorf("attack clock restarted: elapsed %f", m.Elapsed())
	}
}

func TestJumpNotCutByLanding(t *testing.T) {
	m := NewMachine(fullRegistry())
	m.Trigger(Jump)
	m.Advance(0.5)

	// Landed and walking, but the jump clip still runs.
	if _, ok := m.Apply(Intent{Grounded: true, Moving: true}); ok {
		t.Fatal("landing cut off a running jump")
	}
	if m.Current() != Jump {
		t.Fatalf("current = %v, want jump", m.Current())
	}

	// An attack always interrupts.
	if tr, ok := m.Trigger(Attack); !ok || tr.From != Jump {
		t.Fatalf("attack did not interrupt jump: %+v", tr)
	}
}

func TestJumpFinishesThenWalks(t *testing.T) {
	m := NewMachine(fullRegistry())
	m.Trigger(Jump)
	if a, done := m.Advance(0.8); !done || a != Jump {
		t.Fatalf("Advance = %v,%v, want jump finished", a, done)
	}
	if _, done := m.Advance(0.1); done {
		t.Fatal("finish reported twice")
	}
	tr, ok := m.Apply(Intent{Grounded: true, Moving: true})
	if !ok || tr.To != Walk {
		t.Fatalf("after jump finished: %+v ok=%v", tr, ok)
	}
}

func TestFinishedJumpHoldsWhileAirborne(t *testing.T) {
	m := NewMachine(fullRegistry())
	m.Trigger(Jump)
	m.Advance(1.0)
	if _, ok := m.Apply(Intent{Jumping: true}); ok {
		t.Error("finished jump restarted while still airborne")
	}
}

func TestDeathIsTerminal(t *testing.T) {
	m := NewMachine(fullRegistry())
	m.Trigger(Attack)
	if tr, ok := m.Die(); !ok || tr.To != Death {
		t.Fatalf("Die = %+v ok=%v", tr, ok)
	}
	if _, ok := m.Apply(Intent{Grounded: true, Moving: true}); ok {
		t.Error("dead machine accepted an intent")
	}
	if _, ok := m.Trigger(Attack); ok {
		t.Error("dead machine accepted a trigger")
	}
	m.Advance(5)
	if m.Current() != Death {
		t.Errorf("current = %v after death clip ended", m.Current())
	}
	m.Reset()
	if m.Current() != Idle || m.Dead() {
		t.Errorf("Reset left machine in %v", m.Current())
	}
}

func TestNotifyIgnoresStaleEvents(t *testing.T) {
	m := NewMachine(fullRegistry())
	m.Trigger(Attack)
	if m.Notify(Jump) {
		t.Error("notify for non-current action accepted")
	}
	if !m.Notify(Attack) {
		t.Fatal("notify for current attack rejected")
	}
	if m.Notify(Attack) {
		t.Error("second notify accepted")
	}
	if _, done := m.Advance(1); done {
		t.Error("Advance reported a finish already delivered by Notify")
	}
}

func TestMissingClips(t *testing.T) {
	m := NewMachine(Registry{})
	if m.Playing() {
		t.Fatal("empty registry should play nothing")
	}
	if _, ok := m.Trigger(Attack); ok {
		t.Error("attack played without a clip")
	}
	if _, ok := m.Apply(Intent{Grounded: true, Moving: true}); ok {
		t.Error("walk played without a clip")
	}

	noDeath := NewMachine(Registry{Idle: {Loop: true}})
	if _, ok := noDeath.Die(); !ok || !noDeath.Dead() {
		t.Error("death without a clip should still be terminal")
	}
}

func TestInterruptFallsBackToIdle(t *testing.T) {
	m := NewMachine(fullRegistry())
	m.Trigger(Attack)
	tr, ok := m.Interrupt()
	if !ok || tr.To != Idle {
		t.Fatalf("Interrupt = %+v ok=%v", tr, ok)
	}
	if _, done := m.Advance(2); done {
		t.Error("interrupted attack still reported a finish")
	}
}

func TestParse(t *testing.T) {
	for _, a := range []Action{Idle, Walk, Attack, Jump, Defend, Death} {
		got, ok := Parse(a.String())
		if !ok || got != a {
			t.Errorf("Parse(%q) = %v,%v", a.String(), got, ok)
		}
	}
	if _, ok := Parse("dance"); ok {
		t.Error("Parse accepted unknown action")
	}
}
