package action

// Intent is the set of flags a character exposes each frame.
type Intent struct {
	Attacking bool
	Defending bool
	Jumping   bool
	Grounded  bool
	Moving    bool
}

// Transition describes a change of the playing action. Blend is zero for a cut.
type Transition struct {
	From  Action
	To    Action
	Blend float64
}

// Cut reports whether the transition is immediate.
func (t Transition) Cut() bool {
	return t.Blend == 0
}

// Machine selects and tracks the single action a character is playing.
type Machine struct {
	registry Registry
	current  Action
	playing  bool
	running  bool
	elapsed  float64
	last     Transition
}

// NewMachine creates a machine in Idle. If the registry has no idle clip the
// machine starts with nothing playing.
func NewMachine(registry Registry) *Machine {
	m := &Machine{registry: registry}
	m.Reset()
	return m
}

// Reset returns the machine to Idle. It is the only way out of Death.
func (m *Machine) Reset() {
	m.current = Idle
	m.elapsed = 0
	m.playing = m.registry.Has(Idle)
	m.running = m.playing
	m.last = Transition{}
}

// Current is the action being played.
func (m *Machine) Current() Action {
	return m.current
}

// Playing reports whether any action is playing at all.
func (m *Machine) Playing() bool {
	return m.playing
}

// Running reports whether the current action is still in progress. Looping
// actions are always running; once actions stop when their clip ends.
func (m *Machine) Running() bool {
	return m.playing && m.running
}

// Elapsed is the time spent in the current action.
func (m *Machine) Elapsed() float64 {
	return m.elapsed
}

// LastTransition is the most recent transition taken.
func (m *Machine) LastTransition() Transition {
	return m.last
}

// Registry exposes the clip registry.
func (m *Machine) Registry() Registry {
	return m.registry
}

// Dead reports whether the machine is in its terminal state.
func (m *Machine) Dead() bool {
	return m.playing && m.current == Death
}

// Select picks the target action for in, ignoring what is currently playing.
// Jump is only a target while airborne; a jump clip still running is allowed
// to finish by Apply, not by Select.
func (m *Machine) Select(in Intent) Action {
	switch {
	case in.Attacking && m.registry.Has(Attack):
		return Attack
	case in.Defending && m.registry.Has(Defend):
		return Defend
	case !in.Grounded && in.Jumping && m.registry.Has(Jump):
		return Jump
	case !in.Grounded && m.current == Jump && m.Running():
		return Jump
	case in.Grounded && in.Moving && m.registry.Has(Walk):
		return Walk
	default:
		return Idle
	}
}

// Apply selects a target for in and moves to it if allowed. It returns the
// transition and true when the playing action changed. Re-entering the action
// already playing is a no-op, which lets a finished jump hold its last frame.
func (m *Machine) Apply(in Intent) (Transition, bool) {
	if m.Dead() {
		return Transition{}, false
	}
	target := m.Select(in)
	if m.playing && target == m.current {
		return Transition{}, false
	}
	return m.enter(target)
}

// Trigger starts a once action on demand, e.g. when an attack or jump is
// accepted. A running action of the same name is left to finish; a finished
// one restarts from the beginning.
func (m *Machine) Trigger(a Action) (Transition, bool) {
	if m.Dead() {
		return Transition{}, false
	}
	if m.playing && a == m.current && m.running {
		return Transition{}, false
	}
	return m.enter(a)
}

func (m *Machine) enter(target Action) (Transition, bool) {
	if !m.registry.Has(target) {
		return Transition{}, false
	}
	if m.playing && m.current.Once() && m.running && target.priority() < m.current.priority() {
		return Transition{}, false
	}

	t := Transition{From: m.current, To: target, Blend: blendInto(target)}
	if !m.playing {
		t.Blend = 0
	}
	m.current = target
	m.playing = true
	m.running = true
	m.elapsed = 0
	m.last = t
	return t, true
}

// Die cuts to Death. Later Apply calls are ignored until Reset.
func (m *Machine) Die() (Transition, bool) {
	if m.Dead() {
		return Transition{}, false
	}
	if !m.registry.Has(Death) {
		// No death clip: park in Idle and stop reacting to intents.
		t := Transition{From: m.current, To: Idle, Blend: BlendDeath}
		m.current = Death
		m.playing = true
		m.running = false
		m.elapsed = 0
		m.last = t
		return t, true
	}
	return m.Trigger(Death)
}

// Interrupt abandons a running once action and falls back to Idle. Used when
// an attack is aborted before its clip would have finished.
func (m *Machine) Interrupt() (Transition, bool) {
	if m.Dead() || !m.current.Once() {
		return Transition{}, false
	}
	m.running = false
	return m.enter(Idle)
}

// Advance moves the clock of the current action. When a once action reaches
// the end of its clip, Advance returns it with true exactly once.
func (m *Machine) Advance(dt float64) (Action, bool) {
	if !m.playing || dt <= 0 {
		return m.current, false
	}
	m.elapsed += dt
	if !m.current.Once() || !m.running {
		return m.current, false
	}
	clip := m.registry[m.current]
	if m.elapsed < clip.Duration {
		return m.current, false
	}
	m.running = false
	return m.current, true
}

// Notify accepts a finish event from an external animation player. Events for
// an action that is no longer current, or already finished, are ignored.
func (m *Machine) Notify(a Action) bool {
	if !m.playing || a != m.current || !a.Once() || !m.running {
		return false
	}
	m.running = false
	return true
}
