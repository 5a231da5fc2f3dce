package player

import (
	"math"

	"knightfall/internal/event"
)

// Mana is the player's spendable attack resource.
type Mana struct {
	Value         float64
	Max           float64
	Cost          float64
	RegenRate     float64 // per second
	RegenCooldown float64 // seconds after a spend before regen resumes
	LastUse       float64

	owner  string
	events *event.Queue
}

// CanAfford reports whether one attack can be paid for.
func (m *Mana) CanAfford() bool {
	return m.Value >= m.Cost
}

// Spend pays for one attack and restarts the regen cooldown.
func (m *Mana) Spend(now float64) {
	m.Value = math.Max(0, m.Value-m.Cost)
	m.LastUse = now
	m.report()
}

// Regenerate accrues mana once the cooldown since the last spend has passed.
// It reports only when the value changed.
func (m *Mana) Regenerate(now, dt float64) {
	if now-m.LastUse < m.RegenCooldown || m.Value >= m.Max {
		return
	}
	before := m.Value
	m.Value = math.Min(m.Max, m.Value+m.RegenRate*dt)
	if m.Value != before {
		m.report()
	}
}

// Reset refills the pool.
func (m *Mana) Reset() {
	m.Value = m.Max
	m.LastUse = math.Inf(-1)
	m.report()
}

func (m *Mana) report() {
	m.events.Push(event.Mana(m.owner, m.Value, m.Max))
}
