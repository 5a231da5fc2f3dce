// Package combat gates attack triggers, runs the cone hit test and applies
// damage, either immediately or after a scheduled wind-up.
package combat

import (
	"log"

	"knightfall/internal/action"
	"knightfall/internal/character"
	"knightfall/internal/event"
	"knightfall/internal/mathutil"
)

// RangeLeniency widens the reach of wind-up attacks at resolution time.
const RangeLeniency = 1.2

// Outcome is the result of an attack trigger.
type Outcome int

const (
	Accepted Outcome = iota
	RejectedDead
	RejectedUnavailable // no attack clip
	RejectedBusy        // already attacking
	RejectedDefending
	RejectedCooldown
	RejectedMana
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case RejectedDead:
		return "dead"
	case RejectedUnavailable:
		return "no attack action"
	case RejectedBusy:
		return "already attacking"
	case RejectedDefending:
		return "defending"
	case RejectedCooldown:
		return "on cooldown"
	case RejectedMana:
		return "not enough mana"
	default:
		return "unknown"
	}
}

// Resource is a pool an attack draws from, such as the player's mana.
type Resource interface {
	CanAfford() bool
	Spend(now float64)
}

// Hit records one landed blow.
type Hit struct {
	Attacker string
	Target   string
	Damage   float64
	Killed   bool
}

type windUp struct {
	attacker *character.Character
	target   *character.Character
	due      float64
}

// Resolver applies combat rules. It is owned by the session and only used
// from the tick.
type Resolver struct {
	Events  *event.Queue
	OnDeath func(victim *character.Character)
	Logf    func(format string, args ...any)

	pending []windUp
}

// NewResolver creates a resolver that reports to events.
func NewResolver(events *event.Queue) *Resolver {
	return &Resolver{Events: events, Logf: log.Printf}
}

func (r *Resolver) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

// Gate checks whether a can start an attack at now without changing anything.
// res may be nil for attackers that spend nothing.
func Gate(a *character.Character, now float64, res Resource) Outcome {
	switch {
	case !a.Alive:
		return RejectedDead
	case !a.Actions.Registry().Has(action.Attack):
		return RejectedUnavailable
	case a.IsAttacking:
		return RejectedBusy
	case a.IsDefending:
		return RejectedDefending
	case !a.CooldownReady(now):
		return RejectedCooldown
	case res != nil && !res.CanAfford():
		return RejectedMana
	}
	return Accepted
}

// TryAttack starts an attack if the gate allows it. On acceptance the
// attacker is committed, the cost is paid and defend is cancelled. No damage
// is applied here; call Strike or Schedule next.
func (r *Resolver) TryAttack(a *character.Character, now float64, res Resource) Outcome {
	outcome := Gate(a, now, res)
	if outcome != Accepted {
		return outcome
	}
	a.IsAttacking = true
	a.IsDefending = false
	a.LastAttackTime = now
	if res != nil {
		res.Spend(now)
	}
	a.Actions.Trigger(action.Attack)
	if a.Kind == character.KindPlayer {
		r.Events.Push(event.PlaySound(event.SoundAttack, a.ID))
	}
	return Accepted
}

// InCone reports whether target is within reach of attacker and inside the
// forward cone of the given half-angle. Reach is measured in 3-D, the angle
// on the ground plane.
func InCone(attacker, target *character.Character, reach, halfAngle float64) bool {
	if attacker.Position.Distance(target.Position) > reach {
		return false
	}
	toTarget := target.Position.Planar().Sub(attacker.Position.Planar())
	return mathutil.AngleBetween(attacker.Forward(), toTarget) <= halfAngle
}

// Strike resolves an immediate swing against every live target in the cone.
func (r *Resolver) Strike(attacker *character.Character, targets []*character.Character) []Hit {
	if !attacker.Alive {
		return nil
	}
	var hits []Hit
	for _, t := range targets {
		if t == nil || t == attacker || !t.Alive {
			continue
		}
		if !InCone(attacker, t, attacker.AttackRange, attacker.AttackAngle/2) {
			continue
		}
		hits = append(hits, r.apply(attacker, t))
	}
	return hits
}

// Schedule queues a wind-up: damage against target resolves at now+delay
// using positions at that time.
func (r *Resolver) Schedule(attacker, target *character.Character, now, delay float64) {
	r.pending = append(r.pending, windUp{attacker: attacker, target: target, due: now + delay})
}

// Pending is the number of unresolved wind-ups.
func (r *Resolver) Pending() int {
	return len(r.pending)
}

// ResolvePending settles every wind-up due by now. A wind-up whose attacker
// or target is no longer alive is aborted: no damage, and the attacker is
// released from its attack at once.
func (r *Resolver) ResolvePending(now float64) []Hit {
	if len(r.pending) == 0 {
		return nil
	}
	var hits []Hit
	keep := r.pending[:0]
	for _, w := range r.pending {
		if now < w.due {
			keep = append(keep, w)
			continue
		}
		if !w.attacker.Alive || w.target == nil || !w.target.Alive {
			r.abort(w)
			continue
		}
		if InCone(w.attacker, w.target, w.attacker.AttackRange*RangeLeniency, w.attacker.AttackAngle/2) {
			hits = append(hits, r.apply(w.attacker, w.target))
		}
	}
	r.pending = keep
	return hits
}

// CancelPending aborts every wind-up, e.g. when play stops.
func (r *Resolver) CancelPending() {
	for _, w := range r.pending {
		r.abort(w)
	}
	r.pending = nil
}

func (r *Resolver) abort(w windUp) {
	w.attacker.AbortAttack()
	r.logf("combat: %s attack aborted", w.attacker.ID)
}

func (r *Resolver) apply(attacker, target *character.Character) Hit {
	dealt, killed := target.TakeDamage(attacker.AttackDamage)
	r.Events.Push(event.PlaySound(event.SoundHit, target.ID))
	r.Events.Push(event.Health(target.ID, target.Health, target.MaxHealth))
	if killed {
		r.logf("combat: %s killed %s", attacker.ID, target.ID)
		if r.OnDeath != nil {
			r.OnDeath(target)
		}
	}
	return Hit{Attacker: attacker.ID, Target: target.ID, Damage: dealt, Killed: killed}
}
