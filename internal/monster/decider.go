package monster

import (
	"fmt"
	"strings"
)

// Decision is what an enemy does this frame.
type Decision int

const (
	DecideIdle   Decision = iota // stand still
	DecideFace                   // turn to the player and stand still
	DecideChase                  // turn to the player and walk at it
	DecideAttack                 // turn to the player and start an attack
	DecideFreeze                 // hold position while an attack plays out
)

var decisionNames = map[Decision]string{
	DecideIdle:   "idle",
	DecideFace:   "face",
	DecideChase:  "chase",
	DecideAttack: "attack",
	DecideFreeze: "freeze",
}

func (d Decision) String() string {
	if s, ok := decisionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// ParseDecision maps a decision name back to its value.
func ParseDecision(name string) (Decision, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, s := range decisionNames {
		if s == name {
			return d, nil
		}
	}
	return DecideIdle, fmt.Errorf("unknown decision %q", name)
}

// Context is everything a decider may look at.
type Context struct {
	Distance      float64 // planar distance to the player
	SightRange    float64
	AttackRange   float64
	CooldownReady bool
	Attacking     bool
	PlayerAlive   bool
}

// Decider chooses an enemy's behavior each frame.
type Decider interface {
	Decide(ctx Context) Decision
}

// RuleDecider is the built-in pursuit policy: idle out of sight, chase
// until in reach, then attack whenever the cooldown allows.
type RuleDecider struct{}

func (RuleDecider) Decide(ctx Context) Decision {
	switch {
	case ctx.Attacking:
		return DecideFreeze
	case !ctx.PlayerAlive:
		return DecideIdle
	case ctx.Distance > ctx.SightRange:
		return DecideIdle
	case ctx.Distance <= ctx.AttackRange && ctx.CooldownReady:
		return DecideAttack
	case ctx.Distance <= ctx.AttackRange:
		return DecideFace
	default:
		return DecideChase
	}
}
