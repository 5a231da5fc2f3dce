package action

// Action is a named behavior state driving movement permissions and the
// external animation player.
type Action int

const (
	Idle Action = iota
	Walk
	Attack
	Jump
	Defend
	Death
)

var actionNames = map[Action]string{
	Idle:   "idle",
	Walk:   "walk",
	Attack: "attack",
	Jump:   "jump",
	Defend: "defend",
	Death:  "death",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Parse resolves an action by its lowercase name.
func Parse(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return Idle, false
}

// Once reports whether the action plays a single time instead of looping.
func (a Action) Once() bool {
	return a == Attack || a == Jump || a == Death
}

// priority orders targets; higher wins. Death sits above everything.
func (a Action) priority() int {
	switch a {
	case Death:
		return 6
	case Attack:
		return 5
	case Defend:
		return 4
	case Jump:
		return 3
	case Walk:
		return 2
	default:
		return 1
	}
}

// Blend durations in seconds. Attack and Jump cut in immediately so hit
// timing and jump response are not delayed.
const (
	BlendLocomotion = 0.3
	BlendDefend     = 0.2
	BlendDeath      = 0.2
)

// blendInto returns the crossfade used when entering a.
func blendInto(a Action) float64 {
	switch a {
	case Attack, Jump:
		return 0
	case Defend:
		return BlendDefend
	case Death:
		return BlendDeath
	default:
		return BlendLocomotion
	}
}

// Clip describes the externally owned animation behind an action.
type Clip struct {
	Duration float64
	Loop     bool
}

// Registry maps actions to the clips available for a character. Only its
// existence matters to the core; a missing entry means the action cannot play.
type Registry map[Action]Clip

// Has reports whether the registry can play a.
func (r Registry) Has(a Action) bool {
	_, ok := r[a]
	return ok
}
