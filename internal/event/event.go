// Package event carries fire-and-forget notifications from the simulation to
// its collaborators: sound intents, music cues, HUD updates and session
// state changes.
package event

// Kind identifies what an event carries.
type Kind string

const (
	KindSound  Kind = "sound"
	KindMusic  Kind = "music"
	KindHealth Kind = "health"
	KindMana   Kind = "mana"
	KindState  Kind = "state"
	KindVolume Kind = "volume"
)

// Sound is a one-shot sound intent.
type Sound string

const (
	SoundJump   Sound = "jump"
	SoundAttack Sound = "attack"
	SoundHit    Sound = "hit"
	SoundClick  Sound = "ui_click"
)

// Cue names a music track.
type Cue string

const (
	CueMenu   Cue = "menu"
	CueBattle Cue = "battle"
)

// MusicOp is what to do with the music track.
type MusicOp string

const (
	MusicPlay   MusicOp = "play"
	MusicPause  MusicOp = "pause"
	MusicResume MusicOp = "resume"
	MusicStop   MusicOp = "stop"
)

// Channel is a mixer bus with its own volume.
type Channel string

const (
	ChannelMusic Channel = "music"
	ChannelSFX   Channel = "sfx"
)

// Event is a single notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind   Kind
	Source string // character ID, empty for session-level events

	Sound Sound

	Music MusicOp
	Cue   Cue

	Channel Channel
	Volume  float64

	Value float64
	Max   float64

	From string
	To   string
}

// PlaySound builds a sound intent.
func PlaySound(s Sound, source string) Event {
	return Event{Kind: KindSound, Sound: s, Source: source}
}

// Music builds a music cue event.
func Music(op MusicOp, cue Cue) Event {
	return Event{Kind: KindMusic, Music: op, Cue: cue}
}

// Volume sets a channel's volume in [0, 1].
func Volume(ch Channel, v float64) Event {
	return Event{Kind: KindVolume, Channel: ch, Volume: v}
}

// Health reports a character's health after a change.
func Health(source string, value, max float64) Event {
	return Event{Kind: KindHealth, Source: source, Value: value, Max: max}
}

// Mana reports the player's mana after a change.
func Mana(source string, value, max float64) Event {
	return Event{Kind: KindMana, Source: source, Value: value, Max: max}
}

// StateChanged reports a session transition.
func StateChanged(from, to string) Event {
	return Event{Kind: KindState, From: from, To: to}
}

// Queue is a FIFO of events drained once per frame by the front end.
type Queue struct {
	items []Event
}

// Push adds an event. A nil queue discards it.
func (q *Queue) Push(e Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, e)
}

// Drain returns all queued events in order and clears the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len is the number of queued events.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Filter returns the events of kind k, preserving order.
func Filter(events []Event, k Kind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
