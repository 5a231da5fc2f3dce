package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"knightfall/internal/event"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator whose pitch can glide from freq to
// freq+sweep over its length.
type tone struct {
	freq     float64
	sweep    float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// Tone returns a streamer of d of the given wave. sweep is added to the
// frequency linearly over the duration.
func Tone(rate beep.SampleRate, wave Wave, freq, sweep float64, d time.Duration) beep.Streamer {
	return &tone{
		freq:   freq,
		sweep:  sweep,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		progress := float64(o.position) / float64(o.length)
		o.phase += (o.freq + o.sweep*progress) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// Envelope shapes s, which is expected to last d.
func Envelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain wraps s in a volume effect. Linear level 0 is silent since the
// effect works on a log scale.
func gain(s beep.Streamer, level float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setLevel(v, level)
	return v
}

func setLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(level)
	v.Silent = false
}

// Effect builds the one-shot streamer for a sound intent, or nil for sounds
// without a recipe.
func Effect(s event.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case event.SoundJump:
		d := 180 * time.Millisecond
		return gain(Envelope(Tone(rate, WaveSquare, 220, 220, d), d, 5*time.Millisecond, 80*time.Millisecond, rate), 0.25)
	case event.SoundAttack:
		d := 160 * time.Millisecond
		return gain(Envelope(Tone(rate, WaveNoise, 0, 0, d), d, 20*time.Millisecond, 120*time.Millisecond, rate), 0.35)
	case event.SoundHit:
		d := 120 * time.Millisecond
		thud := Envelope(Tone(rate, WaveSaw, 140, -80, d), d, 2*time.Millisecond, 90*time.Millisecond, rate)
		crack := Envelope(Tone(rate, WaveNoise, 0, 0, d), d, 0, 110*time.Millisecond, rate)
		return beep.Mix(gain(thud, 0.5), gain(crack, 0.2))
	case event.SoundClick:
		sine, err := generators.SineTone(rate, 1320)
		if err != nil {
			return nil
		}
		d := 40 * time.Millisecond
		return gain(Envelope(beep.Take(rate.N(d), sine), d, 2*time.Millisecond, 30*time.Millisecond, rate), 0.3)
	}
	return nil
}

// loop is an endless music cue: a note sequence over a pulsing bass.
type loop struct {
	rate     beep.SampleRate
	notes    []float64
	step     int
	bass     float64
	kick     bool
	position int
}

var cues = map[event.Cue]struct {
	notes []float64
	step  time.Duration
	bass  float64
	kick  bool
}{
	event.CueMenu:   {notes: []float64{220, 261.63, 329.63, 392, 329.63, 261.63}, step: 400 * time.Millisecond, bass: 110},
	event.CueBattle: {notes: []float64{146.83, 146.83, 174.61, 196, 146.83, 220, 196, 174.61}, step: 150 * time.Millisecond, bass: 73.42, kick: true},
}

// Music returns the endless streamer for a cue, or nil for unknown cues.
func Music(cue event.Cue, rate beep.SampleRate) beep.Streamer {
	c, ok := cues[cue]
	if !ok {
		return nil
	}
	return &loop{rate: rate, notes: c.notes, step: rate.N(c.step), bass: c.bass, kick: c.kick}
}

func (l *loop) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := l.rate.N(80 * time.Millisecond)
	for i := range samples {
		t := float64(l.position) / float64(l.rate)
		inStep := l.position % l.step
		note := l.notes[(l.position/l.step)%len(l.notes)]

		// Each note decays across its step.
		env := 1 - float64(inStep)/float64(l.step)
		v := 0.18 * env * math.Sin(2*math.Pi*note*t)
		v += 0.1 * math.Sin(2*math.Pi*l.bass*t)
		if l.kick && (l.position/l.step)%2 == 0 && inStep < kickLen {
			k := 1 - float64(inStep)/float64(kickLen)
			v += 0.3 * k * math.Sin(2*math.Pi*60*(1+2*k)*t)
		}

		samples[i][0] = v
		samples[i][1] = v
		l.position++
	}
	return len(samples), true
}

func (l *loop) Err() error { return nil }
