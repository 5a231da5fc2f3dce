// Package audio turns the simulation's sound and music intents into
// synthesized tones on the speaker.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"knightfall/internal/config"
	"knightfall/internal/event"
)

// Synth plays sound effects and one music cue through a shared mixer. Until
// Init succeeds it only tracks state, so a machine without an audio device
// runs silently.
type Synth struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool

	musicLevel float64
	sfxLevel   float64
	muted      bool

	cue       event.Cue
	music     *beep.Ctrl
	musicGain *effects.Volume

	Logf func(format string, args ...any)
}

// NewSynth creates a synth from the audio settings.
func NewSynth(cfg config.AudioConfig) *Synth {
	return &Synth{
		rate:       beep.SampleRate(cfg.SampleRate),
		mixer:      &beep.Mixer{},
		musicLevel: cfg.MusicVolume,
		sfxLevel:   cfg.SFXVolume,
		muted:      cfg.Muted,
		Logf:       log.Printf,
	}
}

// Init opens the speaker. It is a no-op when muted or already open.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized || s.muted {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	if s.music != nil {
		s.mixer.Add(s.music)
	}
	return nil
}

// Close silences everything and releases the speaker.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// HandleAll processes a frame's events in order.
func (s *Synth) HandleAll(events []event.Event) {
	for _, e := range events {
		s.Handle(e)
	}
}

// Handle reacts to one event. Events other than sound, music and volume are
// ignored.
func (s *Synth) Handle(e event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Kind {
	case event.KindSound:
		s.playSound(e.Sound)
	case event.KindMusic:
		s.cueMusic(e.Music, e.Cue)
	case event.KindVolume:
		s.setVolume(e.Channel, e.Volume)
	}
}

// withSpeaker runs f holding the speaker lock when the speaker is running.
func (s *Synth) withSpeaker(f func()) {
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	f()
}

func (s *Synth) playSound(snd event.Sound) {
	if !s.initialized || s.sfxLevel <= 0 {
		return
	}
	fx := Effect(snd, s.rate)
	if fx == nil {
		s.Logf("audio: no recipe for sound %q", snd)
		return
	}
	s.withSpeaker(func() {
		s.mixer.Add(gain(fx, s.sfxLevel))
	})
}

func (s *Synth) cueMusic(op event.MusicOp, cue event.Cue) {
	switch op {
	case event.MusicPlay:
		if s.music != nil && s.cue == cue && !s.music.Paused {
			return
		}
		s.stopMusic()
		track := Music(cue, s.rate)
		if track == nil {
			s.Logf("audio: no music for cue %q", cue)
			return
		}
		s.cue = cue
		s.musicGain = gain(track, s.musicLevel)
		s.music = &beep.Ctrl{Streamer: s.musicGain}
		if s.initialized {
			s.withSpeaker(func() { s.mixer.Add(s.music) })
		}
	case event.MusicPause, event.MusicResume:
		if s.music == nil {
			return
		}
		paused := op == event.MusicPause
		s.withSpeaker(func() { s.music.Paused = paused })
	case event.MusicStop:
		s.stopMusic()
	}
}

// stopMusic ends the current track; the mixer drops a Ctrl whose streamer
// is nil.
func (s *Synth) stopMusic() {
	if s.music == nil {
		return
	}
	ctrl := s.music
	s.withSpeaker(func() { ctrl.Streamer = nil })
	s.music = nil
	s.musicGain = nil
	s.cue = ""
}

func (s *Synth) setVolume(ch event.Channel, level float64) {
	switch ch {
	case event.ChannelMusic:
		s.musicLevel = level
		if s.musicGain != nil {
			s.withSpeaker(func() { setLevel(s.musicGain, level) })
		}
	case event.ChannelSFX:
		s.sfxLevel = level
	}
}

// Music reports the current cue and whether it is paused. An empty cue means
// no music.
func (s *Synth) Music() (cue event.Cue, paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.music == nil {
		return "", false
	}
	return s.cue, s.music.Paused
}

// Levels reports the music and effects volumes.
func (s *Synth) Levels() (music, sfx float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.musicLevel, s.sfxLevel
}
