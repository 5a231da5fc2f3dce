package event

import "testing"

func TestQueueFIFO(t *testing.T) {
	var q Queue
	q.Push(PlaySound(SoundJump, "player"))
	q.Push(Health("enemy-1", 35, 50))
	q.Push(PlaySound(SoundHit, "enemy-1"))

	got := q.Drain()
	if len(got) != 3 {
		t.Fatalf("drained %d events, want 3", len(got))
	}
	if got[0].Sound != SoundJump || got[1].Kind != KindHealth || got[2].Sound != SoundHit {
		t.Errorf("order not preserved: %+v", got)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Error("queue not empty after drain")
	}
}

func TestNilQueue(t *testing.T) {
	var q *Queue
	q.Push(PlaySound(SoundClick, ""))
	if q.Drain() != nil || q.Len() != 0 {
		t.Error("nil queue should discard")
	}
}

func TestFilter(t *testing.T) {
	events := []Event{
		Music(MusicPlay, CueBattle),
		PlaySound(SoundAttack, "player"),
		Music(MusicPause, CueBattle),
	}
	music := Filter(events, KindMusic)
	if len(music) != 2 || music[1].Music != MusicPause {
		t.Errorf("filter = %+v", music)
	}
}

func TestVolumeEvent(t *testing.T) {
	e := Volume(ChannelSFX, 0.25)
	if e.Kind != KindVolume || e.Channel != ChannelSFX || e.Volume != 0.25 {
		t.Errorf("volume event = %+v", e)
	}
}
