package audio

import (
	"bytes"
	"errors"
	"testing"
)

type mapPrefs struct {
	ints    map[string]int
	floats  map[string]float64
	flushes int
	err     error
}

func newMapPrefs() *mapPrefs {
	return &mapPrefs{ints: map[string]int{}, floats: map[string]float64{}}
}

func (p *mapPrefs) GetInt(key string, def int) int {
	if v, ok := p.ints[key]; ok {
		return v
	}
	return def
}

func (p *mapPrefs) GetFloat(key string, def float64) float64 {
	if v, ok := p.floats[key]; ok {
		return v
	}
	return def
}

func (p *mapPrefs) SetInt(key string, value int)       { p.ints[key] = value }
func (p *mapPrefs) SetFloat(key string, value float64) { p.floats[key] = value }

func (p *mapPrefs) Flush() error {
	p.flushes++
	return p.err
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.PlayCue(CueMusicStart)
	r.PlayCue(CuePoints)
	r.PlayCue(CuePoints)

	if r.Count(CuePoints) != 2 {
		t.Errorf("Count(points) = %d, want 2", r.Count(CuePoints))
	}
	if r.Last() != CuePoints {
		t.Errorf("Last() = %q, want %q", r.Last(), CuePoints)
	}

	r.Reset()
	if r.Last() != "" {
		t.Errorf("Last() after Reset = %q, want empty", r.Last())
	}
}

func TestMultiAndNop(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, nil, b}
	m.PlayCue(CueGameOver)

	if a.Count(CueGameOver) != 1 || b.Count(CueGameOver) != 1 {
		t.Error("Multi should forward the cue to every player")
	}

	if _, ok := OrNop(nil).(Nop); !ok {
		t.Error("OrNop(nil) should return Nop")
	}
	if OrNop(a) != Player(a) {
		t.Error("OrNop should keep a non-nil player")
	}
}

func TestBellPlayer(t *testing.T) {
	var buf bytes.Buffer
	p := BellPlayer{W: &buf, Settings: DefaultSettings()}

	p.PlayCue(CueMusicStart)
	p.PlayCue(CuePoints)
	if buf.Len() != 0 {
		t.Errorf("unexpected bell for quiet cues: %q", buf.String())
	}

	p.PlayCue(CueCritical)
	if buf.String() != "\a" {
		t.Errorf("expected one bell, got %q", buf.String())
	}

	buf.Reset()
	p.Settings.EffectsOn = false
	p.PlayCue(CueTimeUp)
	if buf.Len() != 0 {
		t.Error("bell should be silent when effects are off")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	prefs := newMapPrefs()

	s := LoadSettings(prefs)
	if s != DefaultSettings() {
		t.Errorf("LoadSettings on empty prefs = %+v, want defaults", s)
	}

	s.Master = 1.5
	s.Music = 0.25
	s.MusicOn = false
	if err := s.Save(prefs); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if prefs.flushes != 1 {
		t.Errorf("Save should flush once, flushed %d times", prefs.flushes)
	}

	got := LoadSettings(prefs)
	if got.Master != 1 {
		t.Errorf("Master = %v, want clamped 1", got.Master)
	}
	if got.Music != 0.25 || got.MusicOn {
		t.Errorf("got %+v, want Music=0.25 MusicOn=false", got)
	}
}

func TestSettingsSaveError(t *testing.T) {
	prefs := newMapPrefs()
	prefs.err = errors.New("disk full")

	if err := DefaultSettings().Save(prefs); err == nil {
		t.Error("Save should surface flush errors")
	}
}
