// Package audio defines the fire-and-forget audio collaborator the core talks to,
// the cue identifiers it emits, and a few players usable by hosts and tests.
package audio

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Cue identifies a sound the core asks the audio layer to play.
type Cue string

const (
	CueMusicStart   Cue = "music.start"
	CueMusicPause   Cue = "music.pause"
	CueMusicResume  Cue = "music.resume"
	CueMusicStop    Cue = "music.stop"
	CueGameOver     Cue = "game.over"
	CuePlayerHit    Cue = "player.hit"
	CuePoints       Cue = "score.points"
	CueMultiplier   Cue = "score.multiplier"
	CueRecord       Cue = "score.record"
	CueUrgent       Cue = "timer.urgent"
	CueCritical     Cue = "timer.critical"
	CueTimeUp       Cue = "timer.up"
	CueCardObtained Cue = "card.obtained"
	CueCardUsed     Cue = "card.used"
	CueObjective    Cue = "game.objective"
)

// IsMusic reports whether the cue controls the background track.
func (c Cue) IsMusic() bool {
	switch c {
	case CueMusicStart, CueMusicPause, CueMusicResume, CueMusicStop:
		return true
	}
	return false
}

// Player plays cues. Implementations must never block the caller.
type Player interface {
	PlayCue(cue Cue)
}

// Nop discards every cue.
type Nop struct{}

// PlayCue implements Player.
func (Nop) PlayCue(Cue) {}

// OrNop returns p, or Nop when p is nil.
func OrNop(p Player) Player {
	if p == nil {
		return Nop{}
	}
	return p
}

// LogPlayer writes each cue to a logger at debug level.
type LogPlayer struct {
	Logger *log.Logger
}

// PlayCue implements Player.
func (p LogPlayer) PlayCue(cue Cue) {
	if p.Logger == nil {
		return
	}
	p.Logger.Debug("audio cue", "cue", string(cue))
}

// BellPlayer rings the terminal bell for attention-grabbing cues.
// Music cues are ignored since a terminal has no background track.
type BellPlayer struct {
	W        io.Writer
	Settings Settings
}

// PlayCue implements Player.
func (p BellPlayer) PlayCue(cue Cue) {
	if p.W == nil || cue.IsMusic() || !p.Settings.EffectsAudible() {
		return
	}
	switch cue {
	case CueCritical, CueTimeUp, CueGameOver, CueRecord:
		_, _ = fmt.Fprint(p.W, "\a")
	}
}

// Multi fans a cue out to several players.
type Multi []Player

// PlayCue implements Player.
func (m Multi) PlayCue(cue Cue) {
	for _, p := range m {
		if p != nil {
			p.PlayCue(cue)
		}
	}
}

// Recorder remembers every cue it was asked to play, in order.
// Useful for replays and assertions.
type Recorder struct {
	Cues []Cue
}

// PlayCue implements Player.
func (r *Recorder) PlayCue(cue Cue) {
	r.Cues = append(r.Cues, cue)
}

// Count returns how many times cue was played.
func (r *Recorder) Count(cue Cue) int {
	n := 0
	for _, c := range r.Cues {
		if c == cue {
			n++
		}
	}
	return n
}

// Last returns the most recent cue, or "" if none.
func (r *Recorder) Last() Cue {
	if len(r.Cues) == 0 {
		return ""
	}
	return r.Cues[len(r.Cues)-1]
}

// Reset forgets all recorded cues.
func (r *Recorder) Reset() {
	r.Cues = r.Cues[:0]
}
