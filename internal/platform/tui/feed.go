package tui

import (
	"fmt"

	"github.com/vovakirdan/cardrunner/internal/events"
)

const (
	maxNotices = 5
	noticeTTL  = 3.0 // Seconds, unscaled
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeGood
	noticeWarn
	noticeBad
)

type notice struct {
	text string
	kind noticeKind
	ttl  float64
}

// feed collects short-lived HUD notices from the session bus.
type feed struct {
	notices []notice
}

func (f *feed) push(kind noticeKind, format string, args ...any) {
	f.notices = append(f.notices, notice{
		text: fmt.Sprintf(format, args...),
		kind: kind,
		ttl:  noticeTTL,
	})
	if len(f.notices) > maxNotices {
		f.notices = f.notices[len(f.notices)-maxNotices:]
	}
}

// age drops notices whose time has run out.
func (f *feed) age(dt float64) {
	kept := f.notices[:0]
	for _, n := range f.notices {
		n.ttl -= dt
		if n.ttl > 0 {
			kept = append(kept, n)
		}
	}
	f.notices = kept
}

func (f *feed) texts() []string {
	out := make([]string, len(f.notices))
	for i, n := range f.notices {
		out[i] = n.text
	}
	return out
}

// handle turns bus events into notices. Per-tick events are ignored.
func (f *feed) handle(ev events.Event) {
	switch e := ev.(type) {
	case events.MatchStarted:
		f.push(noticeInfo, "Go! %d lives", e.Lives)
	case events.GameOver:
		if e.Reason == events.ReasonTimeUp {
			f.push(noticeBad, "Time's up!")
		} else {
			f.push(noticeBad, "Out of lives!")
		}
	case events.LivesChanged:
		f.push(noticeWarn, "Lives: %d", e.Lives)
	case events.ObjectiveReached:
		f.push(noticeGood, "Objective reached: %d", e.Objective)
	case events.MultiplierChanged:
		f.push(noticeGood, "Multiplier x%d", e.Multiplier)
	case events.NewRecord:
		f.push(noticeGood, "New record: %d", e.Record)
	case events.TimeWarning:
		if e.Level == events.WarningCritical {
			f.push(noticeBad, "Time is almost up!")
		} else {
			f.push(noticeWarn, "Hurry up!")
		}
	case events.CardAdded:
		f.push(noticeInfo, "Got %s", e.Name)
	case events.CardUsed:
		f.push(noticeGood, "Used %s", e.Name)
	case events.EffectExpired:
		f.push(noticeInfo, "%s wore off", e.Effect)
	}
}
