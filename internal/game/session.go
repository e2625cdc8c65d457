package game

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/cardrunner/internal/actor"
	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/cards"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
	"github.com/vovakirdan/cardrunner/internal/score"
	"github.com/vovakirdan/cardrunner/internal/timer"
)

// ErrNotPlaying is returned by gameplay operations outside an active match.
var ErrNotPlaying = errors.New("game: no match in progress")

// Result summarises a finished match.
type Result struct {
	SessionID string
	Points    int
	Record    int
	Rank      string
	Reason    events.GameOverReason
	LivesLeft int
	Duration  float64 // Gameplay seconds, excluding pauses
	CardsUsed int
}

// History stores finished matches.
type History interface {
	SaveSession(r Result) error
}

// HistoryFunc adapts a function to History.
type HistoryFunc func(r Result) error

// SaveSession implements History.
func (f HistoryFunc) SaveSession(r Result) error { return f(r) }

// Deps are the collaborators a session is built with. Nil fields get
// working defaults.
type Deps struct {
	Bus      *events.Bus
	Audio    audio.Player
	Prefs    score.Prefs
	History  History
	Catalog  *cards.Catalog
	Handlers *cards.Registry
	RNG      core.RNG
	Logger   *log.Logger
}

// Session is one player's game: the state machine plus every engine it
// drives. A session is single-threaded; the host calls Tick or Step from
// its loop.
type Session struct {
	cfg Config
	id  string

	machine  *StateMachine
	clock    *core.GameClock // Gameplay time, frozen outside Menu and Playing
	unscaled *core.GameClock // Never frozen

	timer     *timer.Engine
	score     *score.Engine
	effects   *cards.EffectTracker
	inventory *cards.Inventory
	player    *actor.Player
	rng       core.RNG

	tick         uint64
	lives        int
	inputEnabled bool
	matchStart   float64
	cardsUsed    int
	objectiveHit bool

	countdown       float64
	countdownActive bool
	lastResult      *Result

	bus         *events.Bus
	audio       audio.Player
	history     History
	log         *log.Logger
	unsubscribe func()
}

// NewSession wires a session in the Menu phase.
func NewSession(cfg Config, deps Deps) *Session {
	s := &Session{
		cfg:      cfg,
		clock:    core.NewGameClock(),
		unscaled: core.NewGameClock(),
		rng:      deps.RNG,
		lives:    cfg.Lives,
		bus:      deps.Bus,
		audio:    audio.OrNop(deps.Audio),
		history:  deps.History,
		log:      core.Logger(deps.Logger),
	}
	if s.bus == nil {
		s.bus = events.NewBus()
	}
	if s.rng == nil {
		s.rng = core.NewSimpleRNG(1)
	}
	catalog := deps.Catalog
	if catalog == nil {
		catalog = cards.DefaultCatalog()
	}
	handlers := deps.Handlers
	if handlers == nil {
		handlers = cards.DefaultHandlers(cfg.Cards.Effects)
	}

	s.machine = NewStateMachine(s.bus, s.clock.SetFrozen, s.log)
	s.timer = timer.New(cfg.Timer, s.bus, s.audio, s.log)
	s.score = score.New(cfg.Score, s.clock, deps.Prefs, s.bus, s.audio, s.log)
	s.effects = cards.NewEffectTracker(s.bus, s.log)
	s.player = actor.NewPlayer(cfg.Player)
	s.inventory = cards.NewInventory(cfg.Cards.Capacity, cards.Deps{
		Catalog:  catalog,
		RNG:      s.rng,
		Handlers: handlers,
		Context: cards.Context{
			Target:  s.player,
			Time:    s.timer,
			Points:  s.score,
			Effects: s.effects,
		},
		Bus:    s.bus,
		Audio:  s.audio,
		Logger: s.log,
	})

	s.unsubscribe = s.bus.Subscribe(s.handleEvent)
	return s
}

// Close detaches the session from its bus.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Session) handleEvent(ev events.Event) {
	switch e := ev.(type) {
	case events.TimeExhausted:
		s.TimerExhausted()
	case events.PointsChanged:
		s.checkObjective(e.Points)
	case events.CardUsed:
		s.cardsUsed++
	}
}

// StartMatch leaves the menu and begins a fresh match.
func (s *Session) StartMatch() bool {
	if _, ok := s.machine.Fire(TriggerStartMatch); !ok {
		return false
	}
	s.beginMatch()
	return true
}

func (s *Session) beginMatch() {
	s.id = uuid.NewString()
	s.effects.Clear()
	s.inventory.Clear()
	s.player.Reset()
	s.score.Reset()
	s.timer.Reset()
	s.timer.Start()
	s.setLives(s.cfg.Lives)
	s.inputEnabled = true
	s.countdownActive = false
	s.objectiveHit = false
	s.cardsUsed = 0
	s.lastResult = nil
	s.matchStart = s.clock.Now()

	s.audio.PlayCue(audio.CueMusicStart)
	s.log.Info("match started", "session", s.id, "lives", s.lives, "limit", s.timer.Limit())
	s.bus.Publish(events.MatchStarted{SessionID: s.id, Lives: s.lives, TimeLimit: s.timer.Limit()})
}

// Pause suspends a running match.
func (s *Session) Pause() bool {
	if _, ok := s.machine.Fire(TriggerPause); !ok {
		return false
	}
	s.timer.Pause()
	s.audio.PlayCue(audio.CueMusicPause)
	return true
}

// Resume continues a paused match.
func (s *Session) Resume() bool {
	if _, ok := s.machine.Fire(TriggerResume); !ok {
		return false
	}
	s.timer.Resume()
	s.audio.PlayCue(audio.CueMusicResume)
	return true
}

// TogglePause pauses a running match or resumes a paused one.
func (s *Session) TogglePause() bool {
	if s.Phase() == core.PhasePaused {
		return s.Resume()
	}
	return s.Pause()
}

// TimerExhausted ends the match because time ran out.
func (s *Session) TimerExhausted() bool {
	return s.endMatch(TriggerTimerExhausted, events.ReasonTimeUp)
}

func (s *Session) endMatch(t Trigger, reason events.GameOverReason) bool {
	if _, ok := s.machine.Fire(t); !ok {
		return false
	}
	s.inputEnabled = false
	s.timer.Stop()
	s.audio.PlayCue(audio.CueMusicStop)
	s.audio.PlayCue(audio.CueGameOver)
	s.countdown = s.cfg.GameOverCountdown
	s.countdownActive = true

	r := s.result(reason)
	s.lastResult = &r
	if s.history != nil {
		if err := s.history.SaveSession(r); err != nil {
			s.log.Warn("cannot save session", "err", err, "session", s.id)
		}
	}

	s.log.Info("game over", "session", s.id, "reason", reason, "points", r.Points, "rank", r.Rank)
	s.bus.Publish(events.GameOver{SessionID: s.id, Reason: reason, Points: r.Points, Record: r.Record})
	return true
}

func (s *Session) result(reason events.GameOverReason) Result {
	return Result{
		SessionID: s.id,
		Points:    s.score.Points(),
		Record:    s.score.Record(),
		Rank:      s.score.Rank(),
		Reason:    reason,
		LivesLeft: s.lives,
		Duration:  s.clock.Now() - s.matchStart,
		CardsUsed: s.cardsUsed,
	}
}

// Restart reloads the session after a game over and starts a new match.
func (s *Session) Restart() bool {
	if _, ok := s.machine.Fire(TriggerRestart); !ok {
		return false
	}

	s.effects.Clear()
	s.player.Reset()
	s.score.Reset()
	s.timer.Reset()
	s.setLives(s.cfg.Lives)
	s.inputEnabled = false
	s.countdownActive = false

	s.machine.Fire(TriggerLoaded)
	return s.StartMatch()
}

// ReturnToMenu abandons the current phase for the menu.
func (s *Session) ReturnToMenu() bool {
	if _, ok := s.machine.Fire(TriggerReturnToMenu); !ok {
		return false
	}
	s.timer.Stop()
	s.effects.Clear()
	s.inventory.Clear()
	s.inputEnabled = false
	s.countdownActive = false
	s.audio.PlayCue(audio.CueMusicStop)
	return true
}

// LoseLife takes one life during a match. Losing the last life ends it.
// Outside Playing it does nothing, so late reports never double count.
func (s *Session) LoseLife() bool {
	if s.Phase() != core.PhasePlaying {
		return false
	}
	s.setLives(s.lives - 1)
	s.audio.PlayCue(audio.CuePlayerHit)
	if s.lives == 0 {
		s.endMatch(TriggerLivesExhausted, events.ReasonNoLives)
	}
	return true
}

func (s *Session) setLives(n int) {
	if n < 0 {
		n = 0
	}
	s.lives = n
	s.bus.Publish(events.LivesChanged{Lives: n})
}

// HitPlayer reports damage to the player. A hit that is taken costs exactly
// one life, lethal or not; a lethal hit with lives left revives the player.
func (s *Session) HitPlayer(damage float64) bool {
	if !s.playable() {
		return false
	}
	if damage <= 0 {
		damage = s.cfg.HitDamage
	}
	taken, died := s.player.ApplyDamage(damage)
	if !taken {
		return false
	}
	s.LoseLife()
	if died && s.lives > 0 {
		s.player.Revive()
	}
	return true
}

// EnemyDefeated awards points for a defeat and may drop a card.
func (s *Session) EnemyDefeated(special bool) int {
	if !s.playable() {
		return 0
	}
	base := s.cfg.Points.Enemy
	if special {
		base = s.cfg.Points.SpecialEnemy
	}
	gained := s.score.AddPoints(base, true)

	if s.cfg.Cards.DropChance > 0 && s.rng.Intn(100) < s.cfg.Cards.DropChance {
		if card, err := s.inventory.Acquire(); err != nil {
			s.log.Debug("card drop lost", "err", err, "card", card.ID)
		}
	}
	return gained
}

// Attack strikes an enemy with the player's current damage and reports
// whether it was defeated.
func (s *Session) Attack(e *actor.Enemy) bool {
	if !s.playable() || e == nil {
		return false
	}
	if !e.ApplyDamage(s.player.Strike()) {
		return false
	}
	s.EnemyDefeated(e.Special)
	return true
}

// PowerUpCollected awards points and a card.
func (s *Session) PowerUpCollected() int {
	if !s.playable() {
		return 0
	}
	gained := s.score.AddPoints(s.cfg.Points.PowerUp, false)
	if card, err := s.inventory.Acquire(); err != nil {
		s.log.Debug("power-up card lost", "err", err, "card", card.ID)
	}
	return gained
}

// BreakCombo reports a combo-breaking miss.
func (s *Session) BreakCombo() bool {
	if !s.playable() {
		return false
	}
	s.score.BreakCombo()
	return true
}

// DrawCard draws a card into the inventory.
func (s *Session) DrawCard() (cards.Card, error) {
	if !s.playable() {
		return cards.Card{}, ErrNotPlaying
	}
	return s.inventory.Acquire()
}

// UseCard uses the card in the given slot.
func (s *Session) UseCard(slot int) error {
	if !s.playable() {
		return ErrNotPlaying
	}
	return s.inventory.UseSlot(slot)
}

func (s *Session) playable() bool {
	return s.inputEnabled && s.Phase() == core.PhasePlaying
}

func (s *Session) checkObjective(points int) {
	if s.objectiveHit || s.cfg.ObjectiveScore <= 0 || points < s.cfg.ObjectiveScore {
		return
	}
	if s.Phase() != core.PhasePlaying {
		return
	}
	s.objectiveHit = true
	s.audio.PlayCue(audio.CueObjective)
	s.bus.Publish(events.ObjectiveReached{Points: points, Objective: s.cfg.ObjectiveScore})
}

// Tick advances both clocks by dt seconds and runs whatever the current
// phase allows. Gameplay systems see the scaled delta; the game-over
// countdown sees the unscaled one.
func (s *Session) Tick(dt float64) {
	if dt < 0 {
		s.log.Warn("negative tick ignored", "dt", dt)
		return
	}
	s.tick++
	s.unscaled.Advance(dt)
	gdt := s.clock.Advance(dt)

	switch s.Phase() {
	case core.PhasePlaying:
		s.timer.Tick(gdt)
		if s.Phase() != core.PhasePlaying {
			return
		}
		s.effects.Tick(gdt)
		s.player.Tick(gdt)
		s.score.Update(s.clock.Now())
	case core.PhaseGameOver:
		s.tickCountdown(dt)
	}
}

func (s *Session) tickCountdown(dt float64) {
	if !s.countdownActive {
		return
	}
	s.countdown -= dt
	if s.countdown > 0 {
		return
	}
	s.countdown = 0
	s.countdownActive = false
	s.bus.Publish(events.CountdownElapsed{})
	if s.cfg.AutoReturn {
		s.ReturnToMenu()
	}
}

// Step applies one frame of semantic input, then advances time by dt.
func (s *Session) Step(in core.InputFrame, dt float64) {
	if in.Has(core.ActionStart) {
		switch s.Phase() {
		case core.PhaseMenu:
			s.StartMatch()
		case core.PhaseGameOver:
			s.Restart()
		}
	}
	if in.Has(core.ActionPause) {
		s.TogglePause()
	}
	if in.Has(core.ActionRestart) {
		s.Restart()
	}
	if in.Has(core.ActionMenu) {
		s.ReturnToMenu()
	}
	if in.Has(core.ActionDraw) {
		if _, err := s.DrawCard(); err != nil {
			s.log.Debug("draw failed", "err", err)
		}
	}
	if in.Has(core.ActionUseCard) {
		if err := s.UseCard(in.Slot); err != nil {
			s.log.Debug("use card failed", "err", err, "slot", in.Slot)
		}
	}
	if in.Has(core.ActionDefeatEnemy) {
		s.EnemyDefeated(false)
	}
	if in.Has(core.ActionDefeatSpecial) {
		s.EnemyDefeated(true)
	}
	if in.Has(core.ActionCollectPowerUp) {
		s.PowerUpCollected()
	}
	if in.Has(core.ActionTakeHit) {
		s.HitPlayer(in.Damage)
	}
	if in.Has(core.ActionBreakCombo) {
		s.BreakCombo()
	}

	s.Tick(dt)
}

// ID returns the current match's session ID, empty before the first match.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() core.Phase { return s.machine.Phase() }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// InputEnabled reports whether gameplay input is accepted.
func (s *Session) InputEnabled() bool { return s.inputEnabled }

// Countdown returns the seconds left on the game-over countdown.
func (s *Session) Countdown() float64 { return s.countdown }

// LastResult returns the result of the most recent finished match.
func (s *Session) LastResult() (Result, bool) {
	if s.lastResult == nil {
		return Result{}, false
	}
	return *s.lastResult, true
}

// Config returns the session rules.
func (s *Session) Config() Config { return s.cfg }

func (s *Session) Bus() *events.Bus              { return s.bus }
func (s *Session) Timer() *timer.Engine          { return s.timer }
func (s *Session) Score() *score.Engine          { return s.score }
func (s *Session) Inventory() *cards.Inventory   { return s.inventory }
func (s *Session) Effects() *cards.EffectTracker { return s.effects }
func (s *Session) Player() *actor.Player         { return s.player }
func (s *Session) Clock() core.Clock             { return s.clock }
