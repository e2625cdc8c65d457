package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/cardrunner/internal/actor"
	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/cards"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
	"github.com/vovakirdan/cardrunner/internal/storage"
)

type testHarness struct {
	s       *Session
	cues    *audio.Recorder
	prefs   *storage.MemoryPrefs
	results []Result
	events  []events.Event
}

func newTestSession(t *testing.T, mutate func(*Config)) *testHarness {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Cards.DropChance = 0
	if mutate != nil {
		mutate(&cfg)
	}

	h := &testHarness{
		cues:  &audio.Recorder{},
		prefs: storage.NewMemoryPrefs(),
	}
	bus := events.NewBus()
	bus.Subscribe(func(ev events.Event) { h.events = append(h.events, ev) })

	h.s = NewSession(cfg, Deps{
		Bus:   bus,
		Audio: h.cues,
		Prefs: h.prefs,
		History: HistoryFunc(func(r Result) error {
			h.results = append(h.results, r)
			return nil
		}),
		RNG: core.NewSimpleRNG(42),
	})
	t.Cleanup(h.s.Close)
	return h
}

func (h *testHarness) phaseChanges() []core.Phase {
	var out []core.Phase
	for _, ev := range h.events {
		if pc, ok := ev.(events.PhaseChanged); ok {
			out = append(out, pc.To)
		}
	}
	return out
}

func (h *testHarness) count(match func(events.Event) bool) int {
	n := 0
	for _, ev := range h.events {
		if match(ev) {
			n++
		}
	}
	return n
}

func mustCard(t *testing.T, id string) cards.Card {
	t.Helper()
	c, ok := cards.DefaultCatalog().Lookup(id)
	if !ok {
		t.Fatalf("card %q not in catalog", id)
	}
	return c
}

func TestNewSessionStartsInMenu(t *testing.T) {
	h := newTestSession(t, nil)
	if h.s.Phase() != core.PhaseMenu {
		t.Errorf("phase = %v, want Menu", h.s.Phase())
	}
	if h.s.InputEnabled() {
		t.Error("input should be disabled in the menu")
	}
	if h.s.Timer().Active() {
		t.Error("timer should be inactive in the menu")
	}
}

func TestStartMatch(t *testing.T) {
	h := newTestSession(t, nil)

	if !h.s.StartMatch() {
		t.Fatal("StartMatch from Menu failed")
	}

	if h.s.Phase() != core.PhasePlaying {
		t.Errorf("phase = %v, want Playing", h.s.Phase())
	}
	if !h.s.Timer().Active() {
		t.Error("timer should be active")
	}
	if h.s.Score().Points() != 0 {
		t.Errorf("points = %d, want 0", h.s.Score().Points())
	}
	if !h.s.InputEnabled() {
		t.Error("input should be enabled")
	}
	if h.s.Lives() != 3 {
		t.Errorf("lives = %d, want 3", h.s.Lives())
	}
	if h.s.ID() == "" {
		t.Error("match should get a session ID")
	}
	if h.cues.Count(audio.CueMusicStart) != 1 {
		t.Error("music.start cue expected")
	}
	if h.count(func(ev events.Event) bool { _, ok := ev.(events.MatchStarted); return ok }) != 1 {
		t.Error("MatchStarted should be published once")
	}

	if h.s.StartMatch() {
		t.Error("StartMatch while Playing should be rejected")
	}
}

func TestTimerExhaustedEndsMatch(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.EnemyDefeated(false)

	if !h.s.TimerExhausted() {
		t.Fatal("TimerExhausted from Playing failed")
	}

	if h.s.Phase() != core.PhaseGameOver {
		t.Errorf("phase = %v, want GameOver", h.s.Phase())
	}
	if h.s.Timer().Active() {
		t.Error("timer should be inactive")
	}
	if h.s.InputEnabled() {
		t.Error("input should be disabled")
	}
	if h.cues.Count(audio.CueMusicStop) != 1 || h.cues.Count(audio.CueGameOver) != 1 {
		t.Errorf("cues = %v, want music.stop and game.over", h.cues.Cues)
	}
	if len(h.results) != 1 || h.results[0].Reason != events.ReasonTimeUp || h.results[0].Points != 100 {
		t.Errorf("saved results = %+v", h.results)
	}

	if h.s.TimerExhausted() {
		t.Error("second TimerExhausted should be a no-op")
	}
	if len(h.results) != 1 {
		t.Error("a match must only be saved once")
	}
}

func TestTimeRunningOutEndsMatch(t *testing.T) {
	h := newTestSession(t, func(c *Config) { c.Timer.Limit = 2 })
	h.s.StartMatch()

	h.s.Tick(1)
	if h.s.Phase() != core.PhasePlaying {
		t.Fatal("match ended too early")
	}
	h.s.Tick(1)

	if h.s.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %v, want GameOver after time runs out", h.s.Phase())
	}
	r, ok := h.s.LastResult()
	if !ok || r.Reason != events.ReasonTimeUp || r.Duration != 2 {
		t.Errorf("LastResult() = %+v, %v", r, ok)
	}
}

func TestPauseFreezesTimerAndBuffs(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()

	if err := h.s.Inventory().Add(mustCard(t, "divine_shield")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := h.s.UseCard(0); err != nil {
		t.Fatalf("UseCard(0) failed: %v", err)
	}
	h.s.Tick(1)
	h.s.Tick(1) // 3s of shield left

	if !h.s.Pause() {
		t.Fatal("Pause failed")
	}
	for i := 0; i < 50; i++ {
		h.s.Tick(1)
	}
	if !h.s.Resume() {
		t.Fatal("Resume failed")
	}

	left := h.s.Effects().Remaining(cards.EffectShield)
	if left != 3 {
		t.Errorf("shield remaining = %v after resume, want exactly 3", left)
	}
	if h.s.Timer().Remaining() != 178 {
		t.Errorf("timer remaining = %v, want 178", h.s.Timer().Remaining())
	}
	if !h.s.Player().Shielded() {
		t.Error("shield should still be up")
	}

	h.s.Tick(3)
	if h.s.Player().Shielded() {
		t.Error("shield should expire 3s after resume")
	}
	if h.cues.Count(audio.CueMusicPause) != 1 || h.cues.Count(audio.CueMusicResume) != 1 {
		t.Errorf("cues = %v, want pause and resume", h.cues.Cues)
	}
}

func TestPausedSessionRejectsGameplay(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.Pause()

	if h.s.EnemyDefeated(false) != 0 {
		t.Error("no points while paused")
	}
	if h.s.HitPlayer(50) {
		t.Error("no hits while paused")
	}
	if _, err := h.s.DrawCard(); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("DrawCard while paused = %v, want ErrNotPlaying", err)
	}
	if h.s.LoseLife() {
		t.Error("LoseLife while paused should be a no-op")
	}
}

func TestMenuRejectsGameplay(t *testing.T) {
	h := newTestSession(t, nil)
	if h.s.EnemyDefeated(true) != 0 || h.s.PowerUpCollected() != 0 {
		t.Error("gameplay reports must be ignored in the menu")
	}
	if err := h.s.UseCard(0); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("UseCard in menu = %v, want ErrNotPlaying", err)
	}
}

func TestHitsCostOneLifeEach(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()

	if !h.s.HitPlayer(0) {
		t.Fatal("first hit should be taken")
	}
	if h.s.Lives() != 2 {
		t.Errorf("lives = %d, want 2", h.s.Lives())
	}

	if h.s.HitPlayer(0) {
		t.Error("hit during grace should be ignored")
	}
	if h.s.Lives() != 2 {
		t.Errorf("lives = %d after ignored hit, want 2", h.s.Lives())
	}

	h.s.Tick(2)
	h.s.HitPlayer(0)
	h.s.Tick(2)
	h.s.HitPlayer(0)

	if h.s.Lives() != 0 {
		t.Errorf("lives = %d, want 0", h.s.Lives())
	}
	if h.s.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %v, want GameOver", h.s.Phase())
	}
	r, _ := h.s.LastResult()
	if r.Reason != events.ReasonNoLives {
		t.Errorf("reason = %v, want no_lives", r.Reason)
	}

	// Late reports after the match ended never double count.
	if h.s.LoseLife() {
		t.Error("LoseLife after GameOver should be a no-op")
	}
	if h.s.Lives() != 0 {
		t.Errorf("lives = %d, want to stay 0", h.s.Lives())
	}
	if h.cues.Count(audio.CuePlayerHit) != 3 {
		t.Errorf("player.hit cue played %d times, want 3", h.cues.Count(audio.CuePlayerHit))
	}
}

func TestLethalHitRevives(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()

	h.s.HitPlayer(1000)
	if h.s.Lives() != 2 {
		t.Errorf("lives = %d, want exactly one lost", h.s.Lives())
	}
	if h.s.Player().Health() != h.s.Player().MaxHealth() {
		t.Errorf("health = %v, want revived at full", h.s.Player().Health())
	}
	if h.s.Phase() != core.PhasePlaying {
		t.Error("match should continue while lives remain")
	}
}

func TestShieldBlocksHits(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.Inventory().Add(mustCard(t, "divine_shield"))
	h.s.UseCard(0)

	if h.s.HitPlayer(50) {
		t.Error("shielded player should not take hits")
	}
	if h.s.Lives() != 3 {
		t.Errorf("lives = %d, want 3", h.s.Lives())
	}
}

func TestGameOverCountdownUsesUnscaledClock(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.TimerExhausted()

	elapsed := func(ev events.Event) bool { _, ok := ev.(events.CountdownElapsed); return ok }

	gameTime := h.s.Clock().Now()
	h.s.Tick(4)
	if h.count(elapsed) != 0 {
		t.Fatal("countdown finished early")
	}
	if h.s.Clock().Now() != gameTime {
		t.Error("gameplay clock should be frozen during game over")
	}

	h.s.Tick(1)
	if h.count(elapsed) != 1 {
		t.Fatal("countdown should finish after 5 unscaled seconds")
	}
	if h.s.Phase() != core.PhaseGameOver {
		t.Error("without auto return the session stays on game over")
	}

	h.s.Tick(10)
	if h.count(elapsed) != 1 {
		t.Error("countdown should only elapse once")
	}
}

func TestGameOverAutoReturn(t *testing.T) {
	h := newTestSession(t, func(c *Config) { c.AutoReturn = true })
	h.s.StartMatch()
	h.s.TimerExhausted()
	h.s.Tick(5)

	if h.s.Phase() != core.PhaseMenu {
		t.Errorf("phase = %v, want Menu after auto return", h.s.Phase())
	}
}

func TestRestartGoesThroughLoading(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.Inventory().Add(mustCard(t, "gust"))
	h.s.EnemyDefeated(false)
	h.s.HitPlayer(0)
	firstID := h.s.ID()
	h.s.TimerExhausted()

	h.events = nil
	if !h.s.Restart() {
		t.Fatal("Restart from GameOver failed")
	}

	want := []core.Phase{core.PhaseLoading, core.PhaseMenu, core.PhasePlaying}
	got := h.phaseChanges()
	if len(got) != len(want) {
		t.Fatalf("phase changes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase change %d = %v, want %v", i, got[i], want[i])
		}
	}

	if h.s.Inventory().Len() != 0 {
		t.Error("restart should clear the inventory")
	}
	if h.s.Lives() != 3 || h.s.Score().Points() != 0 {
		t.Errorf("lives = %d points = %d, want fresh match", h.s.Lives(), h.s.Score().Points())
	}
	if h.s.ID() == firstID {
		t.Error("restart should start a new session ID")
	}
	if h.s.Score().Record() != 100 {
		t.Errorf("record = %d, want 100 kept across restart", h.s.Score().Record())
	}
}

func TestRestartOnlyFromGameOver(t *testing.T) {
	h := newTestSession(t, nil)
	if h.s.Restart() {
		t.Error("Restart from Menu should be rejected")
	}
	h.s.StartMatch()
	if h.s.Restart() {
		t.Error("Restart while Playing should be rejected")
	}
}

func TestReturnToMenu(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.Inventory().Add(mustCard(t, "power_strike"))
	h.s.UseCard(0)
	h.s.Pause()

	if !h.s.ReturnToMenu() {
		t.Fatal("ReturnToMenu from Paused failed")
	}
	if h.s.Timer().Active() || h.s.InputEnabled() {
		t.Error("menu should stop the timer and disable input")
	}
	if h.s.Effects().Len() != 0 || h.s.Player().DamageMultiplier() != 1 {
		t.Error("menu should cancel timed effects")
	}
	if h.s.Inventory().Len() != 0 {
		t.Errorf("inventory = %d, want cleared by the menu", h.s.Inventory().Len())
	}
	if h.s.ReturnToMenu() {
		t.Error("ReturnToMenu from Menu should be a no-op")
	}
	if h.s.Clock().(*core.GameClock).Frozen() {
		t.Error("clock should run in the menu")
	}
}

func TestNewMatchFromMenuStartsWithEmptyHand(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	for range 3 {
		if _, err := h.s.DrawCard(); err != nil {
			t.Fatalf("DrawCard failed: %v", err)
		}
	}

	h.s.ReturnToMenu()
	h.s.StartMatch()
	if h.s.Inventory().Len() != 0 {
		t.Errorf("inventory = %d in a new match, want 0", h.s.Inventory().Len())
	}
}

func TestComboScoringThroughSession(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()

	for i := 0; i < 5; i++ {
		h.s.EnemyDefeated(false)
	}
	if h.s.Score().Multiplier() != 2 {
		t.Errorf("multiplier = %d, want 2 after five defeats", h.s.Score().Multiplier())
	}

	h.s.BreakCombo()
	if h.s.Score().Combo() != 0 || h.s.Score().Multiplier() != 1 {
		t.Errorf("combo = %d multiplier = %d after break", h.s.Score().Combo(), h.s.Score().Multiplier())
	}
}

func TestSpecialEnemyAndPowerUp(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()

	if got := h.s.EnemyDefeated(true); got != 250 {
		t.Errorf("special defeat gained %d, want 250", got)
	}
	if got := h.s.PowerUpCollected(); got != 50 {
		t.Errorf("power-up gained %d, want 50", got)
	}
	if h.s.Score().Combo() != 1 {
		t.Error("power-ups do not count for combo")
	}
	if h.s.Inventory().Len() != 1 {
		t.Error("power-up should grant a card")
	}
}

func TestEnemyDropChance(t *testing.T) {
	h := newTestSession(t, func(c *Config) { c.Cards.DropChance = 100 })
	h.s.StartMatch()
	h.s.EnemyDefeated(false)
	if h.s.Inventory().Len() != 1 {
		t.Errorf("inventory = %d, want a guaranteed drop", h.s.Inventory().Len())
	}
}

func TestAttackUsesDamageBuff(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()

	slime := actor.NewEnemy("slime", 20, false)
	if h.s.Attack(slime) {
		t.Error("slime should survive one normal strike")
	}
	if !h.s.Attack(slime) {
		t.Error("slime should fall to the second strike")
	}

	h.s.Inventory().Add(mustCard(t, "power_strike"))
	h.s.UseCard(0)
	boss := actor.NewEnemy("knight", 20, true)
	if !h.s.Attack(boss) {
		t.Error("power strike should defeat the knight in one hit")
	}
	if h.s.Score().Points() != 100+250+25*2 {
		t.Errorf("points = %d, want 400", h.s.Score().Points())
	}
}

func TestCardMutatorsThroughSession(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.Tick(30)

	h.s.Inventory().Add(mustCard(t, "hourglass"))
	h.s.Inventory().Add(mustCard(t, "treasure"))
	h.s.UseCard(0)
	h.s.UseCard(0)

	if h.s.Timer().Remaining() != 165 {
		t.Errorf("remaining = %v, want 150 + 15", h.s.Timer().Remaining())
	}
	if h.s.Score().Points() != 500 || h.s.Score().Combo() != 0 {
		t.Errorf("points = %d combo = %d, want 500 without combo", h.s.Score().Points(), h.s.Score().Combo())
	}
	if h.s.Inventory().Len() != 0 {
		t.Error("consumables should be gone")
	}
}

func TestObjectiveReachedOnce(t *testing.T) {
	h := newTestSession(t, func(c *Config) { c.ObjectiveScore = 300 })
	h.s.StartMatch()

	reached := func(ev events.Event) bool { _, ok := ev.(events.ObjectiveReached); return ok }

	h.s.EnemyDefeated(false) // 100
	h.s.EnemyDefeated(false) // 250
	if h.count(reached) != 0 {
		t.Fatal("objective reached too early")
	}
	h.s.EnemyDefeated(false) // 425
	h.s.EnemyDefeated(false)
	if h.count(reached) != 1 {
		t.Errorf("ObjectiveReached published %d times, want 1", h.count(reached))
	}
}

func TestRecordPersistsThroughPrefs(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.EnemyDefeated(false)

	if got := h.prefs.GetInt("record.points", 0); got != 100 {
		t.Errorf("persisted record = %d, want 100", got)
	}
	if h.prefs.Flushes() == 0 {
		t.Error("record should be flushed")
	}
}

func TestStepMapsActions(t *testing.T) {
	h := newTestSession(t, nil)

	in := core.NewInputFrame()
	in.Set(core.ActionStart)
	h.s.Step(in, 0.5)
	if h.s.Phase() != core.PhasePlaying {
		t.Fatalf("phase = %v, want Playing after start", h.s.Phase())
	}

	in.Clear()
	in.Set(core.ActionDefeatEnemy)
	in.Set(core.ActionCollectPowerUp)
	h.s.Step(in, 0.5)
	if h.s.Score().Points() != 150 || h.s.Inventory().Len() != 1 {
		t.Errorf("points = %d cards = %d, want 150 and 1", h.s.Score().Points(), h.s.Inventory().Len())
	}

	in.Clear()
	in.Set(core.ActionPause)
	h.s.Step(in, 0.5)
	if h.s.Phase() != core.PhasePaused {
		t.Errorf("phase = %v, want Paused", h.s.Phase())
	}
	h.s.Step(in, 0.5)
	if h.s.Phase() != core.PhasePlaying {
		t.Errorf("phase = %v, want Playing after second pause toggle", h.s.Phase())
	}

	in.Clear()
	in.Set(core.ActionTakeHit)
	h.s.Step(in, 0.5)
	if h.s.Lives() != 2 {
		t.Errorf("lives = %d, want 2", h.s.Lives())
	}

	in.Clear()
	in.Set(core.ActionMenu)
	h.s.Step(in, 0.5)
	if h.s.Phase() != core.PhaseMenu {
		t.Errorf("phase = %v, want Menu", h.s.Phase())
	}
}

func TestNegativeTickIgnored(t *testing.T) {
	h := newTestSession(t, nil)
	h.s.StartMatch()
	h.s.Tick(-1)
	if h.s.Timer().Remaining() != 180 {
		t.Errorf("remaining = %v after negative tick", h.s.Timer().Remaining())
	}
}

func runScript(seed int64) []uint64 {
	cfg := DefaultConfig()
	cfg.Timer.Limit = 20
	s := NewSession(cfg, Deps{
		Prefs: storage.NewMemoryPrefs(),
		RNG:   core.NewSimpleRNG(seed),
	})
	defer s.Close()

	const dt = 1.0 / 60.0
	var hashes []uint64
	for tick := 0; tick < 1500; tick++ {
		in := core.NewInputFrame()
		switch {
		case tick == 0:
			in.Set(core.ActionStart)
		case tick%45 == 0:
			in.Set(core.ActionDefeatEnemy)
		case tick%70 == 0:
			in.Set(core.ActionDraw)
		case tick%130 == 0:
			in.UseSlot(0)
		case tick%200 == 0:
			in.Set(core.ActionTakeHit)
		case tick%310 == 0:
			in.Set(core.ActionBreakCombo)
		case tick == 600 || tick == 660:
			in.Set(core.ActionPause)
		}
		s.Step(in, dt)
		snap := s.Snapshot()
		hashes = append(hashes, snap.Hash())
	}
	return hashes
}

func TestDeterministicReplay(t *testing.T) {
	a := runScript(1234)
	b := runScript(1234)

	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("hash mismatch at tick %d", i)
		}
	}
}
