package cards

import (
	"errors"
	"testing"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
)

type fakeTarget struct {
	healed   float64
	damage   float64
	speed    float64
	shielded bool
}

func (f *fakeTarget) Heal(amount float64) float64 {
	f.healed += amount
	return amount
}
func (f *fakeTarget) SetDamageMultiplier(m float64) { f.damage = m }
func (f *fakeTarget) SetSpeedMultiplier(m float64)  { f.speed = m }
func (f *fakeTarget) SetShielded(on bool)           { f.shielded = on }

type fakeTimer struct {
	added  float64
	refuse bool
}

func (f *fakeTimer) AddTime(d float64) bool {
	if f.refuse {
		return false
	}
	f.added += d
	return true
}

type fakeScore struct {
	points int
	combo  bool
}

func (f *fakeScore) AddPoints(base int, countsForCombo bool) int {
	f.points += base
	f.combo = f.combo || countsForCombo
	return base
}

type invHarness struct {
	inv     *Inventory
	target  *fakeTarget
	timer   *fakeTimer
	score   *fakeScore
	effects *EffectTracker
	cues    *audio.Recorder
	events  []events.Event
}

func newInvHarness(capacity int) *invHarness {
	h := &invHarness{
		target: &fakeTarget{damage: 1, speed: 1},
		timer:  &fakeTimer{},
		score:  &fakeScore{},
		cues:   &audio.Recorder{},
	}
	bus := events.NewBus()
	bus.Subscribe(func(ev events.Event) { h.events = append(h.events, ev) })
	h.effects = NewEffectTracker(bus, nil)
	h.inv = NewInventory(capacity, Deps{
		Catalog:  DefaultCatalog(),
		RNG:      core.NewSimpleRNG(3),
		Handlers: DefaultHandlers(DefaultEffectConfig()),
		Context: Context{
			Target:  h.target,
			Time:    h.timer,
			Points:  h.score,
			Effects: h.effects,
		},
		Bus:   bus,
		Audio: h.cues,
	})
	return h
}

func card(id string) Card {
	c, ok := DefaultCatalog().Lookup(id)
	if !ok {
		return Card{ID: id, Name: id, Kind: Consumable}
	}
	return c
}

func TestInventoryCapacity(t *testing.T) {
	h := newInvHarness(DefaultCapacity)

	for i := 0; i < 6; i++ {
		if err := h.inv.Add(card("heal")); err != nil {
			t.Fatalf("Add #%d failed: %v", i+1, err)
		}
	}

	before := h.inv.Cards()
	err := h.inv.Add(card("gust"))
	if !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("7th Add error = %v, want ErrInventoryFull", err)
	}
	if h.inv.Len() != 6 {
		t.Errorf("len = %d, want 6", h.inv.Len())
	}
	after := h.inv.Cards()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("slot %d changed after failed Add", i)
		}
	}
	if h.cues.Count(audio.CueCardObtained) != 6 {
		t.Errorf("card cue played %d times, want 6", h.cues.Count(audio.CueCardObtained))
	}
}

func TestInventoryZeroCapacity(t *testing.T) {
	h := newInvHarness(-1)
	if h.inv.Capacity() != 0 {
		t.Errorf("capacity = %d, want 0", h.inv.Capacity())
	}
	if err := h.inv.Add(card("heal")); !errors.Is(err, ErrInventoryFull) {
		t.Errorf("Add on zero capacity = %v, want ErrInventoryFull", err)
	}
}

func TestInventoryEvents(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	h.inv.Add(card("gust"))

	if len(h.events) != 2 {
		t.Fatalf("got %d events, want CardAdded + InventoryUpdated", len(h.events))
	}
	added, ok := h.events[0].(events.CardAdded)
	if !ok || added.CardID != "gust" || added.Slot != 0 {
		t.Errorf("first event = %#v, want CardAdded gust slot 0", h.events[0])
	}
	upd, ok := h.events[1].(events.InventoryUpdated)
	if !ok || upd.Count != 1 || upd.Capacity != DefaultCapacity {
		t.Errorf("second event = %#v, want InventoryUpdated 1/6", h.events[1])
	}
}

func TestInventoryDuplicatesAndRemove(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	h.inv.Add(card("heal"))
	h.inv.Add(card("gust"))
	h.inv.Add(card("heal"))

	if !h.inv.Remove(card("heal")) {
		t.Fatal("Remove(heal) failed")
	}
	cards := h.inv.Cards()
	if len(cards) != 2 || cards[0].ID != "gust" || cards[1].ID != "heal" {
		t.Errorf("Remove should drop the first match, got %v", cards)
	}

	if h.inv.Remove(card("treasure")) {
		t.Error("Remove of absent card should fail")
	}
}

func TestUseConsumableRemoves(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	h.inv.Add(card("heal"))

	if err := h.inv.Use(card("heal")); err != nil {
		t.Fatalf("Use(heal) failed: %v", err)
	}
	if h.target.healed != 50 {
		t.Errorf("healed = %v, want 50", h.target.healed)
	}
	if h.inv.Len() != 0 {
		t.Error("consumable should be removed after use")
	}
	if h.cues.Last() != audio.CueCardUsed {
		t.Errorf("last cue = %q, want card.used", h.cues.Last())
	}
}

func TestUseBuffKeepsCard(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	h.inv.Add(card("power_strike"))

	if err := h.inv.UseSlot(0); err != nil {
		t.Fatalf("UseSlot(0) failed: %v", err)
	}
	if h.target.damage != 2 {
		t.Errorf("damage multiplier = %v, want 2", h.target.damage)
	}
	if h.inv.Len() != 1 {
		t.Error("non-consumable card should stay in the inventory")
	}

	h.effects.Tick(10)
	if h.target.damage != 1 {
		t.Errorf("damage multiplier = %v after expiry, want 1", h.target.damage)
	}
}

func TestUseShieldAndGust(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	h.inv.Add(card("divine_shield"))
	h.inv.Add(card("gust"))
	h.inv.UseSlot(0)
	h.inv.UseSlot(1)

	if !h.target.shielded || h.target.speed != 1.5 {
		t.Fatalf("shielded = %v speed = %v", h.target.shielded, h.target.speed)
	}

	h.effects.Tick(5)
	if h.target.shielded {
		t.Error("shield should end after 5s")
	}
	if h.target.speed != 1.5 {
		t.Error("gust should still be running")
	}
}

func TestUseMutators(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	h.inv.Add(card("hourglass"))
	h.inv.Add(card("treasure"))

	h.inv.Use(card("hourglass"))
	h.inv.Use(card("treasure"))

	if h.timer.added != 15 {
		t.Errorf("time added = %v, want 15", h.timer.added)
	}
	if h.score.points != 500 || h.score.combo {
		t.Errorf("points = %d combo = %v, want 500 without combo", h.score.points, h.score.combo)
	}
	if h.inv.Len() != 0 {
		t.Error("both consumables should be gone")
	}
}

func TestUseRejectedEffectStillConsumes(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	h.timer.refuse = true
	h.inv.Add(card("hourglass"))

	if err := h.inv.Use(card("hourglass")); err != nil {
		t.Fatalf("Use error = %v, want nil", err)
	}
	if h.inv.Len() != 0 {
		t.Error("consumable should be removed even when the effect is refused")
	}
}

func TestUseUnrecognizedEffect(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	mystery := Card{ID: "mystery", Name: "Mystery", Kind: Consumable}
	keepsake := Card{ID: "keepsake", Name: "Keepsake", Kind: Ability}
	h.inv.Add(mystery)
	h.inv.Add(keepsake)

	if err := h.inv.Use(mystery); err != nil {
		t.Fatalf("Use(mystery) = %v, want nil", err)
	}
	if err := h.inv.Use(keepsake); err != nil {
		t.Fatalf("Use(keepsake) = %v, want nil", err)
	}

	cards := h.inv.Cards()
	if len(cards) != 1 || cards[0].ID != "keepsake" {
		t.Errorf("cards = %v, want only keepsake left", cards)
	}
}

func TestUseNotInInventory(t *testing.T) {
	h := newInvHarness(DefaultCapacity)

	if err := h.inv.Use(card("heal")); !errors.Is(err, ErrNotInInventory) {
		t.Errorf("Use on empty inventory = %v, want ErrNotInInventory", err)
	}
	if err := h.inv.UseSlot(3); !errors.Is(err, ErrNotInInventory) {
		t.Errorf("UseSlot(3) = %v, want ErrNotInInventory", err)
	}
	if h.target.healed != 0 {
		t.Error("failed use must not apply any effect")
	}
}

func TestAcquire(t *testing.T) {
	h := newInvHarness(2)
	for i := 0; i < 2; i++ {
		if _, err := h.inv.Acquire(); err != nil {
			t.Fatalf("Acquire #%d failed: %v", i+1, err)
		}
	}
	drawn, err := h.inv.Acquire()
	if !errors.Is(err, ErrInventoryFull) {
		t.Errorf("third Acquire = %v, want ErrInventoryFull", err)
	}
	if drawn.ID == "" {
		t.Error("Acquire should report the drawn card even when full")
	}

	empty := NewInventory(2, Deps{Catalog: NewCatalog(), RNG: core.NewSimpleRNG(1)})
	if _, err := empty.Acquire(); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Acquire on empty catalog = %v, want ErrEmptyCatalog", err)
	}

	noRNG := NewInventory(2, Deps{Catalog: DefaultCatalog()})
	if _, err := noRNG.Acquire(); !errors.Is(err, ErrNoRNG) {
		t.Errorf("Acquire without rng = %v, want ErrNoRNG", err)
	}
}

func TestClear(t *testing.T) {
	h := newInvHarness(DefaultCapacity)
	h.inv.Add(card("heal"))
	h.inv.Add(card("gust"))
	h.inv.Clear()
	if h.inv.Len() != 0 {
		t.Error("Clear should empty the inventory")
	}
}
