package cards

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
)

var (
	// ErrInventoryFull is returned by Add when every slot is taken.
	ErrInventoryFull = errors.New("cards: inventory is full")
	// ErrNotInInventory is returned when using a card the inventory does not hold.
	ErrNotInInventory = errors.New("cards: card not in inventory")
)

// DefaultCapacity is the number of inventory slots.
const DefaultCapacity = 6

// Deps are the collaborators an inventory works with.
type Deps struct {
	Catalog  *Catalog
	RNG      core.RNG
	Handlers *Registry
	Context  Context
	Bus      *events.Bus
	Audio    audio.Player
	Logger   *log.Logger
}

// Inventory is an ordered, bounded list of cards. The same card may occupy
// several slots.
type Inventory struct {
	slots    []Card
	capacity int

	catalog  *Catalog
	rng      core.RNG
	handlers *Registry
	ctx      Context

	bus   *events.Bus
	audio audio.Player
	log   *log.Logger
}

// NewInventory creates an empty inventory. Negative capacities become zero.
func NewInventory(capacity int, deps Deps) *Inventory {
	if capacity < 0 {
		capacity = 0
	}
	return &Inventory{
		slots:    make([]Card, 0, capacity),
		capacity: capacity,
		catalog:  deps.Catalog,
		rng:      deps.RNG,
		handlers: deps.Handlers,
		ctx:      deps.Context,
		bus:      deps.Bus,
		audio:    audio.OrNop(deps.Audio),
		log:      core.Logger(deps.Logger),
	}
}

// Draw picks a random card from the catalog without adding it.
func (inv *Inventory) Draw() (Card, bool) {
	card, ok := inv.catalog.Draw(inv.rng)
	if !ok {
		inv.log.Warn("cannot draw card", "err", inv.drawErr())
	}
	return card, ok
}

func (inv *Inventory) drawErr() error {
	if inv.rng == nil {
		return ErrNoRNG
	}
	return ErrEmptyCatalog
}

// Acquire draws a card and adds it. The drawn card is returned even when
// the inventory is full.
func (inv *Inventory) Acquire() (Card, error) {
	card, ok := inv.Draw()
	if !ok {
		return Card{}, inv.drawErr()
	}
	return card, inv.Add(card)
}

// Add appends a card to the first free slot.
func (inv *Inventory) Add(card Card) error {
	if len(inv.slots) >= inv.capacity {
		inv.log.Debug("inventory full", "card", card.ID, "capacity", inv.capacity)
		return ErrInventoryFull
	}

	inv.slots = append(inv.slots, card)
	slot := len(inv.slots) - 1
	inv.log.Debug("card added", "card", card.ID, "slot", slot)
	inv.bus.Publish(events.CardAdded{CardID: card.ID, Name: card.Name, Slot: slot})
	inv.publishUpdate()
	inv.audio.PlayCue(audio.CueCardObtained)
	return nil
}

// Remove takes out the first slot holding a card with the same ID.
func (inv *Inventory) Remove(card Card) bool {
	i := inv.indexOf(card.ID)
	if i < 0 {
		return false
	}
	inv.removeAt(i)
	return true
}

// Use applies a held card's effect. Consumables are removed afterwards.
func (inv *Inventory) Use(card Card) error {
	i := inv.indexOf(card.ID)
	if i < 0 {
		inv.log.Warn("cannot use card", "err", ErrNotInInventory, "card", card.ID)
		return ErrNotInInventory
	}
	inv.useAt(i)
	return nil
}

// UseSlot applies the card in slot i.
func (inv *Inventory) UseSlot(i int) error {
	if i < 0 || i >= len(inv.slots) {
		inv.log.Warn("cannot use slot", "err", ErrNotInInventory, "slot", i)
		return fmt.Errorf("%w: slot %d", ErrNotInInventory, i)
	}
	inv.useAt(i)
	return nil
}

func (inv *Inventory) useAt(i int) {
	card := inv.slots[i]

	h, ok := inv.handlers.Lookup(card.ID)
	if !ok {
		inv.log.Warn("card has no effect", "err", ErrUnrecognizedEffect, "card", card.ID)
	} else if err := h(inv.ctx, card); err != nil {
		inv.log.Warn("card effect failed", "err", err, "card", card.ID)
	}

	consumed := card.Consumable()
	if consumed {
		// Handlers may have changed the slots, so look the card up again.
		if i >= len(inv.slots) || inv.slots[i].ID != card.ID {
			i = inv.indexOf(card.ID)
		}
		if i >= 0 {
			inv.removeAt(i)
		}
	}

	inv.log.Debug("card used", "card", card.ID, "consumed", consumed)
	inv.bus.Publish(events.CardUsed{CardID: card.ID, Name: card.Name, Consumed: consumed})
	inv.audio.PlayCue(audio.CueCardUsed)
}

func (inv *Inventory) removeAt(i int) {
	card := inv.slots[i]
	inv.slots = append(inv.slots[:i], inv.slots[i+1:]...)
	inv.bus.Publish(events.CardRemoved{CardID: card.ID, Name: card.Name})
	inv.publishUpdate()
}

func (inv *Inventory) indexOf(id string) int {
	for i, c := range inv.slots {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (inv *Inventory) publishUpdate() {
	inv.bus.Publish(events.InventoryUpdated{Count: len(inv.slots), Capacity: inv.capacity})
}

// Clear empties every slot.
func (inv *Inventory) Clear() {
	if len(inv.slots) == 0 {
		return
	}
	inv.slots = inv.slots[:0]
	inv.publishUpdate()
}

// SetContext rewires the collaborators effects act on.
func (inv *Inventory) SetContext(ctx Context) {
	inv.ctx = ctx
}

// Cards returns a copy of the slots in order.
func (inv *Inventory) Cards() []Card {
	return append([]Card(nil), inv.slots...)
}

// At returns the card in slot i.
func (inv *Inventory) At(i int) (Card, bool) {
	if i < 0 || i >= len(inv.slots) {
		return Card{}, false
	}
	return inv.slots[i], true
}

// Len returns the number of occupied slots.
func (inv *Inventory) Len() int { return len(inv.slots) }

// Capacity returns the number of slots.
func (inv *Inventory) Capacity() int { return inv.capacity }

// Full reports whether no slot is free.
func (inv *Inventory) Full() bool { return len(inv.slots) >= inv.capacity }

// Catalog returns the catalog cards are drawn from.
func (inv *Inventory) Catalog() *Catalog { return inv.catalog }
