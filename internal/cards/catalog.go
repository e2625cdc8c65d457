package cards

import (
	"errors"
	"sort"

	"github.com/vovakirdan/cardrunner/internal/core"
)

// ErrEmptyCatalog is returned when drawing from a catalog without cards.
var ErrEmptyCatalog = errors.New("cards: catalog is empty")

// ErrNoRNG is returned when drawing without a random source.
var ErrNoRNG = errors.New("cards: no random source")

// Catalog is the read-only set of cards that can be drawn.
type Catalog struct {
	cards []Card
	byID  map[string]int
}

// NewCatalog builds a catalog. A later card with a duplicate ID replaces
// the earlier definition in lookups but both stay drawable.
func NewCatalog(cards ...Card) *Catalog {
	c := &Catalog{
		cards: append([]Card(nil), cards...),
		byID:  make(map[string]int, len(cards)),
	}
	for i, card := range c.cards {
		c.byID[card.ID] = i
	}
	return c
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.cards)
}

// Cards returns a copy of the catalog contents.
func (c *Catalog) Cards() []Card {
	if c == nil {
		return nil
	}
	return append([]Card(nil), c.cards...)
}

// Lookup finds a card definition by ID.
func (c *Catalog) Lookup(id string) (Card, bool) {
	if c == nil {
		return Card{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// TotalWeight returns the sum of all card weights.
func (c *Catalog) TotalWeight() int {
	total := 0
	for _, card := range c.Cards() {
		total += card.Rarity.Weight()
	}
	return total
}

// Chance returns the probability of drawing the given card ID, summed over
// every catalog entry with that ID.
func (c *Catalog) Chance(id string) float64 {
	total := c.TotalWeight()
	if total == 0 {
		return 0
	}
	w := 0
	for _, card := range c.Cards() {
		if card.ID == id {
			w += card.Rarity.Weight()
		}
	}
	return float64(w) / float64(total)
}

// Draw picks a card with probability proportional to its rarity weight.
// It reports false when the catalog is empty.
func (c *Catalog) Draw(rng core.RNG) (Card, bool) {
	total := c.TotalWeight()
	if total <= 0 || rng == nil {
		return Card{}, false
	}

	roll := rng.Intn(total)
	cumulative := 0
	for _, card := range c.cards {
		cumulative += card.Rarity.Weight()
		if roll < cumulative {
			return card, true
		}
	}

	// Unreachable while weights are positive
	return c.cards[len(c.cards)-1], true
}

// IDs returns the sorted card IDs in the catalog.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultCatalog returns the built-in card set.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Card{
			ID:          "heal",
			Name:        "Healing Draught",
			Description: "Restores health.",
			Rarity:      Common,
			Kind:        Consumable,
			EnergyCost:  1,
			Icon:        "+",
		},
		Card{
			ID:          "power_strike",
			Name:        "Power Strike",
			Description: "Multiplies attack damage for a while.",
			Rarity:      Uncommon,
			Kind:        Attack,
			EnergyCost:  2,
			Icon:        "!",
		},
		Card{
			ID:          "gust",
			Name:        "Gust",
			Description: "Run faster for a while.",
			Rarity:      Uncommon,
			Kind:        Buff,
			EnergyCost:  1,
			Icon:        ">",
		},
		Card{
			ID:          "divine_shield",
			Name:        "Divine Shield",
			Description: "Become invulnerable for a few seconds.",
			Rarity:      Epic,
			Kind:        Defense,
			EnergyCost:  3,
			Icon:        "#",
		},
		Card{
			ID:          "hourglass",
			Name:        "Hourglass",
			Description: "Adds time to the clock.",
			Rarity:      Rare,
			Kind:        Consumable,
			EnergyCost:  2,
			Icon:        "%",
		},
		Card{
			ID:          "treasure",
			Name:        "Treasure",
			Description: "A pile of points.",
			Rarity:      Legendary,
			Kind:        Consumable,
			EnergyCost:  0,
			Icon:        "$",
		},
	)
}
