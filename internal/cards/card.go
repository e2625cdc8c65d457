// Package cards implements the card model, the weighted catalog draw, the
// bounded inventory and the timed effects that cards start.
package cards

import (
	"fmt"
	"strings"
)

// Rarity controls how often a card is drawn.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Uncommon:
		return "uncommon"
	case Rare:
		return "rare"
	case Epic:
		return "epic"
	case Legendary:
		return "legendary"
	default:
		return fmt.Sprintf("rarity(%d)", int(r))
	}
}

// Weight returns the draw weight of a rarity. Unknown rarities weigh 1.
func (r Rarity) Weight() int {
	switch r {
	case Common:
		return 10
	case Uncommon:
		return 5
	case Rare:
		return 2
	case Epic, Legendary:
		return 1
	default:
		return 1
	}
}

// ParseRarity converts a name such as "rare" into a Rarity.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return Common, nil
	case "uncommon":
		return Uncommon, nil
	case "rare":
		return Rare, nil
	case "epic":
		return Epic, nil
	case "legendary":
		return Legendary, nil
	}
	return Common, fmt.Errorf("cards: unknown rarity %q", s)
}

// Kind is the broad category of a card.
type Kind int

const (
	Consumable Kind = iota
	Ability
	Buff
	Defense
	Attack
)

func (k Kind) String() string {
	switch k {
	case Consumable:
		return "consumable"
	case Ability:
		return "ability"
	case Buff:
		return "buff"
	case Defense:
		return "defense"
	case Attack:
		return "attack"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a name such as "buff" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "consumable":
		return Consumable, nil
	case "ability":
		return Ability, nil
	case "buff":
		return Buff, nil
	case "defense":
		return Defense, nil
	case "attack":
		return Attack, nil
	}
	return Consumable, fmt.Errorf("cards: unknown kind %q", s)
}

// Card is an immutable card definition. Inventory slots hold copies.
type Card struct {
	ID          string
	Name        string
	Description string
	Rarity      Rarity
	Kind        Kind
	EnergyCost  int
	Icon        string
}

// Consumable reports whether the card is removed after use.
func (c Card) Consumable() bool {
	return c.Kind == Consumable
}
