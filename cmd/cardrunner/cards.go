package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardrunner/internal/cards"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the card catalog",
	Long: `Shows every card in the configured catalog with its rarity, kind,
energy cost and the chance of drawing it.

Examples:
  cardrunner cards
  cardrunner cards --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runCards,
}

func runCards(_ *cobra.Command, _ []string) {
	s := mustLoadSettings()
	handlers := cards.DefaultHandlers(s.game.Cards.Effects)

	list := s.catalog.Cards()
	if len(list) == 0 {
		fmt.Println("The catalog is empty.")
		return
	}

	// Most common first
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Rarity < list[j].Rarity
	})

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range list {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Printf("Card catalog (%d cards, capacity %d)\n", len(list), s.game.Cards.Capacity)
	fmt.Println()

	// Print header
	fmt.Printf("  %-*s  %-18s  %-9s  %-10s  %-4s  %-6s  %s\n", maxIDLen, "ID", "Name", "Rarity", "Kind", "Cost", "Chance", "Effect")
	fmt.Printf("  %-*s  %-18s  %-9s  %-10s  %-4s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----", "----", "------", "------")

	for _, c := range list {
		effect := "yes"
		if _, ok := handlers.Lookup(c.ID); !ok {
			effect = "none"
		}
		fmt.Printf("  %-*s  %-18s  %-9s  %-10s  %-4d  %5.1f%%  %s\n",
			maxIDLen, c.ID, c.Name, c.Rarity, c.Kind, c.EnergyCost, s.catalog.Chance(c.ID)*100, effect)
	}

	fmt.Println()
	fmt.Printf("Enemies drop a card %d%% of the time; power-ups always grant one.\n", s.game.Cards.DropChance)
}
