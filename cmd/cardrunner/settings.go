package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change audio settings",
	Long: `Show the stored audio settings, or change one with 'settings set'.

Keys:
  master, music, effects   - Volumes from 0 to 1
  music_on, effects_on     - true or false

Examples:
  cardrunner settings
  cardrunner settings set effects 0.5
  cardrunner settings set effects_on false
  cardrunner settings reset`,
	Args: cobra.NoArgs,
	Run:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one audio setting",
	Args:  cobra.ExactArgs(2),
	Run:   runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default audio settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func openStoreOrExit() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func printSettings(s audio.Settings) {
	fmt.Printf("  %-11s %.2f\n", "master", s.Master)
	fmt.Printf("  %-11s %.2f\n", "music", s.Music)
	fmt.Printf("  %-11s %.2f\n", "effects", s.Effects)
	fmt.Printf("  %-11s %t\n", "music_on", s.MusicOn)
	fmt.Printf("  %-11s %t\n", "effects_on", s.EffectsOn)
}

func runSettingsShow(_ *cobra.Command, _ []string) {
	store := openStoreOrExit()
	defer store.Close()

	fmt.Println("Audio settings")
	fmt.Println()
	printSettings(audio.LoadSettings(store))
}

// applySetting changes one named field of s.
func applySetting(s *audio.Settings, key, value string) error {
	switch key {
	case "master", "music", "effects":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s needs a number: %w", key, err)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", key, v)
		}
		switch key {
		case "master":
			s.Master = v
		case "music":
			s.Music = v
		default:
			s.Effects = v
		}
	case "music_on", "effects_on":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s needs true or false: %w", key, err)
		}
		if key == "music_on" {
			s.MusicOn = b
		} else {
			s.EffectsOn = b
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func runSettingsSet(_ *cobra.Command, args []string) {
	store := openStoreOrExit()
	defer store.Close()

	s := audio.LoadSettings(store)
	if err := applySetting(&s, args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := s.Save(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printSettings(s)
}

func runSettingsReset(_ *cobra.Command, _ []string) {
	store := openStoreOrExit()
	defer store.Close()

	s := audio.DefaultSettings()
	if err := s.Save(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printSettings(s)
}
