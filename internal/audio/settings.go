package audio

import "fmt"

// Preference keys for persisted audio settings.
const (
	KeyMasterVolume  = "audio.master"
	KeyMusicVolume   = "audio.music"
	KeyEffectsVolume = "audio.effects"
	KeyMusicOn       = "audio.music_on"
	KeyEffectsOn     = "audio.effects_on"
)

// Prefs is the subset of the persistence collaborator audio settings need.
type Prefs interface {
	GetInt(key string, def int) int
	GetFloat(key string, def float64) float64
	SetInt(key string, value int)
	SetFloat(key string, value float64)
	Flush() error
}

// Settings holds user volume preferences. Volumes are in [0, 1].
type Settings struct {
	Master    float64
	Music     float64
	Effects   float64
	MusicOn   bool
	EffectsOn bool
}

// DefaultSettings returns the out-of-the-box volume levels.
func DefaultSettings() Settings {
	return Settings{
		Master:    1.0,
		Music:     0.7,
		Effects:   0.8,
		MusicOn:   true,
		EffectsOn: true,
	}
}

// LoadSettings reads settings from prefs, falling back to defaults per key.
func LoadSettings(p Prefs) Settings {
	d := DefaultSettings()
	s := Settings{
		Master:    clampVolume(p.GetFloat(KeyMasterVolume, d.Master)),
		Music:     clampVolume(p.GetFloat(KeyMusicVolume, d.Music)),
		Effects:   clampVolume(p.GetFloat(KeyEffectsVolume, d.Effects)),
		MusicOn:   p.GetInt(KeyMusicOn, boolToInt(d.MusicOn)) == 1,
		EffectsOn: p.GetInt(KeyEffectsOn, boolToInt(d.EffectsOn)) == 1,
	}
	return s
}

// Save writes the settings to prefs and flushes them.
func (s Settings) Save(p Prefs) error {
	p.SetFloat(KeyMasterVolume, clampVolume(s.Master))
	p.SetFloat(KeyMusicVolume, clampVolume(s.Music))
	p.SetFloat(KeyEffectsVolume, clampVolume(s.Effects))
	p.SetInt(KeyMusicOn, boolToInt(s.MusicOn))
	p.SetInt(KeyEffectsOn, boolToInt(s.EffectsOn))
	if err := p.Flush(); err != nil {
		return fmt.Errorf("audio: cannot save settings: %w", err)
	}
	return nil
}

// EffectsAudible reports whether effect cues would be heard at all.
func (s Settings) EffectsAudible() bool {
	return s.EffectsOn && s.Master > 0 && s.Effects > 0
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
