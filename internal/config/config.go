// Package config provides YAML-based configuration loading and difficulty
// presets for cardrunner sessions.
package config

// Config contains all configuration for a cardrunner session.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Timer   TimerConfig   `yaml:"timer"`
	Score   ScoreConfig   `yaml:"score"`
	Cards   CardsConfig   `yaml:"cards"`
	Player  PlayerConfig  `yaml:"player"`
	Log     LogConfig     `yaml:"log"`
}

// SessionConfig defines match-level rules.
type SessionConfig struct {
	Lives             int          `yaml:"lives"`
	ObjectiveScore    int          `yaml:"objective_score"`
	GameOverCountdown float64      `yaml:"game_over_countdown"` // Seconds, unscaled
	AutoReturn        bool         `yaml:"auto_return"`
	HitDamage         float64      `yaml:"hit_damage"`
	Points            PointsConfig `yaml:"points"`
}

// PointsConfig defines base points for gameplay reports.
type PointsConfig struct {
	Enemy        int `yaml:"enemy"`
	SpecialEnemy int `yaml:"special_enemy"`
	PowerUp      int `yaml:"power_up"`
}

// TimerConfig defines the match clock.
type TimerConfig struct {
	Mode     string  `yaml:"mode"` // "countdown" or "count_up"
	Limit    float64 `yaml:"limit"`
	Urgent   float64 `yaml:"urgent"`
	Critical float64 `yaml:"critical"`
}

// ScoreConfig defines combo and multiplier rules.
type ScoreConfig struct {
	BaseMultiplier int     `yaml:"base_multiplier"`
	MaxMultiplier  int     `yaml:"max_multiplier"`
	ComboStep      int     `yaml:"combo_step"`
	ComboBonusUnit int     `yaml:"combo_bonus_unit"`
	IdleWindow     float64 `yaml:"idle_window"`
	BreakPenalty   int     `yaml:"break_penalty"`
}

// CardsConfig defines the inventory, drops, effects and catalog.
type CardsConfig struct {
	Capacity   int           `yaml:"capacity"`
	DropChance int           `yaml:"drop_chance"` // Percent
	Effects    EffectsConfig `yaml:"effects"`
	Catalog    []CardConfig  `yaml:"catalog"` // Empty means the built-in catalog
}

// EffectsConfig tunes the built-in card effects.
type EffectsConfig struct {
	HealAmount       float64 `yaml:"heal_amount"`
	DamageMultiplier float64 `yaml:"damage_multiplier"`
	DamageDuration   float64 `yaml:"damage_duration"`
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`
	SpeedDuration    float64 `yaml:"speed_duration"`
	ShieldDuration   float64 `yaml:"shield_duration"`
	BonusTime        float64 `yaml:"bonus_time"`
	BonusPoints      int     `yaml:"bonus_points"`
}

// CardConfig is one catalog entry.
type CardConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Rarity      string `yaml:"rarity"`
	Kind        string `yaml:"kind"`
	EnergyCost  int    `yaml:"energy_cost"`
	Icon        string `yaml:"icon"`
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	MaxHealth  float64 `yaml:"max_health"`
	AttackBase float64 `yaml:"attack_base"`
	HitGrace   float64 `yaml:"hit_grace"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Used by hosts that own the terminal
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	case "":
		return DifficultyNormal, true
	}
	return DifficultyNormal, false
}
