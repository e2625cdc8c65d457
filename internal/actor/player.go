// Package actor holds the player and enemy collaborators the game-flow core
// damages, heals and buffs.
package actor

// PlayerConfig holds player tunables.
type PlayerConfig struct {
	MaxHealth  float64
	AttackBase float64 // Damage dealt per strike before multipliers
	HitGrace   float64 // Seconds of invulnerability after taking a hit
}

// DefaultPlayerConfig returns the standard player.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		MaxHealth:  100,
		AttackBase: 10,
		HitGrace:   1.5,
	}
}

// Player is the controllable character. It implements cards.Target.
type Player struct {
	cfg PlayerConfig

	health     float64
	damageMult float64
	speedMult  float64
	shielded   bool
	grace      float64
}

// NewPlayer creates a player at full health.
func NewPlayer(cfg PlayerConfig) *Player {
	if cfg.MaxHealth <= 0 {
		cfg.MaxHealth = DefaultPlayerConfig().MaxHealth
	}
	if cfg.HitGrace < 0 {
		cfg.HitGrace = 0
	}
	p := &Player{cfg: cfg}
	p.Reset()
	return p
}

// Reset restores full health and clears every buff.
func (p *Player) Reset() {
	p.health = p.cfg.MaxHealth
	p.damageMult = 1
	p.speedMult = 1
	p.shielded = false
	p.grace = 0
}

// Tick counts the hit grace down.
func (p *Player) Tick(dt float64) {
	if dt <= 0 || p.grace <= 0 {
		return
	}
	p.grace -= dt
	if p.grace < 0 {
		p.grace = 0
	}
}

// ApplyDamage hurts the player unless invulnerable. It reports whether the
// hit was taken and whether it was lethal. A taken hit starts the grace period.
func (p *Player) ApplyDamage(amount float64) (taken, died bool) {
	if amount <= 0 || p.Invulnerable() || p.health <= 0 {
		return false, false
	}
	p.health -= amount
	p.grace = p.cfg.HitGrace
	if p.health <= 0 {
		p.health = 0
		return true, true
	}
	return true, false
}

// Heal restores health up to the maximum and returns the amount restored.
func (p *Player) Heal(amount float64) float64 {
	if amount <= 0 || p.health <= 0 {
		return 0
	}
	before := p.health
	p.health += amount
	if p.health > p.cfg.MaxHealth {
		p.health = p.cfg.MaxHealth
	}
	return p.health - before
}

// Revive brings a dead player back at full health with a fresh grace period.
func (p *Player) Revive() {
	p.health = p.cfg.MaxHealth
	p.grace = p.cfg.HitGrace
}

// Strike returns the damage of one attack with the current multiplier.
func (p *Player) Strike() float64 {
	return p.cfg.AttackBase * p.damageMult
}

// SetDamageMultiplier implements cards.Target.
func (p *Player) SetDamageMultiplier(m float64) { p.damageMult = m }

// SetSpeedMultiplier implements cards.Target.
func (p *Player) SetSpeedMultiplier(m float64) { p.speedMult = m }

// SetShielded implements cards.Target.
func (p *Player) SetShielded(on bool) { p.shielded = on }

// Invulnerable reports whether incoming damage is currently ignored.
func (p *Player) Invulnerable() bool { return p.shielded || p.grace > 0 }

func (p *Player) Health() float64           { return p.health }
func (p *Player) MaxHealth() float64        { return p.cfg.MaxHealth }
func (p *Player) Alive() bool               { return p.health > 0 }
func (p *Player) DamageMultiplier() float64 { return p.damageMult }
func (p *Player) SpeedMultiplier() float64  { return p.speedMult }
func (p *Player) Shielded() bool            { return p.shielded }
func (p *Player) Grace() float64            { return p.grace }
