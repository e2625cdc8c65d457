package actor

// Enemy is a target the player strikes. Special enemies are worth more.
type Enemy struct {
	Name    string
	Special bool

	health    float64
	maxHealth float64
}

// NewEnemy creates an enemy at full health.
func NewEnemy(name string, health float64, special bool) *Enemy {
	if health <= 0 {
		health = 1
	}
	return &Enemy{Name: name, Special: special, health: health, maxHealth: health}
}

// ApplyDamage hurts the enemy and reports whether this hit defeated it.
// A defeated enemy cannot be defeated again.
func (e *Enemy) ApplyDamage(amount float64) bool {
	if amount <= 0 || e.health <= 0 {
		return false
	}
	e.health -= amount
	if e.health <= 0 {
		e.health = 0
		return true
	}
	return false
}

// Heal restores health up to the maximum.
func (e *Enemy) Heal(amount float64) float64 {
	if amount <= 0 || e.health <= 0 {
		return 0
	}
	before := e.health
	e.health += amount
	if e.health > e.maxHealth {
		e.health = e.maxHealth
	}
	return e.health - before
}

func (e *Enemy) Health() float64 { return e.health }
func (e *Enemy) Alive() bool     { return e.health > 0 }
