package battle

// Unit carries the combat state shared by operators and enemies: the stat
// block, current HP and timed status effects. Operators and enemies embed it
// rather than inheriting from it.
type Unit struct {
	MaxHP           int
	HP              int
	Atk             int
	Def             int
	MagicResistance float64 // fraction, 0..1
	MoveSpeed       float64
	AttackSpeed     float64 // interval divisor, 1.0 = base rate
	BaseAttackTime  float64
	Alive           bool

	Effects []*Effect
}

// PhysicalDamage applies the flat-reduction formula with a floor of 1.
func PhysicalDamage(atk, def int) int {
	dmg := atk - def
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// ArtsDamage applies fractional resistance with a floor of 1.
func ArtsDamage(atk int, resistance float64) int {
	dmg := int(float64(atk) * (1 - resistance))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// TakeDamage applies raw attack through the unit's defenses and returns the
// damage actually dealt. HP never goes below zero; reaching zero kills.
func (u *Unit) TakeDamage(atk int, arts bool) int {
	var dmg int
	if arts {
		dmg = ArtsDamage(atk, u.MagicResistance)
	} else {
		dmg = PhysicalDamage(atk, u.Def)
	}
	u.HP -= dmg
	if u.HP <= 0 {
		u.HP = 0
		u.Alive = false
	}
	return dmg
}

// Heal restores HP up to the maximum and returns the amount restored.
func (u *Unit) Heal(amount int) int {
	old := u.HP
	u.HP += amount
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
	return u.HP - old
}

func (u *Unit) AttackInterval() float64 {
	speed := u.AttackSpeed
	if speed <= 0 {
		speed = 1.0
	}
	return u.BaseAttackTime / speed
}

// Effect is a timed status attached to a unit. The payload is carried for
// effect handlers; applying it is an extension point and currently a no-op.
type Effect struct {
	ID        string
	Remaining float64
	Payload   map[string]float64
}

func (u *Unit) AddEffect(e *Effect) {
	u.Effects = append(u.Effects, e)
}

// UpdateEffects counts down every effect and drops the expired ones.
func (u *Unit) UpdateEffects(dt float64) {
	if len(u.Effects) == 0 {
		return
	}
	kept := u.Effects[:0]
	for _, e := range u.Effects {
		e.Remaining -= dt
		if e.Remaining > 0 {
			kept = append(kept, e)
		}
	}
	u.Effects = kept
}
