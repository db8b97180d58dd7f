package battle

import "arksim/internal/content"

// Enemy is a hostile unit walking a route toward the goal. The ID is a
// world-scoped sequential handle assigned at spawn.
type Enemy struct {
	Unit

	ID   int
	Key  string
	Name string

	route     *Route
	pathIndex int
	progress  float64

	// BlockedBy names the blocking operator ("" when unblocked).
	BlockedBy string

	AttackCooldown float64
	ReachedGoal    bool
}

// NewEnemy builds an enemy from its stat sheet and places it on the first
// waypoint of the route.
func NewEnemy(id int, key string, stats *content.EnemyLevel, route *Route) *Enemy {
	e := &Enemy{
		ID:   id,
		Key:  key,
		Name: stats.Name,
	}
	a := stats.Attributes
	e.MaxHP = a.MaxHP
	e.HP = a.MaxHP
	e.Atk = a.Atk
	e.Def = a.Def
	e.MagicResistance = a.MagicResistance
	e.MoveSpeed = a.MoveSpeed
	e.AttackSpeed = a.AttackSpeed
	e.BaseAttackTime = a.BaseAttackTime
	e.Alive = true
	if e.MoveSpeed <= 0 {
		e.MoveSpeed = 1.0
	}
	if e.AttackSpeed <= 0 {
		e.AttackSpeed = 1.0
	}
	if e.BaseAttackTime <= 0 {
		e.BaseAttackTime = 1.0
	}
	e.SetRoute(route)
	return e
}

// SetRoute rewinds the enemy to the start of the given route.
func (e *Enemy) SetRoute(route *Route) {
	e.route = route
	e.pathIndex = 0
	e.progress = 0
}

// Pos returns the enemy's current waypoint, and false before a route is set.
func (e *Enemy) Pos() (Position, bool) {
	if e.route == nil || e.pathIndex >= len(e.route.Path) {
		return Position{}, false
	}
	return e.route.Path[e.pathIndex], true
}

func (e *Enemy) Blocked() bool {
	return e.BlockedBy != ""
}

// Move advances progress by speed*dt, hopping one waypoint per full tile of
// accumulated progress. The fractional remainder carries over. Returns true
// when the final waypoint is reached.
func (e *Enemy) Move(dt float64) bool {
	if e.Blocked() || e.route == nil || e.pathIndex >= len(e.route.Path)-1 {
		return false
	}
	e.progress += e.MoveSpeed * dt
	for e.progress >= 1.0 && e.pathIndex < len(e.route.Path)-1 {
		e.progress -= 1.0
		e.pathIndex++
		if e.pathIndex == len(e.route.Path)-1 {
			e.ReachedGoal = true
			return true
		}
	}
	return false
}

// Update advances effects, the attack cooldown, and movement when unblocked.
func (e *Enemy) Update(dt float64) {
	e.UpdateEffects(dt)
	if e.AttackCooldown > 0 {
		e.AttackCooldown -= dt
	}
	if !e.Blocked() {
		e.Move(dt)
	}
}

// Block links the enemy to its blocker; Release undoes it. The world keeps
// both directions of the relation consistent.
func (e *Enemy) Block(operatorID string) {
	e.BlockedBy = operatorID
}

func (e *Enemy) Release() {
	e.BlockedBy = ""
}
