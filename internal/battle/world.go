package battle

import (
	"arksim/internal/content"

	"arksim/pkg/logger"
)

// World owns the grid, the live entities and the economy for one run, and
// advances them one fixed timestep at a time. It is single-owner state: no
// goroutine other than the runner's touches it.
type World struct {
	grid   *Grid
	routes []*Route
	waves  []*Wave
	lib    *content.Library

	CharacterLimit int
	MaxLifePoints  int
	LifePoints     int

	cost             float64
	MaxCost          float64
	costIncreaseTime float64

	Deployed []*Operator
	Enemies  []*Enemy
	enemies  map[int]*Enemy // by world id
	nextID   int

	CurrentWave int
	Time        float64
	Victory     bool
	Defeat      bool

	Killed        int
	deployedNames []string
	everDeployed  map[string]bool

	Emit EmitFunc
}

// NewWorld builds a world from a parsed level document. Content lookups
// during the run (enemy stats) go through lib.
func NewWorld(level *content.Level, lib *content.Library) *World {
	opts := level.Options
	w := &World{
		grid:             NewGrid(&level.MapData),
		lib:              lib,
		CharacterLimit:   opts.CharacterLimit,
		MaxLifePoints:    opts.MaxLifePoint,
		LifePoints:       opts.MaxLifePoint,
		cost:             float64(opts.InitialCost),
		MaxCost:          float64(opts.MaxCost),
		costIncreaseTime: opts.CostIncreaseTime,
		enemies:          map[int]*Enemy{},
		nextID:           1,
		everDeployed:     map[string]bool{},
		Emit:             func(Event) {},
	}
	if w.CharacterLimit <= 0 {
		w.CharacterLimit = 8
	}
	if w.costIncreaseTime <= 0 {
		w.costIncreaseTime = 1.0
	}
	for i := range level.Routes {
		w.routes = append(w.routes, NewRoute(&level.Routes[i]))
	}
	for i := range level.Waves {
		w.waves = append(w.waves, NewWave(&level.Waves[i]))
	}
	return w
}

// SetLifePoints overrides the starting life pool (script option).
func (w *World) SetLifePoints(points int) {
	w.LifePoints = points
	w.MaxLifePoints = points
}

func (w *World) Cost() float64 { return w.cost }

func (w *World) Grid() *Grid { return w.grid }

func (w *World) Waves() []*Wave { return w.waves }

// DeployedNames lists, in first-deploy order, every operator that was
// deployed at any point during the run.
func (w *World) DeployedNames() []string { return w.deployedNames }

// CanDeployAt checks only tile validity: bounds, buildability, occupancy.
func (w *World) CanDeployAt(pos Position, op *Operator) bool {
	return w.grid.CanDeploy(pos, op)
}

// Deploy validates tile, cost and roster limit, then places the operator and
// debits its cost. Cost is a one-way spend: retreat does not refund it.
func (w *World) Deploy(op *Operator, pos Position, dir Direction) OpResult {
	if !w.grid.Valid(pos) {
		return Failf("invalid position: %s", pos)
	}
	tile := w.grid.TileAt(pos)
	if tile == nil {
		return Failf("no tile at %s", pos)
	}
	if tile.Occupant != nil {
		return Failf("position already occupied: %s", pos)
	}
	if !tile.canHost(op) {
		return Failf("placement mismatch: %s(%s) cannot deploy on a %s tile", op.Name, op.Placement, tile.Buildable)
	}
	if w.cost < float64(op.DeployCost) {
		return Failf("insufficient cost: need %d, have %d", op.DeployCost, int(w.cost))
	}
	if len(w.Deployed) >= w.CharacterLimit {
		return Failf("deployment limit reached: %d", w.CharacterLimit)
	}

	tile.Occupant = op
	op.Deploy(pos, dir)
	w.Deployed = append(w.Deployed, op)
	w.cost -= float64(op.DeployCost)
	if !w.everDeployed[op.ID] {
		w.everDeployed[op.ID] = true
		w.deployedNames = append(w.deployedNames, op.Name)
	}
	w.Emit(Event{T: w.Time, Type: "Deploy", Payload: map[string]any{
		"operator": op.ID, "name": op.Name, "row": pos.Row, "col": pos.Col, "facing": dir.String(),
	}})
	return OK()
}

// Retreat frees the tile and drops the operator from the roster. Blocked
// enemies are released by the next blocking pass.
func (w *World) Retreat(op *Operator) bool {
	idx := -1
	for i, d := range w.Deployed {
		if d == op {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if tile := w.grid.TileAt(op.Pos); tile != nil && tile.Occupant == op {
		tile.Occupant = nil
	}
	w.Deployed = append(w.Deployed[:idx], w.Deployed[idx+1:]...)
	op.Retreat()
	w.Emit(Event{T: w.Time, Type: "Retreat", Payload: map[string]any{
		"operator": op.ID, "name": op.Name,
	}})
	return true
}

// SpawnEnemy creates an enemy on the given route and registers it under a
// fresh world-scoped id.
func (w *World) SpawnEnemy(key string, routeIndex int) *Enemy {
	stats, err := w.lib.EnemyByKey(key, 0)
	if err != nil {
		logger.Log.WithField("enemy", key).Warn("spawn skipped: unknown enemy")
		return nil
	}
	var route *Route
	if routeIndex >= 0 && routeIndex < len(w.routes) {
		route = w.routes[routeIndex]
	}
	e := NewEnemy(w.nextID, key, stats, route)
	w.nextID++
	w.Enemies = append(w.Enemies, e)
	w.enemies[e.ID] = e
	w.Emit(Event{T: w.Time, Type: "Spawn", Payload: map[string]any{
		"enemy": e.ID, "key": key, "route": routeIndex,
	}})
	return e
}

// Update advances one tick. The phase order is part of the engine contract:
// economy, operators, enemies, combat, blocking, waves, terminal check.
func (w *World) Update(dt float64) {
	if w.Victory || w.Defeat {
		return
	}
	w.Time += dt

	// Economy.
	w.cost += dt / w.costIncreaseTime
	if w.cost > w.MaxCost {
		w.cost = w.MaxCost
	}

	// Operators: skills, cooldowns; the dead are auto-retreated this tick.
	for _, op := range append([]*Operator(nil), w.Deployed...) {
		op.Update(dt)
		if !op.Alive {
			w.Emit(Event{T: w.Time, Type: "OperatorDown", Payload: map[string]any{
				"operator": op.ID, "name": op.Name,
			}})
			w.Retreat(op)
		}
	}

	// Enemies: movement and cooldowns; leakers and the dead leave the roster.
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		e.Update(dt)
		switch {
		case e.ReachedGoal:
			w.LifePoints--
			delete(w.enemies, e.ID)
			w.Emit(Event{T: w.Time, Type: "Leak", Payload: map[string]any{
				"enemy": e.ID, "lifePoints": w.LifePoints,
			}})
			if w.LifePoints <= 0 {
				w.Defeat = true
			}
		case !e.Alive:
			w.Killed++
			delete(w.enemies, e.ID)
			w.Emit(Event{T: w.Time, Type: "EnemyKilled", Payload: map[string]any{
				"enemy": e.ID, "key": e.Key,
			}})
		default:
			kept = append(kept, e)
		}
	}
	w.Enemies = kept

	w.resolveCombat()
	w.resolveBlocking()

	// Waves.
	if w.CurrentWave < len(w.waves) {
		if w.waves[w.CurrentWave].Advance(dt, func(key string, routeIndex int) {
			w.SpawnEnemy(key, routeIndex)
		}) {
			w.CurrentWave++
		}
	}

	// Victory requires every wave done, the field clear, lives left, and no
	// defeat already latched. Defeat is terminal.
	if w.CurrentWave >= len(w.waves) &&
		len(w.Enemies) == 0 &&
		w.LifePoints > 0 &&
		!w.Defeat {
		w.Victory = true
	}
}

// resolveCombat runs operator attacks first, then blocked-enemy attacks.
func (w *World) resolveCombat() {
	for _, op := range w.Deployed {
		if op.AttackCooldown > 0 {
			continue
		}
		target := w.findTarget(op)
		if target == nil {
			continue
		}
		atk := int(float64(op.Atk) * op.AttackMultiplier())
		dealt := target.TakeDamage(atk, false)
		op.AttackCooldown = op.AttackInterval()
		op.GainSPOnAttack()
		for _, sk := range op.Skills {
			if sk.Active && sk.Spec.Duration == DurationAmmo {
				sk.ConsumeAmmo()
			}
		}
		w.Emit(Event{T: w.Time, Type: "Hit", Payload: map[string]any{
			"operator": op.ID, "enemy": target.ID, "damage": dealt, "hp": target.HP,
		}})
	}

	for _, e := range w.Enemies {
		if !e.Blocked() || e.AttackCooldown > 0 {
			continue
		}
		blocker := w.deployedByID(e.BlockedBy)
		if blocker == nil {
			continue
		}
		dealt := blocker.TakeDamage(e.Atk, false)
		blocker.GainSPOnDamage()
		e.AttackCooldown = e.AttackInterval()
		w.Emit(Event{T: w.Time, Type: "EnemyHit", Payload: map[string]any{
			"enemy": e.ID, "operator": blocker.ID, "damage": dealt, "hp": blocker.HP,
		}})
	}
}

// findTarget prefers the first alive blocked enemy, then the nearest alive
// enemy inside the rotated attack footprint.
func (w *World) findTarget(op *Operator) *Enemy {
	for _, id := range op.BlockedIDs {
		if e, ok := w.enemies[id]; ok && e.Alive {
			return e
		}
	}

	var closest *Enemy
	closestDist := -1.0
	for _, e := range w.Enemies {
		if !e.Alive {
			continue
		}
		pos, ok := e.Pos()
		if !ok || !op.CanAttack(pos) {
			continue
		}
		d := op.Pos.DistanceTo(pos)
		if closest == nil || d < closestDist {
			closest = e
			closestDist = d
		}
	}
	return closest
}

// resolveBlocking establishes new block links, then repairs both sides of
// the relation: operators shed dead enemies, enemies shed missing blockers.
// Tile enemy lists are rebuilt here as well.
func (w *World) resolveBlocking() {
	for _, row := range w.grid.cells {
		for _, t := range row {
			t.EnemyIDs = t.EnemyIDs[:0]
		}
	}

	for _, e := range w.Enemies {
		pos, ok := e.Pos()
		if !ok {
			continue
		}
		tile := w.grid.TileAt(pos)
		if tile == nil {
			continue
		}
		tile.EnemyIDs = append(tile.EnemyIDs, e.ID)
		if e.Blocked() || tile.Occupant == nil {
			continue
		}
		op := tile.Occupant
		if op.CanBlockMore() {
			e.Block(op.ID)
			op.BlockedIDs = append(op.BlockedIDs, e.ID)
			w.Emit(Event{T: w.Time, Type: "Block", Payload: map[string]any{
				"operator": op.ID, "enemy": e.ID,
			}})
		}
	}

	for _, op := range w.Deployed {
		keptIDs := op.BlockedIDs[:0]
		for _, id := range op.BlockedIDs {
			if e, ok := w.enemies[id]; ok && e.Alive {
				keptIDs = append(keptIDs, id)
			}
		}
		op.BlockedIDs = keptIDs
	}

	for _, e := range w.Enemies {
		if !e.Blocked() {
			continue
		}
		blocker := w.deployedByID(e.BlockedBy)
		if blocker == nil || !blocker.Alive {
			e.Release()
		}
	}
}

func (w *World) deployedByID(id string) *Operator {
	for _, op := range w.Deployed {
		if op.ID == id {
			return op
		}
	}
	return nil
}
