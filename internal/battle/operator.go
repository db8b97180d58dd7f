package battle

import (
	"arksim/internal/content"

	"arksim/pkg/logger"
)

// Offset is a footprint cell relative to a unit facing right.
type Offset struct {
	Row int
	Col int
}

// Default footprints when a promotion phase names no range id.
var (
	defaultMeleeRange  = []Offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	defaultRangedRange = []Offset{{0, 1}, {0, 2}, {0, 3}}
)

// Operator is a deployable unit. It survives deploy/retreat cycles within a
// run; only death removes it from play for good.
type Operator struct {
	Unit

	ID         string // script-scoped identity (custom id)
	CharID     string
	Name       string
	Profession string
	Rarity     string
	Placement  string // MELEE or RANGED

	Level     int
	Elite     int
	Potential int

	DeployCost int
	MaxBlock   int

	Deployed   bool
	Pos        Position
	Facing     Direction
	DeployTime float64

	Skills      []*Skill
	AttackRange []Offset

	AttackCooldown float64

	// BlockedIDs holds world enemy ids, never enemy pointers; the world
	// repairs the relation every tick.
	BlockedIDs []int
}

// NewOperator builds an operator from its character sheet at the requested
// level, promotion tier and skill level (1-based).
func NewOperator(id string, def *content.Character, level, elite, potential, skillLevel int, lib *content.Library) *Operator {
	attrs, rangeID := def.AttributesAt(elite, level)
	op := &Operator{
		ID:         id,
		CharID:     def.ID,
		Name:       def.Name,
		Profession: def.Profession,
		Rarity:     def.Rarity,
		Placement:  def.Position,
		Level:      level,
		Elite:      elite,
		Potential:  potential,
		DeployCost: attrs.Cost,
		MaxBlock:   attrs.BlockCnt,
		Facing:     Right,
	}
	op.MaxHP = attrs.MaxHP
	op.HP = attrs.MaxHP
	op.Atk = attrs.Atk
	op.Def = attrs.Def
	op.MagicResistance = attrs.MagicResistance
	op.AttackSpeed = attrs.AttackSpeed
	op.BaseAttackTime = attrs.BaseAttackTime
	op.Alive = true
	if op.MaxBlock < 1 {
		op.MaxBlock = 1
	}
	if op.AttackSpeed <= 0 {
		op.AttackSpeed = 1.0
	}
	if op.BaseAttackTime <= 0 {
		op.BaseAttackTime = 1.0
	}

	op.AttackRange = resolveRange(rangeID, def.Position, lib)

	for _, cs := range def.Skills {
		if cs.SkillID == "" {
			continue
		}
		sd, err := lib.SkillByID(cs.SkillID)
		if err != nil {
			logger.Log.WithField("operator", def.ID).WithField("skill", cs.SkillID).
				Warn("skill not found, slot skipped")
			continue
		}
		if sk := NewSkill(sd, skillLevel-1); sk != nil {
			op.Skills = append(op.Skills, sk)
		}
	}
	return op
}

func resolveRange(rangeID, placement string, lib *content.Library) []Offset {
	if rangeID != "" && lib != nil {
		if rd := lib.RangeByID(rangeID); rd != nil {
			out := make([]Offset, len(rd.Grids))
			for i, g := range rd.Grids {
				out[i] = Offset{Row: g.Row, Col: g.Col}
			}
			return out
		}
		logger.Log.WithField("rangeId", rangeID).Warn("range not found, using placement default")
	}
	if placement == "RANGED" {
		return defaultRangedRange
	}
	return defaultMeleeRange
}

// Deploy places the operator; tile bookkeeping is the world's job.
func (o *Operator) Deploy(pos Position, dir Direction) {
	o.Deployed = true
	o.Pos = pos
	o.Facing = dir
	o.DeployTime = 0
}

// Retreat clears placement and blocking links. Skill state is untouched.
func (o *Operator) Retreat() {
	o.Deployed = false
	o.Pos = Position{}
	o.BlockedIDs = nil
}

// Update advances effects, skills and the attack cooldown for one tick.
// Auto-trigger skills self-activate here, before script commands of the next
// tick are seen.
func (o *Operator) Update(dt float64) {
	if !o.Deployed {
		return
	}
	o.UpdateEffects(dt)
	for _, sk := range o.Skills {
		sk.UpdateSP(dt)
		sk.UpdateDuration(dt)
		if sk.shouldAutoActivate() {
			sk.Activate()
		}
	}
	if o.AttackCooldown > 0 {
		o.AttackCooldown -= dt
	}
	o.DeployTime += dt
}

// rotatedRange returns the attack footprint turned toward the current facing.
// Footprints are authored facing right; each facing step is a 90° turn.
func (o *Operator) rotatedRange() []Offset {
	out := make([]Offset, len(o.AttackRange))
	for i, off := range o.AttackRange {
		switch o.Facing {
		case Up:
			out[i] = Offset{Row: off.Col, Col: -off.Row}
		case Left:
			out[i] = Offset{Row: -off.Row, Col: -off.Col}
		case Down:
			out[i] = Offset{Row: -off.Col, Col: off.Row}
		default:
			out[i] = off
		}
	}
	return out
}

// CanAttack reports whether the target cell is inside the rotated footprint.
func (o *Operator) CanAttack(target Position) bool {
	if !o.Deployed {
		return false
	}
	relRow := target.Row - o.Pos.Row
	relCol := target.Col - o.Pos.Col
	for _, off := range o.rotatedRange() {
		if off.Row == relRow && off.Col == relCol {
			return true
		}
	}
	return false
}

// ActivateSkill fires the skill in the given slot. Ready state and trigger
// mode are validated; failures carry the reason.
func (o *Operator) ActivateSkill(index int) OpResult {
	if len(o.Skills) == 0 {
		return Failf("%s has no skills", o.Name)
	}
	if index < 0 || index >= len(o.Skills) {
		return Failf("skill index out of range: %d of %d", index, len(o.Skills))
	}
	sk := o.Skills[index]
	if sk.Spec.Trigger == TriggerPassive {
		return Failf("skill %s is passive", sk.Spec.Name)
	}
	if !sk.Ready() {
		return Failf("insufficient SP: %.0f/%.0f", sk.SP, sk.Spec.SPCost)
	}
	if !sk.Activate() {
		return Failf("skill %s failed to activate", sk.Spec.Name)
	}
	return OK()
}

func (o *Operator) GainSPOnAttack() {
	for _, sk := range o.Skills {
		sk.GainOnAttack()
	}
}

func (o *Operator) GainSPOnDamage() {
	for _, sk := range o.Skills {
		sk.GainOnDamage()
	}
}

// AttackMultiplier folds the multipliers of every active skill.
func (o *Operator) AttackMultiplier() float64 {
	m := 1.0
	for _, sk := range o.Skills {
		if sk.Active {
			m *= sk.AttackMultiplier()
		}
	}
	return m
}

func (o *Operator) CanBlockMore() bool {
	return len(o.BlockedIDs) < o.MaxBlock
}
