package battle

import "arksim/internal/content"

type SPType string

const (
	SPWithTime        SPType = "INCREASE_WITH_TIME"
	SPWhenAttack      SPType = "INCREASE_WHEN_ATTACK"
	SPWhenTakenDamage SPType = "INCREASE_WHEN_TAKEN_DAMAGE"
)

type TriggerType string

const (
	TriggerManual  TriggerType = "MANUAL"
	TriggerAuto    TriggerType = "AUTO"
	TriggerPassive TriggerType = "PASSIVE"
)

type DurationType string

const (
	DurationNone    DurationType = "NONE"
	DurationSeconds DurationType = "SECONDS"
	DurationAmmo    DurationType = "AMMO"
)

// SkillSpec is the resolved definition of one skill at one level.
type SkillSpec struct {
	ID       string
	Name     string
	Trigger  TriggerType
	Duration DurationType
	// DurationValue is seconds for SECONDS skills and the ammo fallback for
	// AMMO skills whose blackboard lacks a "times" entry.
	DurationValue float64
	SPType        SPType
	SPCost        float64
	InitSP        float64
	MaxCharge     int
	Increment     float64
	Effects       map[string]float64
}

// Skill is a per-operator ability instance: a spec plus mutable charge state.
// Instances are never shared between operators.
type Skill struct {
	Spec SkillSpec

	SP            float64
	Charges       int
	Active        bool
	RemainingTime float64
	RemainingAmmo int
}

// NewSkill resolves a skill definition at a zero-based level index.
func NewSkill(def *content.SkillDef, levelIndex int) *Skill {
	lv := def.LevelAt(levelIndex)
	if lv == nil {
		return nil
	}
	spec := SkillSpec{
		ID:            def.ID,
		Name:          lv.Name,
		Trigger:       TriggerType(lv.SkillType),
		Duration:      DurationType(lv.DurationType),
		DurationValue: lv.Duration,
		SPType:        SPType(lv.SPData.SPType),
		SPCost:        lv.SPData.SPCost,
		InitSP:        lv.SPData.InitSP,
		MaxCharge:     lv.SPData.MaxChargeTime,
		Increment:     lv.SPData.Increment,
		Effects:       map[string]float64{},
	}
	if spec.Trigger == "" {
		spec.Trigger = TriggerManual
	}
	if spec.Duration == "" {
		spec.Duration = DurationNone
	}
	if spec.SPType == "" {
		spec.SPType = SPWithTime
	}
	if spec.MaxCharge < 1 {
		spec.MaxCharge = 1
	}
	for _, kv := range lv.Blackboard {
		spec.Effects[kv.Key] = kv.Value
	}
	return &Skill{Spec: spec, SP: spec.InitSP}
}

func (s *Skill) charged() bool {
	return s.Spec.MaxCharge > 1
}

// Ready reports whether the skill could fire right now: a banked charge for
// charge skills, a full SP pool otherwise. Passive skills are never ready.
func (s *Skill) Ready() bool {
	if s.Spec.Trigger == TriggerPassive {
		return false
	}
	if s.charged() {
		return s.Charges > 0
	}
	return s.SP >= s.Spec.SPCost
}

// shouldAutoActivate applies only to AUTO skills; charge skills wait for a
// full bank before self-firing.
func (s *Skill) shouldAutoActivate() bool {
	if s.Spec.Trigger != TriggerAuto {
		return false
	}
	if s.charged() {
		return s.Charges >= s.Spec.MaxCharge
	}
	return s.SP >= s.Spec.SPCost
}

// Activate consumes one charge (or the SP pool) and enters the active state.
func (s *Skill) Activate() bool {
	if !s.Ready() && !s.shouldAutoActivate() {
		return false
	}
	if s.charged() {
		s.Charges--
	} else {
		s.SP = 0
	}
	s.Active = true
	switch s.Spec.Duration {
	case DurationSeconds:
		s.RemainingTime = s.Spec.DurationValue
	case DurationAmmo:
		ammo := s.Spec.DurationValue
		if times, ok := s.Spec.Effects["times"]; ok {
			ammo = times
		}
		s.RemainingAmmo = int(ammo)
	}
	return true
}

// UpdateSP accrues time-based SP. Charge skills bank whole charges, carrying
// the excess SP over; single-slot skills clamp the pool at the cost.
func (s *Skill) UpdateSP(dt float64) {
	if s.Spec.SPType != SPWithTime {
		return
	}
	s.gain(s.Spec.Increment * dt)
}

// GainOnAttack grants SP when the owner lands an attack.
func (s *Skill) GainOnAttack() {
	if s.Spec.SPType != SPWhenAttack {
		return
	}
	s.gain(s.Spec.Increment)
}

// GainOnDamage grants SP when the owner takes damage.
func (s *Skill) GainOnDamage() {
	if s.Spec.SPType != SPWhenTakenDamage {
		return
	}
	s.gain(s.Spec.Increment)
}

func (s *Skill) gain(amount float64) {
	if s.charged() {
		s.SP += amount
		for s.SP >= s.Spec.SPCost && s.Charges < s.Spec.MaxCharge {
			s.SP -= s.Spec.SPCost
			s.Charges++
		}
		return
	}
	s.SP += amount
	if s.SP > s.Spec.SPCost {
		s.SP = s.Spec.SPCost
	}
}

// UpdateDuration counts down an active skill. Instant (NONE) skills
// deactivate on the first update after activation.
func (s *Skill) UpdateDuration(dt float64) {
	if !s.Active {
		return
	}
	switch s.Spec.Duration {
	case DurationSeconds:
		s.RemainingTime -= dt
		if s.RemainingTime <= 0 {
			s.Deactivate()
		}
	case DurationNone:
		s.Deactivate()
	}
}

// ConsumeAmmo spends one round of an active ammo skill and reports whether
// any ammo remains afterwards.
func (s *Skill) ConsumeAmmo() bool {
	if s.Spec.Duration != DurationAmmo || !s.Active {
		return true
	}
	s.RemainingAmmo--
	if s.RemainingAmmo <= 0 {
		s.Deactivate()
		return false
	}
	return true
}

func (s *Skill) Deactivate() {
	s.Active = false
	s.RemainingTime = 0
	s.RemainingAmmo = 0
}

// EffectValue reads a blackboard value while the skill is active.
func (s *Skill) EffectValue(key string) float64 {
	if !s.Active {
		return 0
	}
	return s.Spec.Effects[key]
}

// AttackMultiplier returns the active attack-scale effect, 1.0 when none.
func (s *Skill) AttackMultiplier() float64 {
	if !s.Active {
		return 1.0
	}
	for _, key := range []string{"atk_scale", "attack_scale", "atk"} {
		if v, ok := s.Spec.Effects[key]; ok && v > 0 {
			return v
		}
	}
	return 1.0
}
