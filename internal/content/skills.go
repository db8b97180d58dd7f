package content

type SkillsFile struct {
	Skills []SkillDef `yaml:"skills"`
}

type SkillDef struct {
	ID     string          `yaml:"id"`
	Levels []SkillLevelDef `yaml:"levels"`
}

type SkillLevelDef struct {
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	SkillType    string  `yaml:"skillType"`    // MANUAL, AUTO, PASSIVE
	DurationType string  `yaml:"durationType"` // NONE, SECONDS, AMMO
	Duration     float64 `yaml:"duration"`
	RangeID      string  `yaml:"rangeId"`
	SPData       SPData  `yaml:"spData"`
	Blackboard   []KV    `yaml:"blackboard"`
}

type SPData struct {
	SPType        string  `yaml:"spType"` // INCREASE_WITH_TIME, INCREASE_WHEN_ATTACK, INCREASE_WHEN_TAKEN_DAMAGE
	SPCost        float64 `yaml:"spCost"`
	InitSP        float64 `yaml:"initSp"`
	MaxChargeTime int     `yaml:"maxChargeTime"`
	Increment     float64 `yaml:"increment"`
}

type KV struct {
	Key   string  `yaml:"key"`
	Value float64 `yaml:"value"`
}

// LevelAt clamps a zero-based skill level index into the defined range.
func (s *SkillDef) LevelAt(index int) *SkillLevelDef {
	if len(s.Levels) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.Levels) {
		index = len(s.Levels) - 1
	}
	return &s.Levels[index]
}
