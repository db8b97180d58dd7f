package content

type CharactersFile struct {
	Characters []Character `yaml:"characters"`
}

type Character struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Profession string      `yaml:"profession"`
	Rarity     string      `yaml:"rarity"`
	Position   string      `yaml:"position"` // MELEE or RANGED
	Phases     []Phase     `yaml:"phases"`
	Skills     []CharSkill `yaml:"skills"`
}

// Phase is one promotion tier. Attribute keyframes map a level to a full
// stat block; a lookup picks the exact level or falls back to the last frame.
type Phase struct {
	RangeID             string     `yaml:"rangeId"`
	MaxLevel            int        `yaml:"maxLevel"`
	AttributesKeyFrames []KeyFrame `yaml:"attributesKeyFrames"`
}

type KeyFrame struct {
	Level int        `yaml:"level"`
	Data  Attributes `yaml:"data"`
}

type Attributes struct {
	MaxHP           int     `yaml:"maxHp"`
	Atk             int     `yaml:"atk"`
	Def             int     `yaml:"def"`
	MagicResistance float64 `yaml:"magicResistance"`
	Cost            int     `yaml:"cost"`
	BlockCnt        int     `yaml:"blockCnt"`
	MoveSpeed       float64 `yaml:"moveSpeed"`
	AttackSpeed     float64 `yaml:"attackSpeed"`
	BaseAttackTime  float64 `yaml:"baseAttackTime"`
}

type CharSkill struct {
	SkillID string `yaml:"skillId"`
}

// AttributesAt resolves the stat block for a promotion tier and level.
// Unknown tiers clamp to the last phase; unknown levels take the phase's
// final keyframe.
func (c *Character) AttributesAt(elite, level int) (Attributes, string) {
	if len(c.Phases) == 0 {
		return Attributes{}, ""
	}
	if elite < 0 {
		elite = 0
	}
	if elite >= len(c.Phases) {
		elite = len(c.Phases) - 1
	}
	phase := c.Phases[elite]
	frames := phase.AttributesKeyFrames
	if len(frames) == 0 {
		return Attributes{}, phase.RangeID
	}
	for _, kf := range frames {
		if kf.Level == level {
			return kf.Data, phase.RangeID
		}
	}
	return frames[len(frames)-1].Data, phase.RangeID
}
