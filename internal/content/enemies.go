package content

type EnemiesFile struct {
	Enemies []EnemyDef `yaml:"enemies"`
}

type EnemyDef struct {
	Key    string       `yaml:"key"`
	Levels []EnemyLevel `yaml:"levels"`
}

type EnemyLevel struct {
	Level      int             `yaml:"level"`
	Name       string          `yaml:"name"`
	Attributes EnemyAttributes `yaml:"attributes"`
}

type EnemyAttributes struct {
	MaxHP           int     `yaml:"maxHp"`
	Atk             int     `yaml:"atk"`
	Def             int     `yaml:"def"`
	MagicResistance float64 `yaml:"magicResistance"`
	MoveSpeed       float64 `yaml:"moveSpeed"`
	AttackSpeed     float64 `yaml:"attackSpeed"`
	BaseAttackTime  float64 `yaml:"baseAttackTime"`
}

// LevelAt returns the variant with an exact level match, or nil.
func (e *EnemyDef) LevelAt(level int) *EnemyLevel {
	for i := range e.Levels {
		if e.Levels[i].Level == level {
			return &e.Levels[i]
		}
	}
	return nil
}
