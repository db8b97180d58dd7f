package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Library holds the parsed static game data. Levels are loaded lazily by id
// and cached; everything else is read up front by Load.
type Library struct {
	dir string

	characters map[string]*Character
	skills     map[string]*SkillDef
	enemies    map[string]*EnemyDef
	stages     map[string]*Stage
	ranges     map[string]*RangeDef
	levels     map[string]*Level
}

func Load(dir string) (*Library, error) {
	lib := &Library{
		dir:        dir,
		characters: map[string]*Character{},
		skills:     map[string]*SkillDef{},
		enemies:    map[string]*EnemyDef{},
		stages:     map[string]*Stage{},
		ranges:     map[string]*RangeDef{},
		levels:     map[string]*Level{},
	}

	var cf CharactersFile
	if err := loadYAML(filepath.Join(dir, "characters.yaml"), &cf); err != nil {
		return nil, err
	}
	for i := range cf.Characters {
		lib.characters[cf.Characters[i].ID] = &cf.Characters[i]
	}

	var sf SkillsFile
	if err := loadYAML(filepath.Join(dir, "skills.yaml"), &sf); err != nil {
		return nil, err
	}
	for i := range sf.Skills {
		lib.skills[sf.Skills[i].ID] = &sf.Skills[i]
	}

	var ef EnemiesFile
	if err := loadYAML(filepath.Join(dir, "enemies.yaml"), &ef); err != nil {
		return nil, err
	}
	for i := range ef.Enemies {
		lib.enemies[ef.Enemies[i].Key] = &ef.Enemies[i]
	}

	var stf StagesFile
	if err := loadYAML(filepath.Join(dir, "stages.yaml"), &stf); err != nil {
		return nil, err
	}
	for i := range stf.Stages {
		lib.stages[stf.Stages[i].ID] = &stf.Stages[i]
	}

	var rf RangesFile
	if err := loadYAML(filepath.Join(dir, "ranges.yaml"), &rf); err != nil {
		return nil, err
	}
	for i := range rf.Ranges {
		lib.ranges[rf.Ranges[i].ID] = &rf.Ranges[i]
	}

	return lib, nil
}

func (l *Library) CharacterByID(id string) (*Character, error) {
	c, ok := l.characters[id]
	if !ok {
		return nil, fmt.Errorf("unknown character: %s", id)
	}
	return c, nil
}

func (l *Library) SkillByID(id string) (*SkillDef, error) {
	s, ok := l.skills[id]
	if !ok {
		return nil, fmt.Errorf("unknown skill: %s", id)
	}
	return s, nil
}

func (l *Library) EnemyByKey(key string, level int) (*EnemyLevel, error) {
	e, ok := l.enemies[key]
	if !ok {
		return nil, fmt.Errorf("unknown enemy: %s", key)
	}
	v := e.LevelAt(level)
	if v == nil {
		return nil, fmt.Errorf("enemy %s has no level %d variant", key, level)
	}
	return v, nil
}

func (l *Library) StageByID(id string) (*Stage, error) {
	s, ok := l.stages[id]
	if !ok {
		return nil, fmt.Errorf("unknown stage: %s", id)
	}
	return s, nil
}

// RangeByID returns nil (no error) for an unknown id; callers fall back to
// the default footprint of the placement class.
func (l *Library) RangeByID(id string) *RangeDef {
	return l.ranges[id]
}

// LevelByID loads levels/<id>.yaml under the content dir, caching the result.
func (l *Library) LevelByID(id string) (*Level, error) {
	if lv, ok := l.levels[id]; ok {
		return lv, nil
	}
	var lv Level
	path := filepath.Join(l.dir, "levels", id+".yaml")
	if err := loadYAML(path, &lv); err != nil {
		return nil, fmt.Errorf("load level %s: %w", id, err)
	}
	l.levels[id] = &lv
	return &lv, nil
}
