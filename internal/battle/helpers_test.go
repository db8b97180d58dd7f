package battle

import (
	"os"
	"path/filepath"
	"testing"

	"arksim/internal/content"
)

const testCharacters = `
characters:
  - id: char_guard
    name: Ranger Guard
    profession: GUARD
    rarity: TIER_3
    position: MELEE
    phases:
      - rangeId: melee_1x2
        maxLevel: 50
        attributesKeyFrames:
          - level: 1
            data: {maxHp: 100, atk: 20, def: 5, magicResistance: 0.0, cost: 10, blockCnt: 1, baseAttackTime: 1.0, attackSpeed: 1.0}
          - level: 50
            data: {maxHp: 200, atk: 40, def: 10, magicResistance: 0.0, cost: 10, blockCnt: 1, baseAttackTime: 1.0, attackSpeed: 1.0}
    skills:
      - skillId: skill_strike
  - id: char_caster
    name: Novice Caster
    profession: CASTER
    rarity: TIER_3
    position: RANGED
    phases:
      - rangeId: ranged_3x1
        maxLevel: 50
        attributesKeyFrames:
          - level: 1
            data: {maxHp: 60, atk: 15, def: 2, magicResistance: 0.1, cost: 30, blockCnt: 1, baseAttackTime: 1.5, attackSpeed: 1.0}
    skills: []
`

const testSkills = `
skills:
  - id: skill_strike
    levels:
      - name: Power Strike
        skillType: MANUAL
        durationType: SECONDS
        duration: 5.0
        spData: {spType: INCREASE_WITH_TIME, spCost: 10, initSp: 10, maxChargeTime: 1, increment: 1.0}
        blackboard:
          - {key: atk_scale, value: 1.5}
`

const testEnemies = `
enemies:
  - key: enemy_dog
    levels:
      - level: 0
        name: Hound
        attributes: {maxHp: 40, atk: 5, def: 0, magicResistance: 0.0, moveSpeed: 0.5, attackSpeed: 1.0, baseAttackTime: 1.0}
`

const testStages = `
stages:
  - id: test_stage
    name: Blockade
    levelId: test_level
`

const testRanges = `
ranges:
  - id: melee_1x2
    grids:
      - {row: 0, col: 0}
      - {row: 0, col: 1}
  - id: ranged_3x1
    grids:
      - {row: 0, col: 1}
      - {row: 0, col: 2}
      - {row: 0, col: 3}
`

// The bottom row (battle row 0) is a melee-buildable road the only route
// follows; the top row is ranged-only high ground.
const testLevel = `
mapData:
  map:
    - [1, 1, 1, 1, 1]
    - [0, 0, 0, 0, 0]
  tiles:
    - {tileKey: tile_road, heightType: LOWLAND, buildableType: MELEE, passableMask: ALL}
    - {tileKey: tile_wall, heightType: HIGHLAND, buildableType: RANGED, passableMask: NONE}
routes:
  - motionMode: WALK
    startPosition: {row: 0, col: 0}
    endPosition: {row: 0, col: 4}
    allowDiagonalMove: false
waves:
  - preDelay: 0
    fragments:
      - preDelay: 0
        actions:
          - {actionType: SPAWN, key: enemy_dog, count: 1, preDelay: 1.0, interval: 1.0, routeIndex: 0}
options: {characterLimit: 8, maxLifePoint: 3, initialCost: 20, maxCost: 99, costIncreaseTime: 1.0}
`

func writeTestContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"characters.yaml": testCharacters,
		"skills.yaml":     testSkills,
		"enemies.yaml":    testEnemies,
		"stages.yaml":     testStages,
		"ranges.yaml":     testRanges,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "levels"), 0755); err != nil {
		t.Fatalf("mkdir levels: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "levels", "test_level.yaml"), []byte(testLevel), 0644); err != nil {
		t.Fatalf("write level: %v", err)
	}
	return dir
}

func loadTestLibrary(t *testing.T) *content.Library {
	t.Helper()
	lib, err := content.Load(writeTestContent(t))
	if err != nil {
		t.Fatalf("load test content: %v", err)
	}
	return lib
}

func newTestWorld(t *testing.T) (*World, *content.Library) {
	t.Helper()
	lib := loadTestLibrary(t)
	stage, err := lib.StageByID("test_stage")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	level, err := lib.LevelByID(stage.LevelID)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	return NewWorld(level, lib), lib
}

func newTestGuard(t *testing.T, lib *content.Library, id string) *Operator {
	t.Helper()
	def, err := lib.CharacterByID("char_guard")
	if err != nil {
		t.Fatalf("character: %v", err)
	}
	return NewOperator(id, def, 1, 0, 0, 1, lib)
}
