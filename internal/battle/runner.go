package battle

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"arksim/internal/content"
	"arksim/pkg/logger"
)

// Action types understood by the runner. PAUSE, SPEED_UP and END come from
// interactive scripts and are tolerated as no-ops.
const (
	ActionDeploy        = "DEPLOY"
	ActionRetreat       = "RETREAT"
	ActionActivateSkill = "ACTIVATE_SKILL"
	ActionPause         = "PAUSE"
	ActionSpeedUp       = "SPEED_UP"
	ActionEnd           = "END"
)

// Plan is a parsed battle script: which stage to run, which operators take
// part, and the timed command list.
type Plan struct {
	StageID           string          `json:"stage_id"`
	InitialLifePoints *int            `json:"initial_life_points,omitempty"`
	Operators         []OperatorSetup `json:"operators"`
	Actions           []Action        `json:"actions"`
}

type OperatorSetup struct {
	OperatorID string `json:"operator_id"`
	CustomID   string `json:"custom_id,omitempty"`
	Level      int    `json:"level"`
	Elite      int    `json:"elite"`
	Potential  int    `json:"potential"`
	SkillLevel int    `json:"skill_level"`
}

type Action struct {
	Type       string    `json:"type"`
	Time       float64   `json:"time"`
	OperatorID string    `json:"operator_id"`
	Position   *Position `json:"position,omitempty"`
	Direction  string    `json:"direction,omitempty"`
	SkillIndex int       `json:"skill_index"`

	executed bool
}

// ParsePlan decodes a battle script document.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse battle plan: %w", err)
	}
	if p.StageID == "" {
		return nil, fmt.Errorf("battle plan has no stage_id")
	}
	return &p, nil
}

// RunResult is the outcome of one simulated battle.
type RunResult struct {
	RunID             string   `json:"run_id"`
	Success           bool     `json:"success"`
	Reason            string   `json:"reason"`
	FinalLifePoints   int      `json:"final_life_points"`
	BattleTime        float64  `json:"battle_time"`
	OperatorsDeployed []string `json:"operators_deployed"`
	EnemiesDefeated   int      `json:"enemies_defeated"`
	Events            []Event  `json:"events"`
}

// Runner replays a plan against a fresh world. Tick and MaxDuration are fixed
// for the lifetime of a run.
type Runner struct {
	Lib         *content.Library
	Tick        float64
	MaxDuration float64
}

func NewRunner(lib *content.Library, tick, maxDuration float64) *Runner {
	if tick <= 0 {
		tick = 0.1
	}
	if maxDuration <= 0 {
		maxDuration = 60.0
	}
	return &Runner{Lib: lib, Tick: tick, MaxDuration: maxDuration}
}

// Run executes the plan to completion. Setup failures surface as an error
// before any tick runs; faults mid-run are recovered into a failure result.
func (r *Runner) Run(plan *Plan) (res *RunResult, err error) {
	res = &RunResult{RunID: uuid.New().String()}

	world, operators, setupErr := r.setup(plan)
	if setupErr != nil {
		return nil, setupErr
	}

	defer func() {
		if p := recover(); p != nil {
			res.Success = false
			res.Reason = fmt.Sprintf("fault during simulation: %v", p)
			logger.Log.WithField("fault", p).Error("run aborted")
			r.finish(res, world)
		}
	}()

	emit := func(ev Event) { res.Events = append(res.Events, ev) }
	world.Emit = emit
	logf := func(t float64, format string, args ...any) {
		text := fmt.Sprintf(format, args...)
		emit(Event{T: t, Type: "Log", Payload: map[string]any{"text": text}})
		logger.Log.WithField("t", fmt.Sprintf("%.2f", t)).Info(text)
	}

	actions := make([]*Action, len(plan.Actions))
	for i := range plan.Actions {
		actions[i] = &plan.Actions[i]
	}
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Time < actions[j].Time })

	logf(0, "battle start: %s", plan.StageID)

	now := 0.0
	next := 0
	for now < r.MaxDuration {
		for next < len(actions) && actions[next].Time <= now && !actions[next].executed {
			r.apply(actions[next], world, operators, now, logf)
			actions[next].executed = true
			next++
		}

		world.Update(r.Tick)
		now += r.Tick

		if world.Victory {
			res.Success = true
			res.Reason = "victory"
			break
		}
		if world.Defeat {
			res.Success = false
			res.Reason = "defeat: life points exhausted"
			break
		}
	}
	if res.Reason == "" {
		res.Reason = "maximum simulation time reached"
	}

	logf(now, "battle over: %s", res.Reason)
	r.finish(res, world)
	return res, nil
}

// setup resolves stage, level and operators. Any failure here aborts before
// the first tick; the world is never left half-built.
func (r *Runner) setup(plan *Plan) (*World, map[string]*Operator, error) {
	stage, err := r.Lib.StageByID(plan.StageID)
	if err != nil {
		return nil, nil, err
	}
	level, err := r.Lib.LevelByID(stage.LevelID)
	if err != nil {
		return nil, nil, err
	}
	world := NewWorld(level, r.Lib)
	if plan.InitialLifePoints != nil {
		world.SetLifePoints(*plan.InitialLifePoints)
	}

	operators := map[string]*Operator{}
	for _, setup := range plan.Operators {
		def, err := r.Lib.CharacterByID(setup.OperatorID)
		if err != nil {
			return nil, nil, err
		}
		key := setup.CustomID
		if key == "" {
			key = setup.OperatorID
		}
		lvl := setup.Level
		if lvl < 1 {
			lvl = 1
		}
		skillLevel := setup.SkillLevel
		if skillLevel < 1 {
			skillLevel = 1
		}
		operators[key] = NewOperator(key, def, lvl, setup.Elite, setup.Potential, skillLevel, r.Lib)
	}
	return world, operators, nil
}

// apply executes one script command. Business-rule failures and malformed
// commands are logged and skipped; nothing here aborts the run.
func (r *Runner) apply(a *Action, world *World, operators map[string]*Operator, now float64, logf func(float64, string, ...any)) {
	switch a.Type {
	case ActionDeploy:
		op, ok := operators[a.OperatorID]
		if !ok {
			logf(now, "unknown operator: %s", a.OperatorID)
			return
		}
		if a.Position == nil {
			logf(now, "deploy without position: %s", a.OperatorID)
			return
		}
		result := world.Deploy(op, *a.Position, ParseDirection(a.Direction))
		if result.Success {
			logf(now, "deployed %s at %s", op.Name, *a.Position)
		} else {
			logf(now, "deploy failed: %s at %s - %s", op.Name, *a.Position, result.Reason)
		}

	case ActionRetreat:
		op, ok := operators[a.OperatorID]
		if !ok {
			logf(now, "unknown operator: %s", a.OperatorID)
			return
		}
		if world.Retreat(op) {
			logf(now, "retreated %s", op.Name)
		} else {
			logf(now, "retreat failed: %s is not deployed", op.Name)
		}

	case ActionActivateSkill:
		op, ok := operators[a.OperatorID]
		if !ok {
			logf(now, "unknown operator: %s", a.OperatorID)
			return
		}
		if !op.Deployed {
			logf(now, "skill activation failed: %s is not deployed", op.Name)
			return
		}
		result := op.ActivateSkill(a.SkillIndex)
		if result.Success {
			name := fmt.Sprintf("skill %d", a.SkillIndex+1)
			if a.SkillIndex < len(op.Skills) {
				name = op.Skills[a.SkillIndex].Spec.Name
			}
			logf(now, "activated %s: %s", op.Name, name)
		} else {
			logf(now, "skill activation failed: %s - %s", op.Name, result.Reason)
		}

	case ActionPause, ActionSpeedUp, ActionEnd:
		// Playback-control commands have no effect on an offline run.

	default:
		logf(now, "unknown action type skipped: %q", a.Type)
	}
}

func (r *Runner) finish(res *RunResult, world *World) {
	if world == nil {
		return
	}
	res.BattleTime = world.Time
	res.FinalLifePoints = world.LifePoints
	res.OperatorsDeployed = world.DeployedNames()
	res.EnemiesDefeated = world.Killed
}
