package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"arksim/internal/battle"
	"arksim/internal/content"
	"arksim/internal/simconfig"
	"arksim/pkg/logger"
)

func main() {
	var cfgPath, dataDir, planPath, out, examplePath string
	flag.StringVar(&cfgPath, "config", "", "engine config file (optional)")
	flag.StringVar(&dataDir, "data", "", "content dir (overrides config)")
	flag.StringVar(&planPath, "plan", "battle_plan.json", "battle plan file")
	flag.StringVar(&out, "out", "result.json", "result output file")
	flag.StringVar(&examplePath, "example", "", "write an example battle plan to this path and exit")
	flag.Parse()

	cfg, err := simconfig.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if dataDir != "" {
		cfg.ContentDir = dataDir
	}
	logger.Init(cfg.LogLevel)

	if examplePath != "" {
		if err := writeExamplePlan(examplePath); err != nil {
			fmt.Fprintf(os.Stderr, "example: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("example battle plan written -> %s\n", examplePath)
		return
	}

	lib, err := content.Load(cfg.ContentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "content: %v\n", err)
		os.Exit(1)
	}

	planData, err := os.ReadFile(planPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "plan: %v\n", err)
		os.Exit(1)
	}
	plan, err := battle.ParsePlan(planData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "plan: %v\n", err)
		os.Exit(1)
	}

	runner := battle.NewRunner(lib, cfg.TickSeconds, cfg.MaxBattleSeconds)
	res, err := runner.Run(plan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(out, marshalPretty(res), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write result: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Simulation finished. Success=%v, T=%.2fs, lifePoints=%d, defeated=%d -> %s\n",
		res.Success, res.BattleTime, res.FinalLifePoints, res.EnemiesDefeated, out)
}

func marshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}

// writeExamplePlan emits a small two-operator script against the bundled
// tutorial stage, as a starting point for hand-written plans.
func writeExamplePlan(path string) error {
	lives := 3
	plan := battle.Plan{
		StageID:           "main_00-01",
		InitialLifePoints: &lives,
		Operators: []battle.OperatorSetup{
			{OperatorID: "char_002_amiya", CustomID: "amiya_1", Level: 50, Elite: 1, SkillLevel: 7},
			{OperatorID: "char_123_fang", CustomID: "fang_1", Level: 30, Elite: 0, Potential: 5, SkillLevel: 4},
		},
		Actions: []battle.Action{
			{Type: battle.ActionDeploy, Time: 2.0, OperatorID: "fang_1",
				Position: &battle.Position{Row: 3, Col: 2}, Direction: "RIGHT"},
			{Type: battle.ActionDeploy, Time: 5.0, OperatorID: "amiya_1",
				Position: &battle.Position{Row: 2, Col: 1}, Direction: "RIGHT"},
			{Type: battle.ActionActivateSkill, Time: 15.0, OperatorID: "amiya_1", SkillIndex: 0},
		},
	}
	return os.WriteFile(path, marshalPretty(plan), 0644)
}
