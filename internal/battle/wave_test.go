package battle

import (
	"testing"

	"arksim/internal/content"
)

func waveDefWith(actions ...content.WaveActionDef) *content.WaveDef {
	return &content.WaveDef{
		Fragments: []content.FragmentDef{{Actions: actions}},
	}
}

func TestSpawnActionFiresOncePerTickAfterDelay(t *testing.T) {
	w := NewWave(waveDefWith(content.WaveActionDef{
		ActionType: "SPAWN", Key: "enemy_dog", Count: 3, PreDelay: 0.5, Interval: 1.0,
	}))

	spawned := 0
	spawn := func(key string, routeIndex int) { spawned++ }

	// One tick of 0.25s: still inside the trigger delay.
	w.Advance(0.25, spawn)
	if spawned != 0 {
		t.Fatalf("no spawn expected before the trigger delay, got %d", spawned)
	}

	// The delay elapses on the second tick; one enemy per tick from there.
	w.Advance(0.25, spawn)
	if spawned != 1 {
		t.Fatalf("expected 1 spawn at the trigger delay, got %d", spawned)
	}
	w.Advance(0.25, spawn)
	w.Advance(0.25, spawn)
	if spawned != 3 {
		t.Fatalf("expected one spawn per tick, got %d after 3 eligible ticks", spawned)
	}

	if !w.Completed {
		t.Error("wave must complete once every spawn has fired")
	}
	w.Advance(0.25, spawn)
	if spawned != 3 {
		t.Error("a completed action must not spawn again")
	}
}

func TestNonSpawnActionCompletesAtItsDelay(t *testing.T) {
	w := NewWave(waveDefWith(content.WaveActionDef{
		ActionType: "STORY", PreDelay: 0.3,
	}))

	spawn := func(string, int) { t.Fatal("display markers must not spawn") }

	w.Advance(0.25, spawn)
	if w.Completed {
		t.Fatal("action completed before its delay")
	}
	w.Advance(0.25, spawn)
	if !w.Completed {
		t.Fatal("display marker must complete once its delay elapses")
	}
}

func TestFragmentWaitsForItsOwnDelay(t *testing.T) {
	def := &content.WaveDef{
		Fragments: []content.FragmentDef{
			{PreDelay: 0, Actions: []content.WaveActionDef{
				{ActionType: "SPAWN", Key: "a", Count: 1},
			}},
			{PreDelay: 1.0, Actions: []content.WaveActionDef{
				{ActionType: "SPAWN", Key: "b", Count: 1},
			}},
		},
	}
	w := NewWave(def)

	var keys []string
	spawn := func(key string, routeIndex int) { keys = append(keys, key) }

	w.Advance(0.5, spawn)
	if len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("only the first fragment should have fired, got %v", keys)
	}
	if w.Completed {
		t.Fatal("wave must wait for the delayed fragment")
	}

	w.Advance(0.5, spawn) // wave clock hits 1.0; second fragment activates
	if len(keys) != 2 || keys[1] != "b" {
		t.Fatalf("second fragment should fire at its delay, got %v", keys)
	}
	if !w.Completed {
		t.Error("wave must complete when all fragments have")
	}
}

func TestWaveCompletionBubblesUp(t *testing.T) {
	w := NewWave(waveDefWith(
		content.WaveActionDef{ActionType: "SPAWN", Key: "a", Count: 1},
		content.WaveActionDef{ActionType: "SPAWN", Key: "b", Count: 2},
	))

	spawn := func(string, int) {}

	w.Advance(0.1, spawn)
	frag := w.Fragments[0]
	if frag.Actions[0].Completed != true {
		t.Error("single-count action must complete on its first spawn")
	}
	if frag.Completed {
		t.Error("fragment must wait for every action")
	}

	w.Advance(0.1, spawn)
	if !frag.Completed || !w.Completed {
		t.Error("completion must bubble from actions to fragment to wave")
	}
}
