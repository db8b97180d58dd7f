package battle

import (
	"strings"
	"testing"
)

func TestDamageFloor(t *testing.T) {
	if got := PhysicalDamage(1, 9999); got != 1 {
		t.Errorf("physical damage floor: expected 1, got %d", got)
	}
	if got := ArtsDamage(10, 0.99); got != 1 {
		t.Errorf("arts damage floor: expected 1, got %d", got)
	}
	if got := PhysicalDamage(30, 12); got != 18 {
		t.Errorf("expected 18 physical, got %d", got)
	}
	if got := ArtsDamage(100, 0.25); got != 75 {
		t.Errorf("expected 75 arts, got %d", got)
	}
}

func TestCanDeployAgreesWithDeploy(t *testing.T) {
	w, lib := newTestWorld(t)
	w.cost = 1000 // tile validity only, cost aside

	for row := -1; row <= w.grid.Rows; row++ {
		for col := -1; col <= w.grid.Cols; col++ {
			pos := Position{Row: row, Col: col}
			op := newTestGuard(t, lib, "guard")
			can := w.CanDeployAt(pos, op)
			res := w.Deploy(op, pos, Right)
			if can != res.Success {
				t.Errorf("at %s: CanDeployAt=%v but Deploy=%v (%s)", pos, can, res.Success, res.Reason)
			}
			if res.Success {
				w.Retreat(op)
			}
		}
	}
}

func TestDeployChecksPlacementClass(t *testing.T) {
	w, lib := newTestWorld(t)
	w.cost = 1000
	guard := newTestGuard(t, lib, "guard")

	// Row 1 is ranged-only high ground.
	res := w.Deploy(guard, Position{Row: 1, Col: 0}, Right)
	if res.Success {
		t.Fatal("melee operator must not deploy on a ranged tile")
	}

	caster, err := lib.CharacterByID("char_caster")
	if err != nil {
		t.Fatalf("caster: %v", err)
	}
	op := NewOperator("caster", caster, 1, 0, 0, 1, lib)
	if res := w.Deploy(op, Position{Row: 1, Col: 0}, Right); !res.Success {
		t.Fatalf("ranged operator must deploy on high ground: %s", res.Reason)
	}
}

func TestDeployInsufficientCostLeavesWorldUnchanged(t *testing.T) {
	w, lib := newTestWorld(t)
	caster, _ := lib.CharacterByID("char_caster")
	op := NewOperator("caster", caster, 1, 0, 0, 1, lib) // cost 30 > initial 20

	before := w.Cost()
	res := w.Deploy(op, Position{Row: 1, Col: 0}, Right)
	if res.Success {
		t.Fatal("deploy must fail when cost is short")
	}
	if !strings.Contains(res.Reason, "insufficient cost") {
		t.Errorf("reason must mention insufficient cost, got %q", res.Reason)
	}
	if w.Cost() != before {
		t.Error("failed deploy must not spend cost")
	}
	if len(w.Deployed) != 0 {
		t.Error("failed deploy must not touch the roster")
	}
	if tile := w.grid.TileAt(Position{Row: 1, Col: 0}); tile.Occupant != nil {
		t.Error("failed deploy must not occupy the tile")
	}
	if op.Deployed {
		t.Error("failed deploy must not mark the operator deployed")
	}
}

func TestDeployThenRetreatRestoresEverythingButCost(t *testing.T) {
	w, lib := newTestWorld(t)
	op := newTestGuard(t, lib, "guard")
	pos := Position{Row: 0, Col: 2}

	before := w.Cost()
	if res := w.Deploy(op, pos, Right); !res.Success {
		t.Fatalf("deploy: %s", res.Reason)
	}
	if w.Cost() != before-float64(op.DeployCost) {
		t.Errorf("deploy must debit cost: had %v, now %v", before, w.Cost())
	}

	if !w.Retreat(op) {
		t.Fatal("retreat failed")
	}
	if len(w.Deployed) != 0 {
		t.Error("retreat must empty the roster")
	}
	if tile := w.grid.TileAt(pos); tile.Occupant != nil {
		t.Error("retreat must free the tile")
	}
	if op.Deployed {
		t.Error("retreat must clear the deployed flag")
	}
	if w.Cost() != before-float64(op.DeployCost) {
		t.Error("cost is a one-way spend; retreat must not refund")
	}

	if w.Retreat(op) {
		t.Error("retreating an undeployed operator must fail")
	}
}

func TestRosterLimit(t *testing.T) {
	w, lib := newTestWorld(t)
	w.cost = 1000
	w.CharacterLimit = 1

	first := newTestGuard(t, lib, "guard_1")
	if res := w.Deploy(first, Position{Row: 0, Col: 0}, Right); !res.Success {
		t.Fatalf("first deploy: %s", res.Reason)
	}
	second := newTestGuard(t, lib, "guard_2")
	res := w.Deploy(second, Position{Row: 0, Col: 1}, Right)
	if res.Success {
		t.Fatal("deploy past the roster limit must fail")
	}
	if !strings.Contains(res.Reason, "limit") {
		t.Errorf("reason must mention the limit, got %q", res.Reason)
	}
}

func TestBlockCapacityNeverExceeded(t *testing.T) {
	w, lib := newTestWorld(t)
	op := newTestGuard(t, lib, "guard") // block 1
	if res := w.Deploy(op, Position{Row: 0, Col: 0}, Right); !res.Success {
		t.Fatalf("deploy: %s", res.Reason)
	}

	first := w.SpawnEnemy("enemy_dog", 0)
	second := w.SpawnEnemy("enemy_dog", 0)
	w.resolveBlocking()

	if len(op.BlockedIDs) != 1 {
		t.Fatalf("block capacity 1 must hold exactly one enemy, got %d", len(op.BlockedIDs))
	}
	if !first.Blocked() {
		t.Error("first enemy on the tile must be blocked")
	}
	if second.Blocked() {
		t.Error("second enemy must not be blocked beyond capacity")
	}

	// The blocked enemy dies; one pass sheds the dead link, the next hands
	// the slot to the waiting enemy, matching the tick-by-tick repair.
	first.TakeDamage(9999, false)
	w.resolveBlocking()
	if len(op.BlockedIDs) != 0 {
		t.Fatalf("dead enemy must be shed from the block list, got %v", op.BlockedIDs)
	}
	w.resolveBlocking()
	if len(op.BlockedIDs) != 1 || op.BlockedIDs[0] != second.ID {
		t.Errorf("slot must pass to the waiting enemy, got %v", op.BlockedIDs)
	}
}

func TestRetreatReleasesBlockedEnemies(t *testing.T) {
	w, lib := newTestWorld(t)
	op := newTestGuard(t, lib, "guard")
	w.Deploy(op, Position{Row: 0, Col: 0}, Right)

	e := w.SpawnEnemy("enemy_dog", 0)
	w.resolveBlocking()
	if !e.Blocked() {
		t.Fatal("enemy must be blocked on the occupied tile")
	}

	w.Retreat(op)
	w.resolveBlocking()
	if e.Blocked() {
		t.Error("retreat must release the blocked enemy on the repair pass")
	}
}

func TestBlockedEnemyDoesNotMove(t *testing.T) {
	w, lib := newTestWorld(t)
	op := newTestGuard(t, lib, "guard")
	op.Atk = 1 // keep the enemy alive for the duration of the test
	w.Deploy(op, Position{Row: 0, Col: 0}, Right)

	e := w.SpawnEnemy("enemy_dog", 0)
	w.resolveBlocking()

	for i := 0; i < 20; i++ {
		w.Update(0.25)
	}
	pos, _ := e.Pos()
	if pos != (Position{Row: 0, Col: 0}) {
		t.Errorf("blocked enemy must hold position, moved to %s", pos)
	}
}

func TestSingleBlockerKillsEnemyAndWins(t *testing.T) {
	w, lib := newTestWorld(t)
	op := newTestGuard(t, lib, "guard")
	if res := w.Deploy(op, Position{Row: 0, Col: 2}, Right); !res.Success {
		t.Fatalf("deploy: %s", res.Reason)
	}

	for i := 0; i < 600 && !w.Victory && !w.Defeat; i++ {
		w.Update(0.1)
	}

	if w.Defeat {
		t.Fatal("unexpected defeat")
	}
	if !w.Victory {
		t.Fatal("blocker scenario must end in victory")
	}
	if w.Killed != 1 {
		t.Errorf("expected 1 enemy defeated, got %d", w.Killed)
	}
	if w.LifePoints != 3 {
		t.Errorf("no enemy may leak, life points %d", w.LifePoints)
	}
	if !op.Alive {
		t.Error("the guard must survive a lone hound")
	}
}

func TestLeakCostsLifeAndDefeatIsTerminal(t *testing.T) {
	w, _ := newTestWorld(t)
	w.SetLifePoints(1)

	for i := 0; i < 600 && !w.Victory && !w.Defeat; i++ {
		w.Update(0.1)
	}

	if !w.Defeat {
		t.Fatal("an unopposed enemy must leak and exhaust the life pool")
	}
	if w.Victory {
		t.Fatal("defeat must preclude victory")
	}
	if w.LifePoints > 0 {
		t.Errorf("life points must be exhausted, got %d", w.LifePoints)
	}

	// Defeat latches: further updates change nothing.
	w.Update(0.1)
	if w.Victory {
		t.Error("no victory after defeat")
	}
}

func TestDeadOperatorIsAutoRetreated(t *testing.T) {
	w, lib := newTestWorld(t)
	op := newTestGuard(t, lib, "guard")
	pos := Position{Row: 0, Col: 3}
	w.Deploy(op, pos, Right)

	op.TakeDamage(9999, false)
	w.Update(0.1)

	if len(w.Deployed) != 0 {
		t.Error("dead operator must leave the roster on the same tick")
	}
	if tile := w.grid.TileAt(pos); tile.Occupant != nil {
		t.Error("dead operator must free its tile")
	}
}
