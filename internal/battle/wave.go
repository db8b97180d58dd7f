package battle

import "arksim/internal/content"

// Wave / Fragment / WaveAction form the nested spawn-timer tree. Each node
// keeps its own elapsed clock; completion bubbles up: an action completes on
// its own terms, a fragment when all its actions have, a wave when all its
// fragments have. Combat outcomes never feed back into this schedule.
type Wave struct {
	// PreDelay, PostDelay and MaxTimeWaiting come from the level document
	// but do not gate scheduling: a wave starts as soon as it becomes
	// current, and fragments measure their own delay against its clock.
	PreDelay       float64
	PostDelay      float64
	MaxTimeWaiting float64
	Fragments      []*WaveFragment

	Active    bool
	Completed bool
	Elapsed   float64
}

type WaveFragment struct {
	PreDelay float64
	Actions  []*WaveAction

	Active    bool
	Completed bool
	Elapsed   float64
}

type WaveAction struct {
	Type       string
	Key        string
	Count      int
	PreDelay   float64
	Interval   float64 // parsed but not gating: multi-count spawns fire one per tick
	RouteIndex int

	Completed bool
	Spawned   int
	Elapsed   float64
}

const actionSpawn = "SPAWN"

func NewWave(def *content.WaveDef) *Wave {
	w := &Wave{
		PreDelay:       def.PreDelay,
		PostDelay:      def.PostDelay,
		MaxTimeWaiting: def.MaxTimeWaiting,
	}
	for _, fd := range def.Fragments {
		frag := &WaveFragment{PreDelay: fd.PreDelay}
		for _, ad := range fd.Actions {
			count := ad.Count
			if count < 1 {
				count = 1
			}
			frag.Actions = append(frag.Actions, &WaveAction{
				Type:       ad.ActionType,
				Key:        ad.Key,
				Count:      count,
				PreDelay:   ad.PreDelay,
				Interval:   ad.Interval,
				RouteIndex: ad.RouteIndex,
			})
		}
		w.Fragments = append(w.Fragments, frag)
	}
	return w
}

// Advance drives the wave's timers by one tick, invoking spawn for each
// enemy due this tick. Returns true once the whole wave has completed.
func (w *Wave) Advance(dt float64, spawn func(key string, routeIndex int)) bool {
	if w.Completed {
		return true
	}
	if !w.Active {
		w.Active = true
	}
	w.Elapsed += dt

	for _, frag := range w.Fragments {
		if !frag.Active && w.Elapsed >= frag.PreDelay {
			frag.Active = true
		}
		if !frag.Active || frag.Completed {
			continue
		}
		frag.Elapsed += dt

		for _, act := range frag.Actions {
			if act.Completed {
				continue
			}
			act.Elapsed += dt
			if act.Elapsed < act.PreDelay {
				continue
			}
			if act.Type == actionSpawn {
				if act.Spawned < act.Count {
					spawn(act.Key, act.RouteIndex)
					act.Spawned++
					if act.Spawned >= act.Count {
						act.Completed = true
					}
				}
			} else {
				// Narrative/display markers complete as soon as they trigger.
				act.Completed = true
			}
		}

		frag.Completed = true
		for _, act := range frag.Actions {
			if !act.Completed {
				frag.Completed = false
				break
			}
		}
	}

	w.Completed = true
	for _, frag := range w.Fragments {
		if !frag.Completed {
			w.Completed = false
			break
		}
	}
	return w.Completed
}
