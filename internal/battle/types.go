package battle

import (
	"fmt"
	"math"
)

// Position is an integer grid coordinate. Row 0 is the bottom of the map.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func (p Position) DistanceTo(o Position) float64 {
	dr := float64(p.Row - o.Row)
	dc := float64(p.Col - o.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

var directionNames = map[Direction]string{
	Right: "RIGHT",
	Down:  "DOWN",
	Left:  "LEFT",
	Up:    "UP",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "RIGHT"
}

// ParseDirection maps a script token to a Direction; anything unknown
// defaults to RIGHT, matching the script tolerance rules.
func ParseDirection(s string) Direction {
	switch s {
	case "DOWN":
		return Down
	case "LEFT":
		return Left
	case "UP":
		return Up
	default:
		return Right
	}
}

// Event is one timestamped entry in a run's event log.
type Event struct {
	T       float64        `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// EmitFunc receives events as the simulation produces them.
type EmitFunc func(Event)
