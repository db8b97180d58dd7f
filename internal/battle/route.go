package battle

import "arksim/internal/content"

// Route is a precomputed waypoint sequence, built once at level load and
// shared by reference across every enemy using it.
type Route struct {
	MotionMode    string
	AllowDiagonal bool
	Start, End    Position
	Checkpoints   []Position
	Path          []Position
}

// NewRoute flattens start → checkpoints → end into one waypoint list.
func NewRoute(def *content.RouteDef) *Route {
	r := &Route{
		MotionMode:    def.MotionMode,
		AllowDiagonal: def.AllowDiagonalMove,
		Start:         Position{Row: def.StartPosition.Row, Col: def.StartPosition.Col},
		End:           Position{Row: def.EndPosition.Row, Col: def.EndPosition.Col},
	}
	for _, cp := range def.Checkpoints {
		r.Checkpoints = append(r.Checkpoints, Position{Row: cp.Position.Row, Col: cp.Position.Col})
	}

	r.Path = []Position{r.Start}
	current := r.Start
	for _, cp := range r.Checkpoints {
		r.Path = append(r.Path, r.segment(current, cp)...)
		current = cp
	}
	r.Path = append(r.Path, r.segment(current, r.End)...)
	return r
}

// segment yields the waypoints from start (exclusive) to end (inclusive).
func (r *Route) segment(start, end Position) []Position {
	if r.AllowDiagonal {
		return linePath(start, end)
	}
	return stepPath(start, end)
}

// stepPath moves one cell at a time, always resolving the row gap before the
// column gap. Not the shortest Euclidean path, but it is the fixed order the
// level data was authored against.
func stepPath(start, end Position) []Position {
	var path []Position
	current := start
	for current != end {
		next := current
		switch {
		case current.Row < end.Row:
			next.Row++
		case current.Row > end.Row:
			next.Row--
		case current.Col < end.Col:
			next.Col++
		case current.Col > end.Col:
			next.Col--
		}
		path = append(path, next)
		current = next
	}
	return path
}

// linePath rasterizes the straight line from start to end with Bresenham's
// algorithm, excluding the start point (the prior segment already ends there).
func linePath(start, end Position) []Position {
	var path []Position

	x0, y0 := start.Col, start.Row
	x1, y1 := end.Col, end.Row

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		if x != x0 || y != y0 {
			path = append(path, Position{Row: y, Col: x})
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
