package battle

import "arksim/internal/content"

type BuildableType string

const (
	BuildNone   BuildableType = "NONE"
	BuildMelee  BuildableType = "MELEE"
	BuildRanged BuildableType = "RANGED"
	BuildAll    BuildableType = "ALL"
)

// Tile is one map cell. At most one operator occupies a tile; EnemyIDs lists
// the enemies standing on it (rebuilt by the world each tick).
type Tile struct {
	Key        string
	HeightType string
	Buildable  BuildableType
	Passable   string

	Occupant *Operator
	EnemyIDs []int
}

// canHost checks buildability class against the operator's placement class.
// Occupancy is checked separately.
func (t *Tile) canHost(op *Operator) bool {
	switch t.Buildable {
	case BuildAll:
		return true
	case BuildMelee:
		return op.Placement == "MELEE"
	case BuildRanged:
		return op.Placement == "RANGED"
	default:
		return false
	}
}

// Grid holds one tile instance per map cell, indexed by battle coordinates
// (row 0 at the bottom). The level document stores the top row first, so the
// vertical axis is flipped once at construction.
type Grid struct {
	Rows, Cols int
	cells      [][]*Tile
}

func NewGrid(md *content.MapData) *Grid {
	g := &Grid{Rows: len(md.Map)}
	if g.Rows > 0 {
		g.Cols = len(md.Map[0])
	}
	g.cells = make([][]*Tile, g.Rows)
	for row := 0; row < g.Rows; row++ {
		g.cells[row] = make([]*Tile, g.Cols)
		docRow := md.Map[g.Rows-1-row]
		for col := 0; col < g.Cols; col++ {
			tile := &Tile{Buildable: BuildNone}
			if col < len(docRow) {
				if idx := docRow[col]; idx >= 0 && idx < len(md.Tiles) {
					td := md.Tiles[idx]
					buildable := BuildableType(td.BuildableType)
					if buildable == "" {
						buildable = BuildNone
					}
					tile = &Tile{
						Key:        td.TileKey,
						HeightType: td.HeightType,
						Buildable:  buildable,
						Passable:   td.PassableMask,
					}
				}
			}
			g.cells[row][col] = tile
		}
	}
	return g
}

func (g *Grid) Valid(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// TileAt returns the tile at a position, or nil when out of bounds.
func (g *Grid) TileAt(pos Position) *Tile {
	if !g.Valid(pos) {
		return nil
	}
	return g.cells[pos.Row][pos.Col]
}

// CanDeploy checks bounds, buildability class and occupancy. Cost and roster
// limits are the world's concern.
func (g *Grid) CanDeploy(pos Position, op *Operator) bool {
	tile := g.TileAt(pos)
	if tile == nil {
		return false
	}
	if tile.Occupant != nil {
		return false
	}
	return tile.canHost(op)
}
