package content

type RangesFile struct {
	Ranges []RangeDef `yaml:"ranges"`
}

// RangeDef is an attack footprint: grid offsets relative to the unit,
// expressed for a unit facing right.
type RangeDef struct {
	ID    string       `yaml:"id"`
	Grids []GridOffset `yaml:"grids"`
}

type GridOffset struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}
