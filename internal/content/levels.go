package content

// Level is one playable map document: tile layout, enemy routes, the
// wave/fragment/action spawn tree and the economy options.
type Level struct {
	MapData MapData    `yaml:"mapData"`
	Routes  []RouteDef `yaml:"routes"`
	Waves   []WaveDef  `yaml:"waves"`
	Options Options    `yaml:"options"`
}

type MapData struct {
	// Map holds tile indices, top row first.
	Map   [][]int   `yaml:"map"`
	Tiles []TileDef `yaml:"tiles"`
}

type TileDef struct {
	TileKey       string `yaml:"tileKey"`
	HeightType    string `yaml:"heightType"`
	BuildableType string `yaml:"buildableType"` // NONE, MELEE, RANGED, ALL
	PassableMask  string `yaml:"passableMask"`
}

type RouteDef struct {
	MotionMode        string       `yaml:"motionMode"`
	StartPosition     GridOffset   `yaml:"startPosition"`
	EndPosition       GridOffset   `yaml:"endPosition"`
	Checkpoints       []Checkpoint `yaml:"checkpoints"`
	AllowDiagonalMove bool         `yaml:"allowDiagonalMove"`
}

type Checkpoint struct {
	Position GridOffset `yaml:"position"`
}

type WaveDef struct {
	PreDelay float64 `yaml:"preDelay"`
	// postDelay and maxTimeWaitingForNextWave are part of the document but
	// do not influence scheduling.
	PostDelay      float64       `yaml:"postDelay"`
	MaxTimeWaiting float64       `yaml:"maxTimeWaitingForNextWave"`
	Fragments      []FragmentDef `yaml:"fragments"`
}

type FragmentDef struct {
	PreDelay float64         `yaml:"preDelay"`
	Actions  []WaveActionDef `yaml:"actions"`
}

type WaveActionDef struct {
	ActionType string  `yaml:"actionType"` // SPAWN, or a display marker
	Key        string  `yaml:"key"`
	Count      int     `yaml:"count"`
	PreDelay   float64 `yaml:"preDelay"`
	Interval   float64 `yaml:"interval"`
	RouteIndex int     `yaml:"routeIndex"`
}

type Options struct {
	CharacterLimit   int     `yaml:"characterLimit"`
	MaxLifePoint     int     `yaml:"maxLifePoint"`
	InitialCost      int     `yaml:"initialCost"`
	MaxCost          int     `yaml:"maxCost"`
	CostIncreaseTime float64 `yaml:"costIncreaseTime"`
}
