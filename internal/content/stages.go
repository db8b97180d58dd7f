package content

type StagesFile struct {
	Stages []Stage `yaml:"stages"`
}

type Stage struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	LevelID string `yaml:"levelId"`
}
