package model

// Preset is a named, ready-to-run experiment configuration.
type Preset struct {
	Name        string
	Description string
	Apply       func(c *Config)
}

// Built-in presets. Each one starts from DefaultConfig and overrides a few fields.
var Presets = []Preset{
	{
		Name:        "default",
		Description: "Plus strategy, truncation survival, k-tournament parents",
		Apply:       func(c *Config) {},
	},
	{
		Name:        "comma-tournament",
		Description: "Comma strategy with tournament survival over a large offspring pool",
		Apply: func(c *Config) {
			c.Lambda = 200
			c.Survival = SurvivalConfig{Strategy: SurvivalComma, Selection: SurvivalTournament}
		},
	},
	{
		Name:        "proportional",
		Description: "Level-weighted roulette for both parents and survivors",
		Apply: func(c *Config) {
			c.ParentSelection = ParentProportional
			c.Survival.Selection = SurvivalProportional
		},
	},
	{
		Name:        "stagnation",
		Description: "Stop once the best front has not improved for 25 generations",
		Apply: func(c *Config) {
			c.Termination = TerminationConfig{Mode: TerminateStagnation, StagnationGenerations: 25}
		},
	},
	{
		Name:        "random-search",
		Description: "Pure random sampling baseline",
		Apply: func(c *Config) {
			c.Algorithm = AlgorithmRandom
		},
	},
}

// GetPreset returns the config for a named preset and whether the name was found.
// Unknown names fall back to DefaultConfig.
func GetPreset(name string) (Config, bool) {
	cfg := DefaultConfig()
	for _, p := range Presets {
		if p.Name == name {
			p.Apply(&cfg)
			return cfg, true
		}
	}
	return cfg, false
}

// GetPresetNames returns the names of all built-in presets.
func GetPresetNames() []string {
	var names []string
	for _, p := range Presets {
		names = append(names, p.Name)
	}
	return names
}
