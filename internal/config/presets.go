package config

var Presets = map[string]*Config{
	// default horizon, one oscillation period
	"default": {
		N: 128, Dt: 0.01, Periods: 1,
		Schemes: []string{"verlet", "euler", "backward-euler"},
	},
	// coarse step, exaggerates the Euler drifts
	"coarse": {
		N: 128, Dt: 0.05, Periods: 1,
		Schemes: []string{"verlet", "euler", "backward-euler"},
	},
	// fine step, shows Verlet's bounded band
	"fine": {
		N: 128, Dt: 0.001, Periods: 1,
		Schemes: []string{"verlet", "euler", "backward-euler"},
	},
	// long horizon, the no-drift property of Verlet over many periods
	"long": {
		N: 128, Dt: 0.01, Periods: 20,
		Schemes: []string{"verlet", "euler", "backward-euler"},
	},
	// small chain, quick smoke run
	"quick": {
		N: 16, Dt: 0.01, Periods: 1,
		Schemes: []string{"verlet", "euler", "backward-euler"},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
