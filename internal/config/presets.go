package config

var Presets = map[string]map[string]*Config{
	"linear": {
		"quick": {
			Model: "linear", Samples: 2000, CoV: 1.0,
		},
		"accurate": {
			Model: "linear", Samples: 200000, CoV: 1.0,
		},
		"interactions": {
			Model: "linear", Samples: 50000, CoV: 1.0, Targets: []int{1, 2},
		},
	},
	"gfunction": {
		"quick": {
			Model: "gfunction", Samples: 5000, CoV: 1.0,
		},
		"dominant": {
			Model: "gfunction", Samples: 100000, CoV: 1.0, Targets: []int{1}, Normalize: true,
		},
		"inert": {
			Model: "gfunction", Samples: 100000, CoV: 1.0, Targets: []int{4}, Normalize: true,
		},
	},
	"ishigami": {
		"first": {
			Model: "ishigami", Samples: 100000, CoV: 1.0, Targets: []int{1}, Normalize: true,
		},
		"interaction": {
			Model: "ishigami", Samples: 100000, CoV: 1.0, Targets: []int{1, 3}, Normalize: true,
		},
	},
	"calloption": {
		"spot": {
			Model: "calloption", Samples: 50000, CoV: 0.05, Targets: []int{1},
		},
		"vol": {
			Model: "calloption", Samples: 50000, CoV: 0.25, Targets: []int{2},
		},
		"volsweep": {
			Model: "calloption", Samples: 20000, CoV: 0.25, Targets: []int{2},
			Sweep: SweepConfig{Values: []float64{0.05, 0.1, 0.15, 0.2, 0.25, 0.3}, Output: "vol_sweep.dat"},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
