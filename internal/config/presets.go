package config

// Presets are ready-made scenarios, addressable by name from the CLI.
var Presets = map[string]func() *Config{
	"argon-gas":  ArgonGasPreset,
	"argon-pair": ArgonPairPreset,
	"salt-pair":  SaltPairPreset,
	"piston":     PistonPreset,
}

// ArgonGasPreset is a thermostatted box of argon.
func ArgonGasPreset() *Config {
	cfg := DefaultConfig()
	cfg.Name = "argon-gas"
	cfg.Thermostat = true
	cfg.TargetTemperature = 120
	cfg.Duration = 5000
	return cfg
}

// ArgonPairPreset is two argon atoms released near equilibrium; a clean
// oscillation for eyeballing energy conservation.
func ArgonPairPreset() *Config {
	return &Config{
		Name:         "argon-pair",
		Width:        5,
		Height:       5,
		Dt:           1,
		Duration:     2000,
		LennardJones: true,
		Elements:     []ElementConfig{{Mass: 39.95, Epsilon: -0.01034, Sigma: 0.34}},
		Atoms: []AtomConfig{
			{X: 2.0, Y: 2.5},
			{X: 2.0 + 1.2*0.34, Y: 2.5},
		},
		OutputInterval: 5,
	}
}

// SaltPairPreset is an oppositely charged ion pair under Coulomb
// attraction, the positive ion pinned.
func SaltPairPreset() *Config {
	return &Config{
		Name:         "salt-pair",
		Width:        5,
		Height:       5,
		Dt:           1,
		Duration:     2000,
		LennardJones: true,
		Coulomb:      true,
		Elements: []ElementConfig{
			{Mass: 22.99, Epsilon: -0.01034, Sigma: 0.23},
			{Mass: 35.45, Epsilon: -0.01034, Sigma: 0.33},
		},
		Atoms: []AtomConfig{
			{X: 2.0, Y: 2.5, Element: 0, Charge: 1, Pinned: true},
			{X: 2.8, Y: 2.5, Element: 1, Charge: -1},
		},
		OutputInterval: 5,
	}
}

// PistonPreset is a gas column under a movable weighted obstacle with a
// south pressure probe.
func PistonPreset() *Config {
	return &Config{
		Name:              "piston",
		Width:             10,
		Height:            20,
		Dt:                1,
		Duration:          10000,
		LennardJones:      true,
		Thermostat:        true,
		TargetTemperature: 300,
		Elements:          []ElementConfig{{Mass: 39.95, Epsilon: -0.01034, Sigma: 0.34}},
		Random:            &RandomConfig{Count: 80, Temperature: 300},
		Obstacles: []ObstacleConfig{
			{X: 0.5, Y: 15, Width: 9, Height: 1, Mass: 500, SouthProbe: true},
		},
		OutputInterval: 20,
	}
}
