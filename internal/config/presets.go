package config

import "sort"

// Presets are named variations of DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(*Config) {},
	"buoyant": func(c *Config) {
		c.Cell.Density = 0.9
		c.Duration = 30
	},
	"crowded": func(c *Config) {
		c.Cells = 1000
		c.Clamp = true
	},
	"still": func(c *Config) {
		c.Cell.MaxVelChange = 0
		c.Cell.Density = 1.2
	},
	"tall": func(c *Config) {
		c.Box.Max = [3]float64{60, 300, 60}
		c.Cells = 40
		c.Molecules = 20
	},
	"soup": func(c *Config) {
		c.Cells = 27
		c.Molecules = 200
		c.Walls.Restitution = 0.5
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
