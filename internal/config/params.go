package config

import (
	"fmt"
	"math"
	"sort"
)

var setters = map[string]func(c *Config, v float64){
	"cells":                   func(c *Config, v float64) { c.Cells = int(math.Round(v)) },
	"molecules":               func(c *Config, v float64) { c.Molecules = int(math.Round(v)) },
	"dt":                      func(c *Config, v float64) { c.Dt = v },
	"duration":                func(c *Config, v float64) { c.Duration = v },
	"cell.radius":             func(c *Config, v float64) { c.Cell.Radius = v },
	"cell.density":            func(c *Config, v float64) { c.Cell.Density = v },
	"cell.max_vel_change":     func(c *Config, v float64) { c.Cell.MaxVelChange = v },
	"cell.friction":           func(c *Config, v float64) { c.Cell.Friction = v },
	"molecule.radius":         func(c *Config, v float64) { c.Molecule.Radius = v },
	"molecule.density":        func(c *Config, v float64) { c.Molecule.Density = v },
	"molecule.max_vel_change": func(c *Config, v float64) { c.Molecule.MaxVelChange = v },
	"walls.restitution":       func(c *Config, v float64) { c.Walls.Restitution = v },
}

// Set assigns a numeric parameter by its dotted yaml path. Counts are rounded.
func (c *Config) Set(name string, v float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, Params())
	}
	set(c, v)
	return nil
}

func Params() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
