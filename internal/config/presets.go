package config

import "sort"

var Presets = map[string]*Config{
	// thz is the reference run.
	"thz": DefaultConfig(),
	"preview": with(func(c *Config) {
		c.SampleCount = 200
		c.Dx = 40e-6
		c.Render.Stride = 5
	}),
	"fine": with(func(c *Config) {
		c.Dx = 8e-6
		c.Render.Stride = 25
	}),
	"lowband": with(func(c *Config) {
		c.Cutoff = 1e11
		c.SampleCount = 500
		c.Dx = 20e-6
		c.Render.Stride = 10
	}),
}

func with(mutate func(*Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
