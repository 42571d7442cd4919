package config

import "sort"

var Presets = map[string]map[string]*Config{
	"projectile": {
		"max_range": {Lab: "projectile", Params: map[string]float64{"speed": 60, "angle": 45}},
		"high_lob":  {Lab: "projectile", Params: map[string]float64{"speed": 60, "angle": 75}},
		"low_shot":  {Lab: "projectile", Params: map[string]float64{"speed": 60, "angle": 15}},
		"cliff":     {Lab: "projectile", Params: map[string]float64{"speed": 40, "angle": 30, "height": 40}},
		"moon":      {Lab: "projectile", Params: map[string]float64{"speed": 20, "angle": 45, "gravity": 1.6}, Duration: 30},
	},
	"circular": {
		"fast":  {Lab: "circular", Params: map[string]float64{"speed": 15}},
		"tight": {Lab: "circular", Params: map[string]float64{"radius": 0.5}},
		"heavy": {Lab: "circular", Params: map[string]float64{"mass": 10}},
	},
	"shm": {
		"stiff": {Lab: "shm", Params: map[string]float64{"k": 200}},
		"heavy": {Lab: "shm", Params: map[string]float64{"mass": 10}},
		"wide":  {Lab: "shm", Params: map[string]float64{"amplitude": 2}, Duration: 20},
	},
	"friction": {
		"at_threshold": {Lab: "friction", Params: map[string]float64{"mass": 10, "force": 49}},
		"sliding":      {Lab: "friction", Params: map[string]float64{"mass": 10, "force": 100}},
		"ice":          {Lab: "friction", Params: map[string]float64{"surface": 1, "force": 20}},
		"rubber":       {Lab: "friction", Params: map[string]float64{"surface": 2, "force": 80}},
	},
	"vectors": {
		"perpendicular": {Lab: "vectors", Params: map[string]float64{"ax": 100, "ay": 0, "bx": 0, "by": 100}},
		"opposite":      {Lab: "vectors", Params: map[string]float64{"ax": 150, "ay": 50, "bx": -150, "by": -50}},
	},
	"optics": {
		"at_focus":  {Lab: "optics", Params: map[string]float64{"focal": 100, "distance": 100}},
		"at_2f":     {Lab: "optics", Params: map[string]float64{"focal": 100, "distance": 200}},
		"beyond_2f": {Lab: "optics", Params: map[string]float64{"focal": 100, "distance": 280}},
		"magnifier": {Lab: "optics", Params: map[string]float64{"focal": 100, "distance": 50}},
	},
}

func GetPreset(lab, preset string) *Config {
	labPresets, ok := Presets[lab]
	if !ok {
		return nil
	}
	cfg, ok := labPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(lab string) []string {
	labPresets, ok := Presets[lab]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(labPresets))
	for name := range labPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
