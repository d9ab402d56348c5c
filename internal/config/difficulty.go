package config

// presetScaling holds the multipliers applied by a difficulty preset.
type presetScaling struct {
	budget float64 // Time budget multiplier
	speed  float64 // Ball speed multiplier
}

var scalings = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {budget: 1.5, speed: 0.75},
	DifficultyNormal: {budget: 1.0, speed: 1.0},
	DifficultyHard:   {budget: 0.75, speed: 1.4},
}

// ApplyWallsPreset scales the config for a difficulty preset.
// Easy gives more time and a slower ball, hard the opposite.
func ApplyWallsPreset(cfg *WallsConfig, preset DifficultyPreset) {
	sc, ok := scalings[preset]
	if !ok {
		return
	}
	budget := int(float64(cfg.Timing.TimeBudget) * sc.budget)
	if budget < 1 {
		budget = 1
	}
	cfg.Timing.TimeBudget = budget
	cfg.Ball.SpeedX *= sc.speed
	cfg.Ball.SpeedY *= sc.speed
}
