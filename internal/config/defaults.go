package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/walls.yaml
var defaultWallsYAML []byte

// DefaultWallsConfig returns the default Closing Walls configuration.
func DefaultWallsConfig() WallsConfig {
	return WallsConfig{
		Ball: BallConfig{
			Radius: 1.0,
			SpeedX: 0.8,
			SpeedY: 0.4,
		},
		Walls: WallsStep{
			StepHorizontal: 2,
			StepVertical:   1,
		},
		Timing: TimingConfig{
			TimeBudget: 60,
			Explosion:  1500 * time.Millisecond,
			GameOver:   3000 * time.Millisecond,
			KeyHold:    550 * time.Millisecond,
		},
		Board: BoardConfig{
			HUDRows: 1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultWallsYAML
}
