// Package config provides YAML-based game configuration loading and
// difficulty presets for Closing Walls.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// WallsConfig contains all configuration for the Closing Walls game.
type WallsConfig struct {
	Ball   BallConfig   `yaml:"ball"`
	Walls  WallsStep    `yaml:"walls"`
	Timing TimingConfig `yaml:"timing"`
	Board  BoardConfig  `yaml:"board"`
}

// BallConfig defines the ball's size and fixed speed.
type BallConfig struct {
	Radius float64 `yaml:"radius"`
	SpeedX float64 `yaml:"speed_x"`
	SpeedY float64 `yaml:"speed_y"`
}

// WallsStep defines how far a wall advances per key press.
type WallsStep struct {
	StepHorizontal float64 `yaml:"step_horizontal"` // Left and right walls
	StepVertical   float64 `yaml:"step_vertical"`   // Top and bottom walls
}

// TimingConfig defines the match clock and animation durations.
type TimingConfig struct {
	TimeBudget int           `yaml:"time_budget"` // Seconds
	Explosion  time.Duration `yaml:"explosion"`
	GameOver   time.Duration `yaml:"game_over"`
	KeyHold    time.Duration `yaml:"key_hold"`
}

// BoardConfig defines how the terminal maps to the board.
type BoardConfig struct {
	HUDRows int `yaml:"hud_rows"`
}

// Validate checks that every value is usable by the engine.
func (c WallsConfig) Validate() error {
	switch {
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball.radius must be positive, got %v", ErrInvalidConfig, c.Ball.Radius)
	case c.Ball.SpeedX <= 0 || c.Ball.SpeedY <= 0:
		return fmt.Errorf("%w: ball speeds must be positive, got %v/%v", ErrInvalidConfig, c.Ball.SpeedX, c.Ball.SpeedY)
	case c.Walls.StepHorizontal <= 0 || c.Walls.StepVertical <= 0:
		return fmt.Errorf("%w: wall steps must be positive", ErrInvalidConfig)
	case c.Timing.TimeBudget <= 0:
		return fmt.Errorf("%w: timing.time_budget must be positive, got %d", ErrInvalidConfig, c.Timing.TimeBudget)
	case c.Timing.Explosion < 0 || c.Timing.GameOver < 0 || c.Timing.KeyHold < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	case c.Board.HUDRows < 0:
		return fmt.Errorf("%w: board.hud_rows must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the difficulty presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}
