// Package walls implements the Closing Walls engine: four walls close in on a
// bouncing ball, and the player loses only by letting the ball strike the
// wall they are growing while still holding its key.
//
// Everything in this package runs on one logical thread supplied by a
// sched.Scheduler. Rendering is read-only and works from Snapshot values.
package walls

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBoard is returned when the board has no usable area.
var ErrInvalidBoard = errors.New("walls: invalid board size")

// Board is the playing field size in board units.
type Board struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate fails for zero, negative or non-finite dimensions.
func (b Board) Validate() error {
	if !finitePositive(b.Width) || !finitePositive(b.Height) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidBoard, b.Width, b.Height)
	}
	return nil
}

// Area returns width × height.
func (b Board) Area() float64 {
	return b.Width * b.Height
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// WallGrowth holds how far each wall has advanced into the board.
// Values only grow during a session.
type WallGrowth struct {
	Up    float64 `json:"up"`
	Down  float64 `json:"down"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Size returns the growth of one wall.
func (g WallGrowth) Size(w Wall) float64 {
	switch w {
	case WallTop:
		return g.Up
	case WallBottom:
		return g.Down
	case WallLeft:
		return g.Left
	case WallRight:
		return g.Right
	}
	return 0
}

// Grow advances a wall by step. Non-positive steps are ignored.
func (g *WallGrowth) Grow(w Wall, step float64) {
	if step <= 0 || math.IsNaN(step) {
		return
	}
	switch w {
	case WallTop:
		g.Up += step
	case WallBottom:
		g.Down += step
	case WallLeft:
		g.Left += step
	case WallRight:
		g.Right += step
	}
}

// OpenWidth returns the horizontal extent of the open rectangle, never negative.
func (g WallGrowth) OpenWidth(b Board) float64 {
	return math.Max(0, b.Width-g.Left-g.Right)
}

// OpenHeight returns the vertical extent of the open rectangle, never negative.
func (g WallGrowth) OpenHeight(b Board) float64 {
	return math.Max(0, b.Height-g.Up-g.Down)
}

// OpenArea returns the area the ball can still reach.
func (g WallGrowth) OpenArea(b Board) float64 {
	return g.OpenWidth(b) * g.OpenHeight(b)
}

// Coverage returns the percentage of the board taken by walls, floored to an
// integer in [0, 100]. An invalid board reports 0.
func Coverage(g WallGrowth, b Board) int {
	if b.Validate() != nil {
		return 0
	}
	total := b.Area()
	covered := total - g.OpenArea(b)
	pct := int(math.Floor(100 * covered / total))
	return max(0, min(100, pct))
}
