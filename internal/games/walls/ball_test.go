package walls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSim = Simulator{Radius: 1, SpeedX: 1, SpeedY: 1}

var testBoard = Board{Width: 20, Height: 10}

// approach returns a ball one tick away from crossing w.
func approach(w Wall) Ball {
	switch w {
	case WallRight:
		return Ball{X: 19, Y: 5, DX: 1}
	case WallLeft:
		return Ball{X: 1, Y: 5, DX: -1}
	case WallTop:
		return Ball{X: 10, Y: 1, DY: -1}
	default:
		return Ball{X: 10, Y: 9, DY: 1}
	}
}

func TestStepReflectsAndLethalTable(t *testing.T) {
	walls := []Wall{WallTop, WallBottom, WallLeft, WallRight}
	dirs := []Direction{DirNone, DirUp, DirDown, DirLeft, DirRight}

	for _, w := range walls {
		for _, d := range dirs {
			t.Run(w.String()+"/"+d.String(), func(t *testing.T) {
				b := approach(w)
				before := b
				impact := testSim.Step(&b, WallGrowth{}, testBoard, d)

				require.Equal(t, []Wall{w}, impact.Bounced)
				assert.Equal(t, d.Threatens(w), impact.Lethal)

				// Velocity flips on the struck axis, magnitude unchanged
				if w == WallLeft || w == WallRight {
					assert.Equal(t, -before.DX, b.DX)
				} else {
					assert.Equal(t, -before.DY, b.DY)
				}

				if impact.Lethal {
					assert.Equal(t, before.X, b.X, "lethal tick must not move the ball")
					assert.Equal(t, before.Y, b.Y)
				} else {
					assert.Equal(t, before.X+b.DX, b.X)
					assert.Equal(t, before.Y+b.DY, b.Y)
				}
			})
		}
	}
}

func TestStepFreeFlight(t *testing.T) {
	b := Ball{X: 10, Y: 5, DX: 1, DY: -1}
	impact := testSim.Step(&b, WallGrowth{}, testBoard, DirUp)

	assert.Empty(t, impact.Bounced)
	assert.False(t, impact.Lethal)
	assert.Equal(t, Ball{X: 11, Y: 4, DX: 1, DY: -1}, b)
}

func TestStepUsesGrownWalls(t *testing.T) {
	// Right edge is 20 - 0.5 - 5 = 14.5
	g := WallGrowth{Right: 5}
	b := Ball{X: 14, Y: 5, DX: 1, DY: 1}
	impact := testSim.Step(&b, g, testBoard, DirNone)

	assert.Equal(t, []Wall{WallRight}, impact.Bounced)
	assert.Equal(t, 13.0, b.X)
}

func TestStepCornerOrder(t *testing.T) {
	t.Run("both walls harmless", func(t *testing.T) {
		b := Ball{X: 19, Y: 9, DX: 1, DY: 1}
		impact := testSim.Step(&b, WallGrowth{}, testBoard, DirNone)
		assert.Equal(t, []Wall{WallRight, WallBottom}, impact.Bounced)
		assert.Equal(t, Ball{X: 18, Y: 8, DX: -1, DY: -1}, b)
	})

	t.Run("second wall lethal", func(t *testing.T) {
		b := Ball{X: 19, Y: 9, DX: 1, DY: 1}
		impact := testSim.Step(&b, WallGrowth{}, testBoard, DirDown) // Grows top
		assert.False(t, impact.Lethal)

		b = Ball{X: 19, Y: 9, DX: 1, DY: 1}
		impact = testSim.Step(&b, WallGrowth{}, testBoard, DirUp) // Grows bottom
		assert.True(t, impact.Lethal)
		assert.Equal(t, []Wall{WallRight, WallBottom}, impact.Bounced)
		wall, ok := impact.Struck()
		require.True(t, ok)
		assert.Equal(t, WallBottom, wall)
	})

	t.Run("first wall lethal short-circuits", func(t *testing.T) {
		b := Ball{X: 19, Y: 9, DX: 1, DY: 1}
		impact := testSim.Step(&b, WallGrowth{}, testBoard, DirLeft) // Grows right
		assert.True(t, impact.Lethal)
		assert.Equal(t, []Wall{WallRight}, impact.Bounced)
		assert.Equal(t, 1.0, b.DY, "bottom is not tested after a lethal hit")
	})
}

func TestSpawnCentersBall(t *testing.T) {
	g := WallGrowth{Left: 4, Up: 2}
	b := testSim.Spawn(g, testBoard, -1, 0)

	assert.Equal(t, 12.0, b.X)
	assert.Equal(t, 6.0, b.Y)
	assert.Equal(t, -1.0, b.DX)
	assert.Equal(t, 1.0, b.DY)
}
