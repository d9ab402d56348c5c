package walls

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/closing-walls/internal/core"
)

var testLayout = Layout{HUDRows: 1, Reveal: 3 * time.Second}

func screenText(s *core.Screen) string {
	return s.String()
}

func TestRenderStartScreen(t *testing.T) {
	dst := core.NewScreen(60, 21)
	Render(dst, Snapshot{State: StateStart, Board: Board{60, 20}, TimeLeft: 60}, testLayout)

	text := screenText(dst)
	assert.Contains(t, text, "ENTER to start")
	assert.Contains(t, text, "Covered: 0%")
	assert.Contains(t, text, "Time: 60s")
}

func TestRenderWallsAndBall(t *testing.T) {
	dst := core.NewScreen(20, 11)
	snap := Snapshot{
		State: StatePlaying,
		Board: Board{20, 10},
		Walls: WallGrowth{Up: 2, Left: 3},
		Ball:  Ball{X: 10.4, Y: 5.7},
		Held:  DirRight, // Grows the left wall
	}
	Render(dst, snap, testLayout)

	// Board starts below the HUD row
	assert.Equal(t, WallChar, dst.GetCell(10, 1).Rune)
	assert.Equal(t, WallChar, dst.GetCell(10, 2).Rune)
	assert.Equal(t, ' ', dst.GetCell(10, 3).Rune)

	cell := dst.GetCell(0, 5)
	assert.Equal(t, HeldWallChar, cell.Rune)
	assert.Equal(t, core.ColorBrightRed, cell.Color)
	assert.Equal(t, HeldWallChar, dst.GetCell(2, 5).Rune)
	assert.NotEqual(t, HeldWallChar, dst.GetCell(3, 5).Rune)

	assert.Equal(t, BallChar, dst.GetCell(10, 6).Rune)

	// Top wall wins over the held left wall at the corner
	corner := dst.GetCell(0, 1)
	assert.Equal(t, WallChar, corner.Rune)
	assert.Equal(t, core.ColorBlue, corner.Color)
}

func TestRenderWallBandsFollowCellCentres(t *testing.T) {
	board := Board{12, 8}
	growths := []WallGrowth{
		{},
		{Up: 0.5, Down: 0.5, Left: 0.5, Right: 0.5},
		{Up: 0.51, Down: 0.49, Left: 1.5, Right: 1.51},
		{Up: 2.7, Down: 3.2, Left: 4.4, Right: 0.9},
		{Up: 5, Down: 5, Left: 7, Right: 7},
		{Up: 40, Left: 40},
	}

	// Reference rule: the cell centre decides, top and bottom first
	want := func(g WallGrowth, x, y int) (Wall, bool) {
		cx, cy := float64(x)+0.5, float64(y)+0.5
		switch {
		case cy < g.Up:
			return WallTop, true
		case cy > board.Height-g.Down:
			return WallBottom, true
		case cx < g.Left:
			return WallLeft, true
		case cx > board.Width-g.Right:
			return WallRight, true
		}
		return 0, false
	}

	for _, g := range growths {
		dst := core.NewScreen(12, 9)
		Render(dst, Snapshot{State: StatePlaying, Board: board, Walls: g, Ball: Ball{X: -5, Y: -5}}, testLayout)

		for y := range 8 {
			for x := range 12 {
				cell := dst.GetCell(x, y+1)
				w, ok := want(g, x, y)
				if !ok {
					assert.NotEqual(t, WallChar, cell.Rune, "%+v at (%d, %d)", g, x, y)
					continue
				}
				if assert.Equal(t, WallChar, cell.Rune, "%+v at (%d, %d)", g, x, y) {
					assert.Equal(t, wallColor(w), cell.Color, "%+v at (%d, %d)", g, x, y)
				}
			}
		}
	}
}

func TestRenderLowTimeIsRed(t *testing.T) {
	dst := core.NewScreen(40, 5)
	Render(dst, Snapshot{State: StatePlaying, Board: Board{40, 4}, TimeLeft: 9}, testLayout)

	row := strings.Split(dst.String(), "\n")[0]
	x := strings.Index(row, "Time")
	if assert.GreaterOrEqual(t, x, 0) {
		assert.Equal(t, core.ColorBrightRed, dst.GetCell(x, 0).Color)
	}
}

func TestRenderScoreReveal(t *testing.T) {
	final := CalculateScore(40, 20, true)
	rank := RankFor(final.Total)
	snap := Snapshot{
		State:    StateGameOverAnimating,
		Board:    Board{60, 20},
		Coverage: 40,
		Elapsed:  20,
		Final:    &final,
		Rank:     &rank,
		Ending:   EndingCollision,
	}

	dst := core.NewScreen(60, 21)
	Render(dst, snap, testLayout)
	text := screenText(dst)
	assert.Contains(t, text, "GAME OVER")
	assert.Contains(t, text, "Surface")
	assert.NotContains(t, text, "Rank:")
	assert.Contains(t, text, fmt.Sprintf("Score: %d", final.Total), "HUD shows the final total")

	snap.State = StateGameOver
	Render(dst, snap, testLayout)
	text = screenText(dst)
	assert.Contains(t, text, "Rank: "+rank.String())
	assert.Contains(t, text, "R: play again")
}

func TestRevealedLines(t *testing.T) {
	reveal := 3 * time.Second
	tests := []struct {
		state State
		age   time.Duration
		want  int
	}{
		{StatePlaying, time.Hour, 0},
		{StateGameOverAnimating, 0, 1},
		{StateGameOverAnimating, 599 * time.Millisecond, 1},
		{StateGameOverAnimating, 600 * time.Millisecond, 2},
		{StateGameOverAnimating, 2999 * time.Millisecond, 5},
		{StateGameOverAnimating, time.Minute, 5},
		{StateGameOver, 0, 5},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, RevealedLines(tc.state, tc.age, reveal), "%s at %v", tc.state, tc.age)
	}
}

func TestRenderTooSmall(t *testing.T) {
	dst := core.NewScreen(30, 3)
	Render(dst, Snapshot{Board: Board{0, 0}}, testLayout)
	assert.Contains(t, screenText(dst), "Window too small")
}
