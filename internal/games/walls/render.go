package walls

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/closing-walls/internal/core"
)

// Glyphs used by Render.
const (
	WallChar      = '█'
	HeldWallChar  = '▓'
	BallChar      = 'O'
	ExplosionChar = '*'
)

// LowTime is the countdown value at which the timer turns red.
const LowTime = 10

// Layout tells Render where the board sits on the screen.
type Layout struct {
	HUDRows int           // Rows above the board reserved for the HUD
	Reveal  time.Duration // Duration of the score reveal after the game ends
}

// Render draws a snapshot. One board unit is one terminal cell.
func Render(dst *core.Screen, s Snapshot, l Layout) {
	dst.Clear()

	if s.Board.Validate() != nil || dst.Height() <= l.HUDRows {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	renderBoard(dst, s, l.HUDRows)
	if l.HUDRows > 0 {
		renderHUD(dst, s)
	}
	renderOverlay(dst, s, l)
}

// renderHUD draws coverage, time and score on row 0.
func renderHUD(dst *core.Screen, s Snapshot) {
	covered := fmt.Sprintf("Covered: %d%%", s.Coverage)
	dst.DrawTextColor(1, 0, covered, core.ColorBrightGreen)

	score := fmt.Sprintf("Score: %d", s.CurrentScore)
	if s.Finished() {
		score = fmt.Sprintf("Score: %d", s.Final.Total)
	}
	dst.DrawTextCenteredColor(0, score, core.ColorBrightYellow)

	timeColor := core.ColorBrightCyan
	if s.TimeLeft <= LowTime {
		timeColor = core.ColorBrightRed
	}
	timeText := fmt.Sprintf("Time: %ds", s.TimeLeft)
	if s.Held != DirNone {
		timeText = fmt.Sprintf("[%s] %s", s.Held, timeText)
	}
	dst.DrawTextColor(dst.Width()-len(timeText)-1, 0, timeText, timeColor)
}

// renderBoard draws the walls and the ball below the HUD. A cell belongs to
// a wall when its centre lies inside it.
func renderBoard(dst *core.Screen, s Snapshot, top int) {
	g, b := s.Walls, s.Board
	cols, rows := dst.Width(), dst.Height()-top

	up := cellsBefore(g.Up, rows)
	down := firstCellAfter(b.Height-g.Down, rows)
	left := cellsBefore(g.Left, cols)
	right := firstCellAfter(b.Width-g.Right, cols)

	// Later bands overwrite earlier ones, so top and bottom win at the corners.
	bands := []struct {
		wall Wall
		rect core.Rect
	}{
		{WallRight, core.NewRect(right, top, cols-right, rows)},
		{WallLeft, core.NewRect(0, top, left, rows)},
		{WallBottom, core.NewRect(0, top+down, cols, rows-down)},
		{WallTop, core.NewRect(0, top, cols, up)},
	}
	held, holding := s.Held.Grows()
	for _, band := range bands {
		if holding && band.wall == held {
			dst.DrawRectColor(band.rect, HeldWallChar, core.ColorBrightRed)
		} else {
			dst.DrawRectColor(band.rect, WallChar, wallColor(band.wall))
		}
	}

	bx := int(math.Floor(s.Ball.X))
	by := int(math.Floor(s.Ball.Y)) + top
	if s.State == StateCollision {
		for _, d := range [][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-2, 0}, {2, 0}} {
			if by+d[1] >= top {
				dst.SetColor(bx+d[0], by+d[1], ExplosionChar, core.ColorOrange)
			}
		}
		return
	}
	if s.State != StateGameOverAnimating && s.State != StateGameOver {
		dst.SetColor(bx, by, BallChar, core.ColorBrightWhite)
	}
}

// cellsBefore counts the leading cells, out of n, whose centre is below v.
func cellsBefore(v float64, n int) int {
	return int(max(0, min(float64(n), math.Ceil(v-0.5))))
}

// firstCellAfter returns the first cell, out of n, whose centre is above v.
func firstCellAfter(v float64, n int) int {
	return int(max(0, min(float64(n), math.Floor(v-0.5)+1)))
}

func wallColor(w Wall) core.Color {
	if w == WallTop || w == WallBottom {
		return core.ColorBlue
	}
	return core.ColorCyan
}

// renderOverlay draws the per-state messages.
func renderOverlay(dst *core.Screen, s Snapshot, l Layout) {
	cy := dst.Height() / 2

	switch s.State {
	case StateStart:
		dst.DrawTextCenteredColor(cy-2, "C L O S I N G   W A L L S", core.ColorBrightCyan)
		dst.DrawTextCentered(cy, "Grow the walls, trap the ball.")
		dst.DrawTextCentered(cy+1, "Never let it hit the wall you are pushing.")
		dst.DrawTextCenteredColor(cy+3, "ENTER to start", core.ColorBrightYellow)
		dst.DrawTextCenteredColor(cy+5, "Arrows/WASD: push walls  P: pause  Q: quit", core.ColorGray)

	case StatePaused:
		dst.DrawTextCenteredColor(cy, "PAUSED", core.ColorBrightYellow)
		dst.DrawTextCenteredColor(cy+2, "P to resume", core.ColorGray)

	case StateCollision:
		dst.DrawTextCenteredColor(l.HUDRows+1, "CRASH!", core.ColorBrightRed)

	case StateGameOverAnimating, StateGameOver:
		renderScoreReveal(dst, s, l)
	}
}

// revealSteps is the number of lines in the score reveal.
const revealSteps = 5

// RevealedLines returns how many score lines are visible at the given age.
func RevealedLines(state State, age, reveal time.Duration) int {
	if state == StateGameOver || reveal <= 0 {
		return revealSteps
	}
	if state != StateGameOverAnimating {
		return 0
	}
	n := int(age*revealSteps/reveal) + 1
	return min(n, revealSteps)
}

// renderScoreReveal draws the breakdown one line at a time.
func renderScoreReveal(dst *core.Screen, s Snapshot, l Layout) {
	if !s.Finished() {
		return
	}
	f := *s.Final
	cy := dst.Height()/2 - 4

	title := "GAME OVER"
	if s.Ending == EndingTimeout {
		title = "TIME UP"
	}
	dst.DrawTextCenteredColor(cy, title, core.ColorBrightGreen)

	lines := []struct {
		text  string
		color core.Color
	}{
		{fmt.Sprintf("Surface     %6d  (%d%%)", f.Surface, s.Coverage), core.ColorBrightGreen},
		{fmt.Sprintf("Time bonus  %6d  (%ds)", f.TimeBonus, s.Elapsed), core.ColorBrightCyan},
		{fmt.Sprintf("Efficiency  %6d", f.Efficiency), core.ColorMagenta},
		{fmt.Sprintf("Total       %6d", f.Total), core.ColorBrightYellow},
	}
	if s.Rank != nil {
		lines = append(lines, struct {
			text  string
			color core.Color
		}{fmt.Sprintf("Rank: %s", *s.Rank), s.Rank.Color()})
	}

	shown := RevealedLines(s.State, s.StateAge, l.Reveal)
	for i, line := range lines {
		if i >= shown {
			break
		}
		dst.DrawTextCenteredColor(cy+2+i, line.text, line.color)
	}

	if s.State == StateGameOver {
		dst.DrawTextCenteredColor(cy+len(lines)+3, "R: play again  B: menu  Q: quit", core.ColorGray)
	}
}
