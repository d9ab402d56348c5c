package walls

import "math"

// Ball is the bouncing ball. DX and DY keep fixed magnitudes; only their
// signs change on a bounce.
type Ball struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Impact describes what happened to the ball during one tick.
type Impact struct {
	Bounced []Wall // Walls reflected off this tick, in test order
	Lethal  bool   // The last bounced wall was the one being grown
}

// Struck returns the last wall hit this tick.
func (i Impact) Struck() (Wall, bool) {
	if len(i.Bounced) == 0 {
		return 0, false
	}
	return i.Bounced[len(i.Bounced)-1], true
}

// Simulator advances the ball inside the open rectangle.
type Simulator struct {
	Radius float64
	SpeedX float64
	SpeedY float64
}

// Step moves the ball by one tick.
//
// Boundaries are tested right, left, top, bottom against the projected
// position, each edge inset by half the radius. Crossing a boundary points
// that velocity component back inside. If held grows the wall just struck,
// the tick stops there: the ball is not moved and the impact is lethal.
func (s Simulator) Step(b *Ball, g WallGrowth, board Board, held Direction) Impact {
	var impact Impact
	half := s.Radius / 2

	hit := func(w Wall) bool {
		impact.Bounced = append(impact.Bounced, w)
		if held.Threatens(w) {
			impact.Lethal = true
			return true
		}
		return false
	}

	if b.X+b.DX > board.Width-half-g.Right {
		b.DX = -math.Abs(s.SpeedX)
		if hit(WallRight) {
			return impact
		}
	}
	if b.X+b.DX < half+g.Left {
		b.DX = math.Abs(s.SpeedX)
		if hit(WallLeft) {
			return impact
		}
	}
	if b.Y+b.DY < half+g.Up {
		b.DY = math.Abs(s.SpeedY)
		if hit(WallTop) {
			return impact
		}
	}
	if b.Y+b.DY > board.Height-half-g.Down {
		b.DY = -math.Abs(s.SpeedY)
		if hit(WallBottom) {
			return impact
		}
	}

	b.X += b.DX
	b.Y += b.DY
	return impact
}

// Spawn places a ball at the center of the open rectangle, heading in the
// given diagonal (signs of sx and sy; zero counts as positive).
func (s Simulator) Spawn(g WallGrowth, board Board, sx, sy float64) Ball {
	return Ball{
		X:  g.Left + g.OpenWidth(board)/2,
		Y:  g.Up + g.OpenHeight(board)/2,
		DX: math.Copysign(math.Abs(s.SpeedX), nonZero(sx)),
		DY: math.Copysign(math.Abs(s.SpeedY), nonZero(sy)),
	}
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
