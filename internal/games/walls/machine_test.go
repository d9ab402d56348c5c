package walls

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/closing-walls/internal/config"
	"github.com/vovakirdan/closing-walls/internal/sched"
)

type harness struct {
	m     *Machine
	clk   *sched.Manual
	board *Board
	log   []State
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clk:   sched.NewManual(epoch),
		board: &Board{Width: 40, Height: 20},
	}
	m, err := NewMachine(config.DefaultWallsConfig(), Deps{
		Scheduler: h.clk,
		Board:     func() Board { return *h.board },
		Seed:      42,
	})
	require.NoError(t, err)
	m.OnTransition(func(_, to State) { h.log = append(h.log, to) })
	h.m = m
	return h
}

func (h *harness) count(s State) int {
	n := 0
	for _, x := range h.log {
		if x == s {
			n++
		}
	}
	return n
}

// aimAtRight places the ball one tick from the right edge.
func (h *harness) aimAtRight() {
	edge := h.board.Width - h.m.sim.Radius/2 - h.m.session.Walls.Right
	h.m.session.Ball = Ball{X: edge - 0.1, Y: h.board.Height / 2, DX: h.m.sim.SpeedX, DY: h.m.sim.SpeedY}
}

func TestNewMachineStartsInStart(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, StateStart, h.m.State())
	assert.Equal(t, 60, h.m.TimeLeft())
	assert.Equal(t, 0, h.clk.Pending(), "nothing ticks before a game starts")
}

func TestNewMachineRejectsBadInput(t *testing.T) {
	clk := sched.NewManual(epoch)
	board := func() Board { return Board{10, 10} }

	cfg := config.DefaultWallsConfig()
	cfg.Ball.Radius = 0
	_, err := NewMachine(cfg, Deps{Scheduler: clk, Board: board})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = NewMachine(config.DefaultWallsConfig(), Deps{Board: board})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = NewMachine(config.DefaultWallsConfig(), Deps{Scheduler: clk})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestStartGameResetsSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())

	h.m.Press(DirUp)
	h.m.Press(DirLeft)
	h.clk.Advance(5 * time.Second)
	require.Greater(t, h.m.Session().Coverage, 0)
	require.Equal(t, 55, h.m.TimeLeft())
	first := h.m.Session().ID

	require.NoError(t, h.m.StartGame())
	s := h.m.Session()

	assert.Equal(t, StatePlaying, s.State)
	assert.Greater(t, s.ID, first)
	assert.Equal(t, 0, s.Coverage)
	assert.Equal(t, WallGrowth{}, s.Walls)
	assert.Equal(t, 60, h.m.TimeLeft())
	assert.Nil(t, s.Final)
	assert.Equal(t, EndingNone, s.Ending)
	assert.Equal(t, 0, h.m.Elapsed())

	// Strictly inside the open rectangle
	assert.Greater(t, s.Ball.X, 0.0)
	assert.Less(t, s.Ball.X, h.board.Width)
	assert.Greater(t, s.Ball.Y, 0.0)
	assert.Less(t, s.Ball.Y, h.board.Height)
	assert.Equal(t, math.Abs(s.Ball.DX), h.m.sim.SpeedX)
	assert.Equal(t, math.Abs(s.Ball.DY), h.m.sim.SpeedY)

	// Only one countdown survives the restart
	assert.Equal(t, 1, h.clk.Pending())
}

func TestStartGameFromEveryState(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())
	h.m.PauseGame()
	require.Equal(t, StatePaused, h.m.State())

	require.NoError(t, h.m.StartGame())
	assert.Equal(t, StatePlaying, h.m.State())
	assert.Equal(t, 1, h.clk.Pending())
}

func TestStartGameRejectsInvalidBoard(t *testing.T) {
	h := newHarness(t)
	for _, b := range []Board{{0, 20}, {40, -1}, {math.NaN(), 20}, {math.Inf(1), 20}} {
		*h.board = b
		err := h.m.StartGame()
		assert.ErrorIs(t, err, ErrInvalidBoard)
		assert.Equal(t, StateStart, h.m.State())
		assert.Equal(t, 0, h.clk.Pending())
	}
}

func TestPauseToggles(t *testing.T) {
	h := newHarness(t)
	h.m.PauseGame()
	assert.Equal(t, StateStart, h.m.State(), "pause is ignored before playing")

	require.NoError(t, h.m.StartGame())
	h.m.PauseGame()
	assert.Equal(t, StatePaused, h.m.State())
	h.m.PauseGame()
	assert.Equal(t, StatePlaying, h.m.State())
}

func TestPausedFramesFreezeSimulation(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())
	h.m.Press(DirDown)
	h.m.Frame()

	h.m.PauseGame()
	before := h.m.Session()
	for range 100 {
		h.m.Frame()
	}
	after := h.m.Session()

	assert.Equal(t, before.Ball, after.Ball)
	assert.Equal(t, before.Walls, after.Walls)
	assert.Equal(t, StatePaused, after.State)
}

func TestPressIgnoredOutsidePlaying(t *testing.T) {
	h := newHarness(t)
	h.m.Press(DirUp)
	assert.Equal(t, WallGrowth{}, h.m.Session().Walls)
	assert.Equal(t, DirNone, h.m.Session().Held)

	require.NoError(t, h.m.StartGame())
	h.m.PauseGame()
	h.m.Press(DirUp)
	assert.Equal(t, WallGrowth{}, h.m.Session().Walls)
	assert.Equal(t, DirNone, h.m.Session().Held)
}

func TestPressGrowsOppositeWall(t *testing.T) {
	cfg := config.DefaultWallsConfig()
	tests := []struct {
		dir  Direction
		want WallGrowth
	}{
		{DirUp, WallGrowth{Down: cfg.Walls.StepVertical}},
		{DirDown, WallGrowth{Up: cfg.Walls.StepVertical}},
		{DirLeft, WallGrowth{Right: cfg.Walls.StepHorizontal}},
		{DirRight, WallGrowth{Left: cfg.Walls.StepHorizontal}},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.m.StartGame())
			h.m.Press(tc.dir)
			s := h.m.Session()
			assert.Equal(t, tc.want, s.Walls)
			assert.Equal(t, tc.dir, s.Held)

			h.m.Release()
			assert.Equal(t, DirNone, h.m.Session().Held)
			assert.Equal(t, tc.want, h.m.Session().Walls, "release never shrinks walls")
		})
	}
}

func TestCoverageUsesCurrentBoard(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())
	for range 10 {
		h.m.Press(DirLeft) // Right wall to 20 on a 40 wide board
	}
	assert.Equal(t, 50, h.m.Session().Coverage)

	h.board.Width = 80
	h.m.Frame()
	assert.Equal(t, 25, h.m.Session().Coverage)
}

func TestLethalCollision(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())
	h.clk.Advance(3 * time.Second)

	h.m.Press(DirLeft) // Grows the right wall
	h.aimAtRight()
	before := h.m.Session().Ball
	h.m.Frame()

	s := h.m.Session()
	require.Equal(t, StateCollision, s.State)
	assert.Equal(t, EndingCollision, s.Ending)
	assert.Equal(t, before.X, s.Ball.X, "ball is not moved on the lethal tick")
	assert.Equal(t, -before.DX, s.Ball.DX)
	require.NotNil(t, s.Final)
	assert.Equal(t, CalculateScore(s.Coverage, 3, true), *s.Final)
	assert.Equal(t, 0, h.clk.Pending(), "countdown stops when leaving Playing")
	assert.Equal(t, 57, h.m.TimeLeft())
}

func TestBounceOffUnheldWallIsHarmless(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())

	h.m.Press(DirRight) // Grows the left wall
	h.aimAtRight()
	h.m.Frame()
	assert.Equal(t, StatePlaying, h.m.State())
	assert.Less(t, h.m.Session().Ball.DX, 0.0)
}

func TestBounceAfterReleaseIsHarmless(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())

	h.m.Press(DirLeft)
	h.m.Release()
	h.aimAtRight()
	h.m.Frame()
	assert.Equal(t, StatePlaying, h.m.State())
}

func TestCollisionAnimatesToGameOverOnce(t *testing.T) {
	h := newHarness(t)
	cfg := h.m.Config()
	require.NoError(t, h.m.StartGame())
	h.m.Press(DirLeft)
	h.aimAtRight()
	h.m.Frame()
	require.Equal(t, StateCollision, h.m.State())

	h.clk.Advance(cfg.Timing.Explosion - time.Millisecond)
	h.m.Frame()
	assert.Equal(t, StateCollision, h.m.State())

	h.clk.Advance(time.Millisecond)
	h.m.Frame()
	require.Equal(t, StateGameOverAnimating, h.m.State())

	h.clk.Advance(cfg.Timing.GameOver - time.Millisecond)
	h.m.Frame()
	assert.Equal(t, StateGameOverAnimating, h.m.State())

	h.clk.Advance(time.Millisecond)
	for range 20 {
		h.m.Frame()
		h.clk.Advance(time.Second)
	}
	assert.Equal(t, StateGameOver, h.m.State())
	assert.Equal(t, 1, h.count(StateGameOver), "GameOver is entered exactly once")
	assert.Equal(t, 1, h.count(StateGameOverAnimating))
}

func TestTimeoutEndsWithTimeBonus(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())
	h.m.Press(DirLeft)
	h.m.Release()
	coverage := h.m.Session().Coverage

	h.clk.Advance(60 * time.Second)

	s := h.m.Session()
	require.Equal(t, StateGameOverAnimating, s.State)
	assert.Equal(t, EndingTimeout, s.Ending)
	assert.Equal(t, 0, h.m.TimeLeft())
	require.NotNil(t, s.Final)
	assert.Equal(t, CalculateScore(coverage, 60, true), *s.Final)
	assert.Equal(t, 600, s.Final.TimeBonus)
	assert.Equal(t, 0, h.count(StateCollision), "timeout skips the collision state")
}

func TestElapsedExcludesPausedTime(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())

	h.clk.Advance(3 * time.Second)
	h.m.PauseGame()
	h.clk.Advance(10 * time.Second)
	assert.Equal(t, 3, h.m.Elapsed())
	assert.Equal(t, 57, h.m.TimeLeft())

	h.m.PauseGame()
	h.clk.Advance(2 * time.Second)
	assert.Equal(t, 5, h.m.Elapsed())
	assert.Equal(t, 55, h.m.TimeLeft())
}

func TestLeavingPlayingClearsHeld(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())
	h.m.Press(DirUp)
	h.m.PauseGame()
	assert.Equal(t, DirNone, h.m.Session().Held)
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())
	for range 5 {
		h.m.Press(DirLeft)
	}
	h.clk.Advance(4 * time.Second)

	snap := h.m.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, *h.board, snap.Board)
	assert.Equal(t, 25, snap.Coverage)
	assert.Equal(t, 56, snap.TimeLeft)
	assert.Equal(t, 4, snap.Elapsed)
	assert.Equal(t, CalculateScore(25, 4, false).Total, snap.CurrentScore)
	assert.Nil(t, snap.Final)
	assert.Nil(t, snap.Rank)
	assert.False(t, snap.Finished())

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "playing", decoded["state"])
	assert.Equal(t, "left", decoded["held"])
	assert.NotContains(t, decoded, "final")
}

func TestSnapshotCarriesFinalScore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.StartGame())
	h.clk.Advance(60 * time.Second)

	snap := h.m.Snapshot()
	require.True(t, snap.Finished())
	require.NotNil(t, snap.Rank)
	assert.Equal(t, RankFor(snap.Final.Total), *snap.Rank)

	// Snapshots do not alias session memory
	snap.Final.Total = -1
	assert.NotEqual(t, -1, h.m.Session().Final.Total)
}
