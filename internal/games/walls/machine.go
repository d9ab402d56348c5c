package walls

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/closing-walls/internal/config"
	"github.com/vovakirdan/closing-walls/internal/sched"
)

// State is a lifecycle state of the game.
type State int

const (
	StateStart State = iota
	StatePlaying
	StatePaused
	StateCollision
	StateGameOverAnimating
	StateGameOver
)

var stateNames = map[State]string{
	StateStart:             "start",
	StatePlaying:           "playing",
	StatePaused:            "paused",
	StateCollision:         "collision",
	StateGameOverAnimating: "game_over_animating",
	StateGameOver:          "game_over",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Active reports whether frames are produced in this state.
// Start runs the idle demo; Paused and GameOver are frozen.
func (s State) Active() bool {
	switch s {
	case StateStart, StatePlaying, StateCollision, StateGameOverAnimating:
		return true
	}
	return false
}

// Ending records how a session finished.
type Ending int

const (
	EndingNone Ending = iota
	EndingCollision
	EndingTimeout
)

func (e Ending) String() string {
	switch e {
	case EndingCollision:
		return "collision"
	case EndingTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// MarshalText encodes the ending by name.
func (e Ending) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Session is one play-through. A new value replaces the old one on every
// StartGame; nothing carries over.
type Session struct {
	ID       uint64
	State    State
	Walls    WallGrowth
	Ball     Ball
	Held     Direction
	Coverage int
	Final    *Breakdown
	Ending   Ending

	EnteredAt          time.Time // Entry into the current state
	ExplosionStartedAt time.Time
	GameOverStartedAt  time.Time

	played       time.Duration // Time spent Playing, excluding the current stretch
	playingSince time.Time
}

// BoardFunc reports the current board size. It is called on every use.
type BoardFunc func() Board

// TransitionFunc observes state changes.
type TransitionFunc func(from, to State)

// Deps are the machine's collaborators.
type Deps struct {
	Scheduler sched.Scheduler
	Board     BoardFunc
	Logger    *log.Logger // Optional
	Seed      int64       // 0 picks a time-based seed
}

// Machine owns the session and every transition between states.
// All methods must be called from the scheduler's goroutine.
type Machine struct {
	cfg       config.WallsConfig
	sim       Simulator
	sched     sched.Scheduler
	board     BoardFunc
	logger    *log.Logger
	rng       *rand.Rand
	countdown *Countdown

	session   Session
	sessions  uint64
	frame     uint64
	listeners []TransitionFunc
}

// NewMachine creates a machine in the Start state.
func NewMachine(cfg config.WallsConfig, deps Deps) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("walls: new machine: %w", err)
	}
	if deps.Scheduler == nil {
		return nil, fmt.Errorf("walls: new machine: %w: no scheduler", config.ErrInvalidConfig)
	}
	if deps.Board == nil {
		return nil, fmt.Errorf("walls: new machine: %w: no board provider", config.ErrInvalidConfig)
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Machine{
		cfg: cfg,
		sim: Simulator{
			Radius: cfg.Ball.Radius,
			SpeedX: cfg.Ball.SpeedX,
			SpeedY: cfg.Ball.SpeedY,
		},
		sched:  deps.Scheduler,
		board:  deps.Board,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
	m.countdown = NewCountdown(m.sched, cfg.Timing.TimeBudget, m.timeout)
	m.session = Session{State: StateStart, EnteredAt: m.sched.Now()}
	if b := m.board(); b.Validate() == nil {
		m.session.Ball = m.spawn(WallGrowth{}, b)
	}
	return m, nil
}

// OnTransition registers fn to run after every state change.
func (m *Machine) OnTransition(fn TransitionFunc) {
	m.listeners = append(m.listeners, fn)
}

// State returns the current state.
func (m *Machine) State() State {
	return m.session.State
}

// Session returns a copy of the current session.
func (m *Machine) Session() Session {
	s := m.session
	if s.Final != nil {
		f := *s.Final
		s.Final = &f
	}
	return s
}

// Config returns the configuration the machine was built with.
func (m *Machine) Config() config.WallsConfig {
	return m.cfg
}

// StartGame replaces the session with a fresh one and enters Playing.
// It works from any state. An unusable board fails fast and leaves the
// current session untouched.
func (m *Machine) StartGame() error {
	board := m.board()
	if err := board.Validate(); err != nil {
		m.logger.Warn("refusing to start", "board", board, "err", err)
		return fmt.Errorf("walls: start game: %w", err)
	}

	from := m.session.State
	m.exit(from)
	m.countdown.Reset()

	m.sessions++
	m.session = Session{
		ID:    m.sessions,
		State: from,
		Ball:  m.spawn(WallGrowth{}, board),
	}
	m.enter(from, StatePlaying)
	return nil
}

// PauseGame toggles between Playing and Paused. Other states ignore it.
func (m *Machine) PauseGame() {
	switch m.session.State {
	case StatePlaying:
		m.transition(StatePaused)
	case StatePaused:
		m.transition(StatePlaying)
	}
}

// Press records dir as held and grows the wall it pushes. Ignored outside
// Playing.
func (m *Machine) Press(dir Direction) {
	if m.session.State != StatePlaying {
		return
	}
	w, ok := dir.Grows()
	if !ok {
		return
	}
	m.session.Held = dir
	m.session.Walls.Grow(w, m.step(w))
	m.updateCoverage(m.board())
}

// Release clears the held direction. Walls keep their size.
func (m *Machine) Release() {
	m.session.Held = DirNone
}

// Frame advances the machine by one render frame.
//
// Playing runs one simulation tick. Collision and GameOverAnimating check
// their duration against the clock and move on once it has elapsed. Start
// bounces the demo ball without walls. Other states do nothing.
func (m *Machine) Frame() {
	m.frame++
	now := m.sched.Now()

	switch m.session.State {
	case StateStart:
		if b := m.board(); b.Validate() == nil {
			m.sim.Step(&m.session.Ball, WallGrowth{}, b, DirNone)
		}
	case StatePlaying:
		m.tick()
	case StateCollision:
		if now.Sub(m.session.ExplosionStartedAt) >= m.cfg.Timing.Explosion {
			m.transition(StateGameOverAnimating)
		}
	case StateGameOverAnimating:
		if now.Sub(m.session.GameOverStartedAt) >= m.cfg.Timing.GameOver {
			m.transition(StateGameOver)
		}
	}
}

// TimeLeft returns the countdown's remaining seconds.
func (m *Machine) TimeLeft() int {
	return m.countdown.Left()
}

// Elapsed returns the whole seconds spent Playing in this session.
func (m *Machine) Elapsed() int {
	d := m.session.played
	if m.session.State == StatePlaying {
		d += m.sched.Now().Sub(m.session.playingSince)
	}
	return int(d / time.Second)
}

// Shutdown stops the countdown. The machine is unusable afterwards.
func (m *Machine) Shutdown() {
	m.countdown.Stop()
	m.listeners = nil
}

func (m *Machine) tick() {
	board := m.board()
	if board.Validate() != nil {
		return
	}

	impact := m.sim.Step(&m.session.Ball, m.session.Walls, board, m.session.Held)
	m.updateCoverage(board)

	if impact.Lethal {
		wall, _ := impact.Struck()
		m.logger.Debug("lethal collision", "session", m.session.ID, "wall", wall, "held", m.session.Held)
		m.finish(EndingCollision)
		m.session.ExplosionStartedAt = m.sched.Now()
		m.transition(StateCollision)
	}
}

// timeout runs when the countdown reaches zero.
func (m *Machine) timeout() {
	if m.session.State != StatePlaying {
		return
	}
	m.updateCoverage(m.board())
	m.finish(EndingTimeout)
	m.transition(StateGameOverAnimating)
}

// finish freezes the final score. It must run while still Playing so the
// current stretch counts toward elapsed time.
func (m *Machine) finish(ending Ending) {
	score := CalculateScore(m.session.Coverage, m.Elapsed(), true)
	m.session.Final = &score
	m.session.Ending = ending
}

func (m *Machine) transition(to State) {
	from := m.session.State
	m.exit(from)
	m.enter(from, to)
}

func (m *Machine) exit(from State) {
	if from != StatePlaying {
		return
	}
	m.countdown.Stop()
	m.session.played += m.sched.Now().Sub(m.session.playingSince)
	m.session.Held = DirNone
}

func (m *Machine) enter(from, to State) {
	now := m.sched.Now()
	m.session.State = to
	m.session.EnteredAt = now

	switch to {
	case StatePlaying:
		m.session.playingSince = now
		m.countdown.Start()
	case StateGameOverAnimating:
		m.session.GameOverStartedAt = now
	}

	m.logger.Debug("transition", "session", m.session.ID, "from", from, "to", to)
	for _, fn := range m.listeners {
		fn(from, to)
	}
}

func (m *Machine) updateCoverage(b Board) {
	m.session.Coverage = Coverage(m.session.Walls, b)
}

func (m *Machine) step(w Wall) float64 {
	if w == WallTop || w == WallBottom {
		return m.cfg.Walls.StepVertical
	}
	return m.cfg.Walls.StepHorizontal
}

// spawn centers a ball in the open rectangle with a random diagonal heading.
func (m *Machine) spawn(g WallGrowth, b Board) Ball {
	sx, sy := 1.0, 1.0
	if m.rng.Intn(2) == 0 {
		sx = -1
	}
	if m.rng.Intn(2) == 0 {
		sy = -1
	}
	return m.sim.Spawn(g, b, sx, sy)
}
