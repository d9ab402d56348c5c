package tui

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/closing-walls/internal/config"
	"github.com/vovakirdan/closing-walls/internal/core"
	"github.com/vovakirdan/closing-walls/internal/games/walls"
	"github.com/vovakirdan/closing-walls/internal/registry"
	"github.com/vovakirdan/closing-walls/internal/sched"
	"github.com/vovakirdan/closing-walls/internal/storage"
)

// HostConfig describes one game hosted for a terminal.
type HostConfig struct {
	Walls      config.WallsConfig
	Runtime    core.RuntimeConfig
	Difficulty string
	Player     string
	Store      *storage.Store     // Optional, finished games are saved here
	Registry   *registry.Registry // Optional, publishes snapshots to spectators
	Logger     *log.Logger
	Context    context.Context // Optional, the engine stops when it is done
}

// Host runs one engine on its own event loop and hands its snapshots to a
// Bubble Tea model. Every engine call goes through the loop.
type Host struct {
	cfg     HostConfig
	logger  *log.Logger
	loop    *sched.Loop
	machine *walls.Machine
	render  *walls.RenderLoop
	hold    *HoldTracker
	entry   *registry.Entry

	board walls.Board // Loop goroutine only
	saved uint64      // Last session written to the store, loop goroutine only

	frames    chan walls.Snapshot
	cancel    context.CancelFunc
	startOnce sync.Once
	closeOnce sync.Once
	dropOnce  sync.Once
}

// NewHost builds the engine. Start must be called to run it.
func NewHost(cfg HostConfig) (*Host, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Runtime.TickRate <= 0 {
		cfg.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}

	h := &Host{
		cfg:    cfg,
		logger: logger,
		loop:   sched.NewLoop(logger),
		frames: make(chan walls.Snapshot, 1),
	}
	h.board = boardFor(cfg.Runtime.ScreenW, cfg.Runtime.ScreenH, cfg.Walls.Board.HUDRows)

	m, err := walls.NewMachine(cfg.Walls, walls.Deps{
		Scheduler: h.loop,
		Board:     func() walls.Board { return h.board },
		Logger:    logger,
		Seed:      cfg.Runtime.Seed,
	})
	if err != nil {
		return nil, err
	}
	h.machine = m
	h.hold = NewHoldTracker(h.loop, cfg.Walls.Timing.KeyHold, m.Release)
	h.render = walls.NewRenderLoop(m, h.loop, cfg.Runtime.TickRate, h.publish)
	m.OnTransition(h.record)

	if cfg.Registry != nil {
		h.entry = cfg.Registry.Register(cfg.Player, cfg.Difficulty)
		h.logger.Debug("session registered", "id", h.entry.ID(), "live", cfg.Registry.Len())
	}
	return h, nil
}

// boardFor maps a terminal size to a board: one cell per unit, minus the HUD.
func boardFor(width, height, hudRows int) walls.Board {
	return walls.Board{
		Width:  float64(width),
		Height: float64(height - hudRows),
	}
}

// Start runs the event loop until the configured context is done or Close
// is called.
func (h *Host) Start() {
	h.startOnce.Do(func() {
		parent := h.cfg.Context
		if parent == nil {
			parent = context.Background()
		}
		var ctx context.Context
		ctx, h.cancel = context.WithCancel(parent)
		go func() {
			if err := h.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				h.logger.Error("engine loop stopped", "err", err)
			}
			h.unregister()
		}()
		h.post(h.render.Start)
	})
}

// Frames delivers snapshots. Only the latest unread snapshot is kept.
func (h *Host) Frames() <-chan walls.Snapshot {
	return h.frames
}

// Done is closed once the engine loop has stopped.
func (h *Host) Done() <-chan struct{} {
	return h.loop.Done()
}

// SessionID returns the spectator session ID, or "" when not registered.
func (h *Host) SessionID() string {
	if h.entry == nil {
		return ""
	}
	return h.entry.ID()
}

// Layout returns the render layout for this host's config.
func (h *Host) Layout() walls.Layout {
	return walls.Layout{
		HUDRows: h.cfg.Walls.Board.HUDRows,
		Reveal:  h.cfg.Walls.Timing.GameOver,
	}
}

// Handle applies a player action to the engine.
func (h *Host) Handle(a core.Action) {
	h.post(func() { h.apply(a) })
}

func (h *Host) apply(a core.Action) {
	if a.IsDirection() {
		dir := Direction(a)
		h.machine.Press(dir)
		if h.machine.State() == walls.StatePlaying {
			h.hold.Press(dir)
		}
		return
	}

	switch a {
	case core.ActionRelease:
		h.hold.Release()
	case core.ActionPause:
		h.machine.PauseGame()
	case core.ActionConfirm:
		switch h.machine.State() {
		case walls.StateStart, walls.StateGameOver:
			h.startGame()
		}
	case core.ActionRestart:
		h.startGame()
	}
}

func (h *Host) startGame() {
	h.hold.Stop()
	if err := h.machine.StartGame(); err != nil {
		h.logger.Warn("cannot start game", "err", err)
	}
}

// Resize updates the board to a new terminal size. The engine reads it on
// its next use.
func (h *Host) Resize(width, height int) {
	board := boardFor(width, height, h.cfg.Walls.Board.HUDRows)
	h.post(func() { h.board = board })
}

// Close stops the engine and unregisters the session. It is safe to call
// more than once.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		if h.cancel != nil {
			//nolint:errcheck // A stopped loop has nothing left to tear down
			h.loop.Call(func() {
				h.hold.Stop()
				h.render.Close()
			})
			h.cancel()
			<-h.loop.Done()
		}
		h.unregister()
	})
}

func (h *Host) unregister() {
	h.dropOnce.Do(func() {
		if h.entry != nil {
			h.cfg.Registry.Remove(h.entry.ID())
			h.logger.Debug("session removed", "id", h.entry.ID(), "live", h.cfg.Registry.Len())
		}
	})
}

func (h *Host) post(fn func()) {
	if err := h.loop.Post(fn); err != nil {
		h.logger.Debug("engine call dropped", "err", err)
	}
}

// publish runs on the loop for every frame.
func (h *Host) publish(snap walls.Snapshot) {
	if h.entry != nil {
		h.entry.Publish(snap)
	}
	// Latest wins: drop an unread frame rather than stall the engine
	select {
	case h.frames <- snap:
	default:
		select {
		case <-h.frames:
		default:
		}
		select {
		case h.frames <- snap:
		default:
		}
	}
}

// record saves each finished session once, as soon as its score is final.
func (h *Host) record(_, to walls.State) {
	if to != walls.StateGameOverAnimating {
		return
	}
	s := h.machine.Session()
	if s.Final == nil || s.ID == h.saved {
		return
	}
	h.saved = s.ID
	rank := walls.RankFor(s.Final.Total)
	h.logger.Info("game over",
		"player", h.cfg.Player,
		"difficulty", h.cfg.Difficulty,
		"score", s.Final.Total,
		"coverage", s.Coverage,
		"rank", rank,
		"ending", s.Ending,
	)

	if h.cfg.Store == nil {
		return
	}
	_, err := h.cfg.Store.SaveResult(storage.Result{
		Player:      h.cfg.Player,
		Difficulty:  h.cfg.Difficulty,
		Total:       s.Final.Total,
		Surface:     s.Final.Surface,
		TimeBonus:   s.Final.TimeBonus,
		Efficiency:  s.Final.Efficiency,
		Coverage:    s.Coverage,
		ElapsedSecs: h.machine.Elapsed(),
		Rank:        rank.String(),
		Ending:      s.Ending.String(),
	})
	if err != nil {
		h.logger.Warn("cannot save result", "err", err)
	}
}
