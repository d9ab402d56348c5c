package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/closing-walls/internal/core"
	"github.com/vovakirdan/closing-walls/internal/games/walls"
)

// GameModel is the Bubble Tea model for one hosted game.
type GameModel struct {
	host       *Host
	screen     *core.Screen
	layout     walls.Layout
	snap       walls.Snapshot
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	exitOnBack bool // Standalone play quits on back instead of returning to a menu
}

// NewGameModel creates a model drawing the given host at the given size.
func NewGameModel(host *Host, width, height int) GameModel {
	return GameModel{
		host:      host,
		screen:    core.NewScreen(width, height),
		layout:    host.Layout(),
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the engine and waits for the first frame.
func (m GameModel) Init() tea.Cmd {
	m.host.Start()
	return waitForFrame(m.host)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.host.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		m.snap = walls.Snapshot(msg)
		return m, waitForFrame(m.host)

	case HostClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.host.Close()
		return m, tea.Quit
	}

	if action == core.ActionBack && m.canLeave() {
		m.host.Close()
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	if action != core.ActionNone {
		m.host.Handle(action)
	}
	return m, nil
}

// canLeave reports whether back is allowed: never in the middle of a match.
func (m GameModel) canLeave() bool {
	switch m.snap.State {
	case walls.StateStart, walls.StatePaused, walls.StateGameOver:
		return true
	}
	return false
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	walls.Render(m.screen, m.snap, m.layout)

	dir := filepath.Join(os.Getenv("HOME"), ".walls", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("walls_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the latest snapshot.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	walls.Render(m.screen, m.snap, m.layout)
	return RenderScreen(m.screen)
}

// BackToMenu reports whether the player asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Run plays one hosted game in the local terminal until the player quits.
func Run(host *Host, cfg core.RuntimeConfig) error {
	model := NewGameModel(host, cfg.ScreenW, cfg.ScreenH)
	model.exitOnBack = true
	defer host.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
