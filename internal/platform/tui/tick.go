// Package tui provides the Bubble Tea integration for Closing Walls.
// It handles the terminal UI loop, input mapping, and engine hosting.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/closing-walls/internal/games/walls"
)

// FrameMsg carries a snapshot published by the engine.
type FrameMsg walls.Snapshot

// HostClosedMsg is sent once the engine loop has stopped.
type HostClosedMsg struct{}

// waitForFrame returns a command that blocks until the host publishes the
// next snapshot. The model re-issues it after every FrameMsg.
func waitForFrame(h *Host) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-h.Frames():
			return FrameMsg(snap)
		case <-h.Done():
			return HostClosedMsg{}
		}
	}
}
