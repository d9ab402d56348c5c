package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/closing-walls/internal/config"
	"github.com/vovakirdan/closing-walls/internal/core"
	"github.com/vovakirdan/closing-walls/internal/storage"
)

func press(t *testing.T, m tea.Model, msg tea.KeyMsg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestMenuStartsOnNormal(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	next := press(t, m, tea.KeyMsg{Type: tea.KeyEnter}).(MenuModel)

	require.NotNil(t, next.Selected())
	assert.Equal(t, config.DifficultyNormal, next.Selected().Difficulty)
}

func TestMenuNavigation(t *testing.T) {
	var m tea.Model = NewMenuModel(nil, core.DefaultConfig())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}) // clamps at the top
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, config.DifficultyEasy, m.(MenuModel).Selected().Difficulty)
}

func TestMenuScoreboardEntry(t *testing.T) {
	var m tea.Model = NewMenuModel(nil, core.DefaultConfig())
	for range 5 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.(MenuModel).WantsScoreboard())
	assert.Nil(t, m.(MenuModel).Selected())
}

func TestMenuShowsBestScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()
	_, err = store.SaveResult(storage.Result{Player: "alice", Difficulty: "hard", Total: 4321})
	require.NoError(t, err)

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	assert.Contains(t, m.View(), "best 4321")
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	var m tea.Model = NewSessionModel(SessionOptions{Player: "alice"}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "HIGH SCORES - All")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "HIGH SCORES - Easy")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, next.(SessionModel).menu.items)
	assert.Nil(t, next.(SessionModel).scoreboard)
	assert.Nil(t, cmd, "leaving the scoreboard must not quit the session")
	assert.Contains(t, next.View(), "C L O S I N G")
}
