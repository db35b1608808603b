// Package tui is the terminal triage surface: a bubbletea program
// driving the triage engine in-process. bubbletea serializes input, so
// engine calls are synchronous inside Update; only the permanent
// deletion flush runs as a command.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lewtec/triagem/internal/domain"
	"github.com/lewtec/triagem/internal/triage"
)

// State represents the application state machine
type State string

const (
	StatePicker   State = "picker"
	StateTriage   State = "triage"
	StateReview   State = "review"
	StateFlushing State = "flushing"
	StateSummary  State = "summary"
	StateError    State = "error"
)

// Model represents the TUI state
type Model struct {
	Engine   *triage.Engine
	Reviewer *triage.Reviewer
	Repo     domain.LibraryRepository

	State    State
	Err      error
	Category domain.Category

	// Picker state
	Categories  []domain.Category
	PickerIndex int

	// Review state
	ReviewIndex int

	// Summary state
	FlushedCount int
}

// NewModel creates a new TUI model
func NewModel(engine *triage.Engine, reviewer *triage.Reviewer, repo domain.LibraryRepository) Model {
	return Model{
		Engine:   engine,
		Reviewer: reviewer,
		Repo:     repo,
		State:    StatePicker,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return loadCategories(m.Repo)
}

// session returns the active category's session.
func (m Model) session() (*triage.Session, bool) {
	return m.Engine.Store().Get(m.Category)
}
