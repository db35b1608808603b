package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lewtec/triagem/internal/domain"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case CategoriesLoadedMsg:
		return m.handleCategoriesLoaded(msg)
	case FlushDoneMsg:
		return m.handleFlushDone(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	switch m.State {
	case StatePicker:
		return m.handlePickerKey(msg)
	case StateTriage:
		return m.handleTriageKey(msg)
	case StateReview:
		return m.handleReviewKey(msg)
	case StateSummary, StateError:
		// Any other key goes back to the picker.
		m.State = StatePicker
		m.Err = nil
		return m, loadCategories(m.Repo)
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.PickerIndex > 0 {
			m.PickerIndex--
		}
	case "down", "j":
		if m.PickerIndex < len(m.Categories)-1 {
			m.PickerIndex++
		}
	case "enter":
		if len(m.Categories) == 0 {
			return m, nil
		}
		return m.openCategory(m.Categories[m.PickerIndex])
	}
	return m, nil
}

// openCategory switches the engine to category and routes to triage, or
// straight to review when every image is already decided.
func (m Model) openCategory(category domain.Category) (tea.Model, tea.Cmd) {
	session, err := m.Engine.SwitchCategory(context.Background(), category)
	if err != nil {
		m.State = StateError
		m.Err = err
		return m, nil
	}
	m.Category = category
	m.ReviewIndex = 0
	if session.Exhausted() {
		m.State = StateReview
	} else {
		m.State = StateTriage
	}
	return m, nil
}

func (m Model) handleTriageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "right", "y":
		return m.decide(domain.DecisionKeep)
	case "left", "d":
		return m.decide(domain.DecisionDelete)
	case "u":
		if entry, ok := m.Engine.Undo(); ok {
			// Undo is global; follow the entry back to its category.
			return m.openCategory(entry.Category)
		}
	case "r":
		m.State = StateReview
		m.ReviewIndex = 0
	case "esc":
		m.State = StatePicker
	}
	return m, nil
}

func (m Model) decide(decision domain.Decision) (tea.Model, tea.Cmd) {
	exhausted, err := m.Engine.Decide(m.Category, decision)
	if err != nil {
		m.State = StateError
		m.Err = err
		return m, nil
	}
	if exhausted {
		m.State = StateReview
		m.ReviewIndex = 0
	}
	return m, nil
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session, ok := m.session()
	if !ok {
		m.State = StatePicker
		return m, nil
	}
	staged := session.StagedDeletions()

	switch msg.String() {
	case "up", "k":
		if m.ReviewIndex > 0 {
			m.ReviewIndex--
		}
	case "down", "j":
		if m.ReviewIndex < len(staged)-1 {
			m.ReviewIndex++
		}
	case "r", "enter":
		if len(staged) == 0 {
			return m, nil
		}
		if err := m.Reviewer.Restore(m.Category, staged[m.ReviewIndex].SHA256); err != nil {
			m.State = StateError
			m.Err = err
			return m, nil
		}
		if m.ReviewIndex >= len(staged)-1 && m.ReviewIndex > 0 {
			m.ReviewIndex--
		}
	case "c":
		// With nothing staged, confirming is only meaningful as the
		// finishing step of an exhausted category.
		if len(staged) == 0 && !session.Exhausted() {
			return m, nil
		}
		m.State = StateFlushing
		return m, confirmDeletion(m.Reviewer, m.Category)
	case "esc":
		if session.Exhausted() {
			m.State = StatePicker
		} else {
			m.State = StateTriage
		}
	}
	return m, nil
}

func (m Model) handleCategoriesLoaded(msg CategoriesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Categories = msg.Categories
	if m.PickerIndex >= len(m.Categories) {
		m.PickerIndex = 0
	}
	return m, nil
}

func (m Model) handleFlushDone(msg FlushDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateReview
		m.Err = msg.Err
		return m, nil
	}
	m.FlushedCount = msg.Count
	m.State = StateSummary
	m.Err = nil
	return m, nil
}
