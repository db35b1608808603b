package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lewtec/triagem/internal/domain"
	"github.com/lewtec/triagem/internal/triage"
)

// loadCategories creates a command that lists the fixed categories plus
// one per library year
func loadCategories(repo domain.LibraryRepository) tea.Cmd {
	return func() tea.Msg {
		categories := []domain.Category{domain.Screenshots, domain.Recents, domain.Random}
		years, err := repo.Years(context.Background())
		if err != nil {
			return CategoriesLoadedMsg{Err: err}
		}
		for _, y := range years {
			c, err := domain.YearCategory(y)
			if err != nil {
				continue
			}
			categories = append(categories, c)
		}
		return CategoriesLoadedMsg{Categories: categories}
	}
}

// confirmDeletion creates a command that flushes the staged deletions.
// While it runs the reviewer rejects restores for the category, so the
// review keys are disabled in the flushing state.
func confirmDeletion(reviewer *triage.Reviewer, category domain.Category) tea.Cmd {
	return func() tea.Msg {
		n, err := reviewer.ConfirmPermanentDeletion(context.Background(), category)
		return FlushDoneMsg{Count: n, Err: err}
	}
}
