package tui

import "github.com/lewtec/triagem/internal/domain"

// CategoriesLoadedMsg carries the category list for the picker
type CategoriesLoadedMsg struct {
	Categories []domain.Category
	Err        error
}

// FlushDoneMsg carries the outcome of a permanent deletion flush
type FlushDoneMsg struct {
	Count int
	Err   error
}
