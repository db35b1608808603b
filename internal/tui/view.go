package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("triagem"))
	b.WriteString("\n\n")

	switch m.State {
	case StatePicker:
		b.WriteString(m.viewPicker())
	case StateTriage:
		b.WriteString(m.viewTriage())
	case StateReview, StateFlushing:
		b.WriteString(m.viewReview())
	case StateSummary:
		if m.FlushedCount == 0 {
			b.WriteString(KeepStyle.Render(fmt.Sprintf("%s finished. Nothing was permanently deleted.", m.Category.Label())))
		} else {
			b.WriteString(KeepStyle.Render(fmt.Sprintf("Permanently deleted %d images from %s.", m.FlushedCount, m.Category.Label())))
		}
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press any key to pick another category | 'q' to quit"))
	case StateError:
		b.WriteString(DeleteStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press any key to go back | 'q' to quit"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString("Pick a category:\n\n")
	for i, c := range m.Categories {
		line := c.Label()
		if i == m.PickerIndex {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("↑/↓ move | enter open | 'q' quit"))
	return b.String()
}

func (m Model) viewTriage() string {
	session, ok := m.session()
	if !ok {
		return DeleteStyle.Render("no session")
	}
	img, ok := session.Current()
	if !ok {
		return InfoStyle.Render("Category exhausted, press 'r' to review.")
	}

	var card strings.Builder
	fmt.Fprintf(&card, "%s\n", img.Filename)
	fmt.Fprintf(&card, "taken  %s\n", img.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&card, "source %s\n", img.Source)
	fmt.Fprintf(&card, "sha256 %s", img.SHA256)

	var b strings.Builder
	fmt.Fprintf(&b, "%s — image %d of %d\n\n", m.Category.Label(), session.Cursor+1, len(session.Images))
	b.WriteString(CardStyle.Render(card.String()))
	b.WriteString("\n\n")
	b.WriteString(KeepStyle.Render(fmt.Sprintf("kept %d", session.Kept)))
	b.WriteString(InfoStyle.Render(" | "))
	b.WriteString(DeleteStyle.Render(fmt.Sprintf("staged for deletion %d", session.Deleted)))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("→/'y' keep | ←/'d' delete | 'u' undo | 'r' review | esc categories"))
	return b.String()
}

func (m Model) viewReview() string {
	session, ok := m.session()
	if !ok {
		return DeleteStyle.Render("no session")
	}
	staged := session.StagedDeletions()

	var b strings.Builder
	fmt.Fprintf(&b, "Review: %s\n", m.Category.Label())
	fmt.Fprintf(&b, "%s\n\n", InfoStyle.Render(fmt.Sprintf("kept %d | deleted %d | remaining %d", session.Kept, session.Deleted, session.Remaining())))

	if m.Err != nil {
		b.WriteString(DeleteStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\n")
	}

	if m.State == StateFlushing {
		b.WriteString(InfoStyle.Render("Deleting staged images..."))
		return b.String()
	}

	if len(staged) == 0 {
		switch {
		case session.Completed:
			b.WriteString(KeepStyle.Render("Done. This category is finished."))
		case session.Exhausted():
			b.WriteString(InfoStyle.Render("Everything kept. Press 'c' to finish this category."))
		default:
			b.WriteString(InfoStyle.Render("Nothing staged for deletion."))
		}
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("esc back | 'q' quit"))
		return b.String()
	}

	b.WriteString("Staged for permanent deletion:\n\n")
	for i, img := range staged {
		line := fmt.Sprintf("%s (%s)", img.Filename, img.CreatedAt.Format("2006-01-02"))
		if i == m.ReviewIndex {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("↑/↓ move | 'r' restore | 'c' confirm deletion | esc back"))
	return b.String()
}
