package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ulapchat/model"
	"ulapchat/storage"
)

// historyPageSize bounds how many entries the overlay lists at once.
const historyPageSize = 15

func (a App) updateHistoryOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+h":
		a.closeHistory()
		return a, nil

	case "ctrl+c":
		a.shutdown()
		return a, tea.Quit

	case "up":
		if a.selectedHistoryIdx > 0 {
			a.selectedHistoryIdx--
		}
		return a, nil

	case "down":
		if a.selectedHistoryIdx < len(a.filteredHistory)-1 {
			a.selectedHistoryIdx++
		}
		return a, nil

	case "enter":
		return a.restoreSelected()

	case "ctrl+d":
		if a.selectedHistoryIdx < len(a.filteredHistory) {
			a.store.DeleteHistoryEntry(a.filteredHistory[a.selectedHistoryIdx].ID)
			a.historyEntries = a.store.ListHistory()
			a.applyHistoryFilter()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.historyFilter, cmd = a.historyFilter.Update(msg)
	a.applyHistoryFilter()
	return a, cmd
}

// restoreSelected archives the live transcript and swaps the selected
// session in. The archived entry is removed so restore and re-archive
// cannot duplicate it.
func (a App) restoreSelected() (tea.Model, tea.Cmd) {
	if a.selectedHistoryIdx >= len(a.filteredHistory) {
		return a, nil
	}
	entry := a.filteredHistory[a.selectedHistoryIdx]

	a.store.ArchiveCurrent(a.transcript.Messages())
	a.store.DeleteHistoryEntry(entry.ID)

	a.transcript.Clear()
	for _, m := range entry.Messages {
		a.transcript.Append(m)
	}
	a.pendingID = ""
	a.store.SaveActive(a.transcript.Messages())

	a.closeHistory()
	a.refreshViewport(true)
	return a, nil
}

func (a *App) applyHistoryFilter() {
	a.filteredHistory = storage.SearchHistory(a.historyEntries, strings.TrimSpace(a.historyFilter.Value()))
	if a.selectedHistoryIdx >= len(a.filteredHistory) {
		a.selectedHistoryIdx = 0
	}
}

func (a *App) closeHistory() {
	a.showHistory = false
	a.historyFilter.Blur()
	a.input.Focus()
}

func (a App) historyView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Session History"))
	b.WriteString("\n\n")
	b.WriteString(a.historyFilter.View())
	b.WriteString("\n\n")

	if len(a.filteredHistory) == 0 {
		b.WriteString(DimStyle.Render("No archived sessions."))
		b.WriteString("\n")
	}

	start := 0
	if a.selectedHistoryIdx >= historyPageSize {
		start = a.selectedHistoryIdx - historyPageSize + 1
	}
	end := start + historyPageSize
	if end > len(a.filteredHistory) {
		end = len(a.filteredHistory)
	}

	for i := start; i < end; i++ {
		entry := a.filteredHistory[i]
		line := fmt.Sprintf("%s  %s", entry.SavedAt.Format("Jan 2 15:04"), entry.Title)
		line += DimStyle.Render(fmt.Sprintf("  (%d messages)", countVisible(entry.Messages)))
		if i == a.selectedHistoryIdx {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(FormatFooter(
		"enter", "Open",
		"ctrl+d", "Delete",
		"esc", "Back",
	)))
	return b.String()
}

func countVisible(messages []model.Message) int {
	n := 0
	for _, m := range messages {
		if strings.TrimSpace(m.Text) != "" || m.Chart != nil {
			n++
		}
	}
	return n
}
