// Package ui is the terminal chat surface: a scrollback viewport over
// the transcript, a single-line prompt, and a history overlay for
// archived sessions.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ulapchat/broadcast"
	"ulapchat/config"
	"ulapchat/model"
	"ulapchat/storage"
)

type App struct {
	transcript *model.Transcript
	assistant  Conversationalist
	store      *storage.SessionStore

	transport  broadcast.Transport
	room       string
	roomCh     <-chan model.Message
	roomCancel func()

	viewport       viewport.Model
	input          textinput.Model
	loadingSpinner spinner.Model

	width  int
	height int
	ready  bool

	// ID of the placeholder awaiting its reply. Empty when idle. A
	// reply naming any other ID is stale and dropped.
	pendingID string

	showHistory        bool
	historyEntries     []storage.HistoryEntry
	filteredHistory    []storage.HistoryEntry
	selectedHistoryIdx int
	historyFilter      textinput.Model
}

// NewApp builds the chat surface. The active transcript is restored
// from storage when one exists.
func NewApp(assistant Conversationalist, store *storage.SessionStore, transport broadcast.Transport, room string) App {
	input := textinput.New()
	input.Placeholder = "Ask about your stock..."
	input.Focus()
	input.CharLimit = 2000

	filter := textinput.New()
	filter.Placeholder = "Search sessions..."

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	transcript := model.NewTranscript()
	for _, m := range store.LoadActive() {
		transcript.Append(m)
	}

	app := App{
		transcript:     transcript,
		assistant:      assistant,
		store:          store,
		transport:      transport,
		room:           room,
		input:          input,
		historyFilter:  filter,
		loadingSpinner: sp,
	}

	if transport != nil && room != "" {
		app.roomCh, app.roomCancel = transport.Subscribe(room)
	}

	return app
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, a.loadingSpinner.Tick}
	if a.roomCh != nil {
		cmds = append(cmds, listenBroadcast(a.roomCh))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		viewportHeight := msg.Height - 4
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !a.ready {
			a.viewport = viewport.New(msg.Width, viewportHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = viewportHeight
		}
		a.input.Width = msg.Width - 4
		a.refreshViewport(true)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		if a.pendingID != "" {
			a.refreshViewport(false)
		}
		return a, cmd

	case replyMsg:
		return a.handleReply(msg)

	case broadcastMsg:
		return a.handleBroadcast(msg)

	case broadcastClosedMsg:
		a.roomCh = nil
		return a, nil

	case tea.KeyMsg:
		if a.showHistory {
			return a.updateHistoryOverlay(msg)
		}
		return a.updateChat(msg)
	}

	return a, nil
}

func (a App) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.shutdown()
		return a, tea.Quit

	case "enter":
		return a.send()

	case "ctrl+n":
		a.store.ArchiveCurrent(a.transcript.Messages())
		a.transcript.Clear()
		a.pendingID = ""
		a.refreshViewport(true)
		return a, nil

	case "ctrl+h":
		a.showHistory = true
		a.historyEntries = a.store.ListHistory()
		a.filteredHistory = a.historyEntries
		a.selectedHistoryIdx = 0
		a.historyFilter.SetValue("")
		a.historyFilter.Focus()
		a.input.Blur()
		return a, nil

	case "ctrl+y":
		a.copyLastReply()
		return a, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// send starts one assistant turn. Sends are rejected while a turn is in
// flight so the transcript never holds two placeholders.
func (a App) send() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.input.Value())
	if text == "" || a.pendingID != "" {
		return a, nil
	}

	history := a.transcript.Messages()

	userMsg := model.NewUserMessage(text)
	a.transcript.Append(userMsg)
	a.publish(userMsg)

	placeholder := model.NewAssistantText("")
	a.pendingID = placeholder.ID
	a.transcript.Append(placeholder)

	a.store.SaveActive(append(history, userMsg))

	a.input.SetValue("")
	a.refreshViewport(true)

	return a, converseCmd(a.assistant, placeholder.ID, text, history)
}

// handleReply resolves the pending placeholder. Replies for any other
// placeholder belong to an abandoned turn and are dropped.
func (a App) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	if msg.PendingID != a.pendingID {
		if config.Debug {
			config.DebugLog.Printf("[UI] Dropping stale reply for %s", msg.PendingID)
		}
		return a, nil
	}

	var reply model.Message
	switch msg.Attempt.Kind {
	case model.AttemptChart:
		reply = model.NewAssistantChart(msg.Attempt.Chart, msg.Attempt.Text)
	default:
		reply = model.NewAssistantText(msg.Attempt.Text)
	}

	a.transcript.Replace(msg.PendingID, reply)
	a.pendingID = ""
	a.store.SaveActive(a.transcript.Messages())
	a.publish(reply)
	a.refreshViewport(true)
	return a, nil
}

// handleBroadcast appends a room message, skipping our own echoes.
func (a App) handleBroadcast(msg broadcastMsg) (tea.Model, tea.Cmd) {
	if _, ok := a.transcript.Get(msg.Message.ID); !ok {
		a.transcript.Append(msg.Message)
		a.store.SaveActive(a.transcript.Messages())
		a.refreshViewport(true)
	}
	if a.roomCh == nil {
		return a, nil
	}
	return a, listenBroadcast(a.roomCh)
}

func (a *App) publish(msg model.Message) {
	if a.transport != nil && a.room != "" {
		a.transport.Publish(a.room, msg)
	}
}

func (a *App) copyLastReply() {
	messages := a.transcript.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Sender == model.SenderAssistant && m.ID != a.pendingID && m.Text != "" {
			clipboard.WriteAll(m.Text)
			return
		}
	}
}

func (a *App) shutdown() {
	a.store.SaveActive(a.transcript.Messages())
	if a.roomCancel != nil {
		a.roomCancel()
	}
}

func (a *App) refreshViewport(gotoBottom bool) {
	if !a.ready {
		return
	}
	indicator := a.loadingSpinner.View() + " Thinking..."
	a.viewport.SetContent(renderTranscript(a.transcript.Messages(), a.width, a.pendingID, indicator))
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.showHistory {
		return a.historyView()
	}

	var b strings.Builder
	b.WriteString(a.headerLine())
	b.WriteString("\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(FormatFooter(
		"enter", "Send",
		"ctrl+n", "New chat",
		"ctrl+h", "History",
		"ctrl+y", "Copy reply",
		"ctrl+c", "Quit",
	)))
	return b.String()
}

func (a App) headerLine() string {
	title := AssistantStyle.Render("Ulap Chat")
	if a.room != "" {
		return fmt.Sprintf("%s %s", title, DimStyle.Render("- "+a.room))
	}
	return title
}
