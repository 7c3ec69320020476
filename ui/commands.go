package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ulapchat/model"
)

// Conversationalist is the orchestration surface the UI depends on. One
// call is one full turn including fallback; the returned attempt always
// carries displayable text.
type Conversationalist interface {
	Converse(ctx context.Context, userMessage string, history []model.Message) model.Attempt
}

// replyMsg resolves the pending placeholder identified by PendingID.
type replyMsg struct {
	PendingID string
	Attempt   model.Attempt
}

// broadcastMsg is a message published by another member of the room.
type broadcastMsg struct {
	Message model.Message
}

// broadcastClosedMsg signals the room subscription ended.
type broadcastClosedMsg struct{}

// converseCmd runs one assistant turn off the UI goroutine. The history
// snapshot is taken at send time so later edits cannot race the turn.
func converseCmd(assistant Conversationalist, pendingID, userText string, history []model.Message) tea.Cmd {
	return func() tea.Msg {
		attempt := assistant.Converse(context.Background(), userText, history)
		return replyMsg{PendingID: pendingID, Attempt: attempt}
	}
}

// listenBroadcast waits for the next room message.
func listenBroadcast(ch <-chan model.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return broadcastClosedMsg{}
		}
		return broadcastMsg{Message: msg}
	}
}
