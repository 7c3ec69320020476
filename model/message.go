package model

import (
	"time"

	"github.com/google/uuid"
)

// Message senders. The UI renders "me" on the right and "assistant" on
// the left, matching the chat widget conventions.
const (
	SenderUser      = "me"
	SenderAssistant = "assistant"
)

// Message kinds.
const (
	KindText  = "text"
	KindChart = "chart"
)

// Message is one rendered chat bubble. Messages are immutable once
// rendered, except the pending placeholder which is replaced in place
// (by ID) when the asynchronous reply resolves.
type Message struct {
	ID     string     `json:"id"`
	Sender string     `json:"sender"`
	Text   string     `json:"text"`
	Time   string     `json:"time"`
	Kind   string     `json:"kind"`
	Chart  *ChartSpec `json:"chartData,omitempty"`
}

// NewUserMessage creates a user-authored text message stamped with the
// current display time.
func NewUserMessage(text string) Message {
	return Message{
		ID:     uuid.New().String(),
		Sender: SenderUser,
		Text:   text,
		Time:   displayTime(),
		Kind:   KindText,
	}
}

// NewAssistantText creates an assistant text reply.
func NewAssistantText(text string) Message {
	return Message{
		ID:     uuid.New().String(),
		Sender: SenderAssistant,
		Text:   text,
		Time:   displayTime(),
		Kind:   KindText,
	}
}

// NewAssistantChart creates an assistant chart reply with an
// accompanying caption.
func NewAssistantChart(spec *ChartSpec, caption string) Message {
	return Message{
		ID:     uuid.New().String(),
		Sender: SenderAssistant,
		Text:   caption,
		Time:   displayTime(),
		Kind:   KindChart,
		Chart:  spec,
	}
}

func displayTime() string {
	return time.Now().Format("3:04 PM")
}
