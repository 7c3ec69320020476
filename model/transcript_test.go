package model

import "testing"

func TestTranscriptAppendAndOrder(t *testing.T) {
	tr := NewTranscript()
	first := NewUserMessage("hello")
	second := NewAssistantText("hi there")
	tr.Append(first)
	tr.Append(second)

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != first.ID || msgs[1].ID != second.ID {
		t.Errorf("messages out of insertion order")
	}
}

func TestTranscriptReplaceKeepsPositionAndID(t *testing.T) {
	tr := NewTranscript()
	user := NewUserMessage("show me a chart")
	placeholder := NewAssistantText("...")
	tr.Append(user)
	tr.Append(placeholder)

	final := NewAssistantText("here you go")
	if !tr.Replace(placeholder.ID, final) {
		t.Fatal("Replace returned false for existing ID")
	}

	msgs := tr.Messages()
	if msgs[1].ID != placeholder.ID {
		t.Errorf("replacement changed the message ID: got %q, want %q", msgs[1].ID, placeholder.ID)
	}
	if msgs[1].Text != "here you go" {
		t.Errorf("replacement did not update content: got %q", msgs[1].Text)
	}
	if tr.Len() != 2 {
		t.Errorf("Replace changed transcript length: got %d", tr.Len())
	}
}

func TestTranscriptReplaceUnknownID(t *testing.T) {
	tr := NewTranscript(NewUserMessage("hi"))
	if tr.Replace("no-such-id", NewAssistantText("late reply")) {
		t.Error("Replace returned true for unknown ID")
	}
	if tr.Len() != 1 {
		t.Errorf("Replace on unknown ID mutated transcript: len %d", tr.Len())
	}
}

func TestTranscriptHasUserMessage(t *testing.T) {
	tr := NewTranscript()
	if tr.HasUserMessage() {
		t.Error("empty transcript reported a user message")
	}
	tr.Append(NewAssistantText("welcome"))
	if tr.HasUserMessage() {
		t.Error("assistant-only transcript reported a user message")
	}
	tr.Append(NewUserMessage("question"))
	if !tr.HasUserMessage() {
		t.Error("transcript with user turn not detected")
	}
}

func TestTranscriptClear(t *testing.T) {
	tr := NewTranscript(NewUserMessage("a"), NewAssistantText("b"))
	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("Clear left %d messages", tr.Len())
	}
	tr.Append(NewUserMessage("fresh"))
	if tr.Len() != 1 {
		t.Errorf("append after Clear: len %d", tr.Len())
	}
}
