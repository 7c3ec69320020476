package model

// Transcript is the active conversation: an ordered, keyed container of
// messages. Keying by ID makes placeholder replacement an explicit
// keyed update rather than a positional scan, which also lets an
// abandoned in-flight reply be dropped by identity.
type Transcript struct {
	order []string
	byID  map[string]Message
}

// NewTranscript creates a transcript seeded with the given messages.
func NewTranscript(messages ...Message) *Transcript {
	t := &Transcript{byID: make(map[string]Message)}
	for _, m := range messages {
		t.Append(m)
	}
	return t
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(m Message) {
	if _, exists := t.byID[m.ID]; !exists {
		t.order = append(t.order, m.ID)
	}
	t.byID[m.ID] = m
}

// Replace swaps the message with the given ID in place, keeping its
// position. The replacement keeps the original ID. Returns false if no
// message with that ID exists (the reply was abandoned).
func (t *Transcript) Replace(id string, m Message) bool {
	if _, ok := t.byID[id]; !ok {
		return false
	}
	m.ID = id
	t.byID[id] = m
	return true
}

// Get returns the message with the given ID.
func (t *Transcript) Get(id string) (Message, bool) {
	m, ok := t.byID[id]
	return m, ok
}

// Messages returns the messages in insertion order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.order)
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.order = nil
	t.byID = make(map[string]Message)
}

// HasUserMessage reports whether any message was authored by the user.
func (t *Transcript) HasUserMessage() bool {
	for _, id := range t.order {
		if t.byID[id].Sender == SenderUser {
			return true
		}
	}
	return false
}
