package storage

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"ulapchat/config"
	"ulapchat/model"
)

// Storage keys. Kept stable so existing databases keep working.
const (
	messagesKey = "ulap-chat-messages"
	historyKey  = "ulap-chat-history"
)

// defaultHistoryLimit caps the archive when no limit is configured.
const defaultHistoryLimit = 50

// titleRuneLimit bounds derived session titles.
const titleRuneLimit = 40

// HistoryEntry is one archived session.
type HistoryEntry struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	SavedAt  time.Time       `json:"savedAt"`
	Messages []model.Message `json:"messages"`
}

// SessionStore persists the active transcript and the archived session
// list. Every storage failure degrades silently: the chat keeps working
// in memory and the failure is only visible in the debug log.
type SessionStore struct {
	kv    *KV
	limit int
}

// NewSessionStore wraps a KV store. limit bounds the archive; zero or
// negative uses the default.
func NewSessionStore(kv *KV, limit int) *SessionStore {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &SessionStore{kv: kv, limit: limit}
}

// LoadActive returns the persisted active transcript, or nil when there
// is none or it cannot be read.
func (s *SessionStore) LoadActive() []model.Message {
	raw, ok, err := s.kv.Get(messagesKey)
	if err != nil {
		s.logErr("load active", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var messages []model.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		s.logErr("decode active", err)
		return nil
	}
	return messages
}

// SaveActive persists the active transcript. An empty transcript clears
// the stored value instead of writing an empty document.
func (s *SessionStore) SaveActive(messages []model.Message) {
	if len(messages) == 0 {
		if err := s.kv.Delete(messagesKey); err != nil {
			s.logErr("clear active", err)
		}
		return
	}

	raw, err := json.Marshal(messages)
	if err != nil {
		s.logErr("encode active", err)
		return
	}
	if err := s.kv.Set(messagesKey, string(raw)); err != nil {
		s.logErr("save active", err)
	}
}

// ListHistory returns archived sessions, newest first.
func (s *SessionStore) ListHistory() []HistoryEntry {
	raw, ok, err := s.kv.Get(historyKey)
	if err != nil {
		s.logErr("load history", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var entries []HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logErr("decode history", err)
		return nil
	}
	return entries
}

// ArchiveCurrent prepends the transcript to the history list and clears
// the active slot. A transcript with no user turn is not worth keeping
// and archives nothing.
func (s *SessionStore) ArchiveCurrent(messages []model.Message) {
	if !hasUserTurn(messages) {
		return
	}

	entry := HistoryEntry{
		ID:       uuid.New().String(),
		Title:    deriveTitle(messages),
		SavedAt:  time.Now(),
		Messages: messages,
	}

	entries := append([]HistoryEntry{entry}, s.ListHistory()...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	s.saveHistory(entries)

	if err := s.kv.Delete(messagesKey); err != nil {
		s.logErr("clear active", err)
	}
}

// DeleteHistoryEntry removes one archived session by ID.
func (s *SessionStore) DeleteHistoryEntry(id string) {
	entries := s.ListHistory()
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.saveHistory(kept)
}

func (s *SessionStore) saveHistory(entries []HistoryEntry) {
	if len(entries) == 0 {
		if err := s.kv.Delete(historyKey); err != nil {
			s.logErr("clear history", err)
		}
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		s.logErr("encode history", err)
		return
	}
	if err := s.kv.Set(historyKey, string(raw)); err != nil {
		s.logErr("save history", err)
	}
}

func (s *SessionStore) logErr(op string, err error) {
	if config.Debug {
		config.DebugLog.Printf("[Storage] %s failed: %v", op, err)
	}
}

func hasUserTurn(messages []model.Message) bool {
	for _, m := range messages {
		if m.Sender == model.SenderUser {
			return true
		}
	}
	return false
}

// deriveTitle names an archived session after its first user message:
// leading command slash stripped, first letter capitalized, truncated
// to a fixed rune count.
func deriveTitle(messages []model.Message) string {
	var text string
	for _, m := range messages {
		if m.Sender == model.SenderUser && strings.TrimSpace(m.Text) != "" {
			text = strings.TrimSpace(m.Text)
			break
		}
	}
	if text == "" {
		return "Untitled session"
	}

	text = strings.TrimSpace(strings.TrimPrefix(text, "/"))
	if text == "" {
		return "Untitled session"
	}

	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	if len(runes) > titleRuneLimit {
		return string(runes[:titleRuneLimit]) + "..."
	}
	return string(runes)
}
