package ui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ulapchat/model"
	"ulapchat/storage"
)

type scriptedAssistant struct {
	attempt model.Attempt
	calls   int
}

func (s *scriptedAssistant) Converse(_ context.Context, _ string, _ []model.Message) model.Attempt {
	s.calls++
	return s.attempt
}

func testApp(t *testing.T, attempt model.Attempt) (App, *scriptedAssistant) {
	t.Helper()
	kv, err := storage.OpenKV(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("OpenKV: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	assistant := &scriptedAssistant{attempt: attempt}
	app := NewApp(assistant, storage.NewSessionStore(kv, 0), nil, "")

	sized, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return sized.(App), assistant
}

func typeAndSend(t *testing.T, app App, text string) App {
	t.Helper()
	m := tea.Model(app)
	for _, r := range text {
		m, _ = m.(App).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.(App).Update(tea.KeyMsg{Type: tea.KeyEnter})
	return m.(App)
}

func TestSendAppendsUserAndPlaceholder(t *testing.T) {
	app, _ := testApp(t, model.TextAttempt("reply"))

	app = typeAndSend(t, app, "how much stock?")

	messages := app.transcript.Messages()
	if len(messages) != 2 {
		t.Fatalf("transcript: got %d messages, want user + placeholder", len(messages))
	}
	if messages[0].Sender != model.SenderUser || messages[0].Text != "how much stock?" {
		t.Errorf("user message: %+v", messages[0])
	}
	if app.pendingID == "" || messages[1].ID != app.pendingID {
		t.Errorf("placeholder not tracked: pendingID=%q messages[1].ID=%q", app.pendingID, messages[1].ID)
	}
}

func TestSendGuardWhileInFlight(t *testing.T) {
	app, _ := testApp(t, model.TextAttempt("reply"))

	app = typeAndSend(t, app, "first")
	app = typeAndSend(t, app, "second")

	messages := app.transcript.Messages()
	if len(messages) != 2 {
		t.Errorf("in-flight guard: got %d messages, want 2", len(messages))
	}
	if app.input.Value() != "second" {
		t.Errorf("rejected input should stay editable, got %q", app.input.Value())
	}
}

func TestReplyReplacesPlaceholderInPlace(t *testing.T) {
	app, _ := testApp(t, model.TextAttempt("the answer"))

	app = typeAndSend(t, app, "question")
	pendingID := app.pendingID

	m, _ := app.Update(replyMsg{PendingID: pendingID, Attempt: model.TextAttempt("the answer")})
	app = m.(App)

	messages := app.transcript.Messages()
	if len(messages) != 2 {
		t.Fatalf("transcript: got %d messages", len(messages))
	}
	if messages[1].ID != pendingID || messages[1].Text != "the answer" {
		t.Errorf("placeholder not replaced in place: %+v", messages[1])
	}
	if app.pendingID != "" {
		t.Error("pendingID not cleared after reply")
	}
}

func TestStaleReplyIgnored(t *testing.T) {
	app, _ := testApp(t, model.TextAttempt("late reply"))

	app = typeAndSend(t, app, "question")
	stale := app.pendingID

	// New chat abandons the turn.
	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app = m.(App)

	m, _ = app.Update(replyMsg{PendingID: stale, Attempt: model.TextAttempt("late reply")})
	app = m.(App)

	if got := app.transcript.Len(); got != 0 {
		t.Errorf("stale reply landed in the new transcript: %d messages", got)
	}
}

func TestChartReplyKeepsChart(t *testing.T) {
	spec := &model.ChartSpec{Type: model.ChartBar, Labels: []string{"a"}, Datasets: []model.Dataset{{Data: []float64{1}}}}
	app, _ := testApp(t, model.ChartAttempt(spec, "caption"))

	app = typeAndSend(t, app, "chart it")
	m, _ := app.Update(replyMsg{PendingID: app.pendingID, Attempt: model.ChartAttempt(spec, "caption")})
	app = m.(App)

	messages := app.transcript.Messages()
	reply := messages[len(messages)-1]
	if reply.Kind != model.KindChart || reply.Chart == nil {
		t.Errorf("chart reply: %+v", reply)
	}
	if reply.Text != "caption" {
		t.Errorf("caption: got %q", reply.Text)
	}
}

func TestNewChatArchivesCurrent(t *testing.T) {
	app, _ := testApp(t, model.TextAttempt("reply"))

	app = typeAndSend(t, app, "archive me")
	m, _ := app.Update(replyMsg{PendingID: app.pendingID, Attempt: model.TextAttempt("reply")})
	app = m.(App)

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app = m.(App)

	if app.transcript.Len() != 0 {
		t.Errorf("transcript not cleared: %d messages", app.transcript.Len())
	}
	history := app.store.ListHistory()
	if len(history) != 1 || history[0].Title != "Archive me" {
		t.Errorf("history: %+v", history)
	}
}

func TestBroadcastSkipsOwnEcho(t *testing.T) {
	app, _ := testApp(t, model.TextAttempt("reply"))

	own := model.NewUserMessage("mine")
	app.transcript.Append(own)

	m, _ := app.Update(broadcastMsg{Message: own})
	app = m.(App)
	if app.transcript.Len() != 1 {
		t.Errorf("own echo duplicated: %d messages", app.transcript.Len())
	}

	other := model.NewUserMessage("from another terminal")
	m, _ = app.Update(broadcastMsg{Message: other})
	app = m.(App)
	if app.transcript.Len() != 2 {
		t.Errorf("room message dropped: %d messages", app.transcript.Len())
	}
}
