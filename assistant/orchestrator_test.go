package assistant

import (
	"context"
	"errors"
	"testing"

	"ulapchat/catalog"
	"ulapchat/chart"
	"ulapchat/model"
	"ulapchat/provider/testutil"
	"ulapchat/tools"
)

func testDispatcher(t *testing.T) *tools.Dispatcher {
	t.Helper()
	c := catalog.New(catalog.Seed())
	d := tools.NewDispatcher()
	tools.RegisterChartTool(d, chart.NewSynthesizer(c))
	return d
}

func chartCall(labels, datasets string) model.ToolCall {
	return model.ToolCall{
		Name: tools.ChartToolName,
		Arguments: map[string]any{
			"chartType": "bar",
			"labels":    labels,
			"datasets":  datasets,
		},
	}
}

func TestConverseFallbackOrder(t *testing.T) {
	a := testutil.FailingProvider("model-a", errors.New("connection refused"))
	b := testutil.FailingProvider("model-b", errors.New("connection refused"))
	c := testutil.TextProvider("model-c", "You have 20 units in stock.")
	d := testutil.TextProvider("model-d", "should never run")

	o := New([]Candidate{
		{Provider: a, Model: "model-a", Name: "model-a"},
		{Provider: b, Model: "model-b", Name: "model-b"},
		{Provider: c, Model: "model-c", Name: "model-c"},
		{Provider: d, Model: "model-d", Name: "model-d"},
	}, testDispatcher(t), "system")

	attempt := o.Converse(context.Background(), "how much stock do I have?", nil)
	if attempt.Kind != model.AttemptText {
		t.Fatalf("kind: got %q, want text", attempt.Kind)
	}
	if attempt.Text != "You have 20 units in stock." {
		t.Errorf("text: got %q", attempt.Text)
	}
	if a.Calls != 1 || b.Calls != 1 || c.Calls != 1 {
		t.Errorf("call counts: a=%d b=%d c=%d, want 1 each", a.Calls, b.Calls, c.Calls)
	}
	if d.Calls != 0 {
		t.Errorf("candidate after the winner was invoked %d times", d.Calls)
	}
}

func TestConverseAllCandidatesFail(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantClass model.Classification
	}{
		{"auth", errors.New("401 unauthorized"), model.ClassAuth},
		{"quota", errors.New("429 rate limit exceeded"), model.ClassQuota},
		{"network", errors.New("dial tcp: connection refused"), model.ClassNetwork},
		{"unknown", errors.New("something odd"), model.ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.FailingProvider("m", tt.err)
			o := New([]Candidate{{Provider: p, Model: "m", Name: "m"}}, testDispatcher(t), "system")

			attempt := o.Converse(context.Background(), "hello", nil)
			if attempt.Kind != model.AttemptError {
				t.Fatalf("kind: got %q, want error", attempt.Kind)
			}
			if attempt.Classification != tt.wantClass {
				t.Errorf("classification: got %q, want %q", attempt.Classification, tt.wantClass)
			}
			if attempt.Text != ClassMessage(tt.wantClass) {
				t.Errorf("text: got %q, want the fixed message for %q", attempt.Text, tt.wantClass)
			}
		})
	}
}

func TestConverseNoCandidates(t *testing.T) {
	o := New(nil, testDispatcher(t), "system")

	attempt := o.Converse(context.Background(), "hello", nil)
	if attempt.Kind != model.AttemptError {
		t.Fatalf("kind: got %q, want error", attempt.Kind)
	}
	if attempt.Classification != model.ClassUnknown {
		t.Errorf("classification: got %q, want unknown", attempt.Classification)
	}
}

func TestConverseChartToolRoundTrip(t *testing.T) {
	call := chartCall(`["Arabica Beans 1kg"]`, `[{"label":"Stock","data":[999]}]`)
	p := testutil.ToolCallProvider("m", call, "Here is your stock chart.")
	o := New([]Candidate{{Provider: p, Model: "m", Name: "m"}}, testDispatcher(t), "system")

	attempt := o.Converse(context.Background(), "chart my arabica stock", nil)
	if attempt.Kind != model.AttemptChart {
		t.Fatalf("kind: got %q, want chart", attempt.Kind)
	}
	if attempt.Chart == nil {
		t.Fatal("chart attempt has nil chart")
	}
	if attempt.Text != "Here is your stock chart." {
		t.Errorf("caption: got %q", attempt.Text)
	}
	if got := attempt.Chart.Datasets[0].Data[0]; got == 999 {
		t.Error("model-supplied value survived into the chart")
	}
	if p.Calls != 2 {
		t.Errorf("calls: got %d, want 2 (tool turn plus caption turn)", p.Calls)
	}
}

func TestConverseUnknownToolTriesNextCandidate(t *testing.T) {
	bad := testutil.ToolCallProvider("bad", model.ToolCall{Name: "delete_everything"}, "")
	good := testutil.TextProvider("good", "Plain answer.")
	o := New([]Candidate{
		{Provider: bad, Model: "bad", Name: "bad"},
		{Provider: good, Model: "good", Name: "good"},
	}, testDispatcher(t), "system")

	attempt := o.Converse(context.Background(), "hello", nil)
	if attempt.Kind != model.AttemptText {
		t.Fatalf("kind: got %q, want text", attempt.Kind)
	}
	if attempt.Text != "Plain answer." {
		t.Errorf("text: got %q", attempt.Text)
	}
}

func TestConverseRejectionShownVerbatim(t *testing.T) {
	call := chartCall(`["Unicorn 9000"]`, `[{"label":"Stock","data":[1]}]`)
	p := testutil.ToolCallProvider("m", call, "unused caption")
	o := New([]Candidate{{Provider: p, Model: "m", Name: "m"}}, testDispatcher(t), "system")

	attempt := o.Converse(context.Background(), "chart the unicorn", nil)
	if attempt.Kind != model.AttemptText {
		t.Fatalf("kind: got %q, want text", attempt.Kind)
	}
	if attempt.Chart != nil {
		t.Error("rejection carried a chart")
	}
	if want := `Product "Unicorn 9000" was not found in our inventory. Please ask again using the exact product name from the stock list.`; attempt.Text != want {
		t.Errorf("text: got %q, want %q", attempt.Text, want)
	}
	if p.Calls != 1 {
		t.Errorf("calls: got %d, want 1 (no caption turn for a rejection)", p.Calls)
	}
}

func TestConverseNoDataFallsBackToFixedText(t *testing.T) {
	// Undecodable arguments make the synthesizer yield neither a chart
	// nor a rejection.
	call := model.ToolCall{Name: tools.ChartToolName, Arguments: map[string]any{"chartType": "bar"}}
	p := testutil.ToolCallProvider("m", call, "")
	o := New([]Candidate{{Provider: p, Model: "m", Name: "m"}}, testDispatcher(t), "system")

	attempt := o.Converse(context.Background(), "chart something", nil)
	if attempt.Kind != model.AttemptText {
		t.Fatalf("kind: got %q, want text", attempt.Kind)
	}
	if attempt.Text != noDataMessage {
		t.Errorf("text: got %q, want the fixed no-data message", attempt.Text)
	}
}

func TestConverseCaptionFailureDegradesToDefault(t *testing.T) {
	call := chartCall(`["Arabica Beans 1kg"]`, `[{"label":"Stock","data":[1]}]`)
	p := testutil.ToolCallProvider("m", call, "")
	// Caption turn fails; the chart must still be delivered.
	p.ChatFunc = func(context.Context, []model.ChatMessage, model.StreamCallback) error {
		return errors.New("connection reset")
	}
	o := New([]Candidate{{Provider: p, Model: "m", Name: "m"}}, testDispatcher(t), "system")

	attempt := o.Converse(context.Background(), "chart my arabica stock", nil)
	if attempt.Kind != model.AttemptChart {
		t.Fatalf("kind: got %q, want chart", attempt.Kind)
	}
	if attempt.Text != defaultCaption {
		t.Errorf("caption: got %q, want the fixed default", attempt.Text)
	}
}
