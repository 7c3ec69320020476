package assistant

import (
	"errors"
	"fmt"
	"testing"

	"ulapchat/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want model.Classification
	}{
		{"nil", nil, model.ClassUnknown},
		{"api key", errors.New("OpenAI API key is required"), model.ClassAuth},
		{"401", errors.New("request failed: 401 Unauthorized"), model.ClassAuth},
		{"permission", errors.New("permission denied for model"), model.ClassAuth},
		{"content filter", errors.New("response blocked by content_filter"), model.ClassSafety},
		{"refusal", errors.New("the model refused to answer"), model.ClassSafety},
		{"rate limit", errors.New("429 Too Many Requests: rate limit"), model.ClassQuota},
		{"overloaded", errors.New("anthropic: overloaded_error"), model.ClassQuota},
		{"quota", errors.New("insufficient quota for this billing period"), model.ClassQuota},
		{"dial", errors.New("dial tcp 127.0.0.1:11434: connect: connection refused"), model.ClassNetwork},
		{"timeout", errors.New("context deadline exceeded"), model.ClassNetwork},
		{"dns", errors.New("lookup api.example.com: no such host"), model.ClassNetwork},
		{"wrapped", fmt.Errorf("candidate gpt-4o-mini failed: %w", errors.New("unexpected EOF")), model.ClassNetwork},
		{"unknown", errors.New("invalid response shape"), model.ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v): got %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassMessage(t *testing.T) {
	classes := []model.Classification{
		model.ClassAuth, model.ClassSafety, model.ClassQuota,
		model.ClassNetwork, model.ClassUnknown,
	}
	seen := make(map[string]bool)
	for _, class := range classes {
		msg := ClassMessage(class)
		if msg == "" {
			t.Errorf("ClassMessage(%q) is empty", class)
		}
		seen[msg] = true
	}
	if len(seen) != len(classes) {
		t.Errorf("expected %d distinct messages, got %d", len(classes), len(seen))
	}

	if got := ClassMessage(model.Classification("bogus")); got != ClassMessage(model.ClassUnknown) {
		t.Errorf("unrecognized class should map to the unknown message, got %q", got)
	}
}
