// Package assistant orchestrates conversational turns: it builds the
// prompt, walks an ordered list of model candidates until one answers,
// round-trips tool calls through the local dispatcher, and folds
// everything into a single displayable reply.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ulapchat/config"
	"ulapchat/model"
	"ulapchat/tools"
)

// Fallback text used when a tool produced no data and the model sent no
// accompanying prose, and when the caption turn fails outright.
const (
	noDataMessage  = "I couldn't find any data for that request."
	defaultCaption = "Here is the chart you asked for."
)

// Candidate is one (provider, model) pair in the fallback order.
type Candidate struct {
	Provider model.Provider
	Model    string
	Name     string // display name for debug logging
}

// Orchestrator drives one conversational turn at a time. It is
// stateless across calls except for the fixed candidate ordering.
type Orchestrator struct {
	candidates []Candidate
	dispatcher *tools.Dispatcher
	system     string
}

// New creates an orchestrator over a fixed candidate order. The system
// context is computed once; the catalog is immutable for the life of
// the session.
func New(candidates []Candidate, dispatcher *tools.Dispatcher, system string) *Orchestrator {
	return &Orchestrator{
		candidates: candidates,
		dispatcher: dispatcher,
		system:     system,
	}
}

// turnResult is what one successful model attempt yields: prose, or a
// dispatched tool outcome (plus whatever prose came with it).
type turnResult struct {
	text    string
	call    *model.ToolCall
	outcome tools.Outcome
}

// Converse runs one full turn. The returned Attempt always carries a
// displayable Text, including when every candidate failed.
func (o *Orchestrator) Converse(ctx context.Context, userMessage string, history []model.Message) model.Attempt {
	messages := []model.ChatMessage{
		{Role: "system", Content: o.system},
		{Role: "user", Content: renderPrompt(history, userMessage)},
	}

	result, winner, err := tryInOrder(o.candidates, func(c Candidate) (turnResult, error) {
		return o.attempt(ctx, c, messages)
	})
	if err != nil {
		class := Classify(err)
		if config.Debug {
			config.DebugLog.Printf("[Assistant] All candidates failed (%s): %v", class, err)
		}
		return model.ErrorAttempt(class, ClassMessage(class))
	}

	if result.call == nil {
		return model.TextAttempt(result.text)
	}

	// A rejection is already a complete user-facing message; asking the
	// model to caption it would only invite embellishment.
	if result.outcome.Rejected != "" {
		return model.TextAttempt(result.outcome.Rejected)
	}

	if result.outcome.NoData() {
		if strings.TrimSpace(result.text) != "" {
			return model.TextAttempt(result.text)
		}
		return model.TextAttempt(noDataMessage)
	}

	caption := o.caption(ctx, winner, messages, result)
	return model.ChartAttempt(result.outcome.Chart, caption)
}

// attempt issues one model request and, if the model called a tool,
// dispatches it. Unknown tool names are protocol errors and fail the
// attempt so the next candidate gets a chance.
func (o *Orchestrator) attempt(ctx context.Context, c Candidate, messages []model.ChatMessage) (turnResult, error) {
	c.Provider.SetModel(c.Model)

	var text strings.Builder
	var firstCall *model.ToolCall

	err := c.Provider.ChatWithTools(ctx, messages, o.dispatcher.Tools(), func(chunk string, calls []model.ToolCall) error {
		text.WriteString(chunk)
		if firstCall == nil && len(calls) > 0 {
			call := calls[0]
			firstCall = &call
		}
		return nil
	})
	if err != nil {
		if config.Debug {
			config.DebugLog.Printf("[Assistant] Candidate %s failed: %v", c.Name, err)
		}
		return turnResult{}, err
	}

	result := turnResult{text: text.String(), call: firstCall}
	if firstCall == nil {
		if strings.TrimSpace(result.text) == "" {
			return turnResult{}, fmt.Errorf("candidate %s returned an empty response", c.Name)
		}
		return result, nil
	}

	outcome, err := o.dispatcher.Dispatch(*firstCall)
	if err != nil {
		return turnResult{}, fmt.Errorf("dispatching tool call from %s: %w", c.Name, err)
	}
	result.outcome = outcome
	return result, nil
}

// caption runs the follow-up turn: the tool result is attached so the
// winning model can produce a natural-language caption for the chart.
// Caption failures degrade to fixed text; the chart itself is already
// won.
func (o *Orchestrator) caption(ctx context.Context, c Candidate, messages []model.ChatMessage, result turnResult) string {
	chartJSON, err := json.Marshal(result.outcome.Chart)
	if err != nil {
		return defaultCaption
	}

	followUp := make([]model.ChatMessage, len(messages), len(messages)+2)
	copy(followUp, messages)
	followUp = append(followUp,
		model.ChatMessage{Role: "assistant", Content: fmt.Sprintf("Calling %s.", result.call.Name)},
		model.ChatMessage{Role: "tool", Content: fmt.Sprintf(
			"Tool result: %s\nWrite one short sentence presenting this chart to the user. Do not repeat the raw numbers.", chartJSON)},
	)

	var caption strings.Builder
	err = c.Provider.Chat(ctx, followUp, func(chunk string, _ []model.ToolCall) error {
		caption.WriteString(chunk)
		return nil
	})
	if err != nil || strings.TrimSpace(caption.String()) == "" {
		if strings.TrimSpace(result.text) != "" {
			return result.text
		}
		return defaultCaption
	}
	return caption.String()
}

// tryInOrder evaluates candidates strictly sequentially and returns the
// first success. Per-candidate failures are swallowed; only exhaustion
// surfaces, carrying the last error for classification.
func tryInOrder[T any](candidates []Candidate, attempt func(Candidate) (T, error)) (T, Candidate, error) {
	var zero T
	var lastErr error

	for _, c := range candidates {
		result, err := attempt(c)
		if err == nil {
			return result, c, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("no model candidates configured")
	}
	return zero, Candidate{}, lastErr
}
