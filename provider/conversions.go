package provider

import (
	"encoding/json"
	"strings"

	"github.com/openai/openai-go/v3"

	"ulapchat/model"
)

// ConvertToOpenAIMessages converts wire messages to OpenAI format.
func ConvertToOpenAIMessages(messages []model.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case "system":
			result[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			// "user", "tool" and anything else go to the user turn.
			result[i] = openai.UserMessage(msg.Content)
		}
	}

	return result
}

// ParseToolArguments parses a JSON arguments string into a map. A
// malformed payload yields an empty map rather than an error; the tool
// layer treats missing arguments as a decode failure.
func ParseToolArguments(argsJSON string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return make(map[string]any)
	}
	return args
}

// leakedToolCall matches the JSON shape models emit when they write a
// tool call into the text channel instead of the structured field.
type leakedToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ParseLeakedJSONToolCalls recovers tool calls that leaked into the
// response text as JSON, either bare or inside a fenced code block.
// Returns nil when the content holds no recognizable call.
func ParseLeakedJSONToolCalls(content string) []model.ToolCall {
	candidate := strings.TrimSpace(content)

	if idx := strings.Index(candidate, "```"); idx != -1 {
		fenced := candidate[idx+3:]
		fenced = strings.TrimPrefix(fenced, "json")
		if end := strings.Index(fenced, "```"); end != -1 {
			candidate = strings.TrimSpace(fenced[:end])
		}
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end <= start {
		return nil
	}
	candidate = candidate[start : end+1]

	var leaked leakedToolCall
	if err := json.Unmarshal([]byte(candidate), &leaked); err != nil {
		return nil
	}
	if leaked.Name == "" || leaked.Arguments == nil {
		return nil
	}

	return []model.ToolCall{{Name: leaked.Name, Arguments: leaked.Arguments}}
}
