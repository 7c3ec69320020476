// Package tools holds the closed registry of local functions the model
// may invoke. The registry is fixed at startup; a call naming an
// unregistered tool is a protocol error that the orchestrator treats as
// a failed model attempt.
package tools

import (
	"errors"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"ulapchat/model"
)

// ErrUnknownTool is returned when a tool call names no registered tool.
var ErrUnknownTool = errors.New("unknown tool")

// Outcome is the result of a tool invocation. Exactly one of the
// following holds: Chart is set (data produced), Rejected is set (a
// complete user-facing refusal), or neither (no data).
type Outcome struct {
	Chart    *model.ChartSpec
	Rejected string
}

// NoData reports whether the tool produced neither a chart nor a
// rejection.
func (o Outcome) NoData() bool {
	return o.Chart == nil && o.Rejected == ""
}

// Handler executes a tool with the model-supplied arguments.
type Handler func(args map[string]any) Outcome

// Dispatcher maps tool names to local handlers and carries the declared
// schemas sent to the model.
type Dispatcher struct {
	handlers map[string]Handler
	tools    []mcptypes.Tool
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register adds a tool declaration and its handler.
func (d *Dispatcher) Register(tool mcptypes.Tool, h Handler) {
	d.handlers[tool.Name] = h
	d.tools = append(d.tools, tool)
}

// Tools returns the declared tool schemas, in registration order.
func (d *Dispatcher) Tools() []mcptypes.Tool {
	return d.tools
}

// Dispatch executes the named tool synchronously. An unregistered name
// returns ErrUnknownTool.
func (d *Dispatcher) Dispatch(call model.ToolCall) (Outcome, error) {
	h, ok := d.handlers[call.Name]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}
	return h(call.Arguments), nil
}
