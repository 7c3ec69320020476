package tools

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"ulapchat/chart"
)

// ChartToolName is the single tool the model may invoke.
const ChartToolName = "generate_chart"

// ChartTool declares the chart-synthesis tool schema sent to every
// model candidate. Labels and datasets are declared as encoded arrays
// because some models fill string parameters more reliably than nested
// structures; the synthesizer decodes both forms.
func ChartTool() mcptypes.Tool {
	return mcptypes.Tool{
		Name:        ChartToolName,
		Description: "Generate chart-ready data from the inventory catalog. Labels must be exact product names from the catalog, or aggregate labels such as \"Stock In\" and \"Stock Out\".",
		InputSchema: mcptypes.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"chartType": map[string]any{
					"type":        "string",
					"enum":        []any{"line", "bar", "pie"},
					"description": "Chart rendering style.",
				},
				"title": map[string]any{
					"type":        "string",
					"description": "Chart title shown to the user.",
				},
				"labels": map[string]any{
					"type":        "string",
					"description": "JSON-encoded array of axis labels, e.g. [\"Widget X\",\"Widget Y\"].",
				},
				"datasets": map[string]any{
					"type":        "string",
					"description": "JSON-encoded array of {label, data} series, e.g. [{\"label\":\"Stock In\",\"data\":[1,2]}].",
				},
			},
			Required: []string{"chartType", "labels", "datasets"},
		},
	}
}

// RegisterChartTool wires the synthesizer behind the chart tool.
func RegisterChartTool(d *Dispatcher, s *chart.Synthesizer) {
	d.Register(ChartTool(), func(args map[string]any) Outcome {
		res := s.Synthesize(args)
		if res.Rejected != nil {
			return Outcome{Rejected: res.Rejected.Reason}
		}
		return Outcome{Chart: res.Spec}
	})
}
