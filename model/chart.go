package model

// ChartType identifies the chart rendering style.
type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
)

// ChartSpec is a fully-formed, renderer-ready chart object. Invariant:
// for line/bar charts every dataset's Data length equals len(Labels);
// for pie charts only the first dataset is kept, reconciled to
// len(Labels) by truncation or zero-padding.
type ChartSpec struct {
	Type     ChartType `json:"chartType"`
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one data series plus its presentation hints. Colors are
// assigned deterministically by the synthesizer; the renderer never
// picks its own.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            bool      `json:"fill"`
	Tension         float64   `json:"tension,omitempty"`
}
