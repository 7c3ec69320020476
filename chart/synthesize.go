// Package chart turns loosely-typed chart requests from the model into
// fully-formed, renderer-ready chart objects backed by catalog ground
// truth.
//
// The validator is deliberately strict: labels must be either all
// recognized aggregate labels or all exact (case-insensitive) product
// names. Model-supplied numeric values are always discarded in favor of
// catalog-derived metrics, so a fabricated figure can never reach the
// user.
package chart

import (
	"fmt"
	"strings"

	"ulapchat/catalog"
	"ulapchat/model"
)

// aggregateLabels maps recognized whole-catalog labels to the statistic
// they chart. "stock in vs out" charts net movement.
var aggregateLabels = map[string]func(catalog.Stats) float64{
	"stock card":      func(s catalog.Stats) float64 { return float64(s.TotalStock) },
	"stock in":        func(s catalog.Stats) float64 { return float64(s.TotalIn) },
	"stock out":       func(s catalog.Stats) float64 { return float64(s.TotalOut) },
	"units":           func(s catalog.Stats) float64 { return float64(s.TotalStock) },
	"report":          func(s catalog.Stats) float64 { return float64(s.TotalStock) },
	"stock in vs out": func(s catalog.Stats) float64 { return float64(s.TotalIn - s.TotalOut) },
}

// maxAggregateLabels bounds how many aggregate slices one chart may ask
// for.
const maxAggregateLabels = 6

// Rejection is a user-facing refusal to synthesize. It is always shown
// verbatim and never treated as a system failure.
type Rejection struct {
	Reason string
}

// Result is the outcome of a synthesis attempt: a renderer-ready spec,
// a rejection, or neither when the request could not be decoded.
type Result struct {
	Spec     *model.ChartSpec
	Rejected *Rejection
}

// Synthesizer validates chart requests against the catalog and
// substitutes ground-truth values.
type Synthesizer struct {
	catalog *catalog.Catalog
}

// NewSynthesizer creates a synthesizer over the given catalog.
func NewSynthesizer(c *catalog.Catalog) *Synthesizer {
	return &Synthesizer{catalog: c}
}

// Synthesize builds a chart from loosely-typed tool arguments. The
// returned spec always satisfies the dataset length invariant.
func (s *Synthesizer) Synthesize(args map[string]any) Result {
	labels, ok := decodeStrings(args["labels"])
	if !ok || len(labels) == 0 {
		return Result{}
	}
	datasets, ok := decodeDatasets(args["datasets"])
	if !ok || len(datasets) == 0 {
		return Result{}
	}

	title, _ := args["title"].(string)
	chartType := clampType(args["chartType"])

	if allAggregate(labels) && len(labels) <= maxAggregateLabels {
		return s.buildSpec(chartType, title, labels, datasets, s.aggregateValues(labels))
	}

	// Product path: every label must be an exact catalog name. The
	// first unmatched label rejects the whole request.
	products := make([]catalog.Product, len(labels))
	for i, label := range labels {
		p, found := s.catalog.ProductByName(label)
		if !found {
			return Result{Rejected: &Rejection{
				Reason: fmt.Sprintf("Product %q was not found in our inventory. Please ask again using the exact product name from the stock list.", label),
			}}
		}
		products[i] = p
	}

	return s.buildSpec(chartType, title, labels, datasets, func(ds decodedDataset) []float64 {
		metric := metricFor(ds.Label)
		values := make([]float64, len(products))
		for i, p := range products {
			values[i] = metric(p)
		}
		return values
	})
}

// aggregateValues charts one statistic per aggregate label, identical
// for every dataset.
func (s *Synthesizer) aggregateValues(labels []string) func(decodedDataset) []float64 {
	stats := s.catalog.Stats()
	values := make([]float64, len(labels))
	for i, label := range labels {
		values[i] = aggregateLabels[normalizeLabel(label)](stats)
	}
	return func(decodedDataset) []float64 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
}

func (s *Synthesizer) buildSpec(chartType model.ChartType, title string, labels []string, datasets []decodedDataset, values func(decodedDataset) []float64) Result {
	spec := &model.ChartSpec{Type: chartType, Title: title, Labels: labels}

	if chartType == model.ChartPie {
		// Pie charts use only the first dataset, reconciled to the
		// label count.
		ds := datasets[0]
		spec.Datasets = []model.Dataset{{
			Label:           ds.Label,
			Data:            reconcileLength(values(ds), len(labels)),
			BackgroundColor: sliceColors(len(labels)),
		}}
		return Result{Spec: spec}
	}

	spec.Datasets = make([]model.Dataset, len(datasets))
	for i, ds := range datasets {
		out := model.Dataset{
			Label: ds.Label,
			Data:  reconcileLength(values(ds), len(labels)),
		}
		switch chartType {
		case model.ChartLine:
			out.BorderColor = seriesColor(i)
			out.Tension = 0.4
		case model.ChartBar:
			out.BackgroundColor = []string{seriesColor(i)}
			out.Fill = true
		}
		spec.Datasets[i] = out
	}
	return Result{Spec: spec}
}

// metricFor selects the catalog metric a dataset charts from keywords
// in its own label. "out" is checked before "in" so labels naming both
// chart outgoing stock.
func metricFor(label string) func(catalog.Product) float64 {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "out"):
		return func(p catalog.Product) float64 { return float64(p.StockOut) }
	case strings.Contains(lower, "in"):
		return func(p catalog.Product) float64 { return float64(p.StockIn) }
	default:
		return func(p catalog.Product) float64 { return float64(p.CurrentStock) }
	}
}

func allAggregate(labels []string) bool {
	for _, label := range labels {
		if _, ok := aggregateLabels[normalizeLabel(label)]; !ok {
			return false
		}
	}
	return true
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// clampType restricts the chart type to the supported set, defaulting
// to bar when absent or unrecognized.
func clampType(v any) model.ChartType {
	s, _ := v.(string)
	switch model.ChartType(strings.ToLower(strings.TrimSpace(s))) {
	case model.ChartLine:
		return model.ChartLine
	case model.ChartPie:
		return model.ChartPie
	case model.ChartBar:
		return model.ChartBar
	default:
		return model.ChartBar
	}
}

// reconcileLength truncates or zero-pads data to exactly n values.
func reconcileLength(data []float64, n int) []float64 {
	if len(data) == n {
		return data
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}
