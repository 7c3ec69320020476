package chart

import "encoding/json"

// Tool arguments arrive loosely typed: labels and datasets may be
// structured JSON arrays or JSON-encoded text, depending on how the
// model filled the schema. Decoding never assumes shape without a
// preceding type check; anything undecodable yields ok=false and the
// caller shows a generic fallback.

type decodedDataset struct {
	Label string
	Data  []float64
}

// decodeStrings accepts []string, []any of strings, or a JSON-encoded
// array of strings.
func decodeStrings(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		var out []string
		if err := json.Unmarshal([]byte(val), &out); err != nil {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}

// decodeDatasets accepts []any of {label, data} objects or a
// JSON-encoded array of the same shape. Non-numeric data values coerce
// to 0.
func decodeDatasets(v any) ([]decodedDataset, bool) {
	switch val := v.(type) {
	case []any:
		out := make([]decodedDataset, 0, len(val))
		for _, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, decodeDatasetMap(m))
		}
		return out, true
	case string:
		var raw []map[string]any
		if err := json.Unmarshal([]byte(val), &raw); err != nil {
			return nil, false
		}
		out := make([]decodedDataset, 0, len(raw))
		for _, m := range raw {
			out = append(out, decodeDatasetMap(m))
		}
		return out, true
	default:
		return nil, false
	}
}

func decodeDatasetMap(m map[string]any) decodedDataset {
	ds := decodedDataset{}
	if label, ok := m["label"].(string); ok {
		ds.Label = label
	}
	switch data := m["data"].(type) {
	case []any:
		ds.Data = make([]float64, len(data))
		for i, item := range data {
			ds.Data[i] = coerceNumber(item)
		}
	case []float64:
		ds.Data = data
	}
	return ds
}

// coerceNumber converts any value to a float64, mapping non-numeric
// values to 0.
func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
