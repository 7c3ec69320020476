package chart

// palette is the fixed series color cycle. Slice colors for pie charts
// are assigned by label index; line/bar series colors by dataset index.
var palette = []string{
	"#36A2EB", // blue
	"#FF6384", // red
	"#FFCE56", // yellow
	"#4BC0C0", // teal
	"#9966FF", // purple
	"#FF9F40", // orange
}

// seriesColor returns the palette color for a series index, cycling
// when the index exceeds the palette length.
func seriesColor(i int) string {
	return palette[i%len(palette)]
}

// sliceColors returns one palette color per pie slice.
func sliceColors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = seriesColor(i)
	}
	return out
}
