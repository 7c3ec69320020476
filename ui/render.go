package ui

import (
	"fmt"
	"strconv"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/mattn/go-runewidth"

	"ulapchat/model"
)

// labelColumnWidth bounds the label column of rendered chart tables.
const labelColumnWidth = 24

// renderTranscript renders the full message list for the viewport.
func renderTranscript(messages []model.Message, width int, pendingID, pendingIndicator string) string {
	if len(messages) == 0 {
		return DimStyle.Render("No messages yet. Ask about your stock, or request a chart.")
	}

	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(renderMessage(msg, width, pendingID, pendingIndicator))
		b.WriteString("\n")
	}
	return b.String()
}

func renderMessage(msg model.Message, width int, pendingID, pendingIndicator string) string {
	timestamp := DimStyle.Render("[" + msg.Time + "]")

	if msg.Sender == model.SenderUser {
		role := UserStyle.Render("You")
		return fmt.Sprintf("%s %s\n%s\n", timestamp, role, msg.Text)
	}

	role := AssistantStyle.Render("Assistant")

	// The in-flight placeholder renders a spinner instead of its text.
	if msg.ID == pendingID {
		return fmt.Sprintf("%s %s\n%s\n", timestamp, role, pendingIndicator)
	}

	body := renderBody(msg, width)
	return fmt.Sprintf("%s %s\n%s\n", timestamp, role, body)
}

func renderBody(msg model.Message, width int) string {
	if msg.Kind == model.KindChart && msg.Chart != nil {
		caption := strings.TrimSpace(msg.Text)
		table := renderChartTable(msg.Chart, width)
		if caption == "" {
			return table
		}
		return caption + "\n\n" + table
	}
	return renderMarkdown(msg.Text, width)
}

func renderMarkdown(text string, width int) string {
	if width < 20 {
		return text
	}
	rendered := markdown.Render(text, width-4, 0)
	return strings.TrimRight(string(rendered), "\n")
}

// renderChartTable renders chart data as an aligned text table. The
// terminal has no plotting surface, so the table is the chart.
func renderChartTable(spec *model.ChartSpec, width int) string {
	var b strings.Builder

	if spec.Title != "" {
		b.WriteString(TitleStyle.Render(spec.Title))
		b.WriteString("\n")
	}
	b.WriteString(DimStyle.Render(fmt.Sprintf("(%s chart)", spec.Type)))
	b.WriteString("\n")

	labelWidth := labelColumnWidth
	if width > 0 && labelWidth > width/2 {
		labelWidth = width / 2
	}

	// Header: dataset labels as columns.
	valueWidths := make([]int, len(spec.Datasets))
	header := pad("", labelWidth)
	for i, ds := range spec.Datasets {
		name := ds.Label
		if name == "" {
			name = fmt.Sprintf("Series %d", i+1)
		}
		valueWidths[i] = runewidth.StringWidth(name)
		if valueWidths[i] < 8 {
			valueWidths[i] = 8
		}
		header += "  " + pad(name, valueWidths[i])
	}
	b.WriteString(DimStyle.Render(header))
	b.WriteString("\n")

	for row, label := range spec.Labels {
		line := pad(label, labelWidth)
		for i, ds := range spec.Datasets {
			value := ""
			if row < len(ds.Data) {
				value = formatValue(ds.Data[row])
			}
			line += "  " + pad(value, valueWidths[i])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// pad truncates or pads s to exactly width display cells.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
