package assistant

import (
	"fmt"
	"strings"

	"ulapchat/catalog"
	"ulapchat/model"
)

// historyLimit bounds how many recent messages are replayed into the
// prompt.
const historyLimit = 10

// SystemContext builds the system turn: a catalog summary plus the
// exact-match-only instruction set. The instructions are the
// anti-hallucination guard; the model must never treat near-synonymous
// product names as equivalent.
func SystemContext(c *catalog.Catalog) string {
	stats := c.Stats()

	var b strings.Builder
	b.WriteString("You are the support assistant for an inventory management app. ")
	b.WriteString("Answer questions about the user's stock using only the catalog below.\n\n")

	fmt.Fprintf(&b, "Catalog summary: %d products across %d categories (%s). ",
		stats.ProductCount, len(stats.Categories), strings.Join(stats.Categories, ", "))
	fmt.Fprintf(&b, "Total units on hand: %d. Total stock in: %d. Total stock out: %d. Total inventory value: %.2f.\n\n",
		stats.TotalStock, stats.TotalIn, stats.TotalOut, stats.TotalValue)

	b.WriteString("Product names: ")
	b.WriteString(strings.Join(c.ValidNames(), "; "))
	b.WriteString("\n\n")

	b.WriteString("Rules:\n")
	b.WriteString("- Refer to products by their exact catalog names only. Do not abbreviate, pluralize, or substitute similar names.\n")
	b.WriteString("- If the user's wording does not exactly match a catalog name, ask them to use the exact name instead of guessing.\n")
	b.WriteString("- Never invent stock figures. When the user asks for a chart or comparison, call the generate_chart tool; its data comes from the catalog itself.\n")
	b.WriteString("- Keep answers short and friendly.")

	return b.String()
}

// renderPrompt renders the bounded recent history and the current turn
// into a single user prompt.
func renderPrompt(history []model.Message, userMessage string) string {
	var b strings.Builder

	start := 0
	if len(history) > historyLimit {
		start = len(history) - historyLimit
	}
	for _, msg := range history[start:] {
		if strings.TrimSpace(msg.Text) == "" {
			continue
		}
		if msg.Sender == model.SenderUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}

	b.WriteString("User: ")
	b.WriteString(userMessage)
	return b.String()
}
