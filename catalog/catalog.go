// Package catalog exposes the product/inventory dataset the assistant
// answers questions about, together with derived statistics.
//
// The catalog is read-only: data arrives pre-loaded (from a JSON file or
// the built-in seed set) and is never mutated by the assistant
// subsystem. Derived statistics are memoized in an explicit
// {value, fetchedAt} cache owned by the Catalog instance rather than a
// hidden package-level variable.
package catalog

import (
	"strings"
	"time"
)

// Transaction is one ledger row on a product's stock card.
type Transaction struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"` // "in" or "out"
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Product is a read-only view over one catalog item.
type Product struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	CurrentStock int           `json:"currentStock"`
	StockIn      int           `json:"stockIn"`
	StockOut     int           `json:"stockOut"`
	LastPrice    float64       `json:"lastPrice"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// Stats are aggregate figures derived from the whole catalog.
type Stats struct {
	ProductCount int
	Categories   []string
	TotalStock   int
	TotalIn      int
	TotalOut     int
	TotalValue   float64
}

// statsTTL bounds how long memoized stats are served before being
// recomputed.
const statsTTL = 5 * time.Minute

type statsCache struct {
	value     *Stats
	fetchedAt time.Time
}

// Catalog is the accessor over a pre-loaded product dataset.
type Catalog struct {
	products []Product
	byName   map[string]Product
	cache    statsCache
}

// New creates a catalog over the given products.
func New(products []Product) *Catalog {
	byName := make(map[string]Product, len(products))
	for _, p := range products {
		byName[strings.ToLower(p.Name)] = p
	}
	return &Catalog{products: products, byName: byName}
}

// Products returns a copy of the product list.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ValidNames returns every product name, in catalog order.
func (c *Catalog) ValidNames() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// ProductByName looks up a product by exact, case-insensitive name.
// Near matches and abbreviations deliberately do not resolve.
func (c *Catalog) ProductByName(name string) (Product, bool) {
	p, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Stats returns aggregate catalog statistics, memoized for statsTTL.
func (c *Catalog) Stats() Stats {
	if c.cache.value != nil && time.Since(c.cache.fetchedAt) < statsTTL {
		return *c.cache.value
	}

	s := Stats{ProductCount: len(c.products)}
	seen := make(map[string]bool)
	for _, p := range c.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			s.Categories = append(s.Categories, p.Category)
		}
		s.TotalStock += p.CurrentStock
		s.TotalIn += p.StockIn
		s.TotalOut += p.StockOut
		s.TotalValue += float64(p.CurrentStock) * p.LastPrice
	}

	c.cache = statsCache{value: &s, fetchedAt: time.Now()}
	return s
}
