package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func testProducts() []Product {
	return []Product{
		{ID: "1", Name: "Widget X", Category: "Widgets", CurrentStock: 10, StockIn: 30, StockOut: 20, LastPrice: 2.5},
		{ID: "2", Name: "Widget Y", Category: "Widgets", CurrentStock: 7, StockIn: 12, StockOut: 5, LastPrice: 4.0},
		{ID: "3", Name: "Gadget Z", Category: "Gadgets", CurrentStock: 3, StockIn: 9, StockOut: 6, LastPrice: 10.0},
	}
}

func TestProductByNameExactMatch(t *testing.T) {
	c := New(testProducts())

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact match", "Widget X", true},
		{"case-insensitive", "widget x", true},
		{"surrounding whitespace", "  Widget Y  ", true},
		{"near match rejected", "Widget", false},
		{"abbreviation rejected", "WX", false},
		{"unknown product", "Unicorn 9000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := c.ProductByName(tt.query)
			if ok != tt.found {
				t.Errorf("ProductByName(%q) found=%v, want %v", tt.query, ok, tt.found)
			}
		})
	}
}

func TestStats(t *testing.T) {
	c := New(testProducts())
	s := c.Stats()

	if s.ProductCount != 3 {
		t.Errorf("ProductCount: got %d, want 3", s.ProductCount)
	}
	if s.TotalStock != 20 {
		t.Errorf("TotalStock: got %d, want 20", s.TotalStock)
	}
	if s.TotalIn != 51 {
		t.Errorf("TotalIn: got %d, want 51", s.TotalIn)
	}
	if s.TotalOut != 31 {
		t.Errorf("TotalOut: got %d, want 31", s.TotalOut)
	}
	if len(s.Categories) != 2 {
		t.Errorf("Categories: got %v, want 2 entries", s.Categories)
	}

	// Served from cache on the second call.
	again := c.Stats()
	if again.TotalStock != s.TotalStock {
		t.Errorf("cached stats diverged: got %d, want %d", again.TotalStock, s.TotalStock)
	}
}

func TestValidNamesOrder(t *testing.T) {
	c := New(testProducts())
	names := c.ValidNames()
	want := []string{"Widget X", "Widget Y", "Gadget Z"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d]: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data := `[{"id":"9","name":"Test Item","category":"Test","currentStock":5,"stockIn":8,"stockOut":3,"lastPrice":1.5}]`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	products, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Test Item" {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed file")
	}
}
