package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a product dataset from a JSON file. The file holds a
// plain array of products.
func LoadFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return products, nil
}

// Seed returns the built-in demo dataset used when no catalog file is
// configured.
func Seed() []Product {
	return []Product{
		{
			ID: "p-001", Name: "Arabica Beans 1kg", Category: "Coffee",
			CurrentStock: 42, StockIn: 120, StockOut: 78, LastPrice: 18.50,
			Transactions: []Transaction{
				{Date: "2026-08-01", Type: "in", Quantity: 40, Price: 18.50},
				{Date: "2026-08-12", Type: "out", Quantity: 25, Price: 18.50},
			},
		},
		{
			ID: "p-002", Name: "Robusta Beans 1kg", Category: "Coffee",
			CurrentStock: 61, StockIn: 150, StockOut: 89, LastPrice: 12.75,
		},
		{
			ID: "p-003", Name: "Paper Cups 12oz", Category: "Supplies",
			CurrentStock: 480, StockIn: 1000, StockOut: 520, LastPrice: 0.08,
		},
		{
			ID: "p-004", Name: "Oat Milk 1L", Category: "Dairy",
			CurrentStock: 35, StockIn: 90, StockOut: 55, LastPrice: 3.20,
		},
		{
			ID: "p-005", Name: "Vanilla Syrup 750ml", Category: "Syrups",
			CurrentStock: 18, StockIn: 36, StockOut: 18, LastPrice: 6.40,
		},
	}
}
