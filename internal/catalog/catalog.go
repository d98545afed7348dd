// Package catalog loads the product catalog and answers filter queries.
// The catalog is read once at startup and immutable afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"vanity/internal/model"
)

// catalogDocument mirrors the catalog file shape.
type catalogDocument struct {
	Products []model.Product `json:"products"`
}

// Load reads the catalog document at path. It fails closed: any read or
// parse error returns an empty slice alongside the error, and the caller
// renders a terminal error state without retrying.
func Load(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	return doc.Products, nil
}

// Index holds the loaded catalog with an id lookup.
type Index struct {
	products []model.Product
	byID     map[int]model.Product
}

// NewIndex builds an Index over the given products.
func NewIndex(products []model.Product) *Index {
	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Index{products: products, byID: byID}
}

// Products returns the full catalog in load order.
func (x *Index) Products() []model.Product {
	return x.products
}

// ByID looks up a product. Unknown ids are tolerated, not errors.
func (x *Index) ByID(id int) (model.Product, bool) {
	p, ok := x.byID[id]
	return p, ok
}

// Len returns the catalog size.
func (x *Index) Len() int {
	return len(x.products)
}

// Categories returns the distinct categories in first-seen order.
func (x *Index) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range x.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Filter narrows products by exact category match (empty = all) and then
// by case-insensitive substring match on name, brand, or category. Both
// predicates must hold.
func Filter(products []model.Product, term, category string) []model.Product {
	out := products

	if category != "" {
		var byCategory []model.Product
		for _, p := range out {
			if p.Category == category {
				byCategory = append(byCategory, p)
			}
		}
		out = byCategory
	}

	if term != "" {
		lower := strings.ToLower(term)
		var byTerm []model.Product
		for _, p := range out {
			if strings.Contains(strings.ToLower(p.Name), lower) ||
				strings.Contains(strings.ToLower(p.Brand), lower) ||
				strings.Contains(strings.ToLower(p.Category), lower) {
				byTerm = append(byTerm, p)
			}
		}
		out = byTerm
	}

	return out
}
