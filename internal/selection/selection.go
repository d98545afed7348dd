// Package selection owns the set of chosen product ids — the single
// source of truth for "is this product chosen".
package selection

import (
	"vanity/internal/catalog"
	"vanity/internal/model"
)

// Persister receives the full selection after every mutation. Saves are
// best-effort and never block the mutation.
type Persister interface {
	SaveSelection(ids []int)
}

// Model is a mutable id set with deterministic (insertion) display order.
type Model struct {
	ids    []int
	member map[int]bool
	store  Persister
}

// New builds a Model from the hydrated selection, deduplicating while
// preserving order. Stale ids are kept — they round-trip through
// persistence and are only dropped at render time.
func New(saved []int, store Persister) *Model {
	m := &Model{member: make(map[int]bool), store: store}
	for _, id := range saved {
		if !m.member[id] {
			m.member[id] = true
			m.ids = append(m.ids, id)
		}
	}
	return m
}

// Toggle flips membership of id and persists the new set. Returns whether
// the id is selected afterwards. Toggling twice restores the prior state.
func (m *Model) Toggle(id int) bool {
	if m.member[id] {
		delete(m.member, id)
		for i, v := range m.ids {
			if v == id {
				m.ids = append(m.ids[:i], m.ids[i+1:]...)
				break
			}
		}
	} else {
		m.member[id] = true
		m.ids = append(m.ids, id)
	}
	m.store.SaveSelection(m.IDs())
	return m.member[id]
}

// Clear empties the set and persists.
func (m *Model) Clear() {
	m.ids = nil
	m.member = make(map[int]bool)
	m.store.SaveSelection(nil)
}

// Has reports membership.
func (m *Model) Has(id int) bool {
	return m.member[id]
}

// Count returns the number of selected ids, stale ones included.
func (m *Model) Count() int {
	return len(m.ids)
}

// IDs returns the selection in insertion order.
func (m *Model) IDs() []int {
	out := make([]int, len(m.ids))
	copy(out, m.ids)
	return out
}

// Products resolves the selection against the catalog in insertion order,
// silently dropping ids the catalog no longer knows.
func (m *Model) Products(idx *catalog.Index) []model.Product {
	var out []model.Product
	for _, id := range m.ids {
		if p, ok := idx.ByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}
