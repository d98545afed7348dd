// Package model defines the domain types shared across the application.
package model

// Product is a single catalog entry. Products are loaded once at startup
// and never mutated.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

// Message roles. The wire protocol and the persisted history use the same
// two values.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation entry, persisted exactly as sent.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the hydrated persisted state: the three independently stored
// slices after a successful load. A corrupt store yields the zero State.
type State struct {
	Selection []int
	History   []Message
	RTL       bool
}
