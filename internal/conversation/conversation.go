// Package conversation keeps the ordered chat log. The log is the source
// of truth; the rendered transcript is a pure projection of it.
package conversation

import "vanity/internal/model"

// Persister receives the full history after persisted appends and clears.
type Persister interface {
	SaveHistory(messages []model.Message)
}

// Log is an append-only message sequence with an explicit atomic clear.
type Log struct {
	messages []model.Message
	store    Persister
}

// New builds a Log over the hydrated history. Restoring replays the saved
// messages through the same path live messages take, just without the
// redundant write-back.
func New(saved []model.Message, store Persister) *Log {
	l := &Log{store: store}
	for _, m := range saved {
		l.Append(m, false)
	}
	return l
}

// Append pushes a message. When persist is set, the whole history is
// rewritten through the store (full-rewrite semantics, O(n) per message).
func (l *Log) Append(m model.Message, persist bool) {
	l.messages = append(l.messages, m)
	if persist {
		l.store.SaveHistory(l.Messages())
	}
}

// Clear atomically empties the in-memory log and its persisted copy.
func (l *Log) Clear() {
	l.messages = nil
	l.store.SaveHistory(nil)
}

// Messages returns a copy of the full history, oldest first.
func (l *Log) Messages() []model.Message {
	out := make([]model.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Recent returns the last n messages, oldest first.
func (l *Log) Recent(n int) []model.Message {
	if n >= len(l.messages) {
		return l.Messages()
	}
	out := make([]model.Message, n)
	copy(out, l.messages[len(l.messages)-n:])
	return out
}

// Len returns the number of messages.
func (l *Log) Len() int {
	return len(l.messages)
}
