// Package core holds the domain types shared by the board, the notifier,
// the analytics derivation and the storage adapters.
package core

// EventType represents the type of change observed on a stored key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a stored key made outside of this process
// (or at least outside of the store instance that reports it).
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}

// Well-known storage keys.
const (
	NotesKey      = "notes"
	TodoStatesKey = "user_todos_state"
	AuthFlagKey   = "isAuthenticated"
)

// Well-known notification topics.
const (
	TopicTodosUpdated = "todos-updated"
	TopicNotesUpdated = "notes-updated"
)
