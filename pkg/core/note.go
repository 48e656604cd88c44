package core

import (
	"fmt"
	"strings"
)

// Priority classifies a note for grouping and display.
type Priority string

const (
	PriorityImportant Priority = "important"
	PriorityNormal    Priority = "normal"
	PriorityDelayed   Priority = "delayed"
)

// Priorities lists every priority in display order.
var Priorities = []Priority{PriorityImportant, PriorityNormal, PriorityDelayed}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityImportant, PriorityNormal, PriorityDelayed:
		return true
	}
	return false
}

// ParsePriority converts user input into a Priority.
// An empty string yields PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityNormal, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", s)}
	}
	return p, nil
}

// Note is a user-authored text item with a priority classification.
// CreatedAt is expressed in Unix milliseconds.
type Note struct {
	ID        string   `json:"id" yaml:"id"`
	Text      string   `json:"text" yaml:"text"`
	Priority  Priority `json:"priority" yaml:"priority"`
	CreatedAt int64    `json:"createdAt" yaml:"createdAt"`
}
