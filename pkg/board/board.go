// Package board implements the note board: an ordered, persisted list of
// prioritised notes.
//
// The list is most-recent-first. Every mutation persists the full list under
// core.NotesKey before it becomes visible; if the write fails the in-memory
// list is left unchanged and the error is returned.
package board

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/typed"
)

// IDGenerator produces note identifiers. Implementations must not repeat.
type IDGenerator func() string

// UUIDs generates random (version 4) UUIDs.
func UUIDs() string {
	return uuid.NewString()
}

// Board owns the list of notes.
type Board struct {
	mu     sync.RWMutex
	notes  []core.Note
	value  *typed.Value[[]core.Note]
	newID  IDGenerator
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(b *Board) {
		b.newID = gen
	}
}

// WithClock replaces time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithLogger sets the board logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// Open loads the board from store. A missing or corrupt value starts empty.
func Open(ctx context.Context, store core.Store, opts ...Option) *Board {
	b := &Board{
		newID:  UUIDs,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.value = typed.NewValue(store, core.NotesKey, func() []core.Note { return nil }, typed.WithLogger(b.logger))
	b.notes = sanitize(b.value.Get(ctx))
	return b
}

// sanitize drops entries that could not have been produced by Add.
func sanitize(notes []core.Note) []core.Note {
	return slices.DeleteFunc(notes, func(n core.Note) bool {
		return n.ID == "" || !n.Priority.Valid()
	})
}

// Add creates a note from text and prepends it.
func (b *Board) Add(ctx context.Context, text string, priority core.Priority) (core.Note, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return core.Note{}, &core.ValidationError{Field: "text", Reason: "Note cannot be empty"}
	}
	if !priority.Valid() {
		return core.Note{}, &core.ValidationError{Field: "priority", Reason: "unknown priority " + string(priority)}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	note := core.Note{
		ID:        b.newID(),
		Text:      trimmed,
		Priority:  priority,
		CreatedAt: b.now().UnixMilli(),
	}

	next := make([]core.Note, 0, len(b.notes)+1)
	next = append(next, note)
	next = append(next, b.notes...)
	if err := b.commit(ctx, next); err != nil {
		return core.Note{}, err
	}

	b.logger.Debug("note added", "id", note.ID, "priority", string(note.Priority))
	return note, nil
}

// Remove deletes the note with id. An unknown id is a no-op.
func (b *Board) Remove(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := slices.Concat(b.notes[:idx], b.notes[idx+1:])
	if err := b.commit(ctx, next); err != nil {
		return err
	}
	b.logger.Debug("note removed", "id", id)
	return nil
}

// SetPriority changes the priority of the note with id.
// An unknown id is a no-op; other fields and sibling notes are untouched.
func (b *Board) SetPriority(ctx context.Context, id string, p core.Priority) error {
	if !p.Valid() {
		return &core.ValidationError{Field: "priority", Reason: "unknown priority " + string(p)}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.indexOf(id)
	if idx < 0 || b.notes[idx].Priority == p {
		return nil
	}

	next := slices.Clone(b.notes)
	next[idx].Priority = p
	return b.commit(ctx, next)
}

// List returns a copy of the notes, most recent first.
func (b *Board) List() []core.Note {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.notes)
}

// Get returns the note with id.
func (b *Board) Get(id string) (core.Note, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if idx := b.indexOf(id); idx >= 0 {
		return b.notes[idx], true
	}
	return core.Note{}, false
}

// Len returns the number of notes.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.notes)
}

// GroupByPriority partitions the current list into one bucket per priority,
// keeping list order inside each bucket. It is recomputed on every call.
func (b *Board) GroupByPriority() map[core.Priority][]core.Note {
	b.mu.RLock()
	defer b.mu.RUnlock()

	groups := make(map[core.Priority][]core.Note, len(core.Priorities))
	for _, p := range core.Priorities {
		groups[p] = []core.Note{}
	}
	for _, n := range b.notes {
		groups[n.Priority] = append(groups[n.Priority], n)
	}
	return groups
}

// Reload replaces the in-memory list with what is currently stored.
// It is used when another writer changed the notes.
func (b *Board) Reload(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notes = sanitize(b.value.Get(ctx))
}

// commit persists next and swaps it in. Callers hold b.mu.
func (b *Board) commit(ctx context.Context, next []core.Note) error {
	if next == nil {
		next = []core.Note{}
	}
	if err := b.value.Set(ctx, next); err != nil {
		b.logger.Error("failed to persist notes", "error", err)
		return err
	}
	b.notes = next
	return nil
}

func (b *Board) indexOf(id string) int {
	return slices.IndexFunc(b.notes, func(n core.Note) bool { return n.ID == id })
}
