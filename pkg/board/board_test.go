package board_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickyboard/pkg/adapters/memory"
	"github.com/aretw0/stickyboard/pkg/board"
	"github.com/aretw0/stickyboard/pkg/core"
)

// countingStore records how many writes reach the underlying store.
type countingStore struct {
	*memory.Store
	writes int
}

func (c *countingStore) Write(ctx context.Context, key string, data []byte) error {
	c.writes++
	return c.Store.Write(ctx, key, data)
}

// gatedStore parks the next Read of an armed store until release is closed.
type gatedStore struct {
	*memory.Store
	armed   atomic.Bool
	reading chan struct{}
	release chan struct{}
}

func (g *gatedStore) Read(ctx context.Context, key string) ([]byte, error) {
	if g.armed.CompareAndSwap(true, false) {
		close(g.reading)
		<-g.release
	}
	return g.Store.Read(ctx, key)
}

func sequentialIDs() board.IDGenerator {
	n := 0
	return func() string {
		n++
		return "n" + strconv.Itoa(n)
	}
}

func fixedClock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func openBoard(t *testing.T, store core.Store) *board.Board {
	t.Helper()
	return board.Open(context.Background(), store,
		board.WithIDGenerator(sequentialIDs()),
		board.WithClock(fixedClock()),
	)
}

func TestBoard_AddPrependsAndTrims(t *testing.T) {
	ctx := context.Background()
	b := openBoard(t, memory.New())

	first, err := b.Add(ctx, "  buy milk  ", core.PriorityNormal)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", first.Text)

	second, err := b.Add(ctx, "call mom", core.PriorityImportant)
	require.NoError(t, err)

	notes := b.List()
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Less(t, first.CreatedAt, second.CreatedAt)
}

func TestBoard_AddRejectsEmptyText(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: memory.New()}
	b := openBoard(t, store)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := b.Add(ctx, text, core.PriorityNormal)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrValidation)

		var verr *core.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Note cannot be empty", verr.Reason)
	}

	assert.Zero(t, b.Len())
	assert.Zero(t, store.writes, "validation failure must not write")
}

func TestBoard_AddRejectsUnknownPriority(t *testing.T) {
	b := openBoard(t, memory.New())
	_, err := b.Add(context.Background(), "text", core.Priority("urgent"))
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestBoard_Remove(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: memory.New()}
	b := openBoard(t, store)

	a, _ := b.Add(ctx, "a", core.PriorityNormal)
	c, _ := b.Add(ctx, "c", core.PriorityDelayed)
	before := b.List()
	writes := store.writes

	require.NoError(t, b.Remove(ctx, "missing"))
	assert.Equal(t, before, b.List())
	assert.Equal(t, writes, store.writes)

	require.NoError(t, b.Remove(ctx, a.ID))
	notes := b.List()
	require.Len(t, notes, 1)
	assert.Equal(t, c.ID, notes[0].ID)

	require.NoError(t, b.Remove(ctx, c.ID))
	raw, err := store.Read(ctx, core.NotesKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestBoard_SetPriority(t *testing.T) {
	ctx := context.Background()
	b := openBoard(t, memory.New())

	a, _ := b.Add(ctx, "a", core.PriorityNormal)
	c, _ := b.Add(ctx, "c", core.PriorityNormal)

	require.NoError(t, b.SetPriority(ctx, "missing", core.PriorityDelayed))

	require.NoError(t, b.SetPriority(ctx, a.ID, core.PriorityImportant))
	got, ok := b.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, core.PriorityImportant, got.Priority)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Text, got.Text)
	assert.Equal(t, a.CreatedAt, got.CreatedAt)

	sibling, _ := b.Get(c.ID)
	assert.Equal(t, c, sibling)

	assert.ErrorIs(t, b.SetPriority(ctx, a.ID, "whenever"), core.ErrValidation)
}

func TestBoard_GroupByPriority(t *testing.T) {
	ctx := context.Background()
	b := openBoard(t, memory.New())

	n1, _ := b.Add(ctx, "1", core.PriorityImportant)
	n2, _ := b.Add(ctx, "2", core.PriorityDelayed)
	n3, _ := b.Add(ctx, "3", core.PriorityImportant)

	groups := b.GroupByPriority()
	assert.Equal(t, []core.Note{n3, n1}, groups[core.PriorityImportant])
	assert.Equal(t, []core.Note{n2}, groups[core.PriorityDelayed])
	assert.Empty(t, groups[core.PriorityNormal])

	// Regrouping reflects changes immediately.
	require.NoError(t, b.SetPriority(ctx, n1.ID, core.PriorityNormal))
	groups = b.GroupByPriority()
	assert.Len(t, groups[core.PriorityImportant], 1)
	assert.Len(t, groups[core.PriorityNormal], 1)
}

func TestBoard_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	b := openBoard(t, store)

	for i, p := range []core.Priority{core.PriorityDelayed, core.PriorityNormal, core.PriorityImportant} {
		_, err := b.Add(ctx, fmt.Sprintf("note %d", i), p)
		require.NoError(t, err)
	}

	reloaded := board.Open(ctx, store)
	if diff := cmp.Diff(b.List(), reloaded.List()); diff != "" {
		t.Errorf("reloaded list mismatch (-want +got):\n%s", diff)
	}
}

func TestBoard_PersistedFormat(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	b := board.Open(ctx, store,
		board.WithIDGenerator(func() string { return "abc" }),
		board.WithClock(func() time.Time { return time.UnixMilli(1700000000123) }),
	)

	_, err := b.Add(ctx, "hello", core.PriorityImportant)
	require.NoError(t, err)

	raw, err := store.Read(ctx, core.NotesKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"abc","text":"hello","priority":"important","createdAt":1700000000123}]`, string(raw))
}

func TestBoard_CorruptStorageStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Write(ctx, core.NotesKey, []byte("definitely not json")))

	var b *board.Board
	require.NotPanics(t, func() { b = openBoard(t, store) })
	assert.Zero(t, b.Len())

	note, err := b.Add(ctx, "fresh start", core.PriorityNormal)
	require.NoError(t, err)

	reloaded := board.Open(ctx, store)
	assert.Equal(t, []core.Note{note}, reloaded.List())
}

func TestBoard_WriteFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	b := openBoard(t, store)

	kept, err := b.Add(ctx, "kept", core.PriorityNormal)
	require.NoError(t, err)

	store.FailWrites(errors.New("quota exceeded"))

	_, err = b.Add(ctx, "lost", core.PriorityNormal)
	assert.Error(t, err)
	assert.Error(t, b.Remove(ctx, kept.ID))
	assert.Error(t, b.SetPriority(ctx, kept.ID, core.PriorityDelayed))

	assert.Equal(t, []core.Note{kept}, b.List())
}

func TestBoard_Reload(t *testing.T) {
	ctx := context.Background()
	thisTab := memory.New()
	otherTab := thisTab.Peer()

	b := openBoard(t, thisTab)
	other := board.Open(ctx, otherTab)

	n, err := other.Add(ctx, "from elsewhere", core.PriorityDelayed)
	require.NoError(t, err)
	assert.Zero(t, b.Len())

	b.Reload(ctx)
	assert.Equal(t, []core.Note{n}, b.List())
}

func TestBoard_ReloadDoesNotDropConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	store := &gatedStore{
		Store:   memory.New(),
		reading: make(chan struct{}),
		release: make(chan struct{}),
	}
	b := openBoard(t, store)
	_, err := b.Add(ctx, "first", core.PriorityNormal)
	require.NoError(t, err)

	store.armed.Store(true)
	reloaded := make(chan struct{})
	go func() {
		b.Reload(ctx)
		close(reloaded)
	}()
	<-store.reading

	added := make(chan error, 1)
	go func() {
		_, err := b.Add(ctx, "second", core.PriorityNormal)
		added <- err
	}()

	select {
	case <-added:
		t.Fatal("add completed while reload was reading")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.release)
	<-reloaded
	require.NoError(t, <-added)

	_, err = b.Add(ctx, "third", core.PriorityNormal)
	require.NoError(t, err)

	texts := func(notes []core.Note) []string {
		out := make([]string, 0, len(notes))
		for _, n := range notes {
			out = append(out, n.Text)
		}
		return out
	}
	want := []string{"third", "second", "first"}
	assert.Equal(t, want, texts(b.List()))
	assert.Equal(t, want, texts(board.Open(ctx, store).List()))
}

func TestBoard_DefaultIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	b := board.Open(ctx, memory.New(), board.WithClock(func() time.Time { return time.UnixMilli(1) }))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		n, err := b.Add(ctx, "same tick", core.PriorityNormal)
		require.NoError(t, err)
		require.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
	}
}
