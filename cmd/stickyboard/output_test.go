package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickyboard/pkg/analytics"
	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/remote"
)

func TestRender(t *testing.T) {
	note := core.Note{ID: "n1", Text: "hello", Priority: core.PriorityNormal, CreatedAt: 42}
	text := func(w io.Writer) { _, _ = io.WriteString(w, "plain\n") }

	var buf bytes.Buffer
	require.NoError(t, render(&buf, "json", note, text))
	assert.JSONEq(t, `{"id":"n1","text":"hello","priority":"normal","createdAt":42}`, buf.String())

	buf.Reset()
	require.NoError(t, render(&buf, "yaml", note, text))
	assert.Equal(t, "id: n1\ntext: hello\npriority: normal\ncreatedAt: 42\n", buf.String())

	buf.Reset()
	require.NoError(t, render(&buf, "text", note, text))
	assert.Equal(t, "plain\n", buf.String())

	assert.Error(t, render(&buf, "xml", note, text))
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	writeStats(&buf, nil)
	assert.Equal(t, "No data\n", buf.String())

	buf.Reset()
	bret := &remote.User{ID: 1, Username: "Bret"}
	writeStats(&buf, &analytics.Stats{
		TotalUsers:           1,
		MostPosts:            &analytics.Extreme{User: bret, Count: 3},
		FewestPosts:          &analytics.Extreme{User: bret, Count: 3},
		MostCompletedTodos:   &analytics.Extreme{User: bret, Count: 0},
		FewestCompletedTodos: &analytics.Extreme{User: bret, Count: 0},
	})
	assert.Contains(t, buf.String(), "Most posts:             Bret (3)\n")
	assert.Contains(t, buf.String(), "Fewest completed todos: Bret (0)\n")
}
