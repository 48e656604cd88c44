package stickyboard_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/stickyboard"
	"github.com/aretw0/stickyboard/pkg/core"
)

// Example_basic opens a board in a temporary directory, adds two notes and
// groups them by priority.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "stickyboard-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	app, err := stickyboard.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ctx := context.Background()
	if _, err := app.Board.Add(ctx, "renew passport", core.PriorityImportant); err != nil {
		log.Fatal(err)
	}
	if _, err := app.Board.Add(ctx, "read a book", core.PriorityDelayed); err != nil {
		log.Fatal(err)
	}

	groups := app.Board.GroupByPriority()
	for _, p := range core.Priorities {
		fmt.Printf("%s: %d\n", p, len(groups[p]))
	}
	// Output:
	// important: 1
	// normal: 0
	// delayed: 1
}

// Example_overrides toggles a remote todo and shows the announced payload.
func Example_overrides() {
	app, err := stickyboard.New("", stickyboard.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	unsubscribe := app.Hub.Subscribe(core.TopicTodosUpdated, func(sig core.Signal) {
		fmt.Printf("%s: todo 7 completed=%v\n", sig.Kind, sig.Overrides[7])
	})
	defer unsubscribe()

	if _, err := app.Todos.Toggle(context.Background(), 7, false); err != nil {
		log.Fatal(err)
	}
	// Output:
	// updated: todo 7 completed=true
}
