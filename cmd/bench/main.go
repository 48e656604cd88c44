package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/stickyboard"
	"github.com/aretw0/stickyboard/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to add")
	adapter := flag.String("adapter", "fs", "Storage adapter: fs or sqlite")
	keep := flag.Bool("keep", false, "Keep the benchmark data after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "stickyboard_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	app, err := stickyboard.New(benchDir, stickyboard.WithAdapter(*adapter), stickyboard.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Every add rewrites the whole list, so cost grows with the board.
	fmt.Printf("Adding %d notes (%s)...\n", *count, *adapter)
	start := time.Now()
	for i := 0; i < *count; i++ {
		p := core.Priorities[i%len(core.Priorities)]
		if _, err := app.Board.Add(ctx, fmt.Sprintf("note %d", i), p); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Add took: %v (%v/op)\n", time.Since(start), time.Since(start)/time.Duration(max(*count, 1)))

	start = time.Now()
	groups := app.Board.GroupByPriority()
	fmt.Printf("GroupByPriority took: %v (important=%d normal=%d delayed=%d)\n",
		time.Since(start), len(groups[core.PriorityImportant]), len(groups[core.PriorityNormal]), len(groups[core.PriorityDelayed]))

	if err := app.Close(); err != nil {
		panic(err)
	}

	start = time.Now()
	reopened, err := stickyboard.New(benchDir, stickyboard.WithAdapter(*adapter), stickyboard.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	defer reopened.Close()
	fmt.Printf("Reopen took: %v (Items: %d)\n", time.Since(start), reopened.Board.Len())
}
