package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/stickyboard/pkg/analytics"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show per-user post and completed-todo extremes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()
		ctx := context.Background()

		snap, err := app.Remote.Snapshot(ctx)
		if err != nil {
			fatal("Error loading analytics", err)
		}
		stats := analytics.Compute(snap.Users, snap.Posts, snap.Todos, app.Todos.Load(ctx))
		output(stats, func(w io.Writer) {
			writeStats(w, stats)
		})
	},
}

func writeStats(w io.Writer, stats *analytics.Stats) {
	if stats == nil {
		fmt.Fprintln(w, "No data")
		return
	}
	fmt.Fprintf(w, "Total users:            %d\n", stats.TotalUsers)
	fmt.Fprintf(w, "Most posts:             %s\n", stats.MostPosts)
	fmt.Fprintf(w, "Fewest posts:           %s\n", stats.FewestPosts)
	fmt.Fprintf(w, "Most completed todos:   %s\n", stats.MostCompletedTodos)
	fmt.Fprintf(w, "Fewest completed todos: %s\n", stats.FewestCompletedTodos)
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}
