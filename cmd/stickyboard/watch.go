package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/stickyboard/pkg/adapters/lifecycle"
)

var (
	watchPattern string
	watchKeys    []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes other processes make to the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := app.Store.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Error watching store", err)
		}

		src := lifecycle.NewSource(events, watchKeys...)
		if err := src.Start(ctx); err != nil {
			fatal("Error starting watcher", err)
		}
		for e := range src.Events() {
			fmt.Println(e)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "*", "Key pattern to watch")
	watchCmd.Flags().StringSliceVar(&watchKeys, "key", nil, "Only print changes to these keys")
}
