package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/stickyboard/pkg/core"
)

var notePriority string

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage sticky notes",
}

var notesAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a note to the top of the board",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := core.ParsePriority(notePriority)
		if err != nil {
			fatal("Error adding note", err)
		}

		app := openApp()
		defer app.Close()

		note, err := app.Board.Add(context.Background(), strings.Join(args, " "), p)
		if err != nil {
			fatal("Error adding note", err)
		}
		output(note, func(w io.Writer) {
			fmt.Fprintf(w, "Added %s [%s]\n", note.ID, note.Priority)
		})
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes grouped by priority",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		groups := app.Board.GroupByPriority()
		output(groups, func(w io.Writer) {
			for _, p := range core.Priorities {
				fmt.Fprintf(w, "%s (%d)\n", strings.ToUpper(string(p)), len(groups[p]))
				for _, n := range groups[p] {
					fmt.Fprintf(w, "  %s  %s\n", n.ID, n.Text)
				}
			}
		})
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		if err := app.Board.Remove(context.Background(), args[0]); err != nil {
			fatal("Error removing note", err)
		}
	},
}

var notesPriorityCmd = &cobra.Command{
	Use:   "priority <id> <important|normal|delayed>",
	Short: "Change the priority of a note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := core.ParsePriority(args[1])
		if err != nil {
			fatal("Error changing priority", err)
		}

		app := openApp()
		defer app.Close()

		if err := app.Board.SetPriority(context.Background(), args[0], p); err != nil {
			fatal("Error changing priority", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesAddCmd, notesListCmd, notesRmCmd, notesPriorityCmd)
	notesAddCmd.Flags().StringVarP(&notePriority, "priority", "p", string(core.PriorityNormal), "Priority: important, normal or delayed")
}
