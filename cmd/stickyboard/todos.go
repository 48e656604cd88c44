package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/stickyboard/pkg/remote"
)

var todoUser int

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "Inspect remote todos and toggle their completion",
}

var todosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's todos with overrides applied",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()
		ctx := context.Background()

		todos, err := app.Remote.UserTodos(ctx, todoUser)
		if err != nil {
			fatal("Error loading todos", err)
		}
		overrides := app.Todos.Load(ctx)
		for i := range todos {
			todos[i].Completed = overrides.Effective(todos[i].ID, todos[i].Completed)
		}

		output(todos, func(w io.Writer) {
			for _, t := range todos {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				fmt.Fprintf(w, "[%s] %4d  %s\n", mark, t.ID, t.Title)
			}
		})
	},
}

var todosToggleCmd = &cobra.Command{
	Use:   "toggle <todo-id>",
	Short: "Flip the completion of a todo",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("Error parsing todo id", err)
		}

		app := openApp()
		defer app.Close()
		ctx := context.Background()

		todos, err := app.Remote.UserTodos(ctx, todoUser)
		if err != nil {
			fatal("Error loading todos", err)
		}
		var found *remote.Todo
		for i := range todos {
			if todos[i].ID == id {
				found = &todos[i]
			}
		}
		if found == nil {
			fatal("Error toggling todo", fmt.Errorf("todo %d not found for user %d", id, todoUser))
		}

		overrides, err := app.Todos.Toggle(ctx, id, found.Completed)
		if err != nil {
			fatal("Error toggling todo", err)
		}
		found.Completed = overrides[id]
		output(found, func(w io.Writer) {
			fmt.Fprintf(w, "Todo %d completed=%v\n", id, found.Completed)
		})
	},
}

func init() {
	rootCmd.AddCommand(todosCmd)
	todosCmd.AddCommand(todosListCmd, todosToggleCmd)
	todosCmd.PersistentFlags().IntVarP(&todoUser, "user", "u", 1, "Owner of the todos")
}
