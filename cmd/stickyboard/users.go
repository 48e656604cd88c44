package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List remote users",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		users, err := app.Remote.Users(context.Background())
		if err != nil {
			fatal("Error loading users", err)
		}
		output(users, func(w io.Writer) {
			for _, u := range users {
				fmt.Fprintf(w, "%3d  %-20s %-16s %s\n", u.ID, u.Name, u.Username, u.Email)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
