package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var weatherCmd = &cobra.Command{
	Use:   "weather [city]",
	Short: "Show the current weather",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		city := cfg.Weather.City
		if len(args) > 0 {
			city = strings.Join(args, " ")
		}

		app := openApp()
		defer app.Close()

		report, err := app.Weather.Current(context.Background(), city)
		if err != nil {
			fatal("Error loading weather", err)
		}
		output(report, func(w io.Writer) {
			fmt.Fprintf(w, "%s: %.1f°, %d%% humidity, %s\n", report.City, report.Temperature, report.Humidity, report.Description)
		})
	},
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}
