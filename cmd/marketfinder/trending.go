package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show the most active markets by 24h volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := gamma.ListTrendingEvents(limit())
		if err != nil {
			return err
		}

		if !flagJSON {
			fmt.Println("** Trending on Polymarket **")
			fmt.Println()
		}
		return printEvents(events, false)
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
}
