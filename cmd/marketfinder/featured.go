package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show featured markets, falling back to highest volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := gamma.ListFeaturedEvents(limit())
		if err != nil {
			return err
		}

		if !flagJSON {
			fmt.Println("** Featured Markets **")
			fmt.Println()
		}

		// The featured flag is curated and sometimes empty; show the
		// biggest markets instead of nothing
		if len(events) == 0 {
			events, err = gamma.ListEventsByVolume(limit())
			if err != nil {
				return err
			}
			if !flagJSON {
				fmt.Println("(Showing highest volume markets)")
				fmt.Println()
			}
		}

		return printEvents(events, false)
	},
}

func init() {
	rootCmd.AddCommand(featuredCmd)
}
