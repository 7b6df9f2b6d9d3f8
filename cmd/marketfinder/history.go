package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches (requires DATABASE_URL)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return fmt.Errorf("search history needs DATABASE_URL to be set")
		}

		records, err := store.RecentSearches(cmd.Context(), limit())
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(records)
		}

		if len(records) == 0 {
			fmt.Println("No searches recorded yet.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  %-30q  %d matches\n",
				rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Query, rec.MatchCount)
			if len(rec.Variants) > 1 {
				fmt.Printf("                  variants: %s\n", strings.Join(rec.Variants, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
