// Package main is the entry point for the marketfinder CLI, a terminal
// client for finding and inspecting Polymarket prediction markets.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/OldEphraim/polymarket-market-finder/db"
	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
	"github.com/OldEphraim/polymarket-market-finder/utils/config"
	"github.com/OldEphraim/polymarket-market-finder/utils/format"
)

var (
	cfg    *config.Config
	gamma  *clients.GammaAPI
	store  *db.Store
	logger *slog.Logger

	flagLimit int
	flagJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "marketfinder",
	Short: "Find and inspect Polymarket prediction markets",
	Long: `marketfinder searches Polymarket's event catalog from the terminal.

Search accepts natural-language queries ("who will win march madness") and
expands them into variants before matching, so league names, synonyms, and
filler words all resolve to the same events. Other subcommands list trending
and featured events, look up a single event by slug or URL, drill into one
outcome, and watch live prices over the CLOB websocket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		loader := config.NewLoader()

		var err error
		cfg, err = loader.Load("finder.json")
		if err != nil {
			return err
		}
		loader.LoadFromEnv(cfg)

		level := slog.LevelInfo
		if os.Getenv("DEBUG") != "" {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		gamma = clients.NewGammaAPIWithBase(cfg.BaseURL)

		if cfg.DatabaseURL != "" {
			store, err = db.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				logger.Warn("database unavailable, continuing without history", "err", err)
				store = nil
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			_ = store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagLimit, "limit", "n", 0, "maximum results to show (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output raw JSON instead of formatted text")
}

// limit resolves the --limit flag against the configured default
func limit() int {
	if flagLimit > 0 {
		return flagLimit
	}
	return cfg.DefaultLimit
}

// printEvents renders a listing either as formatted text or as raw JSON
func printEvents(events []clients.GammaEvent, showAllMarkets bool) error {
	if flagJSON {
		return printJSON(events)
	}
	for i := range events {
		fmt.Println(format.Event(&events[i], showAllMarkets))
		fmt.Println()
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
