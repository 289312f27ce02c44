package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawadari/hankyo/internal/display"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show processing statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := store.Stats()
		if err != nil {
			return fmt.Errorf("read stats: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		display.Header("Hankyo Statistics")
		fmt.Println()
		fmt.Printf("  Processed   %5d\n", stats.TotalProcessed)
		fmt.Printf("  Delivered   %5d\n", stats.WebhookOK)
		fmt.Printf("  Failed      %5d\n", stats.WebhookFail)
		fmt.Printf("  Archived    %5d\n", stats.Archived)
		if stats.LastProcessed != "" {
			fmt.Printf("  Last run    %s\n", display.TimeAgo(stats.LastProcessed))
		}

		if len(stats.Daily) > 0 {
			fmt.Println()
			fmt.Println("  Daily")
			for _, d := range stats.Daily {
				fmt.Printf("    %s  %4d processed  %4d ok  %4d failed\n",
					d.Date, d.Processed, d.WebhookOK, d.WebhookFail)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
