package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawadari/hankyo/internal/display"
	"github.com/sawadari/hankyo/internal/types"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently processed messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.Recent(recentLimit)
		if err != nil {
			return fmt.Errorf("read recent entries: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No messages processed yet.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("  %s %s %s  fields:%2d  conf:%s  %s\n",
				display.StatusDot(entryStatus(e)),
				display.Truncate(e.MessageID, 24),
				display.Dim.Render(display.TimeAgo(e.ProcessedAt)),
				e.FieldCount, display.Confidence(e.MeanConfidence),
				display.Muted.Render(display.Truncate(e.Error, 40)))
		}
		return nil
	},
}

// entryStatus reconstructs a display status from a ledger row.
func entryStatus(e *types.LedgerEntry) string {
	switch {
	case e.Error != "":
		return types.StatusError
	case !e.Relevant:
		return types.StatusNotRelevant
	case e.WebhookSent:
		return types.StatusDelivered
	case e.FieldCount == 0:
		return types.StatusNoData
	default:
		return types.StatusFailed
	}
}

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 20, "Number of entries to show")
	rootCmd.AddCommand(recentCmd)
}
