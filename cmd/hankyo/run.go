package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawadari/hankyo/internal/auth"
	"github.com/sawadari/hankyo/internal/display"
	"github.com/sawadari/hankyo/internal/gmail"
	"github.com/sawadari/hankyo/internal/pipeline"
	"github.com/sawadari/hankyo/internal/types"
	"github.com/sawadari/hankyo/internal/webhook"
)

var runMax int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one batch of inbox messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		orch, err := buildOrchestrator(ctx)
		if err != nil {
			return err
		}

		summary, err := orch.ProcessBatch(ctx)
		if err != nil {
			return err
		}
		return printSummary(cmd, summary)
	},
}

// buildOrchestrator wires the Gmail source, webhook dispatcher and
// ledger into one pipeline from the loaded config.
func buildOrchestrator(ctx context.Context) (*pipeline.Orchestrator, error) {
	svc, err := auth.LoadGmailService(ctx, cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("authenticate with Gmail: %w", err)
	}
	src := gmail.NewClient(svc, cfg.Gmail.Query)
	disp := webhook.NewDispatcher(cfg.Webhook.URL, Version, logger)

	pcfg := pipeline.Config{
		MaxMessages:      cfg.Pipeline.MaxMessages,
		MinConfidence:    cfg.Pipeline.MinConfidence,
		MinFieldCount:    cfg.Pipeline.MinFieldCount,
		ArchiveOnSuccess: cfg.Pipeline.ArchiveOnSuccess,
		Workers:          cfg.Pipeline.Workers,
	}
	if runMax > 0 {
		pcfg.MaxMessages = runMax
	}
	return pipeline.New(src, disp, store, pcfg, logger), nil
}

func printSummary(cmd *cobra.Command, s *types.BatchSummary) error {
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	if quietFlag {
		return nil
	}

	for _, r := range s.Results {
		fmt.Printf("  %s %s %s  fields:%2d  conf:%s\n",
			display.StatusDot(r.Status), display.StatusLabel(r.Status),
			display.Truncate(r.MessageID, 24), r.FieldCount, display.Confidence(r.MeanConfidence))
	}
	if len(s.Results) > 0 {
		fmt.Println()
	}
	display.SuccessMsg("%d fetched, %d processed, %d delivered, %d failed, %d skipped (%.1fs)",
		s.Fetched, s.Processed, s.WebhookOK, s.WebhookFail, s.Skipped, s.Elapsed.Seconds())
	return nil
}

func init() {
	runCmd.Flags().IntVar(&runMax, "max", 0, "Max messages this batch (overrides config)")
	rootCmd.AddCommand(runCmd)
}
