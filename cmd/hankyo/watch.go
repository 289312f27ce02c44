package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sawadari/hankyo/internal/display"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process batches continuously until interrupted",
	Long:  "Run the pipeline on an interval. SIGINT or SIGTERM finishes the in-flight batch before exiting.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		orch, err := buildOrchestrator(ctx)
		if err != nil {
			return err
		}

		interval := cfg.Pipeline.Interval
		if watchInterval > 0 {
			interval = watchInterval
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		stopCh := make(chan struct{})
		go func() {
			sig := <-sigCh
			logger.Info("shutdown requested, finishing in-flight batch", "signal", sig.String())
			orch.Stop()
			close(stopCh)
		}()

		if !quietFlag {
			fmt.Printf("Watching inbox every %s (ctrl-c to stop)\n", interval)
		}

		for {
			summary, err := orch.ProcessBatch(ctx)
			switch {
			case err != nil:
				// mailbox listing failures are transient, keep the loop alive
				logger.Error("batch failed", "error", err)
			case jsonOutput:
				if err := printSummary(cmd, summary); err != nil {
					return err
				}
			case !quietFlag:
				display.SuccessMsg("%d fetched, %d processed, %d delivered, %d failed",
					summary.Fetched, summary.Processed, summary.WebhookOK, summary.WebhookFail)
			}

			if orch.Stopped() {
				break
			}
			select {
			case <-time.After(interval):
			case <-stopCh:
			case <-ctx.Done():
				return ctx.Err()
			}
			if orch.Stopped() {
				break
			}
		}

		if !quietFlag {
			fmt.Println("Stopped.")
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Poll interval (overrides config)")
	rootCmd.AddCommand(watchCmd)
}
