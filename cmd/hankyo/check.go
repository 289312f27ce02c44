package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sawadari/hankyo/internal/auth"
	"github.com/sawadari/hankyo/internal/display"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration and connectivity",
	Long:  "Check that credentials, token, webhook and ledger are configured before running the pipeline.",
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false

		if _, err := os.Stat(cfg.Gmail.CredentialsPath); err != nil {
			display.ErrorMsg("credentials: %s not found", cfg.Gmail.CredentialsPath)
			failed = true
		} else {
			display.SuccessMsg("credentials: %s", cfg.Gmail.CredentialsPath)
		}

		if _, err := os.Stat(cfg.Gmail.TokenPath); err != nil {
			display.ErrorMsg("token: %s not found", cfg.Gmail.TokenPath)
			failed = true
		} else if _, err := auth.LoadGmailService(cmd.Context(), cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath); err != nil {
			display.ErrorMsg("gmail auth: %v", err)
			failed = true
		} else {
			display.SuccessMsg("gmail auth: token valid")
		}

		if cfg.Webhook.URL == "" {
			fmt.Println(display.Warn.Render("!") + " webhook: no URL configured, deliveries will be skipped")
		} else {
			display.SuccessMsg("webhook: %s", cfg.Webhook.URL)
		}

		display.SuccessMsg("ledger: %s", store.Path())

		if failed {
			return fmt.Errorf("configuration check failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
