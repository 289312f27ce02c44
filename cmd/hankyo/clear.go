package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sawadari/hankyo/internal/display"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all ledger entries",
	Long:  "Remove every processing outcome and daily counter. Cleared messages will be reprocessed and redelivered on the next run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearForce {
			fmt.Printf("Delete all ledger entries in %s? [y/N] ", store.Path())
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		n, err := store.ClearAll()
		if err != nil {
			return fmt.Errorf("clear ledger: %w", err)
		}
		if !quietFlag {
			display.SuccessMsg("Cleared %d entries", n)
		}
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
