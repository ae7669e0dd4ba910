/*
main.go - withdrawctl entry point

PURPOSE:
  A terminal front-end for the withdrawal desk: the same workflow the
  HTTP gateway drives, driven from flags and interactive prompts. Useful
  when the operator front-end is down and a withdrawal still has to be
  logged.

COMMANDS:
  withdrawctl submit   Log one withdrawal request
  withdrawctl rows     Show rows logged to a local backend
  withdrawctl version  Print the build version

SEE ALSO:
  - submit.go: The interactive flow
  - config/config.go: Shared configuration
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "withdrawctl",
	Short: "Log withdrawal requests to the shared ledger",
	Long: `withdrawctl drives the withdrawal desk workflow from a terminal:
validate an amount, pick a book and a payment method, and append the
resulting row to the configured ledger backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("withdrawctl", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".",
		"directory holding withdrawal-desk.yaml")
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(rowsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
