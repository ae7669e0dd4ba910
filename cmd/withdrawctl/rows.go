/*
rows.go - Inspect rows logged to a local backend

PURPOSE:
  Prints the rows in a local sqlite ledger, column-separated, in append
  order. Only the sqlite backend supports reading back; the hosted sheet
  is audited in the sheet itself and this tool never reads it.
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/warp/withdrawal-desk/config"
	"github.com/warp/withdrawal-desk/ledger/sqlite"
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Show rows logged to a local sqlite backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.LedgerBackend != config.BackendSQLite {
			return fmt.Errorf("rows requires the sqlite backend, configured backend is %q", cfg.LedgerBackend)
		}

		client, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer client.Close()

		rows, err := client.Rows(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, row := range rows {
			fmt.Fprintln(out, strings.Join(row, " | "))
		}
		fmt.Fprintf(out, "%d row(s)\n", len(rows))
		return nil
	},
}
