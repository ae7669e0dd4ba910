/*
submit.go - The interactive submit flow

PURPOSE:
  Walks the operator through the same steps the HTTP gateway renders:
  book page (with n/p paging), then payment method, then the commit. All
  selection rules live in the withdraw package; this file only reads
  stdin and prints prompts.

NON-INTERACTIVE USE:
  --book and --method skip the corresponding prompts, so a scripted
  submit is a single command:

    withdrawctl submit --requester user#42 --amount 150.00 \
        --book BET365 --method Crypto

SEE ALSO:
  - withdraw/workflow.go: The state machine being driven
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/warp/withdrawal-desk/config"
	"github.com/warp/withdrawal-desk/ledger"
	"github.com/warp/withdrawal-desk/ledger/sheets"
	"github.com/warp/withdrawal-desk/ledger/sqlite"
	"github.com/warp/withdrawal-desk/ledger/xlsx"
	"github.com/warp/withdrawal-desk/withdraw"
)

var (
	submitRequester string
	submitAmount    string
	submitBook      string
	submitMethod    string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Log one withdrawal request",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmit(cmd.Context(), cmd.OutOrStdout(), os.Stdin)
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitRequester, "requester", "", "requester id (client channel name)")
	submitCmd.Flags().StringVar(&submitAmount, "amount", "", "withdrawal amount, e.g. 150.00")
	submitCmd.Flags().StringVar(&submitBook, "book", "", "book name; omit to pick interactively")
	submitCmd.Flags().StringVar(&submitMethod, "method", "", "payment method; omit to pick interactively")
	submitCmd.MarkFlagRequired("amount")
}

func runSubmit(ctx context.Context, out io.Writer, in io.Reader) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	client, closer, err := newLedgerClient(ctx, cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	workflow := withdraw.NewWorkflow(
		cfg.BookCatalog(),
		cfg.MethodCatalog(),
		cfg.PageSize,
		withdraw.NewWriter(client),
	)

	amount, err := withdraw.ParseAmount(submitAmount)
	if err != nil {
		return err
	}

	var req *withdraw.Request
	if submitBook != "" {
		req, err = workflow.CreateWithBook(submitRequester, amount, submitBook)
	} else {
		req, err = workflow.Create(submitRequester, amount)
	}
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)

	if req.Status == withdraw.StatusAwaitingBook {
		if err := pickBook(out, scanner, workflow, req); err != nil {
			return err
		}
	}

	method := submitMethod
	if method == "" {
		method, err = pickMethod(out, scanner, workflow)
		if err != nil {
			return err
		}
	}

	msg, err := workflow.SelectMethod(ctx, req, method)
	if msg != "" {
		fmt.Fprintln(out, msg)
	}
	return err
}

// pickBook pages through the book catalog until a book is selected.
// Input: a number picks from the current page, "n"/"p" turn pages.
func pickBook(out io.Writer, scanner *bufio.Scanner, wf *withdraw.Workflow, req *withdraw.Request) error {
	for {
		visible, hasPrev, hasNext := wf.BookPage(req)

		fmt.Fprintln(out, "Please select a book:")
		for i, book := range visible {
			fmt.Fprintf(out, "  %2d. %s\n", i+1, book)
		}
		nav := ""
		if hasPrev {
			nav += " p=previous"
		}
		if hasNext {
			nav += " n=next"
		}
		fmt.Fprintf(out, "Enter number%s: ", nav)

		if !scanner.Scan() {
			return fmt.Errorf("input closed before a book was selected")
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "n":
			wf.NextPage(req)
		case "p":
			wf.PreviousPage(req)
		default:
			idx, err := strconv.Atoi(input)
			if err != nil || idx < 1 || idx > len(visible) {
				fmt.Fprintln(out, "Not a valid choice.")
				continue
			}
			return wf.SelectBook(req, visible[idx-1])
		}
	}
}

func pickMethod(out io.Writer, scanner *bufio.Scanner, wf *withdraw.Workflow) (string, error) {
	fmt.Fprintln(out, "Please select a withdrawal method:")
	for i, m := range wf.Methods {
		fmt.Fprintf(out, "  %d. %s\n", i+1, m)
	}
	fmt.Fprint(out, "Enter number: ")

	if !scanner.Scan() {
		return "", fmt.Errorf("input closed before a method was selected")
	}
	idx, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || idx < 1 || idx > len(wf.Methods) {
		return "", fmt.Errorf("not a valid choice: %q", scanner.Text())
	}
	return wf.Methods[idx-1], nil
}

// newLedgerClient mirrors the server's backend selection.
func newLedgerClient(ctx context.Context, cfg config.Config) (withdraw.LedgerClient, io.Closer, error) {
	switch cfg.LedgerBackend {
	case config.BackendMemory:
		return ledger.NewMemory(), nil, nil
	case config.BackendSQLite:
		client, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	case config.BackendXLSX:
		return xlsx.New(cfg.XLSXPath, cfg.Worksheet), nil, nil
	case config.BackendSheets:
		client, err := sheets.New(ctx, cfg.SheetsCredentialsFile, cfg.SpreadsheetKey, cfg.Worksheet)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}
