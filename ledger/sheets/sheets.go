/*
Package sheets provides the Google Sheets ledger client.

PURPOSE:
  The production backend: appends withdrawal rows to the shared hosted
  spreadsheet that downstream auditing runs on. Authenticates with a
  service-account credentials file scoped to the Sheets API.

APPEND SEMANTICS:
  Rows are appended with USER_ENTERED value input, so the sheet parses
  "$150.00" and "03/10/2025" the way a human typing them would - the
  downstream formulas depend on that parsing. INSERT_ROWS keeps each
  append on its own new row. Row-level write atomicity is the sheet
  host's responsibility; this client never reads the sheet back.

USAGE:
  client, err := sheets.New(ctx, "keys.json", spreadsheetKey, "withdrawal requests")
  if err != nil {
      log.Fatal(err)
  }

SEE ALSO:
  - withdraw/writer.go: LedgerClient interface (single attempt, no retry)
*/
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client implements withdraw.LedgerClient against the Sheets API.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	worksheet     string
}

// New creates a Sheets ledger client. credentialsFile is a service-account
// JSON key; spreadsheetID is the sheet key from the sheet's URL; worksheet
// is the tab title the rows land on.
func New(ctx context.Context, credentialsFile, spreadsheetID, worksheet string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID, worksheet: worksheet}, nil
}

// AppendRow appends one row to the worksheet. One attempt; the caller
// owns the no-retry policy.
func (c *Client) AppendRow(ctx context.Context, fields []string) error {
	values := make([]interface{}, len(fields))
	for i, v := range fields {
		values[i] = v
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, fmt.Sprintf("'%s'!A:H", c.worksheet), &sheetsapi.ValueRange{
			Values: [][]interface{}{values},
		}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to spreadsheet: %w", err)
	}
	return nil
}
