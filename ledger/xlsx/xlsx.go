/*
Package xlsx provides an Excel-workbook ledger client.

PURPOSE:
  Appends withdrawal rows to a local .xlsx workbook, for desks that keep
  the ledger as a shared file rather than a hosted sheet. The worksheet
  name matches the hosted ledger ("withdrawal requests") so the same
  downstream formulas apply.

WRITE MODEL:
  Each append opens the workbook, writes one row after the last used row,
  and saves. The file is created (with the worksheet) on first append.
  Concurrent appends from multiple processes are not coordinated - that
  is the same contract the hosted sheet offers, resolved by the sheet
  host there and by file locking conventions here.

SEE ALSO:
  - withdraw/writer.go: LedgerClient interface
  - ledger/sheets/sheets.go: The hosted-sheet backend
*/
package xlsx

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// DefaultWorksheet is the worksheet rows are appended to.
const DefaultWorksheet = "withdrawal requests"

// Client implements withdraw.LedgerClient over an xlsx workbook.
type Client struct {
	mu        sync.Mutex
	path      string
	worksheet string
}

// New creates an xlsx ledger client writing to the workbook at path.
// An empty worksheet name falls back to DefaultWorksheet.
func New(path, worksheet string) *Client {
	if worksheet == "" {
		worksheet = DefaultWorksheet
	}
	return &Client{path: path, worksheet: worksheet}
}

// AppendRow appends one row to the worksheet and saves the workbook.
func (c *Client) AppendRow(_ context.Context, fields []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, created, err := c.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(c.worksheet)
	if err != nil {
		return fmt.Errorf("failed to read worksheet %q: %w", c.worksheet, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(fields))
	for i, v := range fields {
		values[i] = v
	}
	if err := f.SetSheetRow(c.worksheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}

	if created {
		return f.SaveAs(c.path)
	}
	return f.Save()
}

// open returns the workbook, creating it with the worksheet on first use.
func (c *Client) open() (f *excelize.File, created bool, err error) {
	if _, statErr := os.Stat(c.path); os.IsNotExist(statErr) {
		f = excelize.NewFile()
		if _, err := f.NewSheet(c.worksheet); err != nil {
			f.Close()
			return nil, false, err
		}
		return f, true, nil
	}

	f, err = excelize.OpenFile(c.path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open workbook %q: %w", c.path, err)
	}
	if idx, _ := f.GetSheetIndex(c.worksheet); idx < 0 {
		if _, err := f.NewSheet(c.worksheet); err != nil {
			f.Close()
			return nil, false, err
		}
	}
	return f, false, nil
}
