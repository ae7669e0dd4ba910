/*
Package sqlite provides a SQLite-backed ledger client.

PURPOSE:
  A local stand-in for the spreadsheet: rows land in a SQLite file with
  the same 8-column shape as the external ledger. Used for development
  and as an auditable mirror when the desk runs without network access.

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statements exist on the rows table. The ledger
  contract is append-only; duplicate submissions produce duplicate rows,
  same as the spreadsheet.

SCHEMA:
  withdrawal_rows: one row per append, columns c1..c8 matching the
  ledger's column layout (c1, c5, c7 are the blank placeholders),
  plus created_at for local auditing.

USAGE:
  client, err := sqlite.New("./data/withdrawals.db")
  if err != nil {
      log.Fatal(err)
  }
  defer client.Close()

SEE ALSO:
  - withdraw/writer.go: LedgerClient interface
  - ledger/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Client implements withdraw.LedgerClient over a SQLite database.
type Client struct {
	db *sql.DB
}

// New creates a SQLite ledger client with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	client := &Client{db: db}
	if err := client.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return client, nil
}

// Close closes the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) migrate() error {
	schema := `
	-- Withdrawal rows (append-only; mirrors the spreadsheet column layout)
	CREATE TABLE IF NOT EXISTS withdrawal_rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		c1 TEXT NOT NULL,
		c2 TEXT NOT NULL,
		c3 TEXT NOT NULL,
		c4 TEXT NOT NULL,
		c5 TEXT NOT NULL,
		c6 TEXT NOT NULL,
		c7 TEXT NOT NULL,
		c8 TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// AppendRow appends one 8-field row. Rows with a different field count are
// rejected: the column layout is a hard contract.
func (c *Client) AppendRow(ctx context.Context, fields []string) error {
	if len(fields) != 8 {
		return fmt.Errorf("expected 8 fields, got %d", len(fields))
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO withdrawal_rows (c1, c2, c3, c4, c5, c6, c7, c8, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fields[0], fields[1], fields[2], fields[3],
		fields[4], fields[5], fields[6], fields[7],
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}

// Rows returns all appended rows in append order. Read-only; used by
// tests and the audit CLI, never by the workflow.
func (c *Client) Rows(ctx context.Context) ([][]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT c1, c2, c3, c4, c5, c6, c7, c8
		FROM withdrawal_rows ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		r := make([]string, 8)
		if err := rows.Scan(&r[0], &r[1], &r[2], &r[3], &r[4], &r[5], &r[6], &r[7]); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
