// Package ledger provides LedgerClient implementations.
package ledger

import (
	"context"
	"sync"
)

// =============================================================================
// MEMORY CLIENT - In-memory implementation (for testing/dev)
// =============================================================================

// Memory records appended rows in process memory. Useful as a dev backend
// and in tests; rows vanish with the process.
type Memory struct {
	mu   sync.RWMutex
	rows [][]string

	// Fail, when set, makes every AppendRow return this error. Used by
	// tests to exercise the failure path.
	Fail error
}

func NewMemory() *Memory {
	return &Memory{}
}

// AppendRow appends a copy of fields. Append-only.
func (m *Memory) AppendRow(_ context.Context, fields []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail != nil {
		return m.Fail
	}

	row := make([]string, len(fields))
	copy(row, fields)
	m.rows = append(m.rows, row)
	return nil
}

// Rows returns a copy of all appended rows, in append order.
func (m *Memory) Rows() [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]string{}, r...)
	}
	return out
}
