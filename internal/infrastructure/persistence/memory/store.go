// Package memory is the default in-process Entity Store. Every read returns
// detached copies; every write stores a copy of the caller's value.
package memory

import (
	"context"
	"sync"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/seed"
)

// Store holds all entities in memory
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data seed.Data
}

// New creates a store loaded with a copy of data
func New(data seed.Data) *Store {
	return &Store{data: data.Clone()}
}

// Reset replaces the contents with a copy of data
func (s *Store) Reset(data seed.Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
}

// Port exposes the store through the repository interfaces
func (s *Store) Port() port.Store {
	return port.Store{
		Expenses:  &ExpenseRepository{s: s},
		Reports:   &ReportRepository{s: s},
		Receipts:  &ReceiptRepository{s: s},
		Cards:     &CardRepository{s: s},
		Decisions: &DecisionRepository{s: s},
		Comments:  &CommentRepository{s: s},
		Tx:        &TxManager{s: s},
	}
}

// TxManager runs units of work one at a time and rolls the store back to
// its previous snapshot when fn fails. Writes made outside a transaction
// while one is running would be lost on rollback; commands are serialised
// by the caller.
type TxManager struct {
	s *Store
}

func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.RLock()
	snapshot := m.s.data.Clone()
	m.s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		m.s.mu.Lock()
		m.s.data = snapshot
		m.s.mu.Unlock()
		return err
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
