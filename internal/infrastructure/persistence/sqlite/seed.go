package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/seed"
)

var seededTables = []string{
	"expenses",
	"reports",
	"receipts",
	"card_transactions",
	"decision_history",
	"report_comments",
}

// Reset replaces every table's contents with data in one transaction
func (s *Store) Reset(ctx context.Context, data seed.Data) error {
	repos := s.Port()
	cards := &CardRepository{db: s.db, logger: s.logger}

	err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, table := range seededTables {
			if _, err := s.db.exec(txCtx).ExecContext(txCtx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for _, e := range data.Expenses {
			if err := repos.Expenses.Create(txCtx, e); err != nil {
				return err
			}
		}
		for _, r := range data.Reports {
			if err := repos.Reports.Create(txCtx, r); err != nil {
				return err
			}
		}
		// receipts list newest first, so the oldest goes in first
		for i := len(data.Receipts) - 1; i >= 0; i-- {
			if err := repos.Receipts.Create(txCtx, data.Receipts[i]); err != nil {
				return err
			}
		}
		for _, c := range data.Cards {
			if err := cards.create(txCtx, c); err != nil {
				return err
			}
		}
		for _, d := range data.Decisions {
			if err := repos.Decisions.Create(txCtx, d); err != nil {
				return err
			}
		}
		for _, c := range data.Comments {
			if err := repos.Comments.Create(txCtx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to load seed data", zap.Error(err))
		return err
	}

	s.logger.Info("Seed data loaded",
		zap.Int("expenses", len(data.Expenses)),
		zap.Int("reports", len(data.Reports)),
		zap.Int("receipts", len(data.Receipts)))
	return nil
}
