package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/entity"
)

// CardRepository implements port.CardRepository
type CardRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCardRepository creates a new card transaction repository
func NewCardRepository(db *DB, logger *zap.Logger) port.CardRepository {
	return &CardRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a card transaction by ID
func (r *CardRepository) GetByID(ctx context.Context, id string) (*entity.CardTransaction, error) {
	query := `
		SELECT id, card_number, card_type, amount, transaction_date
		FROM card_transactions
		WHERE id = ?
	`
	var c entity.CardTransaction
	err := r.db.exec(ctx).QueryRowContext(ctx, query, id).Scan(&c.ID, &c.CardNumber, &c.CardType, &c.Amount, &c.Date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get card transaction", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get card transaction: %w", err)
	}
	return &c, nil
}

// List retrieves every card transaction
func (r *CardRepository) List(ctx context.Context) ([]*entity.CardTransaction, error) {
	query := `
		SELECT id, card_number, card_type, amount, transaction_date
		FROM card_transactions
		ORDER BY rowid
	`
	rows, err := r.db.exec(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list card transactions", zap.Error(err))
		return nil, fmt.Errorf("failed to list card transactions: %w", err)
	}
	defer rows.Close()

	cards := make([]*entity.CardTransaction, 0)
	for rows.Next() {
		var c entity.CardTransaction
		if err := rows.Scan(&c.ID, &c.CardNumber, &c.CardType, &c.Amount, &c.Date); err != nil {
			return nil, fmt.Errorf("failed to scan card transaction: %w", err)
		}
		cards = append(cards, &c)
	}
	return cards, rows.Err()
}

// create is used by the seed loader; card transactions are read-only to the app
func (r *CardRepository) create(ctx context.Context, c *entity.CardTransaction) error {
	query := `
		INSERT INTO card_transactions (id, card_number, card_type, amount, transaction_date)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.exec(ctx).ExecContext(ctx, query, c.ID, c.CardNumber, c.CardType, c.Amount, c.Date); err != nil {
		return fmt.Errorf("failed to create card transaction: %w", err)
	}
	return nil
}
