package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/entity"
)

const receiptColumns = `id, description, amount, receipt_date, status, mime_type,
	expense_id, expense_description, created_at`

// ReceiptRepository implements port.ReceiptRepository
type ReceiptRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *DB, logger *zap.Logger) port.ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new receipt
func (r *ReceiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	query := `INSERT INTO receipts (` + receiptColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.exec(ctx).ExecContext(ctx, query,
		receipt.ID,
		receipt.Description,
		receipt.Amount,
		receipt.Date,
		receipt.Status,
		receipt.MimeType,
		receipt.ExpenseID,
		receipt.ExpenseDescription,
		receipt.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create receipt", zap.String("id", receipt.ID), zap.Error(err))
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

// GetByID retrieves a receipt by ID
func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = ?`

	receipt, err := scanReceipt(r.db.exec(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get receipt by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return receipt, nil
}

// GetByExpenseIDs retrieves the receipts attached to any of the expenses
func (r *ReceiptRepository) GetByExpenseIDs(ctx context.Context, expenseIDs []string) ([]*entity.Receipt, error) {
	if len(expenseIDs) == 0 {
		return []*entity.Receipt{}, nil
	}
	query := `SELECT ` + receiptColumns + ` FROM receipts
		WHERE expense_id IN (` + placeholders(len(expenseIDs)) + `) ORDER BY rowid DESC`
	return r.query(ctx, query, stringArgs(expenseIDs)...)
}

// List retrieves receipts newest first
func (r *ReceiptRepository) List(ctx context.Context) ([]*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts ORDER BY rowid DESC`
	return r.query(ctx, query)
}

// Update replaces every field of an existing receipt
func (r *ReceiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	query := `
		UPDATE receipts
		SET description = ?, amount = ?, receipt_date = ?, status = ?, mime_type = ?,
			expense_id = ?, expense_description = ?
		WHERE id = ?
	`
	result, err := r.db.exec(ctx).ExecContext(ctx, query,
		receipt.Description,
		receipt.Amount,
		receipt.Date,
		receipt.Status,
		receipt.MimeType,
		receipt.ExpenseID,
		receipt.ExpenseDescription,
		receipt.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update receipt", zap.String("id", receipt.ID), zap.Error(err))
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	return requireRow(result, "receipt", receipt.ID)
}

func (r *ReceiptRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Receipt, error) {
	rows, err := r.db.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query receipts", zap.Error(err))
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	receipts := make([]*entity.Receipt, 0)
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

func scanReceipt(row scanner) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := row.Scan(
		&receipt.ID,
		&receipt.Description,
		&receipt.Amount,
		&receipt.Date,
		&receipt.Status,
		&receipt.MimeType,
		&receipt.ExpenseID,
		&receipt.ExpenseDescription,
		&receipt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
