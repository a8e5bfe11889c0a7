package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

const expenseColumns = `id, amount, category, description, expense_date, status,
	comment, report_id, created_at, updated_at`

// ExpenseRepository implements port.ExpenseRepository
type ExpenseRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *DB, logger *zap.Logger) port.ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new expense
func (r *ExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.exec(ctx).ExecContext(ctx, query,
		expense.ID,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.Date,
		expense.Status,
		expense.Comment,
		expense.ReportID,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create expense", zap.String("id", expense.ID), zap.Error(err))
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`

	expense, err := scanExpense(r.db.exec(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get expense by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// GetByIDs returns the expenses that exist, in insertion order
func (r *ExpenseRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Expense, error) {
	if len(ids) == 0 {
		return []*entity.Expense{}, nil
	}
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY rowid`
	return r.query(ctx, query, stringArgs(ids)...)
}

// GetByReportID retrieves the expenses linked to a report
func (r *ExpenseRepository) GetByReportID(ctx context.Context, reportID string) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE report_id = ? ORDER BY rowid`
	return r.query(ctx, query, reportID)
}

// List retrieves every expense
func (r *ExpenseRepository) List(ctx context.Context) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY rowid`
	return r.query(ctx, query)
}

// Update replaces every field of an existing expense
func (r *ExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	query := `
		UPDATE expenses
		SET amount = ?, category = ?, description = ?, expense_date = ?, status = ?,
			comment = ?, report_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.exec(ctx).ExecContext(ctx, query,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.Date,
		expense.Status,
		expense.Comment,
		expense.ReportID,
		expense.UpdatedAt,
		expense.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update expense", zap.String("id", expense.ID), zap.Error(err))
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return requireRow(result, "expense", expense.ID)
}

// UpdateStatus updates the status of an expense
func (r *ExpenseRepository) UpdateStatus(ctx context.Context, id string, s status.Status) error {
	query := `UPDATE expenses SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.exec(ctx).ExecContext(ctx, query, s, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update expense status", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update expense status: %w", err)
	}
	return requireRow(result, "expense", id)
}

func (r *ExpenseRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Expense, error) {
	rows, err := r.db.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query expenses", zap.Error(err))
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]*entity.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row scanner) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(
		&e.ID,
		&e.Amount,
		&e.Category,
		&e.Description,
		&e.Date,
		&e.Status,
		&e.Comment,
		&e.ReportID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func requireRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", kind, id)
	}
	return nil
}
