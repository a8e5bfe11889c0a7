package port

import (
	"context"
	"time"

	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// Lookups by id return (nil, nil) when the record does not exist.
// List methods return records in insertion order unless noted otherwise.

// ExpenseRepository defines persistence operations for Expense
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Expense, error)
	GetByReportID(ctx context.Context, reportID string) ([]*entity.Expense, error)
	List(ctx context.Context) ([]*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	UpdateStatus(ctx context.Context, id string, s status.Status) error
}

// ReportRepository defines persistence operations for Report
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	List(ctx context.Context) ([]*entity.Report, error)
	// SetDecision records a decision only while the report is still pending.
	// It returns false without writing when the report is no longer pending.
	SetDecision(ctx context.Context, id string, s status.Status, reviewer, comment string, at time.Time) (bool, error)
}

// ReceiptRepository defines persistence operations for Receipt
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	GetByExpenseIDs(ctx context.Context, expenseIDs []string) ([]*entity.Receipt, error)
	// List returns receipts newest first
	List(ctx context.Context) ([]*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
}

// CardRepository defines read access to credit-card transactions
type CardRepository interface {
	GetByID(ctx context.Context, id string) (*entity.CardTransaction, error)
	List(ctx context.Context) ([]*entity.CardTransaction, error)
}

// DecisionRepository stores the audit trail of report decisions
type DecisionRepository interface {
	Create(ctx context.Context, record *entity.DecisionRecord) error
	GetByReportID(ctx context.Context, reportID string) ([]*entity.DecisionRecord, error)
}

// CommentRepository stores report discussion threads
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByReportID(ctx context.Context, reportID string) ([]*entity.Comment, error)
}

// TransactionManager handles atomic units of work across repositories
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles every repository of one backend
type Store struct {
	Expenses  ExpenseRepository
	Reports   ReportRepository
	Receipts  ReceiptRepository
	Cards     CardRepository
	Decisions DecisionRepository
	Comments  CommentRepository
	Tx        TransactionManager
}
