package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// ExpenseRepository implements port.ExpenseRepository
type ExpenseRepository struct {
	s *Store
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.data.Expenses {
		if e.ID == expense.ID {
			return fmt.Errorf("expense %s already exists", expense.ID)
		}
	}
	r.s.data.Expenses = append(r.s.data.Expenses, expense.Clone())
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.data.Expenses {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return nil, nil
}

// GetByIDs returns the expenses that exist, in store order
func (r *ExpenseRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Expense, 0, len(ids))
	for _, e := range r.s.data.Expenses {
		if contains(ids, e.ID) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (r *ExpenseRepository) GetByReportID(ctx context.Context, reportID string) ([]*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Expense, 0)
	for _, e := range r.s.data.Expenses {
		if e.ReportID == reportID {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Expense, 0, len(r.s.data.Expenses))
	for _, e := range r.s.data.Expenses {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.data.Expenses {
		if e.ID == expense.ID {
			r.s.data.Expenses[i] = expense.Clone()
			return nil
		}
	}
	return fmt.Errorf("expense %s not found", expense.ID)
}

func (r *ExpenseRepository) UpdateStatus(ctx context.Context, id string, s status.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.data.Expenses {
		if e.ID == id {
			e.Status = s
			e.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("expense %s not found", id)
}

// ReportRepository implements port.ReportRepository
type ReportRepository struct {
	s *Store
}

func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.Reports {
		if existing.ID == report.ID {
			return fmt.Errorf("report %s already exists", report.ID)
		}
	}
	r.s.data.Reports = append(r.s.data.Reports, report.Clone())
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, report := range r.s.data.Reports {
		if report.ID == id {
			return report.Clone(), nil
		}
	}
	return nil, nil
}

func (r *ReportRepository) List(ctx context.Context) ([]*entity.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Report, 0, len(r.s.data.Reports))
	for _, report := range r.s.data.Reports {
		out = append(out, report.Clone())
	}
	return out, nil
}

// SetDecision checks and writes under one lock so a decision is recorded at most once
func (r *ReportRepository) SetDecision(ctx context.Context, id string, s status.Status, reviewer, comment string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, report := range r.s.data.Reports {
		if report.ID != id {
			continue
		}
		if !report.CanBeDecided() {
			return false, nil
		}
		decidedAt := at
		report.Status = s
		report.DecidedBy = reviewer
		report.DecisionComment = comment
		report.DecidedAt = &decidedAt
		report.UpdatedAt = at
		return true, nil
	}
	return false, fmt.Errorf("report %s not found", id)
}

// ReceiptRepository implements port.ReceiptRepository. Receipts are kept newest first.
type ReceiptRepository struct {
	s *Store
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.Receipts {
		if existing.ID == receipt.ID {
			return fmt.Errorf("receipt %s already exists", receipt.ID)
		}
	}
	r.s.data.Receipts = append([]*entity.Receipt{receipt.Clone()}, r.s.data.Receipts...)
	return nil
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, receipt := range r.s.data.Receipts {
		if receipt.ID == id {
			return receipt.Clone(), nil
		}
	}
	return nil, nil
}

func (r *ReceiptRepository) GetByExpenseIDs(ctx context.Context, expenseIDs []string) ([]*entity.Receipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Receipt, 0)
	for _, receipt := range r.s.data.Receipts {
		if receipt.ExpenseID != "" && contains(expenseIDs, receipt.ExpenseID) {
			out = append(out, receipt.Clone())
		}
	}
	return out, nil
}

func (r *ReceiptRepository) List(ctx context.Context) ([]*entity.Receipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Receipt, 0, len(r.s.data.Receipts))
	for _, receipt := range r.s.data.Receipts {
		out = append(out, receipt.Clone())
	}
	return out, nil
}

func (r *ReceiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.data.Receipts {
		if existing.ID == receipt.ID {
			r.s.data.Receipts[i] = receipt.Clone()
			return nil
		}
	}
	return fmt.Errorf("receipt %s not found", receipt.ID)
}

// CardRepository implements port.CardRepository
type CardRepository struct {
	s *Store
}

func (r *CardRepository) GetByID(ctx context.Context, id string) (*entity.CardTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.data.Cards {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, nil
}

func (r *CardRepository) List(ctx context.Context) ([]*entity.CardTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.CardTransaction, 0, len(r.s.data.Cards))
	for _, c := range r.s.data.Cards {
		out = append(out, c.Clone())
	}
	return out, nil
}

// DecisionRepository implements port.DecisionRepository
type DecisionRepository struct {
	s *Store
}

func (r *DecisionRepository) Create(ctx context.Context, record *entity.DecisionRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *record
	r.s.data.Decisions = append(r.s.data.Decisions, &cp)
	return nil
}

func (r *DecisionRepository) GetByReportID(ctx context.Context, reportID string) ([]*entity.DecisionRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.DecisionRecord, 0)
	for _, record := range r.s.data.Decisions {
		if record.ReportID == reportID {
			cp := *record
			out = append(out, &cp)
		}
	}
	return out, nil
}

// CommentRepository implements port.CommentRepository
type CommentRepository struct {
	s *Store
}

func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *comment
	r.s.data.Comments = append(r.s.data.Comments, &cp)
	return nil
}

func (r *CommentRepository) GetByReportID(ctx context.Context, reportID string) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Comment, 0)
	for _, c := range r.s.data.Comments {
		if c.ReportID == reportID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}
