package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/event"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// ExpenseInput is the raw add/edit expense form
type ExpenseInput struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Comment     string `json:"comment"`
}

// ExpenseSummary backs the totals header of the expense list
type ExpenseSummary struct {
	Count        int                   `json:"count"`
	Total        float64               `json:"total"`
	PendingTotal float64               `json:"pending_total"`
	ByStatus     map[status.Status]int `json:"by_status"`
}

// ExpenseService manages individual expenses
type ExpenseService interface {
	List(ctx context.Context, criteria derive.Criteria) ([]*entity.Expense, error)
	Get(ctx context.Context, id string) (*entity.Expense, error)
	Create(ctx context.Context, input ExpenseInput) (*entity.Expense, error)
	Update(ctx context.Context, id string, input ExpenseInput) (*entity.Expense, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, criteria derive.Criteria) (*ExpenseSummary, error)
}

type expenseServiceImpl struct {
	expenseRepo port.ExpenseRepository
	dispatcher  EventDispatcher
	logger      Logger
	now         func() time.Time
}

// NewExpenseService creates a new ExpenseService. A nil clock uses time.Now.
func NewExpenseService(expenseRepo port.ExpenseRepository, dispatcher EventDispatcher, logger Logger, clock func() time.Time) ExpenseService {
	if clock == nil {
		clock = time.Now
	}
	return &expenseServiceImpl{
		expenseRepo: expenseRepo,
		dispatcher:  dispatcher,
		logger:      logger,
		now:         clock,
	}
}

func (s *expenseServiceImpl) List(ctx context.Context, criteria derive.Criteria) ([]*entity.Expense, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list expenses", "error", err)
		return nil, err
	}
	return derive.Apply(expenses, criteria), nil
}

func (s *expenseServiceImpl) Get(ctx context.Context, id string) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get expense", "error", err, "id", id)
		return nil, err
	}
	if expense == nil {
		return nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}
	return expense, nil
}

// Create adds a pending expense. Category defaults to Other and date to today.
func (s *expenseServiceImpl) Create(ctx context.Context, input ExpenseInput) (*entity.Expense, error) {
	fields, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expense := &entity.Expense{
		ID:          uuid.NewString(),
		Amount:      fields.amount,
		Category:    fields.category,
		Description: fields.description,
		Date:        fields.date,
		Status:      status.Pending,
		Comment:     strings.TrimSpace(input.Comment),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		s.logger.Error("Failed to create expense", "error", err)
		return nil, fmt.Errorf("create expense: %w", err)
	}

	emit(ctx, s.dispatcher, s.logger, event.NewEvent(event.TypeExpenseCreated, expense.ID, "", map[string]interface{}{
		"amount":   expense.Amount,
		"category": expense.Category,
	}))
	s.logger.Info("Expense created", "id", expense.ID, "amount", expense.Amount)
	return expense, nil
}

// Update edits an expense. Status is never changed here. The amount and
// category of an expense already linked to a report are frozen; the report's
// total and category are derived from them.
func (s *expenseServiceImpl) Update(ctx context.Context, id string, input ExpenseInput) (*entity.Expense, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	if existing.ReportID != "" && (fields.amount != existing.Amount || fields.category != existing.Category) {
		return nil, fmt.Errorf("%w: expense %s is in report %s", ErrAlreadyLinked, id, existing.ReportID)
	}

	updated := existing.Clone()
	updated.Amount = fields.amount
	updated.Category = fields.category
	updated.Description = fields.description
	updated.Date = fields.date
	updated.Comment = strings.TrimSpace(input.Comment)
	updated.UpdatedAt = s.now()

	if err := s.expenseRepo.Update(ctx, updated); err != nil {
		s.logger.Error("Failed to update expense", "error", err, "id", id)
		return nil, fmt.Errorf("update expense: %w", err)
	}

	emit(ctx, s.dispatcher, s.logger, event.NewEvent(event.TypeExpenseUpdated, id, "", map[string]interface{}{
		"amount":          updated.Amount,
		"previous_amount": existing.Amount,
	}))
	s.logger.Info("Expense updated", "id", id)
	return updated, nil
}

// Delete is not offered by the product; it only confirms the expense exists
func (s *expenseServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return ErrDeleteUnsupported
}

func (s *expenseServiceImpl) Summary(ctx context.Context, criteria derive.Criteria) (*ExpenseSummary, error) {
	expenses, err := s.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return &ExpenseSummary{
		Count:        len(expenses),
		Total:        derive.ComputeTotal(expenses),
		PendingTotal: derive.ComputePendingTotal(expenses),
		ByStatus:     derive.StatusCounts(expenses),
	}, nil
}

type expenseFields struct {
	amount      float64
	category    string
	description string
	date        string
}

func (s *expenseServiceImpl) validate(input ExpenseInput) (expenseFields, error) {
	var f expenseFields

	f.description = strings.TrimSpace(input.Description)
	if f.description == "" {
		return f, invalid("description", "Please enter a description")
	}

	amount, err := parseAmount(input.Amount, "amount", "Please enter a valid amount")
	if err != nil {
		return f, err
	}
	f.amount = amount

	date, err := normalizeDate(input.Date, s.now())
	if err != nil {
		return f, err
	}
	f.date = date

	f.category = strings.TrimSpace(input.Category)
	if f.category == "" {
		f.category = entity.CategoryOther
	}
	return f, nil
}
