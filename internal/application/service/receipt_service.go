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

// ReceiptInput is the raw add-receipt form
type ReceiptInput struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	MimeType    string `json:"mime_type"`
	ExpenseID   string `json:"expense_id"`
}

// ReceiptService manages captured receipts
type ReceiptService interface {
	Add(ctx context.Context, input ReceiptInput) (*entity.Receipt, error)
	List(ctx context.Context, criteria derive.Criteria) ([]*entity.Receipt, error)
	Get(ctx context.Context, id string) (*entity.Receipt, error)
	ConfirmAmount(ctx context.Context, id, amount string) (*entity.Receipt, error)
	AttachToExpense(ctx context.Context, id, expenseID string) (*entity.Receipt, error)
}

type receiptServiceImpl struct {
	receiptRepo port.ReceiptRepository
	expenseRepo port.ExpenseRepository
	dispatcher  EventDispatcher
	logger      Logger
	now         func() time.Time
}

// NewReceiptService creates a new ReceiptService. A nil clock uses time.Now.
func NewReceiptService(receiptRepo port.ReceiptRepository, expenseRepo port.ExpenseRepository, dispatcher EventDispatcher, logger Logger, clock func() time.Time) ReceiptService {
	if clock == nil {
		clock = time.Now
	}
	return &receiptServiceImpl{
		receiptRepo: receiptRepo,
		expenseRepo: expenseRepo,
		dispatcher:  dispatcher,
		logger:      logger,
		now:         clock,
	}
}

// Add stores a pending receipt. Description, amount and date are required.
func (s *receiptServiceImpl) Add(ctx context.Context, input ReceiptInput) (*entity.Receipt, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" || strings.TrimSpace(input.Amount) == "" || strings.TrimSpace(input.Date) == "" {
		return nil, invalid("", "Please fill in all fields")
	}
	amount, err := parseAmount(input.Amount, "amount", "Amount must be a number")
	if err != nil {
		return nil, err
	}
	date, err := normalizeDate(input.Date, s.now())
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
		Date:        date,
		Status:      status.Pending,
		MimeType:    strings.TrimSpace(input.MimeType),
		CreatedAt:   s.now(),
	}
	if input.ExpenseID != "" {
		expense, err := s.expense(ctx, input.ExpenseID)
		if err != nil {
			return nil, err
		}
		receipt.ExpenseID = expense.ID
		receipt.ExpenseDescription = expense.Description
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		s.logger.Error("Failed to add receipt", "error", err)
		return nil, fmt.Errorf("create receipt: %w", err)
	}

	emit(ctx, s.dispatcher, s.logger, event.NewEvent(event.TypeReceiptAdded, receipt.ID, "", map[string]interface{}{
		"amount":     receipt.Amount,
		"expense_id": receipt.ExpenseID,
	}))
	s.logger.Info("Receipt added", "id", receipt.ID, "amount", receipt.Amount)
	return receipt, nil
}

// List returns receipts newest first
func (s *receiptServiceImpl) List(ctx context.Context, criteria derive.Criteria) ([]*entity.Receipt, error) {
	receipts, err := s.receiptRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list receipts", "error", err)
		return nil, err
	}
	return derive.Apply(receipts, criteria), nil
}

func (s *receiptServiceImpl) Get(ctx context.Context, id string) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get receipt", "error", err, "id", id)
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: %s", ErrReceiptNotFound, id)
	}
	return receipt, nil
}

// ConfirmAmount replaces the captured total with the amount the user confirmed
func (s *receiptServiceImpl) ConfirmAmount(ctx context.Context, id, amount string) (*entity.Receipt, error) {
	receipt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	value, err := parseAmount(amount, "amount", "Amount must be a number")
	if err != nil {
		return nil, err
	}

	receipt.Amount = value
	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		s.logger.Error("Failed to confirm receipt amount", "error", err, "id", id)
		return nil, fmt.Errorf("update receipt: %w", err)
	}
	s.logger.Info("Receipt amount confirmed", "id", id, "amount", value)
	return receipt, nil
}

func (s *receiptServiceImpl) AttachToExpense(ctx context.Context, id, expenseID string) (*entity.Receipt, error) {
	receipt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	expense, err := s.expense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	receipt.ExpenseID = expense.ID
	receipt.ExpenseDescription = expense.Description
	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		s.logger.Error("Failed to attach receipt", "error", err, "id", id, "expense_id", expenseID)
		return nil, fmt.Errorf("update receipt: %w", err)
	}
	return receipt, nil
}

func (s *receiptServiceImpl) expense(ctx context.Context, id string) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	if expense == nil {
		return nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}
	return expense, nil
}
