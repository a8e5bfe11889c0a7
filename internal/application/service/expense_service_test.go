package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/event"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	events := &mockDispatcher{}
	svc := NewExpenseService(store.Expenses, events, &mockLogger{}, fixedClock)

	e, err := svc.Create(ctx, ExpenseInput{Amount: "$1,234.50", Description: " Conference ticket "})
	require.NoError(t, err)

	assert.Equal(t, 1234.50, e.Amount)
	assert.Equal(t, "Conference ticket", e.Description)
	assert.Equal(t, entity.CategoryOther, e.Category)
	assert.Equal(t, "2025-03-04", e.Date)
	assert.Equal(t, status.Pending, e.Status)
	assert.Empty(t, e.ReportID)

	stored, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Amount, stored.Amount)

	require.Len(t, events.events, 1)
	assert.Equal(t, event.TypeExpenseCreated, events.events[0].Type)
}

func TestExpenseService_CreateValidation(t *testing.T) {
	svc := NewExpenseService(seededStore().Expenses, nil, &mockLogger{}, fixedClock)

	tests := []struct {
		name    string
		input   ExpenseInput
		message string
	}{
		{"missing description", ExpenseInput{Amount: "10"}, "Please enter a description"},
		{"missing amount", ExpenseInput{Description: "Taxi"}, "Please enter a valid amount"},
		{"not a number", ExpenseInput{Description: "Taxi", Amount: "ten"}, "Please enter a valid amount"},
		{"negative", ExpenseInput{Description: "Taxi", Amount: "-5"}, "Please enter a valid amount"},
		{"overflows float", ExpenseInput{Description: "Taxi", Amount: "1e400"}, "Please enter a valid amount"},
		{"above cap", ExpenseInput{Description: "Taxi", Amount: "1000000000001"}, "Please enter a valid amount"},
		{"bad date", ExpenseInput{Description: "Taxi", Amount: "5", Date: "03/04/2025"}, "Please enter a date as YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.ErrorIs(t, err, ErrInvalidInput)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	svc := NewExpenseService(store.Expenses, nil, &mockLogger{}, fixedClock)

	updated, err := svc.Update(ctx, "2", ExpenseInput{Amount: "50", Category: entity.CategoryMeals, Description: "Lunch", Date: "2024-01-14"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.Amount)
	assert.Equal(t, status.Pending, updated.Status, "status untouched")

	// linked expenses keep their amount and category
	_, err = svc.Update(ctx, "101", ExpenseInput{Amount: "1", Category: entity.CategoryTravel, Description: "Flight to New York", Date: "2024-01-08"})
	assert.ErrorIs(t, err, ErrAlreadyLinked)

	_, err = svc.Update(ctx, "101", ExpenseInput{Amount: "850", Category: entity.CategoryMeals, Description: "Flight to New York", Date: "2024-01-08"})
	assert.ErrorIs(t, err, ErrAlreadyLinked)

	stored, err := svc.Get(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryTravel, stored.Category)

	relabelled, err := svc.Update(ctx, "101", ExpenseInput{Amount: "850", Category: entity.CategoryTravel, Description: "Flight JFK", Date: "2024-01-08"})
	require.NoError(t, err)
	assert.Equal(t, "Flight JFK", relabelled.Description)

	_, err = svc.Update(ctx, "missing", ExpenseInput{Amount: "1", Description: "x"})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestExpenseService_Delete(t *testing.T) {
	svc := NewExpenseService(seededStore().Expenses, nil, &mockLogger{}, fixedClock)

	assert.ErrorIs(t, svc.Delete(context.Background(), "1"), ErrDeleteUnsupported)
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrExpenseNotFound)
}

func TestExpenseService_Summary(t *testing.T) {
	svc := NewExpenseService(seededStore().Expenses, nil, &mockLogger{}, fixedClock)

	summary, err := svc.Summary(context.Background(), derive.Criteria{
		Categories: derive.NewCategorySet(entity.CategoryMeals),
	})
	require.NoError(t, err)

	// 2, 103, 105, 301
	assert.Equal(t, 4, summary.Count)
	assert.InDelta(t, 397.25, summary.Total, 1e-9)
	assert.InDelta(t, 240.50, summary.PendingTotal, 1e-9)
	assert.Equal(t, 3, summary.ByStatus[status.Pending])
	assert.Equal(t, 1, summary.ByStatus[status.Approved])
}
