package service

import (
	"context"

	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/domain/entity"
)

// NewDraftSet builds the expense and credit-card drafts. Expenses that
// already belong to a report cannot be selected.
func NewDraftSet(expenses ExpenseService, cards CardService, clock draft.Clock) (*draft.Set, error) {
	expenseDraft, err := draft.New(entity.SourceExpenses, func(id string) (float64, bool) {
		e, err := expenses.Get(context.Background(), id)
		if err != nil || e.ReportID != "" {
			return 0, false
		}
		return e.Amount, true
	}, clock)
	if err != nil {
		return nil, err
	}

	cardDraft, err := draft.New(entity.SourceCreditCards, func(id string) (float64, bool) {
		return cards.Amount(context.Background(), id)
	}, clock)
	if err != nil {
		return nil, err
	}

	return draft.NewSet(expenseDraft, cardDraft), nil
}
