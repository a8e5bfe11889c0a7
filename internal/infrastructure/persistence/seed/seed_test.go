package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
)

func TestDefault_ReportTotalsMatchExpenses(t *testing.T) {
	data := Default()

	byID := make(map[string]*entity.Expense, len(data.Expenses))
	for _, e := range data.Expenses {
		byID[e.ID] = e
	}

	for _, r := range data.Reports {
		linked := make([]*entity.Expense, 0, len(r.ExpenseIDs))
		for _, id := range r.ExpenseIDs {
			e, ok := byID[id]
			require.True(t, ok, "report %s links unknown expense %s", r.ID, id)
			assert.Equal(t, r.ID, e.ReportID)
			assert.Equal(t, r.Status, e.Status, "expense %s follows report %s", id, r.ID)
			linked = append(linked, e)
		}
		assert.Equal(t, len(linked), r.ExpenseCount, r.Title)
		assert.InDelta(t, r.TotalAmount, derive.ComputeTotal(linked), 1e-9, r.Title)
	}
}

func TestDefault_ValidStatuses(t *testing.T) {
	data := Default()
	for _, e := range data.Expenses {
		assert.True(t, e.Status.IsValid(), e.ID)
	}
	for _, r := range data.Reports {
		assert.True(t, r.Status.IsValid(), r.ID)
	}
	for _, r := range data.Receipts {
		assert.True(t, r.Status.IsValid(), r.ID)
	}
}

func TestData_CloneIsDeep(t *testing.T) {
	original := Default()
	clone := original.Clone()

	clone.Expenses[0].Amount = 1
	clone.Reports[0].ExpenseIDs[0] = "changed"
	clone.Comments[0].Content = "changed"

	assert.Equal(t, 125.50, original.Expenses[0].Amount)
	assert.Equal(t, "101", original.Reports[0].ExpenseIDs[0])
	assert.NotEqual(t, "changed", original.Comments[0].Content)
}
