package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/seed"
	"github.com/garyjia/expense-companion/pkg/database"
)

func newTestStore(t *testing.T) (*Store, port.Store) {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.New(database.Config{Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", name)}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db, logger))

	store := NewStore(db.DB, logger)
	require.NoError(t, store.Reset(ctx, seed.Default()))
	return store, store.Port()
}

func TestStore_SeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)

	expenses, err := repos.Expenses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, expenses, len(seed.Default().Expenses))
	assert.Equal(t, "1", expenses[0].ID)

	report, err := repos.Reports.GetByID(ctx, "3")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, status.Approved, report.Status)
	assert.Equal(t, []string{"301"}, report.ExpenseIDs)
	require.NotNil(t, report.DecidedAt)
	assert.Equal(t, "Mike Davis", report.DecidedBy)

	linked, err := repos.Expenses.GetByReportID(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, linked, 5)
}

func TestStore_MissingRecordsReturnNil(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)

	e, err := repos.Expenses.GetByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, e)

	r, err := repos.Reports.GetByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, r)

	rc, err := repos.Receipts.GetByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, rc)

	c, err := repos.Cards.GetByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestReceiptRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)

	before, err := repos.Receipts.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", before[0].ID, "seed order kept")

	require.NoError(t, repos.Receipts.Create(ctx, &entity.Receipt{
		ID: "new", Description: "Coffee", Amount: 4.5, Date: "2024-01-16", Status: status.Pending, CreatedAt: time.Now(),
	}))

	after, err := repos.Receipts.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", after[0].ID)
	assert.Equal(t, "1", after[1].ID)

	attached, err := repos.Receipts.GetByExpenseIDs(ctx, []string{"102", "104"})
	require.NoError(t, err)
	assert.Len(t, attached, 3)
}

func TestReportRepository_SetDecisionOnlyOnce(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)
	at := time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC)

	ok, err := repos.Reports.SetDecision(ctx, "1", status.Approved, "Mike Davis", "fine", at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Reports.SetDecision(ctx, "1", status.Rejected, "Mike Davis", "changed my mind", at)
	require.NoError(t, err)
	assert.False(t, ok)

	r, err := repos.Reports.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, status.Approved, r.Status)
	assert.Equal(t, "fine", r.DecisionComment)
	require.NotNil(t, r.DecidedAt)
	assert.True(t, at.Equal(*r.DecidedAt))

	_, err = repos.Reports.SetDecision(ctx, "missing", status.Approved, "", "", at)
	assert.Error(t, err)
}

func TestExpenseRepository_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)

	assert.Error(t, repos.Expenses.Update(ctx, &entity.Expense{ID: "missing"}))
	assert.Error(t, repos.Expenses.UpdateStatus(ctx, "missing", status.Approved))
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)
	boom := errors.New("boom")

	err := repos.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, repos.Expenses.UpdateStatus(txCtx, "2", status.Approved))
		require.NoError(t, repos.Comments.Create(txCtx, &entity.Comment{
			ID: "x", ReportID: "1", Content: "temp", Kind: entity.CommentKindUpdate, Timestamp: time.Now(),
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	e, err := repos.Expenses.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, status.Pending, e.Status)

	comments, err := repos.Comments.GetByReportID(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	store, repos := newTestStore(t)

	require.NoError(t, repos.Expenses.Create(ctx, &entity.Expense{
		ID: "extra", Amount: 1, Category: entity.CategoryOther, Description: "x", Date: "2024-01-01", Status: status.Pending,
	}))
	require.NoError(t, store.Reset(ctx, seed.Default()))

	all, err := repos.Expenses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(seed.Default().Expenses))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
