package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/event"
	"github.com/garyjia/expense-companion/internal/domain/status"
	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/memory"
	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/seed"
)

var fixedNow = time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func seededStore() port.Store {
	return memory.New(seed.Default()).Port()
}

func draftPayload(t *testing.T, source string, ids ...string) draft.Payload {
	t.Helper()
	p, err := draft.NewPayload(draft.Form{
		Name:            "Client visit",
		Date:            "2025-03-04",
		BusinessPurpose: "Quarterly review",
		Comment:         "Receipts attached",
	}, source, ids)
	require.NoError(t, err)
	return p
}

func TestReportService_CreateFromExpenses(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	events := &mockDispatcher{}
	svc := NewReportService(store, events, &mockLogger{}, fixedClock)

	report, err := svc.CreateFromDraft(ctx, draftPayload(t, entity.SourceExpenses, "1", "2"), seed.DemoUser)
	require.NoError(t, err)

	assert.Equal(t, status.Pending, report.Status)
	assert.Equal(t, "Client visit", report.Title)
	assert.Equal(t, seed.DemoUser, report.SubmittedBy)
	assert.Equal(t, 2, report.ExpenseCount)
	assert.InDelta(t, 170.50, report.TotalAmount, 1e-9)
	assert.Equal(t, entity.CategoryOther, report.Category, "mixed categories")

	linked, err := store.Expenses.GetByReportID(ctx, report.ID)
	require.NoError(t, err)
	assert.Len(t, linked, 2)
	assert.InDelta(t, report.TotalAmount, derive.ComputeTotal(linked), 1e-9)

	detail, err := svc.Detail(ctx, report.ID)
	require.NoError(t, err)
	require.Len(t, detail.Decisions, 1)
	assert.Equal(t, entity.ActionCreate, detail.Decisions[0].ActionType)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Receipts attached", detail.Comments[0].Content)
	assert.Equal(t, entity.CommentKindRequest, detail.Comments[0].Kind)

	require.Len(t, events.events, 1)
	assert.Equal(t, event.TypeReportCreated, events.events[0].Type)
}

func TestReportService_CreateFromCards(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	svc := NewReportService(store, nil, &mockLogger{}, fixedClock)

	report, err := svc.CreateFromDraft(ctx, draftPayload(t, entity.SourceCreditCards, "1", "3"), seed.DemoUser)
	require.NoError(t, err)

	assert.Equal(t, 2, report.ExpenseCount)
	assert.Equal(t, 33500.0, report.TotalAmount)
	assert.Equal(t, entity.CategoryCreditCard, report.Category)

	linked, err := store.Expenses.GetByReportID(ctx, report.ID)
	require.NoError(t, err)
	require.Len(t, linked, 2)
	var descriptions []string
	for _, e := range linked {
		assert.Equal(t, status.Pending, e.Status)
		descriptions = append(descriptions, e.Description)
	}
	assert.ElementsMatch(t, []string{"Visa ending 1234", "American Express ending 9012"}, descriptions)
}

func TestReportService_CreateRejectsInvalidPayload(t *testing.T) {
	svc := NewReportService(seededStore(), nil, &mockLogger{}, fixedClock)

	p := draftPayload(t, entity.SourceExpenses, "1")
	p.Name = "  "
	_, err := svc.CreateFromDraft(context.Background(), p, seed.DemoUser)
	assert.ErrorIs(t, err, draft.ErrMissingName)

	p = draftPayload(t, entity.SourceExpenses, "1")
	p.SourceIDs = nil
	_, err = svc.CreateFromDraft(context.Background(), p, seed.DemoUser)
	assert.ErrorIs(t, err, draft.ErrEmptySelection)
}

func TestReportService_CreateRollsBackOnMissingExpense(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	svc := NewReportService(store, nil, &mockLogger{}, fixedClock)

	before, err := store.Reports.List(ctx)
	require.NoError(t, err)

	_, err = svc.CreateFromDraft(ctx, draftPayload(t, entity.SourceExpenses, "2", "missing"), seed.DemoUser)
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	after, err := store.Reports.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	e, err := store.Expenses.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, e.ReportID, "link rolled back")
}

func TestReportService_CreateRejectsLinkedExpense(t *testing.T) {
	svc := NewReportService(seededStore(), nil, &mockLogger{}, fixedClock)

	_, err := svc.CreateFromDraft(context.Background(), draftPayload(t, entity.SourceExpenses, "101"), seed.DemoUser)
	assert.ErrorIs(t, err, ErrAlreadyLinked)
}

func TestReportService_CreateRejectsDuplicateSources(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	svc := NewReportService(store, nil, &mockLogger{}, fixedClock)

	before, err := store.Reports.List(ctx)
	require.NoError(t, err)

	for _, source := range []string{entity.SourceExpenses, entity.SourceCreditCards} {
		p := draftPayload(t, source, "1")
		p.SourceIDs = []string{"1", "1"}
		_, err := svc.CreateFromDraft(ctx, p, seed.DemoUser)
		assert.ErrorIs(t, err, draft.ErrDuplicateItem, source)
	}

	after, err := store.Reports.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	e, err := store.Expenses.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, e.ReportID)
}

func TestReportService_TotalsMatchLinkedExpenses(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	svc := NewReportService(store, nil, &mockLogger{}, fixedClock)

	report, err := svc.CreateFromDraft(ctx, draftPayload(t, entity.SourceExpenses, "1", "3"), seed.DemoUser)
	require.NoError(t, err)

	linked, err := store.Expenses.GetByIDs(ctx, report.ExpenseIDs)
	require.NoError(t, err)
	require.Len(t, linked, report.ExpenseCount)
	assert.InDelta(t, derive.ComputeTotal(linked), report.TotalAmount, 1e-9)
	for _, e := range linked {
		assert.Equal(t, report.ID, e.ReportID)
	}
}

func TestReportService_Detail(t *testing.T) {
	svc := NewReportService(seededStore(), nil, &mockLogger{}, fixedClock)

	detail, err := svc.Detail(context.Background(), "1")
	require.NoError(t, err)

	assert.Len(t, detail.Expenses, 5)
	assert.Len(t, detail.Comments, 2)
	require.Len(t, detail.Receipts, 4)
	for _, r := range detail.Receipts {
		assert.NotEmpty(t, r.ExpenseDescription, r.ID)
	}

	_, err = svc.Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestReportService_ListByStatusCategory(t *testing.T) {
	svc := NewReportService(seededStore(), nil, &mockLogger{}, fixedClock)

	drafts, err := svc.List(context.Background(), derive.Criteria{StatusCategory: status.CategoryDraft})
	require.NoError(t, err)
	assert.Len(t, drafts, 2)

	complete, err := svc.List(context.Background(), derive.Criteria{StatusCategory: status.CategoryComplete})
	require.NoError(t, err)
	assert.Len(t, complete, 2)
}

func TestReportService_AddComment(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(seededStore(), nil, &mockLogger{}, fixedClock)

	c, err := svc.AddComment(ctx, "2", "Sarah Johnson", "  Updated the invoice  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Updated the invoice", c.Content)
	assert.Equal(t, entity.CommentKindUpdate, c.Kind)

	_, err = svc.AddComment(ctx, "2", "Sarah Johnson", " ", "")
	assert.True(t, IsValidation(err))

	_, err = svc.AddComment(ctx, "2", "Sarah Johnson", "hi", "shout")
	assert.True(t, IsValidation(err))

	_, err = svc.AddComment(ctx, "missing", "Sarah Johnson", "hi", "")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestApprovalService_WithMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	svc := NewApprovalService(store.Reports, store.Expenses, store.Decisions, store.Comments, store.Tx, nil, &mockLogger{})

	report, err := svc.Approve(ctx, "2", "Mike Davis", "Approved for Q1")
	require.NoError(t, err)
	assert.Equal(t, status.Approved, report.Status)

	expenses, err := store.Expenses.GetByReportID(ctx, "2")
	require.NoError(t, err)
	for _, e := range expenses {
		assert.Equal(t, status.Approved, e.Status, e.ID)
	}

	_, err = svc.Reject(ctx, "2", "Mike Davis", "")
	assert.ErrorIs(t, err, ErrReportNotPending)

	_, err = svc.Approve(ctx, "3", "Mike Davis", "")
	assert.ErrorIs(t, err, ErrReportNotPending, "seeded approved report")

	history, err := svc.History(ctx, "2")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, status.Approved, history[0].NewStatus)

	reports, err := store.Reports.List(ctx)
	require.NoError(t, err)
	for _, r := range derive.FilterByStatus(reports, status.Pending) {
		assert.NotEqual(t, "2", r.ID)
	}
}

type stubWriter struct {
	path string
	err  error
	got  *port.ReportDetail
}

func (w *stubWriter) Write(ctx context.Context, detail *port.ReportDetail) (string, error) {
	w.got = detail
	return w.path, w.err
}

func TestExportService_ExportReport(t *testing.T) {
	ctx := context.Background()
	reports := NewReportService(seededStore(), nil, &mockLogger{}, fixedClock)

	writer := &stubWriter{path: "exports/report-1.xlsx"}
	path, err := NewExportService(reports, writer, &mockLogger{}).ExportReport(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "exports/report-1.xlsx", path)
	assert.Equal(t, "1", writer.got.Report.ID)

	_, err = NewExportService(reports, writer, &mockLogger{}).ExportReport(ctx, "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)

	boom := errors.New("disk full")
	_, err = NewExportService(reports, &stubWriter{err: boom}, &mockLogger{}).ExportReport(ctx, "1")
	assert.ErrorIs(t, err, boom)
}
