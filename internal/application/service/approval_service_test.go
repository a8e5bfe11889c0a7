package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/event"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// Mock repositories
type mockReportRepo struct {
	getByIDFunc     func(ctx context.Context, id string) (*entity.Report, error)
	setDecisionFunc func(ctx context.Context, id string, s status.Status, reviewer, comment string, at time.Time) (bool, error)
}

func (m *mockReportRepo) Create(ctx context.Context, report *entity.Report) error { return nil }

func (m *mockReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Report{ID: id, Status: status.Pending}, nil
}

func (m *mockReportRepo) List(ctx context.Context) ([]*entity.Report, error) {
	return []*entity.Report{}, nil
}

func (m *mockReportRepo) SetDecision(ctx context.Context, id string, s status.Status, reviewer, comment string, at time.Time) (bool, error) {
	if m.setDecisionFunc != nil {
		return m.setDecisionFunc(ctx, id, s, reviewer, comment, at)
	}
	return true, nil
}

type mockExpenseRepo struct {
	updateStatusFunc func(ctx context.Context, id string, s status.Status) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error { return nil }
func (m *mockExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	return nil, nil
}
func (m *mockExpenseRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Expense, error) {
	return []*entity.Expense{}, nil
}
func (m *mockExpenseRepo) GetByReportID(ctx context.Context, reportID string) ([]*entity.Expense, error) {
	return []*entity.Expense{}, nil
}
func (m *mockExpenseRepo) List(ctx context.Context) ([]*entity.Expense, error) {
	return []*entity.Expense{}, nil
}
func (m *mockExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error { return nil }

func (m *mockExpenseRepo) UpdateStatus(ctx context.Context, id string, s status.Status) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, s)
	}
	return nil
}

type mockDecisionRepo struct {
	created []*entity.DecisionRecord
}

func (m *mockDecisionRepo) Create(ctx context.Context, record *entity.DecisionRecord) error {
	m.created = append(m.created, record)
	return nil
}

func (m *mockDecisionRepo) GetByReportID(ctx context.Context, reportID string) ([]*entity.DecisionRecord, error) {
	return m.created, nil
}

type mockCommentRepo struct {
	created []*entity.Comment
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	m.created = append(m.created, comment)
	return nil
}

func (m *mockCommentRepo) GetByReportID(ctx context.Context, reportID string) ([]*entity.Comment, error) {
	return m.created, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockDispatcher struct {
	events []*event.Event
	err    error
}

func (m *mockDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	m.events = append(m.events, evt)
	return m.err
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type approvalFixture struct {
	reports   *mockReportRepo
	expenses  *mockExpenseRepo
	decisions *mockDecisionRepo
	comments  *mockCommentRepo
	tx        *mockTxManager
	events    *mockDispatcher
	svc       ApprovalService
}

func newApprovalFixture(report *entity.Report) *approvalFixture {
	current := report.Clone()
	f := &approvalFixture{
		decisions: &mockDecisionRepo{},
		comments:  &mockCommentRepo{},
		tx:        &mockTxManager{},
		events:    &mockDispatcher{},
		expenses:  &mockExpenseRepo{},
	}
	f.reports = &mockReportRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Report, error) {
			if id != current.ID {
				return nil, nil
			}
			return current.Clone(), nil
		},
		setDecisionFunc: func(ctx context.Context, id string, s status.Status, reviewer, comment string, at time.Time) (bool, error) {
			if !current.CanBeDecided() {
				return false, nil
			}
			current.Status = s
			current.DecidedBy = reviewer
			current.DecisionComment = comment
			current.DecidedAt = &at
			return true, nil
		},
	}
	f.svc = NewApprovalService(f.reports, f.expenses, f.decisions, f.comments, f.tx, f.events, &mockLogger{})
	return f
}

func pendingReport() *entity.Report {
	return &entity.Report{
		ID:          "1",
		Title:       "Business Trip - New York",
		TotalAmount: 1245.50,
		Status:      status.Pending,
		ExpenseIDs:  []string{"101", "102"},
	}
}

func TestApprovalService_Approve(t *testing.T) {
	f := newApprovalFixture(pendingReport())
	var updated []string
	f.expenses.updateStatusFunc = func(ctx context.Context, id string, s status.Status) error {
		assert.Equal(t, status.Approved, s)
		updated = append(updated, id)
		return nil
	}

	report, err := f.svc.Approve(context.Background(), "1", "Mike Davis", " Looks good ")
	require.NoError(t, err)

	assert.Equal(t, status.Approved, report.Status)
	assert.Equal(t, "Looks good", report.DecisionComment)
	assert.Equal(t, "Mike Davis", report.DecidedBy)
	assert.NotNil(t, report.DecidedAt)
	assert.Equal(t, []string{"101", "102"}, updated)

	require.Len(t, f.decisions.created, 1)
	record := f.decisions.created[0]
	assert.Equal(t, status.Pending, record.PreviousStatus)
	assert.Equal(t, status.Approved, record.NewStatus)
	assert.Equal(t, entity.ActionApprove, record.ActionType)

	require.Len(t, f.comments.created, 1)
	assert.Equal(t, entity.CommentKindApproval, f.comments.created[0].Kind)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, event.TypeReportApproved, f.events.events[0].Type)
	assert.Equal(t, "1", f.events.events[0].AggregateID)
}

func TestApprovalService_Reject(t *testing.T) {
	f := newApprovalFixture(pendingReport())

	report, err := f.svc.Reject(context.Background(), "1", "Mike Davis", "")
	require.NoError(t, err)

	assert.Equal(t, status.Rejected, report.Status)
	assert.Empty(t, f.comments.created, "no thread entry without a comment")
	require.Len(t, f.events.events, 1)
	assert.Equal(t, event.TypeReportRejected, f.events.events[0].Type)
	assert.Equal(t, entity.ActionReject, f.decisions.created[0].ActionType)
}

func TestApprovalService_ApproveTwiceIsNoOp(t *testing.T) {
	f := newApprovalFixture(pendingReport())
	ctx := context.Background()

	first, err := f.svc.Approve(ctx, "1", "Mike Davis", "ok")
	require.NoError(t, err)

	second, err := f.svc.Approve(ctx, "1", "Mike Davis", "ok again")
	assert.ErrorIs(t, err, ErrReportNotPending)
	assert.Nil(t, second)

	_, err = f.svc.Reject(ctx, "1", "Someone Else", "too late")
	assert.ErrorIs(t, err, ErrReportNotPending)

	after, err := f.reports.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, status.Approved, after.Status)
	assert.Equal(t, first.DecisionComment, after.DecisionComment)
	assert.Len(t, f.decisions.created, 1, "no extra history rows")
	assert.Len(t, f.events.events, 1, "no extra events")
}

func TestApprovalService_PendingViewAfterApproval(t *testing.T) {
	f := newApprovalFixture(pendingReport())
	ctx := context.Background()

	report, err := f.svc.Approve(ctx, "1", "Mike Davis", "")
	require.NoError(t, err)

	views := []*entity.Report{report}
	assert.Empty(t, derive.FilterByStatus(views, status.Pending))
	assert.Len(t, derive.FilterByStatus(views, status.Approved), 1)
}

func TestApprovalService_NotFound(t *testing.T) {
	f := newApprovalFixture(pendingReport())

	_, err := f.svc.Approve(context.Background(), "missing", "Mike Davis", "")
	assert.ErrorIs(t, err, ErrReportNotFound)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, f.events.events)
}

func TestApprovalService_RepoError(t *testing.T) {
	f := newApprovalFixture(pendingReport())
	boom := errors.New("db down")
	f.reports.getByIDFunc = func(ctx context.Context, id string) (*entity.Report, error) {
		return nil, boom
	}

	_, err := f.svc.Approve(context.Background(), "1", "Mike Davis", "")
	assert.ErrorIs(t, err, boom)
}

func TestApprovalService_TransactionFailure(t *testing.T) {
	f := newApprovalFixture(pendingReport())
	boom := errors.New("expense update failed")
	f.expenses.updateStatusFunc = func(ctx context.Context, id string, s status.Status) error {
		return boom
	}

	_, err := f.svc.Approve(context.Background(), "1", "Mike Davis", "")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.events.events, "no event for a failed decision")
}

func TestApprovalService_LostRace(t *testing.T) {
	f := newApprovalFixture(pendingReport())
	f.reports.setDecisionFunc = func(ctx context.Context, id string, s status.Status, reviewer, comment string, at time.Time) (bool, error) {
		return false, nil
	}

	_, err := f.svc.Approve(context.Background(), "1", "Mike Davis", "")
	assert.ErrorIs(t, err, ErrReportNotPending)
	assert.Empty(t, f.decisions.created)
}

func TestApprovalService_DispatchFailureKeepsDecision(t *testing.T) {
	f := newApprovalFixture(pendingReport())
	f.events.err = errors.New("broker down")

	report, err := f.svc.Approve(context.Background(), "1", "Mike Davis", "")
	require.NoError(t, err)
	assert.Equal(t, status.Approved, report.Status)
}
