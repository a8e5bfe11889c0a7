package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/event"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// ReportService turns confirmed drafts into reports and serves report views
type ReportService interface {
	CreateFromDraft(ctx context.Context, payload draft.Payload, submittedBy string) (*entity.Report, error)
	Get(ctx context.Context, id string) (*entity.Report, error)
	Detail(ctx context.Context, id string) (*port.ReportDetail, error)
	List(ctx context.Context, criteria derive.Criteria) ([]*entity.Report, error)
	AddComment(ctx context.Context, reportID, author, content, kind string) (*entity.Comment, error)
}

type reportServiceImpl struct {
	store      port.Store
	dispatcher EventDispatcher
	logger     Logger
	now        func() time.Time
}

// NewReportService creates a new ReportService. A nil clock uses time.Now.
func NewReportService(store port.Store, dispatcher EventDispatcher, logger Logger, clock func() time.Time) ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &reportServiceImpl{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		now:        clock,
	}
}

// CreateFromDraft links the draft's source items to a new pending report.
// Expense sources are linked as they are; card transactions are copied into
// new expenses first. Totals are always computed from the linked expenses.
func (s *reportServiceImpl) CreateFromDraft(ctx context.Context, payload draft.Payload, submittedBy string) (*entity.Report, error) {
	// re-validate: payloads also arrive from the router bag
	payload, err := draft.NewPayload(draft.Form{
		Name:            payload.Name,
		Date:            payload.Date,
		BusinessPurpose: payload.BusinessPurpose,
		Comment:         payload.Comment,
		AssignTo:        payload.AssignTo,
	}, payload.Source, payload.SourceIDs)
	if err != nil {
		return nil, err
	}
	submittedBy = strings.TrimSpace(submittedBy)

	now := s.now()
	report := &entity.Report{
		ID:              uuid.NewString(),
		Title:           payload.Name,
		SubmittedBy:     submittedBy,
		SubmissionDate:  payload.Date,
		Description:     payload.BusinessPurpose,
		BusinessPurpose: payload.BusinessPurpose,
		Comment:         payload.Comment,
		AssignTo:        payload.AssignTo,
		Source:          payload.Source,
		Status:          status.Pending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.store.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		var linked []*entity.Expense
		var err error
		switch payload.Source {
		case entity.SourceExpenses:
			linked, err = s.linkExpenses(txCtx, report.ID, payload.SourceIDs, now)
		case entity.SourceCreditCards:
			linked, err = s.expensesFromCards(txCtx, report.ID, payload.SourceIDs, now)
		default:
			err = fmt.Errorf("%w: %q", draft.ErrUnknownSource, payload.Source)
		}
		if err != nil {
			return err
		}

		applyTotals(report, linked)
		if err := s.store.Reports.Create(txCtx, report); err != nil {
			return fmt.Errorf("create report: %w", err)
		}

		record := &entity.DecisionRecord{
			ID:         uuid.NewString(),
			ReportID:   report.ID,
			NewStatus:  status.Pending,
			ActionType: entity.ActionCreate,
			Reviewer:   submittedBy,
			Comment:    "Report created",
			Timestamp:  now,
		}
		if err := s.store.Decisions.Create(txCtx, record); err != nil {
			return fmt.Errorf("create decision record: %w", err)
		}

		if payload.Comment != "" {
			if err := s.store.Comments.Create(txCtx, &entity.Comment{
				ID:        uuid.NewString(),
				ReportID:  report.ID,
				Author:    submittedBy,
				Content:   payload.Comment,
				Kind:      entity.CommentKindRequest,
				Timestamp: now,
			}); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if !IsNotFound(err) && !IsValidation(err) {
			s.logger.Error("Failed to create report", "error", err, "source", payload.Source)
		}
		return nil, err
	}

	emit(ctx, s.dispatcher, s.logger, event.NewEvent(event.TypeReportCreated, report.ID, submittedBy, map[string]interface{}{
		"source":        report.Source,
		"total_amount":  report.TotalAmount,
		"expense_count": report.ExpenseCount,
	}))
	s.logger.Info("Report created", "id", report.ID, "source", report.Source, "expense_count", report.ExpenseCount, "total_amount", report.TotalAmount)
	return report, nil
}

func (s *reportServiceImpl) linkExpenses(ctx context.Context, reportID string, ids []string, now time.Time) ([]*entity.Expense, error) {
	expenses, err := s.store.Expenses.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get expenses: %w", err)
	}
	found := make(map[string]*entity.Expense, len(expenses))
	for _, e := range expenses {
		found[e.ID] = e
	}

	linked := make([]*entity.Expense, 0, len(ids))
	for _, id := range ids {
		e, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
		}
		if e.ReportID != "" {
			return nil, fmt.Errorf("%w: expense %s is in report %s", ErrAlreadyLinked, id, e.ReportID)
		}
		e = e.Clone()
		e.ReportID = reportID
		e.UpdatedAt = now
		if err := s.store.Expenses.Update(ctx, e); err != nil {
			return nil, fmt.Errorf("link expense %s: %w", id, err)
		}
		found[id] = e
		linked = append(linked, e)
	}
	return linked, nil
}

func (s *reportServiceImpl) expensesFromCards(ctx context.Context, reportID string, ids []string, now time.Time) ([]*entity.Expense, error) {
	linked := make([]*entity.Expense, 0, len(ids))
	for _, id := range ids {
		card, err := s.store.Cards.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get card transaction: %w", err)
		}
		if card == nil {
			return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
		}

		e := &entity.Expense{
			ID:          uuid.NewString(),
			Amount:      card.Amount,
			Category:    entity.CategoryCreditCard,
			Description: fmt.Sprintf("%s ending %s", card.CardType, card.LastFour()),
			Date:        card.Date,
			Status:      status.Pending,
			ReportID:    reportID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.store.Expenses.Create(ctx, e); err != nil {
			return nil, fmt.Errorf("create expense from card %s: %w", id, err)
		}
		linked = append(linked, e)
	}
	return linked, nil
}

// applyTotals derives amount, count and category of a report from its expenses
func applyTotals(report *entity.Report, expenses []*entity.Expense) {
	report.ExpenseIDs = make([]string, 0, len(expenses))
	for _, e := range expenses {
		report.ExpenseIDs = append(report.ExpenseIDs, e.ID)
	}
	report.ExpenseCount = len(expenses)
	report.TotalAmount = derive.ComputeTotal(expenses)

	report.Category = ""
	for _, e := range expenses {
		switch {
		case report.Category == "":
			report.Category = e.Category
		case report.Category != e.Category:
			report.Category = entity.CategoryOther
		}
	}
}

func (s *reportServiceImpl) Get(ctx context.Context, id string) (*entity.Report, error) {
	report, err := s.store.Reports.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get report", "error", err, "id", id)
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return report, nil
}

// Detail returns the report with its expenses, the union of their receipts
// annotated with the owning expense, the comment thread and the decision trail.
func (s *reportServiceImpl) Detail(ctx context.Context, id string) (*port.ReportDetail, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.Expenses.GetByReportID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report expenses: %w", err)
	}

	ids := make([]string, 0, len(expenses))
	descriptions := make(map[string]string, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.ID)
		descriptions[e.ID] = e.Description
	}

	receipts, err := s.store.Receipts.GetByExpenseIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get report receipts: %w", err)
	}
	for _, r := range receipts {
		r.ExpenseDescription = descriptions[r.ExpenseID]
	}

	comments, err := s.store.Comments.GetByReportID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report comments: %w", err)
	}
	decisions, err := s.store.Decisions.GetByReportID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get decision history: %w", err)
	}

	return &port.ReportDetail{
		Report:    report,
		Expenses:  expenses,
		Receipts:  receipts,
		Comments:  comments,
		Decisions: decisions,
	}, nil
}

func (s *reportServiceImpl) List(ctx context.Context, criteria derive.Criteria) ([]*entity.Report, error) {
	reports, err := s.store.Reports.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list reports", "error", err)
		return nil, err
	}
	return derive.Apply(reports, criteria), nil
}

func (s *reportServiceImpl) AddComment(ctx context.Context, reportID, author, content, kind string) (*entity.Comment, error) {
	if _, err := s.Get(ctx, reportID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "Please enter a comment")
	}
	switch kind {
	case "":
		kind = entity.CommentKindUpdate
	case entity.CommentKindRequest, entity.CommentKindUpdate, entity.CommentKindApproval:
	default:
		return nil, invalid("kind", fmt.Sprintf("Unknown comment kind %q", kind))
	}

	comment := &entity.Comment{
		ID:        uuid.NewString(),
		ReportID:  reportID,
		Author:    strings.TrimSpace(author),
		Content:   content,
		Kind:      kind,
		Timestamp: s.now(),
	}
	if err := s.store.Comments.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to add comment", "error", err, "report_id", reportID)
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}
