package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/event"
	"github.com/garyjia/expense-companion/internal/domain/status"
	"github.com/garyjia/expense-companion/internal/domain/workflow"
)

// ApprovalService records approval decisions on pending reports
type ApprovalService interface {
	Approve(ctx context.Context, reportID, reviewer, comment string) (*entity.Report, error)
	Reject(ctx context.Context, reportID, reviewer, comment string) (*entity.Report, error)
	History(ctx context.Context, reportID string) ([]*entity.DecisionRecord, error)
}

type approvalServiceImpl struct {
	reportRepo   port.ReportRepository
	expenseRepo  port.ExpenseRepository
	decisionRepo port.DecisionRepository
	commentRepo  port.CommentRepository
	txManager    port.TransactionManager
	dispatcher   EventDispatcher
	logger       Logger
	now          func() time.Time
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	reportRepo port.ReportRepository,
	expenseRepo port.ExpenseRepository,
	decisionRepo port.DecisionRepository,
	commentRepo port.CommentRepository,
	txManager port.TransactionManager,
	dispatcher EventDispatcher,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		reportRepo:   reportRepo,
		expenseRepo:  expenseRepo,
		decisionRepo: decisionRepo,
		commentRepo:  commentRepo,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *approvalServiceImpl) Approve(ctx context.Context, reportID, reviewer, comment string) (*entity.Report, error) {
	return s.decide(ctx, reportID, workflow.TriggerApprove, reviewer, comment)
}

func (s *approvalServiceImpl) Reject(ctx context.Context, reportID, reviewer, comment string) (*entity.Report, error) {
	return s.decide(ctx, reportID, workflow.TriggerReject, reviewer, comment)
}

// decide moves a pending report to its final status. A report that already
// carries a decision is left untouched and ErrReportNotPending is returned.
func (s *approvalServiceImpl) decide(ctx context.Context, reportID string, trigger workflow.Trigger, reviewer, comment string) (*entity.Report, error) {
	reviewer = strings.TrimSpace(reviewer)
	comment = strings.TrimSpace(comment)

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		s.logger.Error("Failed to get report", "error", err, "report_id", reportID)
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}

	machine, err := workflow.NewDecisionMachine(report.Status)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", reportID, err)
	}
	if err := machine.Fire(ctx, trigger); err != nil {
		if errors.Is(err, workflow.ErrInvalidTransition) {
			s.logger.Info("Decision ignored, report already decided", "report_id", reportID, "status", report.Status)
			return nil, fmt.Errorf("%w: report %s is %s", ErrReportNotPending, reportID, report.Status)
		}
		return nil, err
	}
	newStatus, err := workflow.StatusForState(machine.State())
	if err != nil {
		return nil, err
	}

	at := s.now()
	actionType := entity.ActionApprove
	if newStatus == status.Rejected {
		actionType = entity.ActionReject
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.reportRepo.SetDecision(txCtx, reportID, newStatus, reviewer, comment, at)
		if err != nil {
			return fmt.Errorf("set decision: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: report %s", ErrReportNotPending, reportID)
		}

		for _, expenseID := range report.ExpenseIDs {
			if err := s.expenseRepo.UpdateStatus(txCtx, expenseID, newStatus); err != nil {
				return fmt.Errorf("update expense %s: %w", expenseID, err)
			}
		}

		record := &entity.DecisionRecord{
			ID:             uuid.NewString(),
			ReportID:       reportID,
			PreviousStatus: report.Status,
			NewStatus:      newStatus,
			ActionType:     actionType,
			Reviewer:       reviewer,
			Comment:        comment,
			Timestamp:      at,
		}
		if err := s.decisionRepo.Create(txCtx, record); err != nil {
			return fmt.Errorf("create decision record: %w", err)
		}

		if comment != "" {
			thread := &entity.Comment{
				ID:        uuid.NewString(),
				ReportID:  reportID,
				Author:    reviewer,
				Content:   comment,
				Kind:      entity.CommentKindApproval,
				Timestamp: at,
			}
			if err := s.commentRepo.Create(txCtx, thread); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReportNotPending) {
			return nil, err
		}
		s.logger.Error("Failed to record decision", "error", err, "report_id", reportID, "status", newStatus)
		return nil, err
	}

	updated, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}

	eventType := event.TypeReportApproved
	if newStatus == status.Rejected {
		eventType = event.TypeReportRejected
	}
	emit(ctx, s.dispatcher, s.logger, event.NewEvent(eventType, reportID, reviewer, map[string]interface{}{
		"previous_status": report.Status.String(),
		"status":          newStatus.String(),
		"comment":         comment,
		"total_amount":    updated.TotalAmount,
	}))

	s.logger.Info("Report decided", "report_id", reportID, "status", newStatus, "reviewer", reviewer)
	return updated, nil
}

func (s *approvalServiceImpl) History(ctx context.Context, reportID string) ([]*entity.DecisionRecord, error) {
	records, err := s.decisionRepo.GetByReportID(ctx, reportID)
	if err != nil {
		s.logger.Error("Failed to get decision history", "error", err, "report_id", reportID)
		return nil, err
	}
	return records, nil
}
