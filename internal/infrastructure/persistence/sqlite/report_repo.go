package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

const reportColumns = `id, title, submitted_by, total_amount, submission_date, category,
	description, business_purpose, comment, assign_to, source, status,
	expense_count, expense_ids, decision_comment, decided_by, decided_at,
	created_at, updated_at`

// ReportRepository implements port.ReportRepository
type ReportRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *DB, logger *zap.Logger) port.ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new report
func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	ids, err := json.Marshal(nonNil(report.ExpenseIDs))
	if err != nil {
		return fmt.Errorf("failed to encode expense ids: %w", err)
	}

	var decidedAt sql.NullTime
	if report.DecidedAt != nil {
		decidedAt = sql.NullTime{Time: *report.DecidedAt, Valid: true}
	}

	query := `INSERT INTO reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.exec(ctx).ExecContext(ctx, query,
		report.ID,
		report.Title,
		report.SubmittedBy,
		report.TotalAmount,
		report.SubmissionDate,
		report.Category,
		report.Description,
		report.BusinessPurpose,
		report.Comment,
		report.AssignTo,
		report.Source,
		report.Status,
		report.ExpenseCount,
		string(ids),
		report.DecisionComment,
		report.DecidedBy,
		decidedAt,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create report", zap.String("id", report.ID), zap.Error(err))
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID retrieves a report by ID
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`

	report, err := scanReport(r.db.exec(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get report by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

// List retrieves every report in insertion order
func (r *ReportRepository) List(ctx context.Context) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY rowid`

	rows, err := r.db.exec(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list reports", zap.Error(err))
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*entity.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// SetDecision writes the decision with a single conditional update, so only
// the first decision on a pending report takes effect.
func (r *ReportRepository) SetDecision(ctx context.Context, id string, s status.Status, reviewer, comment string, at time.Time) (bool, error) {
	query := `
		UPDATE reports
		SET status = ?, decided_by = ?, decision_comment = ?, decided_at = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`
	result, err := r.db.exec(ctx).ExecContext(ctx, query, s, reviewer, comment, at, at, id, status.Pending)
	if err != nil {
		r.logger.Error("Failed to set report decision", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to set decision: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 1 {
		return true, nil
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("report %s not found", id)
	}
	return false, nil
}

func scanReport(row scanner) (*entity.Report, error) {
	var report entity.Report
	var ids string
	var decidedAt sql.NullTime

	err := row.Scan(
		&report.ID,
		&report.Title,
		&report.SubmittedBy,
		&report.TotalAmount,
		&report.SubmissionDate,
		&report.Category,
		&report.Description,
		&report.BusinessPurpose,
		&report.Comment,
		&report.AssignTo,
		&report.Source,
		&report.Status,
		&report.ExpenseCount,
		&ids,
		&report.DecisionComment,
		&report.DecidedBy,
		&decidedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(ids), &report.ExpenseIDs); err != nil {
		return nil, fmt.Errorf("failed to decode expense ids of report %s: %w", report.ID, err)
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		report.DecidedAt = &t
	}
	return &report, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
