package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/entity"
)

// DecisionRepository implements port.DecisionRepository
type DecisionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDecisionRepository creates a new decision history repository
func NewDecisionRepository(db *DB, logger *zap.Logger) port.DecisionRepository {
	return &DecisionRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a decision history entry
func (r *DecisionRepository) Create(ctx context.Context, record *entity.DecisionRecord) error {
	query := `
		INSERT INTO decision_history (
			id, report_id, previous_status, new_status, action_type,
			reviewer, comment, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx).ExecContext(ctx, query,
		record.ID,
		record.ReportID,
		record.PreviousStatus,
		record.NewStatus,
		record.ActionType,
		record.Reviewer,
		record.Comment,
		record.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create decision history", zap.String("report_id", record.ReportID), zap.Error(err))
		return fmt.Errorf("failed to create decision history: %w", err)
	}
	return nil
}

// GetByReportID retrieves the decision trail of a report, oldest first
func (r *DecisionRepository) GetByReportID(ctx context.Context, reportID string) ([]*entity.DecisionRecord, error) {
	query := `
		SELECT id, report_id, previous_status, new_status, action_type,
			reviewer, comment, created_at
		FROM decision_history
		WHERE report_id = ?
		ORDER BY rowid
	`
	rows, err := r.db.exec(ctx).QueryContext(ctx, query, reportID)
	if err != nil {
		r.logger.Error("Failed to get decision history", zap.String("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("failed to get decision history: %w", err)
	}
	defer rows.Close()

	records := make([]*entity.DecisionRecord, 0)
	for rows.Next() {
		var h entity.DecisionRecord
		if err := rows.Scan(
			&h.ID,
			&h.ReportID,
			&h.PreviousStatus,
			&h.NewStatus,
			&h.ActionType,
			&h.Reviewer,
			&h.Comment,
			&h.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan decision history: %w", err)
		}
		records = append(records, &h)
	}
	return records, rows.Err()
}

// CommentRepository implements port.CommentRepository
type CommentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *DB, logger *zap.Logger) port.CommentRepository {
	return &CommentRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a comment to a report thread
func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO report_comments (id, report_id, author, content, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.exec(ctx).ExecContext(ctx, query,
		comment.ID,
		comment.ReportID,
		comment.Author,
		comment.Content,
		comment.Kind,
		comment.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create comment", zap.String("report_id", comment.ReportID), zap.Error(err))
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByReportID retrieves a report thread, oldest first
func (r *CommentRepository) GetByReportID(ctx context.Context, reportID string) ([]*entity.Comment, error) {
	query := `
		SELECT id, report_id, author, content, kind, created_at
		FROM report_comments
		WHERE report_id = ?
		ORDER BY rowid
	`
	rows, err := r.db.exec(ctx).QueryContext(ctx, query, reportID)
	if err != nil {
		r.logger.Error("Failed to get comments", zap.String("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*entity.Comment, 0)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.ReportID, &c.Author, &c.Content, &c.Kind, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
