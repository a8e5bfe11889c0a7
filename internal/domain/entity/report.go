package entity

import (
	"time"

	"github.com/garyjia/expense-companion/internal/domain/status"
)

// Report aggregates zero or more expenses for approval.
// TotalAmount and ExpenseCount are derived from ExpenseIDs by the report service.
type Report struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	SubmittedBy     string        `json:"submitted_by"`
	TotalAmount     float64       `json:"total_amount"`
	SubmissionDate  string        `json:"submission_date"`
	Category        string        `json:"category"`
	Description     string        `json:"description"`
	BusinessPurpose string        `json:"business_purpose,omitempty"`
	Comment         string        `json:"comment,omitempty"`
	AssignTo        string        `json:"assign_to,omitempty"`
	Source          string        `json:"source,omitempty"`
	Status          status.Status `json:"status"`
	ExpenseCount    int           `json:"expense_count"`
	ExpenseIDs      []string      `json:"expense_ids"`
	DecisionComment string        `json:"decision_comment,omitempty"`
	DecidedBy       string        `json:"decided_by,omitempty"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (r *Report) GetAmount() float64 { return r.TotalAmount }
func (r *Report) GetStatus() status.Status { return r.Status }
func (r *Report) GetCategory() string { return r.Category }
func (r *Report) GetDate() string { return r.SubmissionDate }

// CanBeDecided reports whether an approval decision may still be recorded
func (r *Report) CanBeDecided() bool {
	return r.Status == status.Pending
}

// Clone returns a detached copy so callers cannot mutate store state
func (r *Report) Clone() *Report {
	c := *r
	c.ExpenseIDs = append([]string(nil), r.ExpenseIDs...)
	if r.DecidedAt != nil {
		t := *r.DecidedAt
		c.DecidedAt = &t
	}
	return &c
}
