package entity

import (
	"time"

	"github.com/garyjia/expense-companion/internal/domain/status"
)

// Expense represents a single spend line
type Expense struct {
	ID          string        `json:"id"`
	Amount      float64       `json:"amount"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Date        string        `json:"date"`
	Status      status.Status `json:"status"`
	Comment     string        `json:"comment,omitempty"`
	ReportID    string        `json:"report_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (e *Expense) GetAmount() float64 { return e.Amount }
func (e *Expense) GetStatus() status.Status { return e.Status }
func (e *Expense) GetCategory() string { return e.Category }
func (e *Expense) GetDate() string { return e.Date }

// Clone returns a detached copy so callers cannot mutate store state
func (e *Expense) Clone() *Expense {
	c := *e
	return &c
}
