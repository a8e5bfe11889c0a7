package entity

import (
	"strings"
	"time"

	"github.com/garyjia/expense-companion/internal/domain/status"
)

// Receipt represents a captured proof of purchase, optionally linked to an expense
type Receipt struct {
	ID                 string        `json:"id"`
	Description        string        `json:"description"`
	Amount             float64       `json:"amount"`
	Date               string        `json:"date"`
	Status             status.Status `json:"status"`
	MimeType           string        `json:"mime_type,omitempty"`
	ExpenseID          string        `json:"expense_id,omitempty"`
	ExpenseDescription string        `json:"expense_description,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

func (r *Receipt) GetAmount() float64 { return r.Amount }
func (r *Receipt) GetStatus() status.Status { return r.Status }
func (r *Receipt) GetCategory() string { return "" }
func (r *Receipt) GetDate() string { return r.Date }

// IsPDF reports whether the receipt is a document rather than an image
func (r *Receipt) IsPDF() bool {
	return strings.Contains(r.MimeType, "pdf")
}

// Clone returns a detached copy so callers cannot mutate store state
func (r *Receipt) Clone() *Receipt {
	c := *r
	return &c
}
