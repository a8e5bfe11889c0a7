package port

import (
	"context"

	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/event"
)

// EventPublisher forwards domain events to an external broker
type EventPublisher interface {
	Publish(ctx context.Context, evt *event.Event) error
	Close() error
}

// ReportDetail is everything the report-detail screen shows
type ReportDetail struct {
	Report    *entity.Report           `json:"report"`
	Expenses  []*entity.Expense        `json:"expenses"`
	Receipts  []*entity.Receipt        `json:"receipts"`
	Comments  []*entity.Comment        `json:"comments"`
	Decisions []*entity.DecisionRecord `json:"decisions"`
}

// ReportWriter renders a report detail into a document and returns its storage path
type ReportWriter interface {
	Write(ctx context.Context, detail *ReportDetail) (string, error)
}
