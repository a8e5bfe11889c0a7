package http

import (
	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/display"
	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// ExpenseView is an expense row as the list screen draws it
type ExpenseView struct {
	*entity.Expense
	Badge       display.Badge   `json:"badge"`
	Tab         status.Category `json:"tab"`
	DisplayText string          `json:"amount_text"`
}

// ReportView is a report card
type ReportView struct {
	*entity.Report
	Badge       display.Badge   `json:"badge"`
	Tab         status.Category `json:"tab"`
	DisplayText string          `json:"amount_text"`
}

// ReceiptView is a receipt row
type ReceiptView struct {
	*entity.Receipt
	Badge       display.Badge `json:"badge"`
	DisplayText string        `json:"amount_text"`
}

// CardView is a credit-card transaction row
type CardView struct {
	*entity.CardTransaction
	DisplayText string `json:"amount_text"`
}

func toExpenseView(e *entity.Expense) ExpenseView {
	return ExpenseView{
		Expense:     e,
		Badge:       display.StatusBadge(e.Status),
		Tab:         status.Classify(e.Status),
		DisplayText: display.Money(e.Amount),
	}
}

func toExpenseViews(expenses []*entity.Expense) []ExpenseView {
	views := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, toExpenseView(e))
	}
	return views
}

func toReportView(r *entity.Report) ReportView {
	return ReportView{
		Report:      r,
		Badge:       display.StatusBadge(r.Status),
		Tab:         status.Classify(r.Status),
		DisplayText: display.Money(r.TotalAmount),
	}
}

func toReportViews(reports []*entity.Report) []ReportView {
	views := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, toReportView(r))
	}
	return views
}

func toReceiptView(r *entity.Receipt) ReceiptView {
	return ReceiptView{
		Receipt:     r,
		Badge:       display.StatusBadge(r.Status),
		DisplayText: display.Money(r.Amount),
	}
}

func toReceiptViews(receipts []*entity.Receipt) []ReceiptView {
	views := make([]ReceiptView, 0, len(receipts))
	for _, r := range receipts {
		views = append(views, toReceiptView(r))
	}
	return views
}

// ReportDetailView backs the report-detail screen
type ReportDetailView struct {
	Report    ReportView               `json:"report"`
	Expenses  []ExpenseView            `json:"expenses"`
	Receipts  []ReceiptView            `json:"receipts"`
	Comments  []*entity.Comment        `json:"comments"`
	Decisions []*entity.DecisionRecord `json:"decisions"`
}

func toReportDetailView(d *port.ReportDetail) ReportDetailView {
	return ReportDetailView{
		Report:    toReportView(d.Report),
		Expenses:  toExpenseViews(d.Expenses),
		Receipts:  toReceiptViews(d.Receipts),
		Comments:  d.Comments,
		Decisions: d.Decisions,
	}
}

// StatCard is one tile on the home screen
type StatCard struct {
	Kind  string        `json:"kind"`
	Badge display.Badge `json:"badge"`
	Count int           `json:"count"`
}

// DashboardView is the home screen
type DashboardView struct {
	MyReports struct {
		Total       int          `json:"total"`
		TotalAmount string       `json:"total_amount"`
		Cards       []StatCard   `json:"cards"`
		Recent      []ReportView `json:"recent"`
	} `json:"my_reports"`
	MyApprovals struct {
		Total       int          `json:"total"`
		TotalAmount string       `json:"total_amount"`
		Periods     []StatCard   `json:"periods"`
		Recent      []ReportView `json:"recent"`
	} `json:"my_approvals"`
}

// toDashboardView lays the summary out as stat tiles. Open report drafts
// count as "draft"; reports awaiting a decision count as "submitted".
func toDashboardView(s *derive.DashboardSummary, openDrafts int) DashboardView {
	var v DashboardView

	v.MyReports.Total = s.MyReports.Total
	v.MyReports.TotalAmount = display.Money(s.MyReports.TotalAmount)
	v.MyReports.Recent = toReportViews(s.MyReports.Recent)
	for _, card := range []struct {
		kind  string
		count int
	}{
		{display.CardDraft, openDrafts},
		{display.CardSubmitted, s.MyReports.Pending},
		{display.CardApproved, s.MyReports.Approved},
		{display.CardRejected, s.MyReports.Rejected},
	} {
		v.MyReports.Cards = append(v.MyReports.Cards, StatCard{
			Kind: card.kind, Badge: display.DashboardBadge(card.kind), Count: card.count,
		})
	}

	v.MyApprovals.Total = s.MyApprovals.Total
	v.MyApprovals.TotalAmount = display.Money(s.MyApprovals.TotalAmount)
	v.MyApprovals.Recent = toReportViews(s.MyApprovals.Recent)
	for _, period := range []struct {
		kind  string
		count int
	}{
		{display.PeriodToday, s.MyApprovals.Today},
		{display.PeriodThisWeek, s.MyApprovals.ThisWeek},
		{display.PeriodThisMonth, s.MyApprovals.ThisMonth},
	} {
		v.MyApprovals.Periods = append(v.MyApprovals.Periods, StatCard{
			Kind: period.kind, Badge: display.PeriodBadge(period.kind), Count: period.count,
		})
	}
	return v
}

// DraftView is the selection state of one source screen
type DraftView struct {
	Source        string     `json:"source"`
	State         string     `json:"state"`
	Selected      []string   `json:"selected"`
	SelectedTotal float64    `json:"selected_total"`
	TotalText     string     `json:"selected_total_text"`
	Form          draft.Form `json:"form"`
}

func toDraftView(d *draft.Draft) DraftView {
	total := d.SelectedTotal()
	text := display.Money(total)
	if d.Source() == entity.SourceCreditCards {
		text = display.Thousands(total)
	}
	return DraftView{
		Source:        d.Source(),
		State:         d.State().String(),
		Selected:      d.Selected(),
		SelectedTotal: total,
		TotalText:     text,
		Form:          d.Form(),
	}
}

// HandoffView is what a confirmed draft navigates to
type HandoffView struct {
	Destination string            `json:"destination"`
	Params      map[string]string `json:"params"`
	Report      ReportView        `json:"report"`
}
