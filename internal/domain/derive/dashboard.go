package derive

import (
	"sort"
	"time"

	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// ReportStats summarises the reports a user submitted
type ReportStats struct {
	Total       int              `json:"total"`
	Pending     int              `json:"pending"`
	Approved    int              `json:"approved"`
	Rejected    int              `json:"rejected"`
	TotalAmount float64          `json:"total_amount"`
	Recent      []*entity.Report `json:"recent"`
}

// ApprovalStats summarises the reports waiting on a user's decision
type ApprovalStats struct {
	Total       int              `json:"total"`
	Today       int              `json:"today"`
	ThisWeek    int              `json:"this_week"`
	ThisMonth   int              `json:"this_month"`
	TotalAmount float64          `json:"total_amount"`
	Recent      []*entity.Report `json:"recent"`
}

// DashboardSummary is the home screen overview
type DashboardSummary struct {
	MyReports   ReportStats   `json:"my_reports"`
	MyApprovals ApprovalStats `json:"my_approvals"`
}

// Dashboard computes the home screen overview for user.
// Reports submitted by user feed MyReports; pending reports submitted by
// anyone else feed MyApprovals. Period buckets are relative to now, weeks
// start on Monday.
func Dashboard(reports []*entity.Report, user string, now time.Time, recent int) DashboardSummary {
	mine := Filter(reports, func(r *entity.Report) bool { return r.SubmittedBy == user })
	waiting := Filter(reports, func(r *entity.Report) bool {
		return r.SubmittedBy != user && r.Status == status.Pending
	})

	counts := StatusCounts(mine)
	summary := DashboardSummary{
		MyReports: ReportStats{
			Total:       len(mine),
			Pending:     counts[status.Pending],
			Approved:    counts[status.Approved],
			Rejected:    counts[status.Rejected],
			TotalAmount: ComputeTotal(mine),
			Recent:      MostRecent(mine, recent),
		},
	}

	today := now.Format(entity.DateLayout)
	weekday := (int(now.Weekday()) + 6) % 7
	weekStart := now.AddDate(0, 0, -weekday).Format(entity.DateLayout)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(entity.DateLayout)

	summary.MyApprovals = ApprovalStats{
		Total:       len(waiting),
		Today:       len(FilterByDateRange(waiting, today, today)),
		ThisWeek:    len(FilterByDateRange(waiting, weekStart, today)),
		ThisMonth:   len(FilterByDateRange(waiting, monthStart, today)),
		TotalAmount: ComputeTotal(waiting),
		Recent:      MostRecent(waiting, recent),
	}
	return summary
}

// MostRecent returns up to n reports ordered by submission date, newest first.
// Reports sharing a date keep their original relative order.
func MostRecent(reports []*entity.Report, n int) []*entity.Report {
	sorted := append(make([]*entity.Report, 0, len(reports)), reports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmissionDate > sorted[j].SubmissionDate
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
