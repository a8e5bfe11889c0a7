// Package display maps domain values to what the screens show: status
// badges, period chips and money strings.
package display

import (
	"github.com/shopspring/decimal"

	"github.com/garyjia/expense-companion/internal/domain/status"
)

// Badge is the icon, colour and label drawn for a status
type Badge struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// Colours shared by the status palettes
const (
	ColorApproved = "#4CAF50"
	ColorPending  = "#FF9800"
	ColorRejected = "#F44336"
	ColorNeutral  = "#90A4AE"
	ColorDraft    = "#757575"
)

// StatusBadge is used by the expense, receipt and approval lists
func StatusBadge(s status.Status) Badge {
	switch s {
	case status.Approved:
		return Badge{Icon: "check-circle", Color: ColorApproved, Label: "Approved"}
	case status.Pending:
		return Badge{Icon: "schedule", Color: ColorPending, Label: "Pending"}
	case status.Rejected:
		return Badge{Icon: "cancel", Color: ColorRejected, Label: "Rejected"}
	default:
		return Badge{Icon: "help", Color: ColorNeutral, Label: "Unknown"}
	}
}

// Dashboard stat card kinds
const (
	CardDraft     = "draft"
	CardSubmitted = "submitted"
	CardApproved  = "approved"
	CardRejected  = "rejected"
)

// DashboardBadge is used by the home screen stat cards, which group reports
// as draft, submitted, approved or rejected.
func DashboardBadge(kind string) Badge {
	switch kind {
	case CardDraft:
		return Badge{Icon: "description", Color: ColorDraft, Label: "Draft"}
	case CardSubmitted:
		return Badge{Icon: "send", Color: ColorPending, Label: "Submitted"}
	case CardApproved:
		return Badge{Icon: "check-circle", Color: ColorApproved, Label: "Approved"}
	case CardRejected:
		return Badge{Icon: "cancel", Color: ColorRejected, Label: "Rejected"}
	default:
		return Badge{Icon: "help", Color: ColorDraft, Label: "Unknown"}
	}
}

// Approval period chips
const (
	PeriodToday     = "today"
	PeriodThisWeek  = "thisWeek"
	PeriodThisMonth = "thisMonth"
)

func PeriodBadge(period string) Badge {
	switch period {
	case PeriodToday:
		return Badge{Icon: "today", Color: ColorRejected, Label: "Today"}
	case PeriodThisWeek:
		return Badge{Icon: "view-week", Color: ColorPending, Label: "This Week"}
	case PeriodThisMonth:
		return Badge{Icon: "calendar-month", Color: ColorApproved, Label: "This Month"}
	default:
		return Badge{Icon: "help", Color: ColorDraft, Label: "Unknown"}
	}
}

var thousand = decimal.NewFromInt(1000)

// Money formats an amount as dollars with two decimals, e.g. "$1245.50".
// Halves round away from zero.
func Money(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

// Thousands formats an amount in whole thousands, e.g. 33500 -> "$34K".
// It backs the selected-total header of the credit-card screen.
func Thousands(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).Div(thousand).Round(0).String() + "K"
}
