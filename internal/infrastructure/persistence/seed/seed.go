// Package seed holds the demo data every store starts from.
package seed

import (
	"time"

	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// Data is a complete store snapshot. Receipts are ordered newest first.
type Data struct {
	Expenses  []*entity.Expense
	Reports   []*entity.Report
	Receipts  []*entity.Receipt
	Cards     []*entity.CardTransaction
	Comments  []*entity.Comment
	Decisions []*entity.DecisionRecord
}

// Clone returns a deep copy so stores never share seed records
func (d Data) Clone() Data {
	out := Data{
		Expenses:  make([]*entity.Expense, 0, len(d.Expenses)),
		Reports:   make([]*entity.Report, 0, len(d.Reports)),
		Receipts:  make([]*entity.Receipt, 0, len(d.Receipts)),
		Cards:     make([]*entity.CardTransaction, 0, len(d.Cards)),
		Comments:  make([]*entity.Comment, 0, len(d.Comments)),
		Decisions: make([]*entity.DecisionRecord, 0, len(d.Decisions)),
	}
	for _, e := range d.Expenses {
		out.Expenses = append(out.Expenses, e.Clone())
	}
	for _, r := range d.Reports {
		out.Reports = append(out.Reports, r.Clone())
	}
	for _, r := range d.Receipts {
		out.Receipts = append(out.Receipts, r.Clone())
	}
	for _, c := range d.Cards {
		out.Cards = append(out.Cards, c.Clone())
	}
	for _, c := range d.Comments {
		cp := *c
		out.Comments = append(out.Comments, &cp)
	}
	for _, r := range d.Decisions {
		cp := *r
		out.Decisions = append(out.Decisions, &cp)
	}
	return out
}

// DemoUser is the account the demo data is written for
const (
	DemoEmail    = "demo@company.com"
	DemoPassword = "demo123"
	DemoUser     = "John Smith"
)

// Default returns the demo data set. Report totals equal the sum of their
// linked expenses.
func Default() Data {
	created := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

	expense := func(id string, amount float64, category, description, date string, s status.Status, reportID string) *entity.Expense {
		return &entity.Expense{
			ID:          id,
			Amount:      amount,
			Category:    category,
			Description: description,
			Date:        date,
			Status:      s,
			ReportID:    reportID,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
	}

	expenses := []*entity.Expense{
		expense("1", 125.50, entity.CategoryTravel, "Taxi to airport", "2024-01-15", status.Approved, ""),
		expense("2", 45.00, entity.CategoryMeals, "Business lunch with client", "2024-01-14", status.Pending, ""),
		expense("3", 89.99, entity.CategoryOfficeSupplies, "Printer cartridges", "2024-01-12", status.Rejected, ""),

		expense("101", 850.00, entity.CategoryTravel, "Flight to New York", "2024-01-08", status.Pending, "1"),
		expense("102", 165.00, entity.CategoryAccommodation, "Hotel Stay", "2024-01-09", status.Pending, "1"),
		expense("103", 45.50, entity.CategoryMeals, "Business Lunch", "2024-01-09", status.Pending, "1"),
		expense("104", 35.00, entity.CategoryTransportation, "Taxi to Airport", "2024-01-10", status.Pending, "1"),
		expense("105", 150.00, entity.CategoryMeals, "Client Dinner", "2024-01-10", status.Pending, "1"),

		expense("201", 450.00, entity.CategoryOfficeSupplies, "Monitor", "2024-01-13", status.Pending, "2"),
		expense("202", 140.00, entity.CategoryOfficeSupplies, "Keyboard and mouse", "2024-01-13", status.Pending, "2"),
		expense("203", 300.00, entity.CategoryOfficeSupplies, "Desk chair", "2024-01-13", status.Pending, "2"),

		expense("301", 156.75, entity.CategoryMeals, "Team lunch", "2024-01-11", status.Approved, "3"),

		expense("401", 600.00, entity.CategorySoftware, "Design suite license", "2024-01-09", status.Rejected, "4"),
		expense("402", 600.00, entity.CategorySoftware, "IDE license", "2024-01-09", status.Rejected, "4"),
		expense("403", 600.00, entity.CategorySoftware, "Project tracker license", "2024-01-09", status.Rejected, "4"),
		expense("404", 600.00, entity.CategorySoftware, "Analytics license", "2024-01-09", status.Rejected, "4"),
	}

	report := func(id, title, by string, total float64, date, category, description string, s status.Status, ids ...string) *entity.Report {
		return &entity.Report{
			ID:              id,
			Title:           title,
			SubmittedBy:     by,
			TotalAmount:     total,
			SubmissionDate:  date,
			Category:        category,
			Description:     description,
			BusinessPurpose: description,
			Source:          entity.SourceExpenses,
			Status:          s,
			ExpenseCount:    len(ids),
			ExpenseIDs:      ids,
			CreatedAt:       created,
			UpdatedAt:       created,
		}
	}

	decided := time.Date(2024, time.January, 16, 11, 0, 0, 0, time.UTC)
	approved := report("3", "Team Lunch Meeting", "Mike Wilson", 156.75, "2024-01-12", entity.CategoryMeals,
		"Monthly team building lunch", status.Approved, "301")
	approved.DecidedBy = "Mike Davis"
	approved.DecisionComment = "Approved for processing. Expected reimbursement within 5 business days."
	approved.DecidedAt = &decided

	rejected := report("4", "Software Licenses", "Emily Davis", 2400.00, "2024-01-10", entity.CategorySoftware,
		"Annual software license renewals", status.Rejected, "401", "402", "403", "404")
	rejected.DecidedBy = "Mike Davis"
	rejected.DecisionComment = "Licenses must be purchased through IT procurement."
	rejected.DecidedAt = &decided

	reports := []*entity.Report{
		report("1", "Business Trip - New York", DemoUser, 1245.50, "2024-01-15", entity.CategoryTravel,
			"Client meetings and conference attendance", status.Pending, "101", "102", "103", "104", "105"),
		report("2", "Office Equipment Purchase", "Sarah Johnson", 890.00, "2024-01-14", entity.CategoryOfficeSupplies,
			"New workstation setup for the design team", status.Pending, "201", "202", "203"),
		approved,
		rejected,
	}

	receipt := func(id, description string, amount float64, date string, s status.Status, mime, expenseID string) *entity.Receipt {
		return &entity.Receipt{
			ID:          id,
			Description: description,
			Amount:      amount,
			Date:        date,
			Status:      s,
			MimeType:    mime,
			ExpenseID:   expenseID,
			CreatedAt:   created,
		}
	}

	receipts := []*entity.Receipt{
		receipt("1", "Lunch with client", 45.00, "2024-01-15", status.Pending, "image/jpeg", ""),
		receipt("2", "Office supplies", 89.99, "2024-01-14", status.Approved, "image/jpeg", ""),
		receipt("3", "Taxi fare", 25.50, "2024-01-12", status.Rejected, "image/png", ""),
		receipt("11", "Restaurant Receipt", 45.50, "2024-01-09", status.Pending, "image/jpeg", "103"),
		receipt("12", "Taxi Receipt", 35.00, "2024-01-10", status.Pending, "image/png", "104"),
		receipt("13", "Hotel Invoice", 165.00, "2024-01-09", status.Pending, "application/pdf", "102"),
		receipt("14", "Hotel Parking Receipt", 15.00, "2024-01-09", status.Pending, "image/jpeg", "102"),
	}

	cards := []*entity.CardTransaction{
		{ID: "1", CardNumber: "****-****-****-1234", CardType: "Visa", Amount: 12500, Date: "2024-01-15"},
		{ID: "2", CardNumber: "****-****-****-5678", CardType: "Mastercard", Amount: 8500, Date: "2024-01-14"},
		{ID: "3", CardNumber: "****-****-****-9012", CardType: "American Express", Amount: 21000, Date: "2024-01-12"},
		{ID: "4", CardNumber: "****-****-****-3456", CardType: "Discover", Amount: 0, Date: "2024-01-10"},
	}

	comments := []*entity.Comment{
		{ID: "1", ReportID: "1", Author: "John Smith", Content: "Please provide additional documentation for the hotel expenses.",
			Kind: entity.CommentKindRequest, Timestamp: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)},
		{ID: "2", ReportID: "1", Author: "Sarah Johnson", Content: "All receipts have been uploaded and verified.",
			Kind: entity.CommentKindUpdate, Timestamp: time.Date(2024, time.January, 15, 14, 15, 0, 0, time.UTC)},
		{ID: "3", ReportID: "3", Author: "Mike Davis", Content: approved.DecisionComment,
			Kind: entity.CommentKindApproval, Timestamp: decided},
	}

	decisions := []*entity.DecisionRecord{
		{ID: "1", ReportID: "3", PreviousStatus: status.Pending, NewStatus: status.Approved, ActionType: entity.ActionApprove,
			Reviewer: "Mike Davis", Comment: approved.DecisionComment, Timestamp: decided},
		{ID: "2", ReportID: "4", PreviousStatus: status.Pending, NewStatus: status.Rejected, ActionType: entity.ActionReject,
			Reviewer: "Mike Davis", Comment: rejected.DecisionComment, Timestamp: decided},
	}

	return Data{
		Expenses:  expenses,
		Reports:   reports,
		Receipts:  receipts,
		Cards:     cards,
		Comments:  comments,
		Decisions: decisions,
	}
}
