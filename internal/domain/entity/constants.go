package entity

// Expense category constants used by the seed data and the add-expense form
const (
	CategoryTravel         = "Travel"
	CategoryMeals          = "Meals"
	CategoryOfficeSupplies = "Office Supplies"
	CategorySoftware       = "Software"
	CategoryTransportation = "Transportation"
	CategoryAccommodation  = "Accommodation"
	CategoryEvents         = "Events"
	CategoryCreditCard     = "Credit Card"
	CategoryOther          = "Other"
)

// Source tags identify which screen a report draft was started from
const (
	SourceExpenses    = "expenses"
	SourceCreditCards = "credit-cards"
)

// Comment kinds shown in the report-detail comment thread
const (
	CommentKindRequest  = "request"
	CommentKindUpdate   = "update"
	CommentKindApproval = "approval"
)

// Decision action types recorded in the decision history
const (
	ActionCreate  = "CREATE"
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

// DateLayout is the fixed-width ISO date format used for every stored date.
// Lexicographic comparison of values in this layout matches chronological order.
const DateLayout = "2006-01-02"
