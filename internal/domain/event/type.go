package event

// Type identifies the type of domain event
type Type string

const (
	TypeReportCreated  Type = "report.created"
	TypeReportApproved Type = "report.approved"
	TypeReportRejected Type = "report.rejected"
	TypeExpenseCreated Type = "expense.created"
	TypeExpenseUpdated Type = "expense.updated"
	TypeReceiptAdded   Type = "receipt.added"
)

// All returns every event type the services emit
func All() []Type {
	return []Type{
		TypeReportCreated,
		TypeReportApproved,
		TypeReportRejected,
		TypeExpenseCreated,
		TypeExpenseUpdated,
		TypeReceiptAdded,
	}
}

func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeReportCreated,
		TypeReportApproved,
		TypeReportRejected,
		TypeExpenseCreated,
		TypeExpenseUpdated,
		TypeReceiptAdded:
		return true
	default:
		return false
	}
}
