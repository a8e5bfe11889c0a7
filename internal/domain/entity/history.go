package entity

import (
	"time"

	"github.com/garyjia/expense-companion/internal/domain/status"
)

// DecisionRecord is the audit trail entry written for every report status change
type DecisionRecord struct {
	ID             string        `json:"id"`
	ReportID       string        `json:"report_id"`
	PreviousStatus status.Status `json:"previous_status"`
	NewStatus      status.Status `json:"new_status"`
	ActionType     string        `json:"action_type"`
	Reviewer       string        `json:"reviewer"`
	Comment        string        `json:"comment"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Comment is a message in a report's discussion thread
type Comment struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"report_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}
