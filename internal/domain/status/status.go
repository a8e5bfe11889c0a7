// Package status defines the canonical item status shared by expenses,
// reports and receipts, and the tab category each status is grouped under.
package status

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an expense, report or receipt.
// Exactly one value holds at any time.
type Status string

const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Rejected Status = "rejected"
)

// Category is the coarse workflow grouping used for tab segmentation.
type Category string

const (
	CategoryDraft     Category = "draft"
	CategoryComplete  Category = "complete"
	CategoryCancelled Category = "cancelled"
)

var validStatuses = map[Status]bool{
	Pending:  true,
	Approved: true,
	Rejected: true,
}

var validCategories = map[Category]bool{
	CategoryDraft:     true,
	CategoryComplete:  true,
	CategoryCancelled: true,
}

// All returns every legal status in display order.
func All() []Status {
	return []Status{Pending, Approved, Rejected}
}

// Categories returns every tab category in display order.
func Categories() []Category {
	return []Category{CategoryDraft, CategoryComplete, CategoryCancelled}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the canonical values
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal returns true once a decision has been recorded
func (s Status) IsTerminal() bool {
	return s == Approved || s == Rejected
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// IsValid returns true if the category is a known tab
func (c Category) IsValid() bool {
	return validCategories[c]
}

// Classify maps a status to its tab category. It is total: values outside
// the canonical set fall back to CategoryDraft. No status maps to
// CategoryCancelled.
func Classify(s Status) Category {
	switch s {
	case Pending:
		return CategoryDraft
	case Approved, Rejected:
		return CategoryComplete
	default:
		return CategoryDraft
	}
}

// Parse normalises any of the front-end vocabularies into a canonical status.
// "submitted" is the dashboard's name for pending; "draft" is treated the
// same way since a draft report is awaiting a decision.
func Parse(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "submitted", "draft", "not submitted":
		return Pending, nil
	case "approved":
		return Approved, nil
	case "rejected":
		return Rejected, nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

// ParseCategory validates a tab name.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown status category %q", raw)
	}
	return c, nil
}
