// Package derive holds the pure filters and aggregates the screens compute
// over store snapshots. Every function returns a fresh slice and leaves its
// input untouched; relative order is always preserved.
package derive

import (
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// Amounted is anything carrying a monetary amount
type Amounted interface {
	GetAmount() float64
}

// Statused is anything carrying a canonical status
type Statused interface {
	GetStatus() status.Status
}

// Categorized is anything that can be grouped by a category label
type Categorized interface {
	GetCategory() string
}

// Dated is anything carrying a YYYY-MM-DD date
type Dated interface {
	GetDate() string
}

// Item is the full surface required by Criteria
type Item interface {
	Amounted
	Statused
	Categorized
	Dated
}

// CategorySet is a set of selected category labels. The empty set selects everything.
type CategorySet map[string]struct{}

// NewCategorySet builds a set from labels, ignoring blanks
func NewCategorySet(labels ...string) CategorySet {
	set := make(CategorySet, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		set[l] = struct{}{}
	}
	return set
}

// Contains reports whether label is selected. An empty set contains every label.
func (s CategorySet) Contains(label string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[label]
	return ok
}

// Filter returns the subsequence of items for which keep returns true
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByStatusCategory keeps items whose status classifies into category
func FilterByStatusCategory[T Statused](items []T, category status.Category) []T {
	return Filter(items, func(item T) bool {
		return status.Classify(item.GetStatus()) == category
	})
}

// FilterByStatus keeps items with exactly the given status
func FilterByStatus[T Statused](items []T, s status.Status) []T {
	return Filter(items, func(item T) bool {
		return item.GetStatus() == s
	})
}

// FilterByCategory keeps items whose category is selected; an empty selection is the identity
func FilterByCategory[T Categorized](items []T, selected CategorySet) []T {
	if len(selected) == 0 {
		return append(make([]T, 0, len(items)), items...)
	}
	return Filter(items, func(item T) bool {
		return selected.Contains(item.GetCategory())
	})
}

// FilterByDateRange keeps items dated within [start, end]. An empty bound is open.
func FilterByDateRange[T Dated](items []T, start, end string) []T {
	return Filter(items, func(item T) bool {
		return inDateRange(item.GetDate(), start, end)
	})
}

// FilterByAmountRange keeps items whose amount lies within [min, max]. A nil bound is open.
func FilterByAmountRange[T Amounted](items []T, min, max *float64) []T {
	return Filter(items, func(item T) bool {
		return inAmountRange(item.GetAmount(), min, max)
	})
}

// Criteria combines every screen filter. Zero-valued fields do not filter.
type Criteria struct {
	StatusCategory status.Category
	Status         status.Status
	Categories     CategorySet
	StartDate      string
	EndDate        string
	MinAmount      *float64
	MaxAmount      *float64
}

// IsEmpty reports whether the criteria select everything
func (c Criteria) IsEmpty() bool {
	return c.StatusCategory == "" && c.Status == "" && len(c.Categories) == 0 &&
		c.StartDate == "" && c.EndDate == "" && c.MinAmount == nil && c.MaxAmount == nil
}

// Matches applies all configured predicates conjunctively
func (c Criteria) Matches(item Item) bool {
	if c.StatusCategory != "" && status.Classify(item.GetStatus()) != c.StatusCategory {
		return false
	}
	if c.Status != "" && item.GetStatus() != c.Status {
		return false
	}
	if !c.Categories.Contains(item.GetCategory()) {
		return false
	}
	if !inDateRange(item.GetDate(), c.StartDate, c.EndDate) {
		return false
	}
	return inAmountRange(item.GetAmount(), c.MinAmount, c.MaxAmount)
}

// Apply returns the items matching every configured predicate
func Apply[T Item](items []T, c Criteria) []T {
	return Filter(items, func(item T) bool {
		return c.Matches(item)
	})
}

func inDateRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

func inAmountRange(amount float64, min, max *float64) bool {
	if min != nil && amount < *min {
		return false
	}
	if max != nil && amount > *max {
		return false
	}
	return true
}
