package derive

import (
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// ComputeTotal sums amounts at full precision. Rounding is a display concern.
func ComputeTotal[T Amounted](items []T) float64 {
	total := 0.0
	for _, item := range items {
		total += item.GetAmount()
	}
	return total
}

// ComputePendingTotal sums amounts of items still awaiting a decision
func ComputePendingTotal[T interface {
	Amounted
	Statused
}](items []T) float64 {
	total := 0.0
	for _, item := range items {
		if item.GetStatus() == status.Pending {
			total += item.GetAmount()
		}
	}
	return total
}

// CountByStatus counts items with exactly the given status
func CountByStatus[T Statused](items []T, s status.Status) int {
	n := 0
	for _, item := range items {
		if item.GetStatus() == s {
			n++
		}
	}
	return n
}

// StatusCounts tallies items per canonical status. Every canonical status is present.
func StatusCounts[T Statused](items []T) map[status.Status]int {
	counts := make(map[status.Status]int, len(status.All()))
	for _, s := range status.All() {
		counts[s] = 0
	}
	for _, item := range items {
		counts[item.GetStatus()]++
	}
	return counts
}

// SelectedTotal sums the amounts of the items whose IDs are selected.
// IDs that do not resolve contribute nothing.
func SelectedTotal[T Amounted](items []T, idOf func(T) string, selected []string) float64 {
	if len(selected) == 0 {
		return 0
	}
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[idOf(item)] = item
	}
	total := 0.0
	for _, id := range selected {
		if item, ok := byID[id]; ok {
			total += item.GetAmount()
		}
	}
	return total
}
