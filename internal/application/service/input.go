package service

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garyjia/expense-companion/internal/domain/entity"
)

// maxAmount bounds user-entered amounts so they stay exact in a float64
var maxAmount = decimal.New(1, 12)

// parseAmount reads a non-negative money amount typed by the user.
// A leading currency sign and thousands separators are accepted.
func parseAmount(raw, field, message string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, invalid(field, message)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() || d.GreaterThan(maxAmount) {
		return 0, invalid(field, message)
	}
	value := d.InexactFloat64()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, invalid(field, message)
	}
	return value, nil
}

// normalizeDate validates an ISO date, substituting today when blank
func normalizeDate(raw string, now time.Time) (string, error) {
	date := strings.TrimSpace(raw)
	if date == "" {
		return now.Format(entity.DateLayout), nil
	}
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return "", invalid("date", "Please enter a date as YYYY-MM-DD")
	}
	return date, nil
}
