package entity

// CardTransaction represents a corporate credit-card charge awaiting a report
type CardTransaction struct {
	ID         string  `json:"id"`
	CardNumber string  `json:"card_number"`
	CardType   string  `json:"card_type"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
}

func (c *CardTransaction) GetAmount() float64 { return c.Amount }
func (c *CardTransaction) GetDate() string { return c.Date }

// GetCategory exposes the card network so card-type chips reuse the category filter
func (c *CardTransaction) GetCategory() string { return c.CardType }

// LastFour returns the visible suffix of the masked card number
func (c *CardTransaction) LastFour() string {
	if len(c.CardNumber) < 4 {
		return c.CardNumber
	}
	return c.CardNumber[len(c.CardNumber)-4:]
}

// Clone returns a detached copy so callers cannot mutate store state
func (c *CardTransaction) Clone() *CardTransaction {
	cp := *c
	return &cp
}
