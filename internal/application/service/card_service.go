package service

import (
	"context"
	"fmt"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
)

// CardList is the credit-card screen: filtered transactions and their total
type CardList struct {
	Transactions []*entity.CardTransaction `json:"transactions"`
	Total        float64                   `json:"total"`
}

// CardService serves corporate credit-card transactions
type CardService interface {
	// List filters by card network; no types selects every transaction
	List(ctx context.Context, cardTypes ...string) (*CardList, error)
	Get(ctx context.Context, id string) (*entity.CardTransaction, error)
	// Amount resolves a transaction amount for draft selection totals
	Amount(ctx context.Context, id string) (float64, bool)
}

type cardServiceImpl struct {
	cardRepo port.CardRepository
	logger   Logger
}

// NewCardService creates a new CardService
func NewCardService(cardRepo port.CardRepository, logger Logger) CardService {
	return &cardServiceImpl{cardRepo: cardRepo, logger: logger}
}

func (s *cardServiceImpl) List(ctx context.Context, cardTypes ...string) (*CardList, error) {
	cards, err := s.cardRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list card transactions", "error", err)
		return nil, err
	}
	filtered := derive.FilterByCategory(cards, derive.NewCategorySet(cardTypes...))
	return &CardList{
		Transactions: filtered,
		Total:        derive.ComputeTotal(filtered),
	}, nil
}

func (s *cardServiceImpl) Get(ctx context.Context, id string) (*entity.CardTransaction, error) {
	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get card transaction", "error", err, "id", id)
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	return card, nil
}

func (s *cardServiceImpl) Amount(ctx context.Context, id string) (float64, bool) {
	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil || card == nil {
		return 0, false
	}
	return card.Amount, true
}
