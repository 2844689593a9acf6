package offer

import (
	"context"
	"fmt"
	"time"
)

// StaticSource returns a fixed offer set. Used in development and as the
// fallback when no generator vendor is configured.
type StaticSource struct{}

func NewStaticSource() *StaticSource { return &StaticSource{} }

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) FetchOffers(_ context.Context, card CardContext) ([]Offer, error) {
	validTill := time.Now().AddDate(0, 0, 30).Format("2006-01-02")

	return []Offer{
		{
			Title:       "10% Cashback on Amazon",
			Description: fmt.Sprintf("Get 10%% cashback on Amazon purchases with your %s %s card", card.BankName, card.Network),
			Category:    "SHOPPING",
			ValidTill:   validTill,
		},
		{
			Title:       "5% Cashback on Groceries",
			Description: fmt.Sprintf("Get 5%% cashback on grocery purchases with your %s card", card.BankName),
			Category:    "SHOPPING",
			ValidTill:   validTill,
		},
		{
			Title:       "Buy 1 Get 1 Movie Tickets",
			Description: fmt.Sprintf("Weekend BOGO on movie tickets for %s cardholders", card.Network),
			Category:    "ENTERTAINMENT",
			ValidTill:   validTill,
		},
	}, nil
}
