package offer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"offersense/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrAllFailed is returned when the generator failed for every card in the
// batch. Partial failures are reported per card, not as a batch error.
var ErrAllFailed = errors.New("offer generator failed for every card")

// Offer is one display-ready promotional entry.
type Offer struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	ValidTill   string `json:"validTill,omitempty"`
}

// CardContext is what gets forwarded to the generator per card. No full
// number ever reaches an offer source.
type CardContext struct {
	CardID         string
	Network        string
	BankName       string
	LastFourDigits string
}

// Source produces candidate offers for one card. Implementations wrap an
// external generator (AI completion, partner site scraping, or a static
// set) and make no freshness or dedup guarantees.
type Source interface {
	Name() string
	FetchOffers(ctx context.Context, card CardContext) ([]Offer, error)
}

// CardOffers groups the generator result for one card. Error is set when
// that card's fetch failed without affecting its siblings.
type CardOffers struct {
	CardID string  `json:"cardId"`
	Offers []Offer `json:"offers,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Facade fans a card set out to the configured source and reshapes the
// results for display.
type Facade struct {
	source Source
	db     *gorm.DB
}

func NewFacade(source Source, db *gorm.DB) *Facade {
	return &Facade{source: source, db: db}
}

// OffersForCards fetches offers for each card in parallel. A failing card
// gets an error entry; the call itself fails only when zero cards succeed.
// Cancelling ctx stops outstanding generator calls.
func (f *Facade) OffersForCards(ctx context.Context, ownerID string, cards []CardContext) ([]CardOffers, error) {
	results := make([]CardOffers, len(cards))

	var wg sync.WaitGroup
	for i, card := range cards {
		wg.Add(1)
		go func(i int, card CardContext) {
			defer wg.Done()

			offers, err := f.source.FetchOffers(ctx, card)
			if err != nil {
				log.Printf("Offer fetch failed for card %s: %v", card.CardID, err)
				results[i] = CardOffers{CardID: card.CardID, Error: "Failed to fetch offers"}
				return
			}

			results[i] = CardOffers{CardID: card.CardID, Offers: offers}
			f.logPayload(ownerID, card.CardID, offers)
		}(i, card)
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Error == "" {
			succeeded++
		}
	}
	if len(cards) > 0 && succeeded == 0 {
		return results, ErrAllFailed
	}

	return results, nil
}

// logPayload records the raw generator result for later inspection.
// Best effort: a failed write never fails the fetch.
func (f *Facade) logPayload(ownerID, cardID string, offers []Offer) {
	payload, err := json.Marshal(offers)
	if err != nil {
		return
	}

	entry := models.OfferLog{
		OwnerID: ownerID,
		CardID:  cardID,
		Source:  f.source.Name(),
		Payload: datatypes.JSON(payload),
	}
	if err := f.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log offer payload for card %s: %v", cardID, err)
	}
}
