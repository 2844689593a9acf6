package offerController

import (
	"errors"
	"log"

	"offersense/middleware"
	"offersense/services/card"
	"offersense/services/offer"

	"github.com/gofiber/fiber/v2"
)

// Controller fronts the offer façade. Card ids from the request are
// resolved against the caller's own active cards before anything is
// forwarded to the generator.
type Controller struct {
	cards  *card.Service
	offers *offer.Facade
}

func New(cards *card.Service, offers *offer.Facade) *Controller {
	return &Controller{cards: cards, offers: offers}
}

func (ct *Controller) BatchOffers(c *fiber.Ctx) error {
	ownerID := c.Locals("ownerId").(string)
	ids := c.Locals("validatedCardIDs").([]string)

	cards, err := ct.cards.CardsByIDs(ownerID, ids)
	if err != nil {
		log.Printf("Error resolving cards for offers: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cards!", nil)
	}
	if len(cards) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No cards found!", nil)
	}

	contexts := make([]offer.CardContext, 0, len(cards))
	for _, cd := range cards {
		contexts = append(contexts, offer.CardContext{
			CardID:         cd.ID,
			Network:        cd.Network,
			BankName:       cd.BankName,
			LastFourDigits: cd.LastFourDigits,
		})
	}

	results, err := ct.offers.OffersForCards(c.Context(), ownerID, contexts)
	if errors.Is(err, offer.ErrAllFailed) {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch offers!", nil)
	}
	if err != nil {
		log.Printf("Error fetching offers: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch offers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offers fetched successfully.", fiber.Map{
		"offers": results,
	})
}
