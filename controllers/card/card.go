package cardController

import (
	"errors"
	"log"

	"offersense/middleware"
	"offersense/services/card"
	cardValidator "offersense/validators/card"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes the card lifecycle over HTTP. All handlers run
// behind AuthRequired, so ownerId is always a verified phone number.
type Controller struct {
	cards *card.Service
}

func New(cards *card.Service) *Controller {
	return &Controller{cards: cards}
}

func (ct *Controller) AddCard(c *fiber.Ctx) error {
	ownerID := c.Locals("ownerId").(string)
	reqData := c.Locals("validatedCard").(*cardValidator.AddCardRequest)

	result, err := ct.cards.AddCard(ownerID, card.Submission{
		CardNumber: reqData.CardNumber,
		Network:    reqData.Network,
		BankName:   reqData.BankName,
		HolderName: reqData.HolderName,
		ExpiryDate: reqData.ExpiryDate,
	})
	switch {
	case errors.Is(err, card.ErrInvalidInput):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid card details!", nil)
	case errors.Is(err, card.ErrDuplicateCard):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Card already registered!", nil)
	case err != nil:
		log.Printf("Error adding card: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add card!", nil)
	}

	message := "Card added successfully."
	if result.Reactivated {
		message = "Card re-added successfully."
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, message, fiber.Map{
		"card":        result.Card,
		"reactivated": result.Reactivated,
	})
}

func (ct *Controller) ListCards(c *fiber.Ctx) error {
	ownerID := c.Locals("ownerId").(string)

	cards, err := ct.cards.ListCards(ownerID)
	if err != nil {
		log.Printf("Error listing cards: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cards!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cards fetched successfully.", cards)
}

func (ct *Controller) DeleteCard(c *fiber.Ctx) error {
	ownerID := c.Locals("ownerId").(string)
	cardID := c.Params("id")

	err := ct.cards.DeleteCard(ownerID, cardID)
	switch {
	case errors.Is(err, card.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Card not found or unauthorized!", nil)
	case err != nil:
		log.Printf("Error deleting card: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete card!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Card deleted successfully.", nil)
}
