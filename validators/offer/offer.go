package offerValidator

import (
	"strings"

	"offersense/middleware"

	"github.com/gofiber/fiber/v2"
)

// BatchOffersRequest lists the cards to fetch offers for, by id. The
// server resolves ids against the caller's own cards; forged or foreign
// ids are dropped there.
type BatchOffersRequest struct {
	Cards []struct {
		ID string `json:"id"`
	} `json:"cards"`
}

// BatchOffers validator middleware
func BatchOffers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BatchOffersRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Cards) == 0 {
			errors["cards"] = "Cards array is required!"
		}
		for _, card := range reqData.Cards {
			if strings.TrimSpace(card.ID) == "" {
				errors["cards"] = "Every card needs an id!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		ids := make([]string, 0, len(reqData.Cards))
		for _, card := range reqData.Cards {
			ids = append(ids, card.ID)
		}

		c.Locals("validatedCardIDs", ids)
		return c.Next()
	}
}
