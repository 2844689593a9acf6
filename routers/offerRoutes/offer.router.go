package offerRoutes

import (
	offerController "offersense/controllers/offer"
	"offersense/middleware"
	offerValidator "offersense/validators/offer"

	"github.com/gofiber/fiber/v2"
)

func SetupOfferRoutes(app *fiber.App, ctrl *offerController.Controller) {
	offerGroup := app.Group("/offers")

	offerGroup.Post("/", middleware.AuthRequired, offerValidator.BatchOffers(), ctrl.BatchOffers)
}
