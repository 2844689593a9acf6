package cardRoutes

import (
	cardController "offersense/controllers/card"
	"offersense/middleware"
	cardValidator "offersense/validators/card"

	"github.com/gofiber/fiber/v2"
)

func SetupCardRoutes(app *fiber.App, ctrl *cardController.Controller) {
	cardGroup := app.Group("/cards")

	cardGroup.Post("/", middleware.AuthRequired, cardValidator.AddCard(), ctrl.AddCard)
	cardGroup.Get("/", middleware.AuthRequired, ctrl.ListCards)
	cardGroup.Delete("/:id", middleware.AuthRequired, ctrl.DeleteCard)
}
