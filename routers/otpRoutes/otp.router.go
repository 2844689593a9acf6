package otpRoutes

import (
	otpController "offersense/controllers/otp"
	otpValidator "offersense/validators/otp"

	"github.com/gofiber/fiber/v2"
)

func SetupOTPRoutes(app *fiber.App, ctrl *otpController.Controller) {
	otpGroup := app.Group("/otp")

	otpGroup.Post("/send", otpValidator.SendOTP(), ctrl.SendOTP)
	otpGroup.Post("/verify", otpValidator.VerifyOTP(), ctrl.VerifyOTP)
}
