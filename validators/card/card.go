package cardValidator

import (
	"offersense/middleware"
	"offersense/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AddCardRequest is the inbound shape for card registration. CardNumber
// and CVV are write-only: the controller reduces the number to derived
// fields and the CVV is discarded entirely.
type AddCardRequest struct {
	CardNumber string `json:"cardNumber" validate:"required,min=12,max=23"`
	Network    string `json:"network" validate:"omitempty,oneof=VISA MASTERCARD RUPAY AMEX"`
	BankName   string `json:"bankName" validate:"required,max=100"`
	HolderName string `json:"holderName" validate:"required,max=100"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"omitempty,len=3|len=4"`
}

// AddCard validator middleware
func AddCard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddCardRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "CardNumber":
					errors["cardNumber"] = "Valid card number is required!"
				case "Network":
					errors["network"] = "Network must be one of VISA, MASTERCARD, RUPAY, AMEX!"
				case "BankName":
					errors["bankName"] = "Bank name is required!"
				case "HolderName":
					errors["holderName"] = "Holder name is required!"
				case "ExpiryDate":
					errors["expiryDate"] = "Expiry date is required!"
				case "CVV":
					errors["cvv"] = "Invalid CVV!"
				}
			}
		}

		if reqData.ExpiryDate != "" && !utils.ValidExpiry(reqData.ExpiryDate) {
			errors["expiryDate"] = "Expiry date must be in MM/YY form!"
		}

		if _, ok := utils.LastFour(reqData.CardNumber); reqData.CardNumber != "" && !ok {
			errors["cardNumber"] = "Valid card number is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCard", reqData)
		return c.Next()
	}
}
