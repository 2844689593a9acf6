package otpValidator

import (
	"regexp"
	"strings"

	"offersense/middleware"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate phone number format (digits with optional leading +)
func isValidPhone(phone string) bool {
	re := regexp.MustCompile(`^\+?\d{8,15}$`)
	return re.MatchString(phone)
}

// SendOTP validator middleware
func SendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PhoneNumber string `json:"phoneNumber"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.PhoneNumber) == "" {
			errors["phoneNumber"] = "Phone number is required!"
		} else if !isValidPhone(reqData.PhoneNumber) {
			errors["phoneNumber"] = "Invalid phone number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPhone", reqData.PhoneNumber)
		return c.Next()
	}
}

// VerifyOTP validator middleware
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PhoneNumber string `json:"phoneNumber"`
			Code        string `json:"code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.PhoneNumber) == "" {
			errors["phoneNumber"] = "Phone number is required!"
		} else if !isValidPhone(reqData.PhoneNumber) {
			errors["phoneNumber"] = "Invalid phone number!"
		}

		if len(strings.TrimSpace(reqData.Code)) < 4 {
			errors["code"] = "OTP code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPhone", reqData.PhoneNumber)
		c.Locals("validatedCode", reqData.Code)
		return c.Next()
	}
}
