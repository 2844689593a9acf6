package otpController

import (
	"log"
	"time"

	"offersense/middleware"
	"offersense/models"
	"offersense/services/verify"
	"offersense/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles OTP send/verify by delegating to the verification
// vendor and minting a session token once the vendor approves.
type Controller struct {
	vendor  *verify.Client
	limiter *verify.RateLimiter
	db      *gorm.DB
}

func New(vendor *verify.Client, limiter *verify.RateLimiter, db *gorm.DB) *Controller {
	return &Controller{vendor: vendor, limiter: limiter, db: db}
}

func (ct *Controller) SendOTP(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Locals("validatedPhone").(string))

	if !ct.limiter.Allow(phone) {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "OTP already sent. Try again shortly.", nil)
	}

	sid, err := ct.vendor.SendCode(c.Context(), phone)
	if err != nil {
		log.Printf("OTP send failed for %s: %v", phone, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to send OTP!", nil)
	}

	record := models.Verification{
		Phone:     phone,
		VendorSID: sid,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := ct.db.Create(&record).Error; err != nil {
		log.Printf("Failed to record verification for %s: %v", phone, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record OTP send!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

func (ct *Controller) VerifyOTP(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Locals("validatedPhone").(string))
	code := c.Locals("validatedCode").(string)

	approved, err := ct.vendor.CheckCode(c.Context(), phone, code)
	if err != nil {
		log.Printf("OTP check failed for %s: %v", phone, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to verify OTP!", nil)
	}
	if !approved {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP!", nil)
	}

	// Mark the pending verification approved. Best effort; the session
	// token is the source of truth from here on.
	result := ct.db.Model(&models.Verification{}).
		Where("phone = ? AND approved = ?", phone, false).
		Update("approved", true)
	if result.Error != nil {
		log.Printf("Failed to mark verification approved for %s: %v", phone, result.Error)
	}

	token, err := middleware.GenerateToken(phone)
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", phone, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully.", fiber.Map{
		"token": token,
	})
}
