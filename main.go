package main

import (
	"log"
	"time"

	"offersense/config"
	cardController "offersense/controllers/card"
	offerController "offersense/controllers/offer"
	otpController "offersense/controllers/otp"
	"offersense/database"
	cardRoutes "offersense/routers/cardRoutes"
	offerRoutes "offersense/routers/offerRoutes"
	otpRoutes "offersense/routers/otpRoutes"
	"offersense/services/card"
	"offersense/services/offer"
	"offersense/services/verify"
	"offersense/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	// Vendor clients are built once here and injected so tests can swap
	// in fakes.
	vendor := verify.NewClient(
		config.AppConfig.VerifyApiURL,
		config.AppConfig.VerifyApiKey,
		config.AppConfig.VerifyServiceSID,
	)
	limiter := verify.NewRateLimiter(time.Duration(config.AppConfig.OTPResendSeconds) * time.Second)

	cardService := card.NewService(db)
	offerFacade := offer.NewFacade(newOfferSource(), db)

	utils.StartRetentionScheduler(db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	otpRoutes.SetupOTPRoutes(app, otpController.New(vendor, limiter, db))
	cardRoutes.SetupCardRoutes(app, cardController.New(cardService))
	offerRoutes.SetupOfferRoutes(app, offerController.New(cardService, offerFacade))

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

// newOfferSource picks the offer generator by config.
func newOfferSource() offer.Source {
	switch config.AppConfig.OfferSource {
	case "ai":
		return offer.NewAISource(
			config.AppConfig.OfferApiURL,
			config.AppConfig.OfferApiKey,
			config.AppConfig.OfferModel,
		)
	case "scraper":
		return offer.NewScraperSource()
	default:
		return offer.NewStaticSource()
	}
}
