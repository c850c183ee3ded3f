package config

import (
	"os"
	"time"

	"coffee-chronicles/internal/api/handlers"
	"coffee-chronicles/internal/api/routes"
	"coffee-chronicles/internal/middleware"
	"coffee-chronicles/internal/utils"
	"coffee-chronicles/internal/utils/storage"
	"coffee-chronicles/pkg/auth"
	"coffee-chronicles/pkg/coffeedate"
	"coffee-chronicles/pkg/dynamo"
	"coffee-chronicles/pkg/jwt"
	"coffee-chronicles/pkg/location"
	"coffee-chronicles/pkg/photo"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func NewApp(ddb *dynamodb.Client, s3Client *awss3.Client) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         64 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	store := dynamo.NewStore(ddb)
	s3 := storage.NewAwsS3(s3Client, utils.GetConfig("AWS_S3_BUCKET"))
	thumbnailer := photo.NewThumbnailer()

	// Service
	jwtService := jwt.NewJWTService()
	authService := auth.NewAuthService(utils.GetConfig("AUTH_PASSWORD_HASH"), jwtService)
	photoService := photo.NewPhotoService(store, s3, thumbnailer, utils.GetConfig("PHOTOS_TABLE"))
	coffeeDateService := coffeedate.NewCoffeeDateService(
		store,
		photoService,
		utils.GetConfig("COFFEE_DATES_TABLE"),
	)
	locationService := location.NewLocationService(utils.GetConfig("GOOGLE_MAPS_API_KEY"))

	// Handler
	authHandler := handlers.NewAuthHandler(authService, validator)
	coffeeDateHandler := handlers.NewCoffeeDateHandler(coffeeDateService, validator)
	photoHandler := handlers.NewPhotoHandler(photoService, validator)
	locationHandler := handlers.NewLocationHandler(locationService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		AuthHandler:       authHandler,
		CoffeeDateHandler: coffeeDateHandler,
		PhotoHandler:      photoHandler,
		LocationHandler:   locationHandler,
		Middleware:        middlewares,
		AuthService:       authService,
	}
	routesConfig.Setup()
	return app, nil
}
