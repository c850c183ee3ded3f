package routes

import (
	"coffee-chronicles/internal/api/handlers"
	"coffee-chronicles/internal/middleware"
	"coffee-chronicles/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	AuthHandler       handlers.AuthHandler
	CoffeeDateHandler handlers.CoffeeDateHandler
	PhotoHandler      handlers.PhotoHandler
	LocationHandler   handlers.LocationHandler
	Middleware        middleware.Middleware
	AuthService       auth.AuthService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.CoffeeDates()
	c.Photos()
	c.Locations()
	c.GuestRoute()
}

func (c *Config) Auth() {
	authGroup := c.App.Group("/api/v1/auth")
	{
		authGroup.Post("/login", c.AuthHandler.Login)
		authGroup.Post("/logout", c.AuthHandler.Logout)
		authGroup.Get("/verify", c.AuthHandler.Verify)
	}
}

// CoffeeDates: reads are public, writes require the shared-password session.
func (c *Config) CoffeeDates() {
	protect := c.Middleware.AuthMiddleware(c.AuthService)
	coffeeDates := c.App.Group("/api/v1/coffee-dates")

	coffeeDates.Get("", c.CoffeeDateHandler.GetCoffeeDates)
	coffeeDates.Get("/:id", c.CoffeeDateHandler.GetCoffeeDateDetails)
	coffeeDates.Post("", protect, c.CoffeeDateHandler.CreateCoffeeDate)
	coffeeDates.Patch("/:id", protect, c.CoffeeDateHandler.UpdateCoffeeDate)
	coffeeDates.Delete("/:id", protect, c.CoffeeDateHandler.DeleteCoffeeDate)
	coffeeDates.Post("/:id/photos", protect, c.CoffeeDateHandler.AddPhotos)
}

func (c *Config) Photos() {
	protect := c.Middleware.AuthMiddleware(c.AuthService)
	photos := c.App.Group("/api/v1/photos")

	photos.Get("", c.PhotoHandler.GetPhotos)
	photos.Post("", protect, c.PhotoHandler.UploadPhotos)
	photos.Delete("/:id", protect, c.PhotoHandler.DeletePhoto)
	photos.Patch("/associate", protect, c.PhotoHandler.AssociatePhotos)
}

func (c *Config) Locations() {
	protect := c.Middleware.AuthMiddleware(c.AuthService)
	locations := c.App.Group("/api/v1/locations", protect)

	locations.Get("/search", c.LocationHandler.SearchPlaces)
	locations.Get("/details/:placeId", c.LocationHandler.GetPlaceDetails)
	locations.Get("/geocode", c.LocationHandler.GeocodeAddress)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
