package authRoutes

import (
	controllers "academy/controllers/authControllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the token endpoint
func SetupAuthRoutes(app *fiber.App) {
	app.Post("/generate-jwt", controllers.GenerateToken())
}
