package cartRoutes

import (
	controllers "academy/controllers/cartControllers"
	"academy/middleware"
	validators "academy/validators/cart"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupCartRoutes registers cart routes, all scoped to the signed-in user
func SetupCartRoutes(app *fiber.App, db *gorm.DB) {
	cartGroup := app.Group("/carts", middleware.Protected)

	cartGroup.Get("", controllers.ListCart(db))
	cartGroup.Post("", validators.AddToCart(), controllers.AddToCart(db))
	cartGroup.Delete("/:id", controllers.RemoveFromCart(db))
}
