package userRoutes

import (
	controllers "academy/controllers/userControllers"
	"academy/database"
	"academy/middleware"
	validators "academy/validators/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupUserRoutes registers user routes. Every state-mutating route declares
// its full guard chain here; role promotion in particular is admin-only.
func SetupUserRoutes(app *fiber.App, db *gorm.DB, dir *database.RoleDirectory) {
	userGroup := app.Group("/users")

	userGroup.Post("", validators.CreateUser(), controllers.CreateUser(db))
	userGroup.Get("", middleware.Protected, middleware.RequireAdmin(dir), controllers.ListUsers(db))
	userGroup.Get("/role/:email", middleware.Protected, middleware.RequireSelf("email"), controllers.GetUserRole(dir))

	// Role promotion
	userGroup.Patch("/admin/:id", middleware.Protected, middleware.RequireAdmin(dir), controllers.MakeAdmin(dir))
	userGroup.Patch("/instructors/:id", middleware.Protected, middleware.RequireAdmin(dir), controllers.MakeInstructor(dir))
}
