package classRoutes

import (
	controllers "academy/controllers/classControllers"
	"academy/database"
	"academy/middleware"
	"academy/models"
	validators "academy/validators/class"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupClassRoutes registers catalog routes. Browsing is public; submission
// is instructor-only; approval transitions are admin-only.
func SetupClassRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, dir *database.RoleDirectory) {
	classGroup := app.Group("/classes")

	classGroup.Get("", controllers.ListClasses(db, rdb))
	classGroup.Post("", middleware.Protected, middleware.RequireRole(dir, models.RoleInstructor), validators.CreateClass(), controllers.CreateClass(db, rdb))
	classGroup.Get("/instructor/:email", middleware.Protected, middleware.RequireSelf("email"), controllers.ListInstructorClasses(db))

	// Approval workflow
	classGroup.Patch("/approved/:id", middleware.Protected, middleware.RequireAdmin(dir), controllers.ApproveClass(db, rdb))
	classGroup.Patch("/denied/:id", middleware.Protected, middleware.RequireAdmin(dir), controllers.DenyClass(db, rdb))
	classGroup.Patch("/feedback/:id", middleware.Protected, middleware.RequireAdmin(dir), validators.SendFeedback(), controllers.SendFeedback(db))
}
