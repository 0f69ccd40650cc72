package paymentRoutes

import (
	controllers "academy/controllers/paymentControllers"
	"academy/enrollment"
	"academy/middleware"
	validators "academy/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupPaymentRoutes registers checkout completion and payment history
func SetupPaymentRoutes(app *fiber.App, db *gorm.DB, workflow *enrollment.Workflow) {
	paymentGroup := app.Group("/payments", middleware.Protected)

	paymentGroup.Post("", validators.CreatePayment(), controllers.CreatePayment(db, workflow))
	paymentGroup.Get("", controllers.ListPayments(workflow))
}
