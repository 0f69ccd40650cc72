package paymentControllers

import (
	"academy/enrollment"
	"academy/middleware"
	"academy/models"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePayment is the checkout completion endpoint. The gateway has already
// charged the card; this records the payment and runs the enrollment commit
// workflow. The response always carries the three sub-results so the client
// (or a reconciliation pass) can see partial completion.
func CreatePayment(db *gorm.DB, workflow *enrollment.Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		facts, ok := c.Locals("validatedPayment").(*enrollment.PaymentFacts)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// A checkout may only be committed by the buyer it belongs to.
		email, _ := c.Locals("email").(string)
		if facts.OwnerEmail != email {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Forbidden Access", nil)
		}

		confirmed, err := utils.ConfirmTransaction(facts.TransactionRef)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Could not reach payment gateway!", nil)
		}
		if !confirmed {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment not confirmed by gateway!", nil)
		}

		result, commitErr := workflow.Commit(*facts)
		if result.FailedStage == enrollment.StagePayment {
			// Nothing was recorded; safe for the client to retry.
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", result)
		}
		if commitErr != nil {
			// Payment is ledgered, bookkeeping lagged. Reported, not rolled
			// back; reconciliation retries the rest.
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Payment recorded, enrollment incomplete: "+string(result.FailedStage), result)
		}

		go sendReceipt(db, *facts, result.ReceiptID)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment successful, enrollment complete!", result)
	}
}

// ListPayments returns the caller's payment history, newest first. This is
// the "my enrolled classes" read.
func ListPayments(workflow *enrollment.Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals("email").(string)
		if q := c.Query("email"); q != "" && q != email {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Forbidden Access", nil)
		}

		payments, err := workflow.ListEnrollments(email)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", payments)
	}
}

func sendReceipt(db *gorm.DB, facts enrollment.PaymentFacts, receiptID string) {
	var class models.Class
	title := "your class"
	if err := db.First(&class, facts.ClassID).Error; err == nil {
		title = class.Title
	}
	utils.SendEnrollmentReceipt(facts.OwnerEmail, title, receiptID, facts.TransactionRef, facts.Amount)
}
