package paymentValidator

import (
	"strings"

	"academy/enrollment"
	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OwnerEmail     string  `json:"owner_email"`
			CartItemID     uint    `json:"cart_item_id"`
			ClassID        uint    `json:"class_id"`
			Amount         float64 `json:"amount"`
			TransactionRef string  `json:"transaction_ref"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.OwnerEmail) == "" {
			errors["owner_email"] = "Owner email is required!"
		}
		if reqData.CartItemID < 1 {
			errors["cart_item_id"] = "Cart item id is required!"
		}
		if reqData.ClassID < 1 {
			errors["class_id"] = "Class id is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if strings.TrimSpace(reqData.TransactionRef) == "" {
			errors["transaction_ref"] = "Transaction reference is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPayment", &enrollment.PaymentFacts{
			OwnerEmail:     strings.TrimSpace(reqData.OwnerEmail),
			CartItemID:     reqData.CartItemID,
			ClassID:        reqData.ClassID,
			Amount:         reqData.Amount,
			TransactionRef: strings.TrimSpace(reqData.TransactionRef),
		})
		return c.Next()
	}
}
