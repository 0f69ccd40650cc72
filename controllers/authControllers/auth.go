package authControllers

import (
	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

// GenerateToken mints a bearer token for the identity payload in the body.
// Sign-in itself happens upstream (the client's identity provider); this
// endpoint only turns the resulting identity into a one-hour token.
func GenerateToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := make(map[string]interface{})
		if err := c.BodyParser(&payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if email, _ := payload["email"].(string); email == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"email": "Email is required!"})
		}

		token, err := middleware.GenerateJWT(payload)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
		}

		return c.JSON(fiber.Map{"token": token})
	}
}
