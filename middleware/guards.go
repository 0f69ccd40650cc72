package middleware

import (
	"academy/models"

	"github.com/gofiber/fiber/v2"
)

// RoleDirectory resolves an email to a role. The guards depend on this
// interface rather than a database handle so they can be exercised with a
// fake directory in tests.
type RoleDirectory interface {
	RoleOf(email string) (string, error)
}

// RequireRole gates a route on the caller's directory role. It must always
// be mounted behind Protected: it reads only the verified email from the
// request context and refuses to run without one, so a role lookup can never
// happen against an unverified claim.
func RequireRole(dir RoleDirectory, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals("email").(string)
		if !ok || email == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized", nil)
		}

		found, err := dir.RoleOf(email)
		if err != nil {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking role!", nil)
		}
		if found != role {
			return JsonResponse(c, fiber.StatusForbidden, false, "Forbidden Access", nil)
		}

		return c.Next()
	}
}

// RequireAdmin gates a route on the admin role.
func RequireAdmin(dir RoleDirectory) fiber.Handler {
	return RequireRole(dir, models.RoleAdmin)
}

// RequireSelf restricts a route to the identity named by a path parameter,
// e.g. "what is my role" may only be asked about the token's own email.
func RequireSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals("email").(string)
		if !ok || email == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized", nil)
		}
		if c.Params(param) != email {
			return JsonResponse(c, fiber.StatusForbidden, false, "Forbidden Access", nil)
		}
		return c.Next()
	}
}
