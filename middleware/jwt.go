package middleware

import (
	"fmt"
	"strings"
	"time"

	"academy/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT signs an identity payload into a bearer token. The payload is
// whatever the sign-in flow hands over; email is the claim every guard keys
// on. Tokens are stateless and expire after one hour, there is no refresh.
func GenerateJWT(payload map[string]interface{}) (string, error) {
	email, _ := payload["email"].(string)
	if email == "" {
		return "", fmt.Errorf("identity payload must include an email")
	}

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(1 * time.Hour).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// Protected is the authentication guard. A missing or malformed Authorization
// header is unauthorized (401); a header that is present but fails
// verification is forbidden (403). On success the verified email is stored in
// the request context for the guards behind it.
func Protected(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusForbidden, false, "Invalid or expired token", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["email"] == nil {
		return JsonResponse(c, fiber.StatusForbidden, false, "Invalid token payload", nil)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return JsonResponse(c, fiber.StatusForbidden, false, "Invalid token payload", nil)
	}
	c.Locals("email", email)
	if name, ok := claims["name"].(string); ok {
		c.Locals("name", name)
	}

	return c.Next()
}

// JsonResponse writes the uniform response envelope
func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// ValidationErrorResponse reports per-field validation failures
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
