package authControllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"academy/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func init() {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
}

func TestGenerateTokenCarriesIdentity(t *testing.T) {
	app := fiber.New()
	app.Post("/generate-jwt", GenerateToken())

	body := []byte(`{"email":"alice@example.com","name":"Alice"}`)
	req := httptest.NewRequest("POST", "/generate-jwt", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)

	parsed, err := jwt.Parse(out.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, "alice@example.com", claims["email"])
	require.Equal(t, "Alice", claims["name"])
}

func TestGenerateTokenRequiresEmail(t *testing.T) {
	app := fiber.New()
	app.Post("/generate-jwt", GenerateToken())

	req := httptest.NewRequest("POST", "/generate-jwt", bytes.NewReader([]byte(`{"name":"Alice"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
