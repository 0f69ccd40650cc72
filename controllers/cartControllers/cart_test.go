package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"academy/config"
	"academy/middleware"
	"academy/models"
	validators "academy/validators/cart"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Class{}, &models.CartItem{}))

	app := fiber.New()
	cartGroup := app.Group("/carts", middleware.Protected)
	cartGroup.Get("", ListCart(db))
	cartGroup.Post("", validators.AddToCart(), AddToCart(db))
	cartGroup.Delete("/:id", RemoveFromCart(db))

	return app, db
}

func addToCart(t *testing.T, app *fiber.App, token string, classID uint) int {
	t.Helper()

	raw, err := json.Marshal(map[string]interface{}{"class_id": classID})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/carts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAddToCart(t *testing.T) {
	app, db := setupApp(t)

	approved := models.Class{Title: "A", InstructorEmail: "bob@example.com", Price: 20, Seats: 5, Status: models.ClassStatusApproved}
	pending := models.Class{Title: "B", InstructorEmail: "bob@example.com", Price: 20, Seats: 5, Status: models.ClassStatusPending}
	full := models.Class{Title: "C", InstructorEmail: "bob@example.com", Price: 20, Seats: 0, EnrolledStudent: 15, Status: models.ClassStatusApproved}
	require.NoError(t, db.Create(&approved).Error)
	require.NoError(t, db.Create(&pending).Error)
	require.NoError(t, db.Create(&full).Error)

	token, err := middleware.GenerateJWT(map[string]interface{}{"email": "alice@example.com"})
	require.NoError(t, err)

	require.Equal(t, fiber.StatusCreated, addToCart(t, app, token, approved.ID))

	// Same class twice is a conflict
	require.Equal(t, fiber.StatusConflict, addToCart(t, app, token, approved.ID))

	// Unapproved classes are not purchasable
	require.Equal(t, fiber.StatusNotFound, addToCart(t, app, token, pending.ID))

	// A class with no seats never enters a cart
	require.Equal(t, fiber.StatusConflict, addToCart(t, app, token, full.ID))

	var item models.CartItem
	require.NoError(t, db.Where("owner_email = ?", "alice@example.com").First(&item).Error)
	require.Equal(t, approved.ID, item.ClassID)
	require.Equal(t, 20.0, item.Price)
}

func TestRemoveFromCartOwnerScoped(t *testing.T) {
	app, db := setupApp(t)

	item := models.CartItem{OwnerEmail: "alice@example.com", ClassID: 1, Price: 20}
	require.NoError(t, db.Create(&item).Error)

	malloryToken, err := middleware.GenerateJWT(map[string]interface{}{"email": "mallory@example.com"})
	require.NoError(t, err)
	aliceToken, err := middleware.GenerateJWT(map[string]interface{}{"email": "alice@example.com"})
	require.NoError(t, err)

	// Someone else's cart line is invisible
	req := httptest.NewRequest("DELETE", "/carts/1", nil)
	req.Header.Set("Authorization", "Bearer "+malloryToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest("DELETE", "/carts/1", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestListCartOnlyOwnItems(t *testing.T) {
	app, db := setupApp(t)

	require.NoError(t, db.Create(&models.CartItem{OwnerEmail: "alice@example.com", ClassID: 1, Price: 20}).Error)
	require.NoError(t, db.Create(&models.CartItem{OwnerEmail: "bob@example.com", ClassID: 2, Price: 30}).Error)

	token, err := middleware.GenerateJWT(map[string]interface{}{"email": "alice@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/carts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Data []models.CartItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Len(t, env.Data, 1)
	require.Equal(t, "alice@example.com", env.Data[0].OwnerEmail)
}
