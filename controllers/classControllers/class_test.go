package classControllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	validators "academy/validators/class"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
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

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Class{}))

	dir := database.NewRoleDirectory(db)

	app := fiber.New()
	classGroup := app.Group("/classes")
	classGroup.Get("", ListClasses(db, nil))
	classGroup.Post("", middleware.Protected, middleware.RequireRole(dir, models.RoleInstructor), validators.CreateClass(), CreateClass(db, nil))
	classGroup.Patch("/approved/:id", middleware.Protected, middleware.RequireAdmin(dir), ApproveClass(db, nil))
	classGroup.Patch("/denied/:id", middleware.Protected, middleware.RequireAdmin(dir), DenyClass(db, nil))

	return app, db
}

func TestCreateClassInstructorOnly(t *testing.T) {
	app, db := setupApp(t)

	require.NoError(t, db.Create(&models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleInstructor}).Error)
	require.NoError(t, db.Create(&models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent}).Error)

	body, _ := json.Marshal(map[string]interface{}{"title": "German B2", "price": 25.0, "seats": 12})

	// Student cannot submit a class
	studentToken, err := middleware.GenerateJWT(map[string]interface{}{"email": "alice@example.com"})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/classes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Instructor can; ownership and pending status come from the token, not
	// the body
	token, err := middleware.GenerateJWT(map[string]interface{}{"email": "bob@example.com", "name": "Bob"})
	require.NoError(t, err)
	req = httptest.NewRequest("POST", "/classes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var class models.Class
	require.NoError(t, db.Where("title = ?", "German B2").First(&class).Error)
	require.Equal(t, "bob@example.com", class.InstructorEmail)
	require.Equal(t, models.ClassStatusPending, class.Status)
	require.Equal(t, 12, class.Seats)
	require.Zero(t, class.EnrolledStudent)
}

func TestApprovalTransitions(t *testing.T) {
	app, db := setupApp(t)

	require.NoError(t, db.Create(&models.User{Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}).Error)
	class := models.Class{Title: "Italian A2", InstructorEmail: "bob@example.com", Price: 30, Seats: 8, Status: models.ClassStatusPending}
	require.NoError(t, db.Create(&class).Error)

	adminToken, err := middleware.GenerateJWT(map[string]interface{}{"email": "root@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest("PATCH", "/classes/approved/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Class
	require.NoError(t, db.First(&got, class.ID).Error)
	require.Equal(t, models.ClassStatusApproved, got.Status)

	req = httptest.NewRequest("PATCH", "/classes/denied/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&got, class.ID).Error)
	require.Equal(t, models.ClassStatusDenied, got.Status)

	// Unknown class
	req = httptest.NewRequest("PATCH", "/classes/approved/99", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListClassesUnknownStatusBypassesCache(t *testing.T) {
	_, db := setupApp(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Get("/classes", ListClasses(db, rdb))

	require.NoError(t, db.Create(&models.Class{Title: "A", InstructorEmail: "bob@example.com", Seats: 5, Status: models.ClassStatusApproved}).Error)

	// A made-up status filter returns nothing and must not leave its empty
	// result under any cache slot.
	req := httptest.NewRequest("GET", "/classes?status=bogus", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Data []models.Class `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Empty(t, env.Data)
	require.False(t, mr.Exists("classes:all"))

	// The unfiltered listing still sees the catalog
	req = httptest.NewRequest("GET", "/classes", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Len(t, env.Data, 1)
	require.Equal(t, "A", env.Data[0].Title)
}

func TestListClassesStatusFilter(t *testing.T) {
	app, db := setupApp(t)

	require.NoError(t, db.Create(&models.Class{Title: "A", InstructorEmail: "bob@example.com", Seats: 5, Status: models.ClassStatusApproved}).Error)
	require.NoError(t, db.Create(&models.Class{Title: "B", InstructorEmail: "bob@example.com", Seats: 5, Status: models.ClassStatusPending}).Error)

	req := httptest.NewRequest("GET", "/classes?status=approved", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Data []models.Class `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Len(t, env.Data, 1)
	require.Equal(t, "A", env.Data[0].Title)

	req = httptest.NewRequest("GET", "/classes", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Len(t, env.Data, 2)
}
