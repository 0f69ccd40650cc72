package userControllers

import (
	"log"
	"strconv"

	"academy/database"
	"academy/middleware"
	"academy/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateUser records a user on first sign-in. Upsert-by-email: an existing
// user is reported with a soft success message, never duplicated. The role
// always starts as student; promotion goes through the admin routes.
func CreateUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedUser").(*models.User)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// Check if email already exists
		var existing models.User
		if err := db.Where("email = ?", reqData.Email).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "User already exists", existing)
		}

		newUser := models.User{
			Name:  reqData.Name,
			Email: reqData.Email,
			Photo: reqData.Photo,
			Role:  models.RoleStudent,
		}
		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", newUser)
	}
}

// ListUsers returns every user. Admin only; the guard chain on the route
// enforces it, the inverted self-check from the legacy service is gone.
func ListUsers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := db.Order("created_at desc").Find(&users).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
	}
}

// GetUserRole answers "what is my role" for the email in the path. The
// route is self-scoped, so the param always matches the verified token.
func GetUserRole(dir *database.RoleDirectory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Params("email")

		role, err := dir.RoleOf(email)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve role!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Role fetched successfully!", fiber.Map{"role": role})
	}
}

// MakeAdmin promotes a user to admin by ID
func MakeAdmin(dir *database.RoleDirectory) fiber.Handler {
	return setRoleHandler(dir, models.RoleAdmin, "User promoted to admin!")
}

// MakeInstructor promotes a user to instructor by ID
func MakeInstructor(dir *database.RoleDirectory) fiber.Handler {
	return setRoleHandler(dir, models.RoleInstructor, "User promoted to instructor!")
}

func setRoleHandler(dir *database.RoleDirectory, role, successMsg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		if err := dir.SetRole(uint(id), role); err != nil {
			if err == gorm.ErrRecordNotFound {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, successMsg, fiber.Map{"id": id, "role": role})
	}
}
