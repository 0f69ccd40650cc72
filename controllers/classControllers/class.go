package classControllers

import (
	"context"
	"log"
	"strconv"
	"time"

	"academy/middleware"
	"academy/models"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateClass lets an instructor submit a new class. It enters the catalog
// as pending until an admin approves or denies it.
func CreateClass(db *gorm.DB, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedClass").(*models.Class)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		email, _ := c.Locals("email").(string)
		name, _ := c.Locals("name").(string)

		newClass := models.Class{
			Title:           reqData.Title,
			InstructorName:  name,
			InstructorEmail: email,
			Image:           reqData.Image,
			Price:           reqData.Price,
			Seats:           reqData.Seats,
			EnrolledStudent: 0,
			Status:          models.ClassStatusPending,
		}
		if err := db.Create(&newClass).Error; err != nil {
			log.Printf("Error saving class to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create class!", nil)
		}

		if rdb != nil {
			utils.InvalidateClassCache(context.Background(), rdb)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class created successfully.", newClass)
	}
}

// ListClasses returns the catalog, optionally filtered by status, sorted by
// status. Listings are served from the redis cache when available.
func ListClasses(db *gorm.DB, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status")

		// Only the three known statuses (and the unfiltered listing) have a
		// cache slot; any other filter bypasses the cache entirely so a
		// bogus value can never overwrite a real listing.
		var cacheKey string
		switch status {
		case "":
			cacheKey = utils.ClassCacheKeyAll
		case models.ClassStatusApproved:
			cacheKey = utils.ClassCacheKeyApproved
		case models.ClassStatusPending:
			cacheKey = utils.ClassCacheKeyPending
		case models.ClassStatusDenied:
			cacheKey = utils.ClassCacheKeyDenied
		}

		ctx := context.Background()
		var classes []models.Class

		if rdb != nil && cacheKey != "" {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &classes); err == nil && found {
				return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully!", classes)
			}
		}

		query := db.Model(&models.Class{})
		if status != "" {
			query = query.Where("status = ?", status)
		}
		if err := query.Order("status asc").Find(&classes).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
		}

		if rdb != nil && cacheKey != "" {
			_ = utils.SetCache(ctx, rdb, cacheKey, classes, 60*time.Second)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully!", classes)
	}
}

// ListInstructorClasses returns the classes owned by the instructor in the
// path. Self-scoped at the router.
func ListInstructorClasses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Params("email")

		var classes []models.Class
		if err := db.Where("instructor_email = ?", email).Order("created_at desc").Find(&classes).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully!", classes)
	}
}

// ApproveClass moves a pending class into the approved catalog
func ApproveClass(db *gorm.DB, rdb *redis.Client) fiber.Handler {
	return setStatusHandler(db, rdb, models.ClassStatusApproved, "Class approved!")
}

// DenyClass rejects a submitted class
func DenyClass(db *gorm.DB, rdb *redis.Client) fiber.Handler {
	return setStatusHandler(db, rdb, models.ClassStatusDenied, "Class denied!")
}

func setStatusHandler(db *gorm.DB, rdb *redis.Client, status, successMsg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
		}

		result := db.Model(&models.Class{}).Where("id = ?", id).Update("status", status)
		if result.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update class!", nil)
		}
		if result.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
		}

		if rdb != nil {
			utils.InvalidateClassCache(context.Background(), rdb)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, successMsg, fiber.Map{"id": id, "status": status})
	}
}

// SendFeedback attaches admin feedback to a class, typically on denial
func SendFeedback(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
		}

		reqData, ok := c.Locals("validatedFeedback").(*struct {
			Feedback string `json:"feedback"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		result := db.Model(&models.Class{}).Where("id = ?", id).Update("feedback", reqData.Feedback)
		if result.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save feedback!", nil)
		}
		if result.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback sent!", nil)
	}
}
