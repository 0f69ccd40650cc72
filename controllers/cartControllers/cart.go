package cartControllers

import (
	"log"
	"strconv"

	"academy/middleware"
	"academy/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddToCart stores a pending purchase for the signed-in user. The class must
// exist, be approved and still have seats; a class already in the user's
// cart is reported as a conflict.
func AddToCart(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedCartItem").(*models.CartItem)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		email, _ := c.Locals("email").(string)

		var class models.Class
		if err := db.Where("id = ? AND status = ?", reqData.ClassID, models.ClassStatusApproved).First(&class).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found or not approved!", nil)
		}

		// Checkout eligibility: a full class never enters a cart.
		if class.Seats <= 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "No seats available for this class!", nil)
		}

		var existing models.CartItem
		if err := db.Where("owner_email = ? AND class_id = ?", email, reqData.ClassID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Class is already in your cart!", nil)
		}

		item := models.CartItem{
			OwnerEmail: email,
			ClassID:    class.ID,
			ClassTitle: class.Title,
			Price:      class.Price,
		}
		if err := db.Create(&item).Error; err != nil {
			log.Printf("Error saving cart item to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add class to cart!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class added to cart!", item)
	}
}

// ListCart returns the signed-in user's cart items
func ListCart(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals("email").(string)

		var items []models.CartItem
		if err := db.Where("owner_email = ?", email).Order("created_at desc").Find(&items).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cart!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully!", items)
	}
}

// RemoveFromCart deletes a cart item by ID. Only the item's owner may
// remove it.
func RemoveFromCart(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid cart item id!", nil)
		}

		email, _ := c.Locals("email").(string)

		result := db.Unscoped().Where("id = ? AND owner_email = ?", id, email).Delete(&models.CartItem{})
		if result.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove cart item!", nil)
		}
		if result.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Cart item not found!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart item removed!", fiber.Map{"deleted": result.RowsAffected})
	}
}
