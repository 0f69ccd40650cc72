package database

import (
	"errors"

	"academy/models"

	"gorm.io/gorm"
)

// RoleDirectory looks up a user's role from the users table. It backs the
// access guards; a user with no record yet is a plain student.
type RoleDirectory struct {
	db *gorm.DB
}

func NewRoleDirectory(db *gorm.DB) *RoleDirectory {
	return &RoleDirectory{db: db}
}

// RoleOf returns the role recorded for an email, defaulting to student when
// no user record exists.
func (r *RoleDirectory) RoleOf(email string) (string, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoleStudent, nil
		}
		return "", err
	}
	return user.Role, nil
}

// SetRole overwrites a user's role by ID. No prior-role validation; the
// caller (an admin-gated route) decides. Last write wins.
func (r *RoleDirectory) SetRole(id uint, role string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
