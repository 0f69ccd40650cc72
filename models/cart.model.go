package models

import "gorm.io/gorm"

// CartItem is a pending purchase. Created when a user adds a class to the
// cart, removed exactly once by the enrollment commit workflow when the
// payment for it completes. Never updated in between.
type CartItem struct {
	gorm.Model
	OwnerEmail string  `json:"owner_email" gorm:"index;not null"`
	ClassID    uint    `json:"class_id" gorm:"index;not null"`
	ClassTitle string  `json:"class_title" gorm:"default:''"`
	Price      float64 `json:"price" gorm:"not null"`
	Class      Class   `json:"-" gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
}
