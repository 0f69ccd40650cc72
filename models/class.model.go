package models

import "gorm.io/gorm"

// ClassStatus defines the approval state of a class
const (
	ClassStatusPending  = "pending"
	ClassStatusApproved = "approved"
	ClassStatusDenied   = "denied"
)

// Class is a catalog entry. Seats and EnrolledStudent are mutated only by the
// enrollment commit workflow, as a single atomic counter move.
type Class struct {
	gorm.Model
	Title           string  `json:"title" gorm:"not null"`
	InstructorName  string  `json:"instructor_name" gorm:"default:''"`
	InstructorEmail string  `json:"instructor_email" gorm:"index;not null"`
	Image           string  `json:"image" gorm:"default:''"`
	Price           float64 `json:"price" gorm:"not null"`
	Seats           int     `json:"seats" gorm:"not null;default:0"`
	EnrolledStudent int     `json:"enrolled_student" gorm:"not null;default:0"`
	Status          string  `json:"status" gorm:"default:'pending'"` // pending, approved, denied
	Feedback        string  `json:"feedback" gorm:"default:''"`
}
