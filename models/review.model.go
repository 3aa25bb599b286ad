package models

import "gorm.io/gorm"

// CourseReview is a student's rating of a course. One per (user, course).
type CourseReview struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	CourseID  uint   `gorm:"index;not null"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1–5 rating
	Comment   string `gorm:"type:text;default:''"`
	IsDeleted bool   `gorm:"default:false"`
}
