package course

import "gorm.io/gorm"

// Course represents a learning course owned by a tutor
type Course struct {
	gorm.Model
	TutorID      uint    `json:"tutor_id" gorm:"index;not null"`
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	Category     string  `json:"category"`
	Level        string  `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Status       string  `json:"status" gorm:"default:'DRAFT'"`   // DRAFT, ACTIVE, INACTIVE
	Rating       float64 `json:"rating" gorm:"default:0"`
	ReviewCount  int     `json:"review_count" gorm:"default:0"`
	ThumbnailURL string  `json:"thumbnail_url"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false"`
}

// Module represents an ordered group of sections within a course
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsDeleted   bool   `gorm:"default:false"`
}
