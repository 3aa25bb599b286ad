package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage    string     `gorm:"default:''"`
	Name            string     `gorm:"default:''"`
	Email           string     `gorm:"unique;not null"`
	Mobile          string     `gorm:"default:''"`
	Role            string     `gorm:"default:'STUDENT'"` // STUDENT, TUTOR, ADMIN
	Password        string     `gorm:"not null"`
	Bio             string     `gorm:"type:text;default:''"`
	Headline        string     `gorm:"default:''"` // tutor tagline shown in the catalog
	IsEmailVerified bool       `gorm:"default:false"`
	LastLogin       *time.Time `json:"last_login"`
	IsBlocked       bool       `gorm:"default:false"`
	IsDeleted       bool       `gorm:"default:false"`
}

// Role values for User.Role.
const (
	RoleStudent = "STUDENT"
	RoleTutor   = "TUTOR"
	RoleAdmin   = "ADMIN"
)
