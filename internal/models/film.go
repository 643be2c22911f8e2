package models

import (
	"time"

	"gorm.io/gorm"
)

// Film represents a film in the catalog. Every film belongs to exactly
// one category.
type Film struct {
	gorm.Model
	Title            string `gorm:"size:255;not null"`
	ReleaseDate      *time.Time
	ImageURL         string `gorm:"size:512"`
	ShortDescription string
	LongDescription  string
	CategoryID       uint `gorm:"not null;index"`

	Category Category `gorm:"foreignKey:CategoryID"`
}
