package models

import "gorm.io/gorm"

// Category represents a film category (e.g., "Sci-Fi", "Drama").
type Category struct {
	gorm.Model
	Name     string `gorm:"size:255;unique;not null"`
	ImageURL string `gorm:"size:512"`

	Films []Film `gorm:"foreignKey:CategoryID"`
}
