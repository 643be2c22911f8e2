package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	Name            string `gorm:"size:255;not null"`
	Email           string `gorm:"size:255;unique;not null"`
	PasswordHash    string `gorm:"size:255;not null"`
	Role            string `gorm:"size:50;not null;default:'user';index"`
	HasSubscription bool   `gorm:"not null;default:false"`
}
