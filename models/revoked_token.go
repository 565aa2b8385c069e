package models

import (
	"gorm.io/gorm"
)

// RevokedToken blacklists a JWT after logout or account deletion.
type RevokedToken struct {
	gorm.Model
	Token string `gorm:"uniqueIndex;not null"`
}
