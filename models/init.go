package models

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrBlacklisted = errors.New("restaurant is blacklisted")
)

// Migrate creates or updates all the tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Restaurant{},
		&BusinessHours{},
		&Favourite{},
		&Blacklist{},
	)
}
