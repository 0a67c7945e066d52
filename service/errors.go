package service

import (
	"errors"
	"fmt"

	"restofinder/models"
)

var (
	ErrNotFound      = models.ErrNotFound
	ErrBlacklisted   = models.ErrBlacklisted
	ErrMissingEntity = errors.New("user or restaurant does not exist")
)

// MissingEntityError tells which side of a favourite / blacklist pair doesn't exist.
// The counts are 0 or 1.
type MissingEntityError struct {
	UserExists       int `json:"userExists"`
	RestaurantExists int `json:"restaurantExists"`
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("missing entity, user exists: %d, restaurant exists: %d", e.UserExists, e.RestaurantExists)
}

func (e *MissingEntityError) Unwrap() error {
	return ErrMissingEntity
}
