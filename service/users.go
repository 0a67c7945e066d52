package service

import (
	"context"

	"restofinder/models"

	"gorm.io/gorm"
)

type Users struct {
	DB *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{DB: db}
}

// Create fails with a constraint violation (see models.IsConstraintViolation) if the username is taken
func (s *Users) Create(ctx context.Context, u *models.User) error {
	u.ID = 0
	return models.UserCreate(s.DB.WithContext(ctx), u)
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	return models.UserList(s.DB.WithContext(ctx))
}

func (s *Users) Get(ctx context.Context, id uint64) (user models.User, err error) {
	users, err := models.UserFind(s.DB.WithContext(ctx), id)
	if err != nil {
		return
	}
	if len(users) == 0 {
		return user, ErrNotFound
	}
	return users[0], nil
}
