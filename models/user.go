package models

import (
	"restofinder/config"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
	Username  string `gorm:"type:varchar(150);index:uniq_username,unique;not null" json:"username"` // e-mail
	FirstName string `gorm:"type:varchar(100)" json:"firstName"`
	LastName  string `gorm:"type:varchar(100)" json:"lastName"`
	City      string `gorm:"type:varchar(100)" json:"city"`
	Province  string `gorm:"type:varchar(2)" json:"province"`
	Country   string `gorm:"type:varchar(100)" json:"country"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.Country = config.DEFAULT_COUNTRY
	return
}

func UserCreate(db *gorm.DB, u *User) error {
	return db.Create(u).Error
}

// UserFind returns zero or one users, callers need the stored username
func UserFind(db *gorm.DB, id uint64) (users []User, err error) {
	users = []User{}
	err = db.Where("id = ?", id).Limit(1).Find(&users).Error
	return
}

func UserList(db *gorm.DB) (users []User, err error) {
	users = []User{}
	err = db.Order("id").Find(&users).Error
	return
}
