package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blacklist hides a restaurant from a user's search results and favourites
type Blacklist struct {
	UserID       uint64      `gorm:"primaryKey" json:"userId"`
	User         *User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	RestaurantID uint64      `gorm:"primaryKey;index" json:"restaurantId"`
	Restaurant   *Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"restaurant,omitempty"`
	Username     string      `gorm:"type:varchar(150)" json:"username"`
	CreatedAt    int64       `json:"createdAt"`
}

func (Blacklist) TableName() string {
	return "blacklists"
}

// BlacklistFind returns zero or one rows for the pair
func BlacklistFind(db *gorm.DB, userID, restaurantID uint64) (rows []Blacklist, err error) {
	rows = []Blacklist{}
	err = db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).Limit(1).Find(&rows).Error
	return
}

func BlacklistAdd(db *gorm.DB, userID uint64, username string, restaurantID uint64) (created bool, err error) {
	row := Blacklist{
		UserID:       userID,
		RestaurantID: restaurantID,
		Username:     username,
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	return result.RowsAffected > 0, result.Error
}

func BlacklistRemove(db *gorm.DB, userID, restaurantID uint64) (int64, error) {
	result := db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).Delete(&Blacklist{})
	return result.RowsAffected, result.Error
}

func BlacklistList(db *gorm.DB, userID uint64) (rows []Blacklist, err error) {
	rows = []Blacklist{}
	err = db.
		Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at, restaurant_id").
		Find(&rows).Error
	return
}
