package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Favourite struct {
	UserID       uint64      `gorm:"primaryKey" json:"userId"`
	User         *User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	RestaurantID uint64      `gorm:"primaryKey;index" json:"restaurantId"`
	Restaurant   *Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"restaurant,omitempty"`
	Username     string      `gorm:"type:varchar(150)" json:"username"`
	CreatedAt    int64       `json:"createdAt"`
}

func (Favourite) TableName() string {
	return "favourites"
}

// FavouriteAdd inserts the favourite unless it already exists. The blacklist is checked again
// in the same transaction right before the insert, so a blacklisted pair is never written.
func FavouriteAdd(db *gorm.DB, userID uint64, username string, restaurantID uint64) (created bool, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		blacklisted, err := BlacklistFind(tx, userID, restaurantID)
		if err != nil {
			return err
		}
		if len(blacklisted) > 0 {
			return ErrBlacklisted
		}
		fav := Favourite{
			UserID:       userID,
			RestaurantID: restaurantID,
			Username:     username,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return nil
	})
	return
}

func FavouriteRemove(db *gorm.DB, userID, restaurantID uint64) (int64, error) {
	result := db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).Delete(&Favourite{})
	return result.RowsAffected, result.Error
}

// FavouriteList returns the user's favourites with their restaurant, leaving out
// anything that is also on the user's blacklist
func FavouriteList(db *gorm.DB, userID uint64) (favourites []Favourite, err error) {
	favourites = []Favourite{}
	err = db.
		Preload("Restaurant").
		Where("favourites.user_id = ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM blacklists WHERE blacklists.user_id = favourites.user_id AND blacklists.restaurant_id = favourites.restaurant_id)").
		Order("favourites.created_at, favourites.restaurant_id").
		Find(&favourites).Error
	return
}
