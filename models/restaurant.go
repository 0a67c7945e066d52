package models

import (
	"restofinder/config"

	"gorm.io/gorm"
)

type Restaurant struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	CreatedAt     int64           `json:"createdAt"`
	UpdatedAt     int64           `json:"updatedAt"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	City          string          `gorm:"type:varchar(255)" json:"city"`
	Province      string          `gorm:"type:varchar(2);index" json:"province"`
	PostalCode    string          `gorm:"type:varchar(7)" json:"postalCode"`
	Country       string          `gorm:"type:varchar(100)" json:"country"`
	CuisineType   string          `gorm:"type:varchar(255)" json:"cuisineType"`
	Distance      int             `gorm:"not null;default:0" json:"distance"` // no unit, only compared
	BusinessHours []BusinessHours `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"businessHours,omitempty"`
}

// RestaurantUpdatable are the columns PUT /restaurant may change
var RestaurantUpdatable = []string{"name", "distance", "city", "province", "postal_code", "cuisine_type"}

func (Restaurant) TableName() string {
	return "restaurants"
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) (err error) {
	r.Country = config.DEFAULT_COUNTRY
	return
}

// RestaurantCreate saves the restaurant together with its business hours
func RestaurantCreate(db *gorm.DB, r *Restaurant, hours []BusinessHours) error {
	return db.Transaction(func(tx *gorm.DB) error {
		r.BusinessHours = nil
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].RestaurantID = r.ID
		}
		if err := tx.Create(&hours).Error; err != nil {
			return err
		}
		r.BusinessHours = hours
		return nil
	})
}

// RestaurantFind returns zero or one restaurants
func RestaurantFind(db *gorm.DB, id uint64) (restaurants []Restaurant, err error) {
	restaurants = []Restaurant{}
	err = db.Where("id = ?", id).Limit(1).Find(&restaurants).Error
	return
}

// RestaurantUpdate applies a partial update, only RestaurantUpdatable columns are written.
// Returns ErrNotFound if there's no restaurant with this id.
func RestaurantUpdate(db *gorm.DB, id uint64, updates map[string]any) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Restaurant{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if len(updates) == 0 {
			return nil
		}
		columns := append([]string{"updated_at"}, RestaurantUpdatable...)
		return tx.Model(&Restaurant{ID: id}).Select(columns).Updates(updates).Error
	})
}
