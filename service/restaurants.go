package service

import (
	"context"
	"time"

	"restofinder/cache"
	"restofinder/config"
	"restofinder/models"

	"gorm.io/gorm"
)

type Restaurants struct {
	DB    *gorm.DB
	Cache cache.Cache
	// Clock is the time used for "currently open" searches
	Clock func() time.Time
}

func NewRestaurants(db *gorm.DB, c cache.Cache) *Restaurants {
	if c == nil {
		c = cache.Nop{}
	}
	loc := config.Location()
	return &Restaurants{
		DB:    db,
		Cache: c,
		Clock: func() time.Time { return time.Now().In(loc) },
	}
}

// Create stores the restaurant together with its weekly business hours,
// hours[i] being the [open, close] pair of week day i (0 - Sunday)
func (s *Restaurants) Create(ctx context.Context, r *models.Restaurant, hours [][]string) error {
	businessHours, err := models.BusinessHoursFrom(hours)
	if err != nil {
		return err
	}
	r.ID = 0
	if err = models.RestaurantCreate(s.DB.WithContext(ctx), r, businessHours); err != nil {
		return err
	}
	s.Cache.Bump(ctx, cache.GlobalScope)
	return nil
}

func (s *Restaurants) Search(ctx context.Context, userID uint64, filters models.RestaurantFilters) (restaurants []models.Restaurant, err error) {
	now := s.Clock()
	parts := []any{
		"search",
		userID,
		s.Cache.Generation(ctx, cache.UserScope(userID)),
		s.Cache.Generation(ctx, cache.GlobalScope),
		cache.Hash(filters.Encode()),
	}
	if filters.WantsOpen() {
		// Opening hours have a minute resolution at best
		parts = append(parts, now.Format("200601021504"))
	}
	key := cache.Key(parts...)
	if s.Cache.Get(ctx, key, &restaurants) {
		return
	}
	if restaurants, err = models.RestaurantSearch(s.DB.WithContext(ctx), userID, filters, now); err != nil {
		return
	}
	s.Cache.Set(ctx, key, restaurants)
	return
}

// Update applies the non-empty fields, returns ErrNotFound for an unknown id
func (s *Restaurants) Update(ctx context.Context, id uint64, fields map[string]any) error {
	if err := models.RestaurantUpdate(s.DB.WithContext(ctx), id, fields); err != nil {
		return err
	}
	s.Cache.Bump(ctx, cache.GlobalScope)
	return nil
}
