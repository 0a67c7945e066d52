package models

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// RestaurantFilters are the optional search constraints, as received from the client.
// Empty fields don't constrain anything.
type RestaurantFilters struct {
	Name          string `form:"name" json:"name"`
	City          string `form:"city" json:"city"`
	Province      string `form:"province" json:"province"`
	PostalCode    string `form:"postalCode" json:"postalCode"`
	CuisineType   string `form:"cuisineType" json:"cuisineType"`
	Distance      string `form:"distance" json:"distance"`
	CurrentlyOpen string `form:"currentlyOpen" json:"currentlyOpen"`
}

type restaurantFilter struct {
	name  string
	value func(f *RestaurantFilters) string
	apply func(tx *gorm.DB, value string) *gorm.DB
}

// restaurantFilters maps every filter to the predicate it adds to the query
var restaurantFilters = []restaurantFilter{
	{"name", func(f *RestaurantFilters) string { return f.Name }, containsFold("restaurants.name")},
	{"city", func(f *RestaurantFilters) string { return f.City }, containsFold("restaurants.city")},
	{"postalCode", func(f *RestaurantFilters) string { return f.PostalCode }, containsFold("restaurants.postal_code")},
	{"cuisineType", func(f *RestaurantFilters) string { return f.CuisineType }, containsFold("restaurants.cuisine_type")},
	// Province is a code, not free text
	{"province", func(f *RestaurantFilters) string { return f.Province }, equalFold("restaurants.province")},
	// NOTE: restaurants at least this far, not closer than it
	{"distance", func(f *RestaurantFilters) string { return f.Distance }, atLeast("restaurants.distance")},
}

// likeEscaper makes % and _ in user input match literally. '!' is used as the escape
// character since a backslash is itself an escape in MySQL string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsFold(column string) func(*gorm.DB, string) *gorm.DB {
	return func(tx *gorm.DB, value string) *gorm.DB {
		return tx.Where("LOWER("+column+") LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(strings.ToLower(value))+"%")
	}
}

func equalFold(column string) func(*gorm.DB, string) *gorm.DB {
	return func(tx *gorm.DB, value string) *gorm.DB {
		return tx.Where("LOWER("+column+") = ?", strings.ToLower(value))
	}
}

// atLeast truncates decimals (10.5 is 10) and silently drops the constraint if value is not a number
func atLeast(column string) func(*gorm.DB, string) *gorm.DB {
	return func(tx *gorm.DB, value string) *gorm.DB {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return tx
		}
		return tx.Where(column+" >= ?", int64(f))
	}
}

// WantsOpen is true when the client asked for currently open restaurants only ("1")
func (f *RestaurantFilters) WantsOpen() bool {
	n, err := strconv.Atoi(strings.TrimSpace(f.CurrentlyOpen))
	return err == nil && n == 1
}

// Encode returns the filters in a stable form, e.g. for cache keys
func (f *RestaurantFilters) Encode() string {
	values := url.Values{}
	for _, filter := range restaurantFilters {
		if value := filter.value(f); value != "" {
			values.Set(filter.name, value)
		}
	}
	if f.WantsOpen() {
		values.Set("currentlyOpen", "1")
	}
	return values.Encode()
}

// RestaurantSearch finds the restaurants matching all the filters that the user hasn't
// blacklisted. If the filters ask for open restaurants only, now is used to pick the
// business hours row (week day) and check the time of day against it.
func RestaurantSearch(db *gorm.DB, userID uint64, filters RestaurantFilters, now time.Time) (restaurants []Restaurant, err error) {
	tx := db.Model(&Restaurant{}).Select("restaurants.*")
	for _, filter := range restaurantFilters {
		if value := filter.value(&filters); value != "" {
			tx = filter.apply(tx, value)
		}
	}
	// Restaurants without any blacklist row for this user are kept by the LEFT JOIN
	tx = tx.
		Joins("LEFT JOIN blacklists ON blacklists.restaurant_id = restaurants.id AND blacklists.user_id = ?", userID).
		Where("blacklists.restaurant_id IS NULL")
	if filters.WantsOpen() {
		day, clock := OpenAt(now)
		tx = tx.Where("EXISTS (SELECT 1 FROM business_hours WHERE business_hours.restaurant_id = restaurants.id "+
			"AND business_hours.day = ? AND business_hours.opens_at <= ? AND business_hours.closes_at >= ?)", day, clock, clock)
	}
	restaurants = []Restaurant{}
	err = tx.Order("restaurants.id").Find(&restaurants).Error
	return
}
