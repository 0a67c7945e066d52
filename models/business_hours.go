package models

import (
	"errors"
	"strings"
	"time"
)

const (
	DaysInWeek  = 7
	clockLayout = "15:04:05"
)

var ErrInvalidClock = errors.New("invalid time of day, expected HH:MM or HH:MM:SS")

// BusinessHours is one opening interval per week day.
// Open and Close are zero padded HH:MM:SS so they compare correctly as strings on every DB.
type BusinessHours struct {
	RestaurantID uint64 `gorm:"primaryKey" json:"restaurantId"`
	Day          uint8  `gorm:"primaryKey" json:"day"` // 0 - Sunday .. 6 - Saturday
	Open         string `gorm:"column:opens_at;type:varchar(8);not null" json:"open"`
	Close        string `gorm:"column:closes_at;type:varchar(8);not null" json:"close"`
}

func (BusinessHours) TableName() string {
	return "business_hours"
}

// NormalizeClock converts H:MM, HH:MM or HH:MM:SS to HH:MM:SS
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{clockLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clockLayout), nil
		}
	}
	return "", ErrInvalidClock
}

// BusinessHoursFrom builds the weekly rows out of [open, close] pairs, index being the day.
// Anything after the 7th entry is ignored.
func BusinessHoursFrom(pairs [][]string) ([]BusinessHours, error) {
	if len(pairs) > DaysInWeek {
		pairs = pairs[:DaysInWeek]
	}
	result := make([]BusinessHours, 0, len(pairs))
	for day, pair := range pairs {
		if len(pair) != 2 {
			return nil, ErrInvalidClock
		}
		open, err := NormalizeClock(pair[0])
		if err != nil {
			return nil, err
		}
		close, err := NormalizeClock(pair[1])
		if err != nil {
			return nil, err
		}
		result = append(result, BusinessHours{Day: uint8(day), Open: open, Close: close})
	}
	return result, nil
}

// OpenAt returns the week day index and time of day used to match against BusinessHours
func OpenAt(t time.Time) (day uint8, clock string) {
	return uint8(t.Weekday()), t.Format(clockLayout)
}

// IsOpenAt is the in-memory equivalent of the "currently open" query, bounds are inclusive
func (bh *BusinessHours) IsOpenAt(t time.Time) bool {
	day, clock := OpenAt(t)
	return bh.Day == day && bh.Open <= clock && clock <= bh.Close
}
