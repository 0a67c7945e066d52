package events

import (
	"context"
	"log"
	"time"
)

const (
	FavouriteAdded   = "favourite.added"
	FavouriteRemoved = "favourite.removed"
	BlacklistAdded   = "blacklist.added"
	BlacklistRemoved = "blacklist.removed"
)

// Event is a change to a user's favourites or blacklist
type Event struct {
	Type           string `json:"type"`
	UserID         uint64 `json:"userId"`
	Username       string `json:"username,omitempty"`
	RestaurantID   uint64 `json:"restaurantId"`
	RestaurantName string `json:"restaurantName,omitempty"`
	Time           int64  `json:"time"`
}

func NewEvent(eventType string, userID, restaurantID uint64) Event {
	return Event{
		Type:         eventType,
		UserID:       userID,
		RestaurantID: restaurantID,
		Time:         time.Now().Unix(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Publishers sends every event to all of its members.
// Failures are only logged, a lost event never fails the change that caused it.
type Publishers []Publisher

func (ps Publishers) Publish(ctx context.Context, e Event) error {
	for _, p := range ps {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			log.Printf("Publish %s, user: %d, restaurant: %d, error: %v", e.Type, e.UserID, e.RestaurantID, err)
		}
	}
	return nil
}
