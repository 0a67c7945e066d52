package service

import (
	"context"
	"log"

	"restofinder/cache"
	"restofinder/events"
	"restofinder/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Lists manages the favourites and the blacklist of every user
type Lists struct {
	DB     *gorm.DB
	Cache  cache.Cache
	Events events.Publisher
}

func NewLists(db *gorm.DB, c cache.Cache, publisher events.Publisher) *Lists {
	if c == nil {
		c = cache.Nop{}
	}
	if publisher == nil {
		publisher = events.Publishers{}
	}
	return &Lists{DB: db, Cache: c, Events: publisher}
}

type verified struct {
	user       models.User
	restaurant models.Restaurant
}

// verify looks up the user, the restaurant and (if checkBlacklist) the blacklist row concurrently.
// A blacklisted pair is reported before any missing entity.
func (s *Lists) verify(ctx context.Context, userID, restaurantID uint64, checkBlacklist bool) (result verified, err error) {
	var (
		users       []models.User
		restaurants []models.Restaurant
		blacklisted []models.Blacklist
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = models.UserFind(s.DB.WithContext(gctx), userID)
		return
	})
	g.Go(func() (err error) {
		restaurants, err = models.RestaurantFind(s.DB.WithContext(gctx), restaurantID)
		return
	})
	if checkBlacklist {
		g.Go(func() (err error) {
			blacklisted, err = models.BlacklistFind(s.DB.WithContext(gctx), userID, restaurantID)
			return
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	if len(blacklisted) > 0 {
		return result, ErrBlacklisted
	}
	if len(users) == 0 || len(restaurants) == 0 {
		return result, &MissingEntityError{UserExists: len(users), RestaurantExists: len(restaurants)}
	}
	result.user = users[0]
	result.restaurant = restaurants[0]
	return
}

// changed invalidates the user's cached reads and lets everyone know
func (s *Lists) changed(ctx context.Context, e events.Event) {
	s.Cache.Bump(ctx, cache.UserScope(e.UserID))
	if err := s.Events.Publish(ctx, e); err != nil {
		log.Printf("Publish %s, user: %d, restaurant: %d, error: %v", e.Type, e.UserID, e.RestaurantID, err)
	}
}

// AddFavourite returns created = false if the restaurant was already a favourite.
// The restaurant is returned for the confirmation message.
func (s *Lists) AddFavourite(ctx context.Context, userID, restaurantID uint64) (created bool, restaurant models.Restaurant, err error) {
	v, err := s.verify(ctx, userID, restaurantID, true)
	if err != nil {
		return
	}
	restaurant = v.restaurant
	created, err = models.FavouriteAdd(s.DB.WithContext(ctx), userID, v.user.Username, restaurantID)
	if err != nil || !created {
		return
	}
	e := events.NewEvent(events.FavouriteAdded, userID, restaurantID)
	e.Username, e.RestaurantName = v.user.Username, restaurant.Name
	s.changed(ctx, e)
	return
}

// RemoveFavourite returns the number of rows deleted, 0 if it wasn't a favourite
func (s *Lists) RemoveFavourite(ctx context.Context, userID, restaurantID uint64) (int64, error) {
	deleted, err := models.FavouriteRemove(s.DB.WithContext(ctx), userID, restaurantID)
	if err == nil && deleted > 0 {
		s.changed(ctx, events.NewEvent(events.FavouriteRemoved, userID, restaurantID))
	}
	return deleted, err
}

// AddBlacklist returns created = false if the restaurant was already blacklisted.
// Blacklisting a favourite is allowed, it just won't be listed as one anymore.
func (s *Lists) AddBlacklist(ctx context.Context, userID, restaurantID uint64) (created bool, restaurant models.Restaurant, err error) {
	v, err := s.verify(ctx, userID, restaurantID, false)
	if err != nil {
		return
	}
	restaurant = v.restaurant
	created, err = models.BlacklistAdd(s.DB.WithContext(ctx), userID, v.user.Username, restaurantID)
	if err != nil || !created {
		return
	}
	e := events.NewEvent(events.BlacklistAdded, userID, restaurantID)
	e.Username, e.RestaurantName = v.user.Username, restaurant.Name
	s.changed(ctx, e)
	return
}

func (s *Lists) RemoveBlacklist(ctx context.Context, userID, restaurantID uint64) (int64, error) {
	deleted, err := models.BlacklistRemove(s.DB.WithContext(ctx), userID, restaurantID)
	if err == nil && deleted > 0 {
		s.changed(ctx, events.NewEvent(events.BlacklistRemoved, userID, restaurantID))
	}
	return deleted, err
}

func (s *Lists) ListFavourites(ctx context.Context, userID uint64) (favourites []models.Favourite, err error) {
	key := s.userKey(ctx, "favourites", userID)
	if s.Cache.Get(ctx, key, &favourites) {
		return
	}
	if favourites, err = models.FavouriteList(s.DB.WithContext(ctx), userID); err != nil {
		return
	}
	s.Cache.Set(ctx, key, favourites)
	return
}

func (s *Lists) ListBlacklist(ctx context.Context, userID uint64) (blacklist []models.Blacklist, err error) {
	key := s.userKey(ctx, "blacklist", userID)
	if s.Cache.Get(ctx, key, &blacklist) {
		return
	}
	if blacklist, err = models.BlacklistList(s.DB.WithContext(ctx), userID); err != nil {
		return
	}
	s.Cache.Set(ctx, key, blacklist)
	return
}

// userKey includes the generations, so any list change or restaurant update invalidates it
func (s *Lists) userKey(ctx context.Context, list string, userID uint64) string {
	return cache.Key(list, userID,
		s.Cache.Generation(ctx, cache.UserScope(userID)),
		s.Cache.Generation(ctx, cache.GlobalScope))
}
