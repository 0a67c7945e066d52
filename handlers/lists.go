package handlers

import (
	"errors"
	"net/http"

	"restofinder/service"
	"restofinder/utils"

	"github.com/gin-gonic/gin"
)

type ListRequest struct {
	UserID utils.ID `form:"userId" json:"userId"`
}

type ListChangeRequest struct {
	UserID       utils.ID `form:"userId" json:"userId"`
	RestaurantID utils.ID `form:"restaurantId" json:"restaurantId" binding:"required"`
}

// listChangeFailed answers the errors both favourites and blacklist additions can run into
func listChangeFailed(c *gin.Context, where string, err error) {
	var missing *service.MissingEntityError
	switch {
	case errors.Is(err, service.ErrBlacklisted):
		c.JSON(http.StatusBadRequest, BlacklistedResponse)
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, Response{missing})
	default:
		internalError(c, where, err)
	}
}

func (h *Handlers) FavouriteList(c *gin.Context, userID uint64) {
	req := ListRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	favourites, err := h.Lists.ListFavourites(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "FavouriteList", err)
		return
	}
	c.JSON(http.StatusOK, ResultsResponse{favourites})
}

func (h *Handlers) FavouriteAdd(c *gin.Context, userID uint64) {
	req := ListChangeRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	created, restaurant, err := h.Lists.AddFavourite(c.Request.Context(), userID, uint64(req.RestaurantID))
	if err != nil {
		listChangeFailed(c, "FavouriteAdd", err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, AlreadyFavouritedResponse)
		return
	}
	c.JSON(http.StatusOK, Response{"Added restaurant: " + restaurant.Name})
}

func (h *Handlers) FavouriteRemove(c *gin.Context, userID uint64) {
	req := ListChangeRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	deleted, err := h.Lists.RemoveFavourite(c.Request.Context(), userID, uint64(req.RestaurantID))
	if err != nil {
		internalError(c, "FavouriteRemove", err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusBadRequest, NotInFavouritesResponse)
		return
	}
	c.JSON(http.StatusOK, UnfavouritedResponse)
}

func (h *Handlers) BlacklistList(c *gin.Context, userID uint64) {
	req := ListRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	blacklist, err := h.Lists.ListBlacklist(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "BlacklistList", err)
		return
	}
	c.JSON(http.StatusOK, ResultsResponse{blacklist})
}

func (h *Handlers) BlacklistAdd(c *gin.Context, userID uint64) {
	req := ListChangeRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	created, restaurant, err := h.Lists.AddBlacklist(c.Request.Context(), userID, uint64(req.RestaurantID))
	if err != nil {
		listChangeFailed(c, "BlacklistAdd", err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, AlreadyBlacklistedResponse)
		return
	}
	c.JSON(http.StatusOK, Response{"Added restaurant to blacklist: " + restaurant.Name})
}

func (h *Handlers) BlacklistRemove(c *gin.Context, userID uint64) {
	req := ListChangeRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	deleted, err := h.Lists.RemoveBlacklist(c.Request.Context(), userID, uint64(req.RestaurantID))
	if err != nil {
		internalError(c, "BlacklistRemove", err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusBadRequest, NotInBlacklistResponse)
		return
	}
	c.JSON(http.StatusOK, UnblacklistedResponse)
}
