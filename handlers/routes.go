package handlers

import (
	"restofinder/auth"

	"github.com/gin-gonic/gin"
)

// Routes registers every end-point. User scoped ones go through auth.Router.
func (h *Handlers) Routes(router gin.IRoutes) {
	userRouter := &auth.Router{Base: router}
	// Restaurants
	router.POST("/restaurant", h.RestaurantCreate)
	router.PUT("/restaurant", h.RestaurantUpdate)
	userRouter.GET("/restaurants", h.RestaurantSearch)
	// Favourites
	userRouter.GET("/favourites", h.FavouriteList)
	userRouter.POST("/favourites", h.FavouriteAdd)
	userRouter.DELETE("/unfavourite", h.FavouriteRemove)
	// Blacklist
	userRouter.GET("/blacklist", h.BlacklistList)
	userRouter.POST("/blacklist", h.BlacklistAdd)
	userRouter.DELETE("/unblacklist", h.BlacklistRemove)
	// Users
	router.POST("/user", h.UserCreate)
	router.GET("/user/list", h.UserList)
	router.GET("/user/:id", h.UserGet)
	// Live list changes
	userRouter.GET("/ws", h.WebSocket)
	router.GET("/health", Health)
}
