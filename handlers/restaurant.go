package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"restofinder/models"
	"restofinder/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantCreateRequest struct {
	Name          string      `json:"name" binding:"required,max=255"`
	City          string      `json:"city" binding:"required,max=255"`
	Province      string      `json:"province" binding:"required,province"`
	PostalCode    string      `json:"postalCode" binding:"required,min=6,max=7"`
	CuisineType   string      `json:"cuisineType" binding:"required,max=255"`
	Distance      json.Number `json:"distance" binding:"required,number"`
	BusinessHours [][]string  `json:"businessHours" binding:"required,len=7,dive,len=2,dive,clock"`
}

type RestaurantSearchRequest struct {
	UserID        utils.ID    `form:"userId" json:"userId"`
	Name          string      `form:"name" json:"name" binding:"max=255"`
	City          string      `form:"city" json:"city" binding:"max=255"`
	Province      string      `form:"province" json:"province" binding:"omitempty,province"`
	PostalCode    string      `form:"postalCode" json:"postalCode" binding:"omitempty,min=3,max=7"`
	CuisineType   string      `form:"cuisineType" json:"cuisineType" binding:"max=255"`
	Distance      json.Number `form:"distance" json:"distance" binding:"omitempty,numeric"`
	CurrentlyOpen json.Number `form:"currentlyOpen" json:"currentlyOpen" binding:"omitempty,oneof=0 1"`
}

type RestaurantUpdateRequest struct {
	ID          utils.ID     `json:"id" binding:"required"`
	Name        *string      `json:"name" binding:"omitempty,min=1,max=255"`
	City        *string      `json:"city" binding:"omitempty,min=1,max=255"`
	Province    *string      `json:"province" binding:"omitempty,province"`
	PostalCode  *string      `json:"postalCode" binding:"omitempty,min=6,max=7"`
	CuisineType *string      `json:"cuisineType" binding:"omitempty,min=1,max=255"`
	Distance    *json.Number `json:"distance" binding:"omitempty,number"`
}

// updates returns the columns to change, only for the fields that were sent
func (r *RestaurantUpdateRequest) updates() (map[string]any, error) {
	result := map[string]any{}
	for column, value := range map[string]*string{
		"name":         r.Name,
		"city":         r.City,
		"province":     r.Province,
		"postal_code":  r.PostalCode,
		"cuisine_type": r.CuisineType,
	} {
		if value != nil {
			result[column] = strings.TrimSpace(*value)
		}
	}
	if r.Distance != nil {
		distance, err := strconv.Atoi(r.Distance.String())
		if err != nil {
			return nil, err
		}
		result["distance"] = distance
	}
	return result, nil
}

func (h *Handlers) RestaurantCreate(c *gin.Context) {
	req := RestaurantCreateRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	distance, err := strconv.Atoi(req.Distance.String())
	if err != nil {
		validationFailed(c, err)
		return
	}
	restaurant := models.Restaurant{
		Name:        strings.TrimSpace(req.Name),
		City:        strings.TrimSpace(req.City),
		Province:    req.Province,
		PostalCode:  strings.TrimSpace(req.PostalCode),
		CuisineType: strings.TrimSpace(req.CuisineType),
		Distance:    distance,
	}
	if err = h.Restaurants.Create(c.Request.Context(), &restaurant, req.BusinessHours); err != nil {
		internalError(c, "RestaurantCreate", err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *Handlers) RestaurantSearch(c *gin.Context, userID uint64) {
	req := RestaurantSearchRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	filters := models.RestaurantFilters{
		Name:          req.Name,
		City:          req.City,
		Province:      req.Province,
		PostalCode:    req.PostalCode,
		CuisineType:   req.CuisineType,
		Distance:      req.Distance.String(),
		CurrentlyOpen: req.CurrentlyOpen.String(),
	}
	restaurants, err := h.Restaurants.Search(c.Request.Context(), userID, filters)
	if err != nil {
		internalError(c, "RestaurantSearch", err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *Handlers) RestaurantUpdate(c *gin.Context) {
	req := RestaurantUpdateRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	updates, err := req.updates()
	if err != nil {
		validationFailed(c, err)
		return
	}
	err = h.Restaurants.Update(c.Request.Context(), uint64(req.ID), updates)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{"Restaurant with " + strconv.FormatUint(uint64(req.ID), 10) + " not found."})
		return
	}
	if err != nil {
		internalError(c, "RestaurantUpdate", err)
		return
	}
	c.JSON(http.StatusOK, UpdateSuccessfulResponse)
}
