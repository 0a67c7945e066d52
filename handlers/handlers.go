package handlers

import (
	"errors"
	"log"
	"net/http"

	"restofinder/events"
	"restofinder/service"
	"restofinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Message any `json:"message"`
}

type ResultsResponse struct {
	Results any `json:"results"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

var (
	// Predefined responses
	InternalErrorResponse      = Response{"Internal Server Error."}
	BlacklistedResponse        = Response{"Cannot favourite a blacklisted restaurant!"}
	AlreadyFavouritedResponse  = Response{"Already favourited!"}
	NotInFavouritesResponse    = Response{"Restaurant was not in favourites."}
	UnfavouritedResponse       = Response{"Successfully unfavourited restaurant."}
	AlreadyBlacklistedResponse = Response{"Already blacklisted!"}
	NotInBlacklistResponse     = Response{"Restaurant was not in blacklist."}
	UnblacklistedResponse      = Response{"Successfully unblacklisted restaurant."}
	UpdateSuccessfulResponse   = Response{"Update successful"}
)

// Handlers holds the services the end-points work with
type Handlers struct {
	Users       *service.Users
	Restaurants *service.Restaurants
	Lists       *service.Lists
	Hub         *events.Hub
}

// validationFailed answers 422 with a message per invalid field
func validationFailed(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, ErrorsResponse{[]FieldError{{Message: err.Error()}}})
		return
	}
	result := ErrorsResponse{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		result.Errors = append(result.Errors, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	c.JSON(http.StatusUnprocessableEntity, result)
}

// internalError logs err and answers with a generic 500
func internalError(c *gin.Context, where string, err error) {
	log.Printf("%s, request: %s, error: %v", where, utils.GetRequestID(c), err)
	c.JSON(http.StatusInternalServerError, InternalErrorResponse)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
