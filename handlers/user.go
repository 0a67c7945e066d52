package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"restofinder/auth"
	"restofinder/models"
	"restofinder/utils"

	"github.com/gin-gonic/gin"
)

type UserCreateRequest struct {
	Username  string `json:"username" form:"username" binding:"required,email,max=150"`
	FirstName string `json:"firstName" form:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" form:"lastName" binding:"required,max=100"`
	City      string `json:"city" form:"city" binding:"required,max=100"`
	Province  string `json:"province" form:"province" binding:"required,len=2,province"`
}

type UserGetRequest struct {
	ID string `uri:"id" json:"id" binding:"required,max=255,numeric"`
}

func (h *Handlers) UserCreate(c *gin.Context) {
	req := UserCreateRequest{}
	if err := utils.Bind(c, &req); err != nil {
		validationFailed(c, err)
		return
	}
	user := models.User{
		Username:  strings.ToLower(strings.TrimSpace(req.Username)),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		City:      strings.TrimSpace(req.City),
		Province:  req.Province,
	}
	err := h.Users.Create(c.Request.Context(), &user)
	if models.IsConstraintViolation(err) {
		c.JSON(http.StatusBadRequest, Response{models.ConstraintMessages(err)})
		return
	}
	if err != nil {
		internalError(c, "UserCreate", err)
		return
	}
	auth.LoadSession(c).RememberUser(user.ID)
	c.JSON(http.StatusCreated, Response{"User " + user.Username + " created"})
}

func (h *Handlers) UserList(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		internalError(c, "UserList", err)
		return
	}
	c.JSON(http.StatusOK, ResultsResponse{users})
}

func (h *Handlers) UserGet(c *gin.Context) {
	req := UserGetRequest{}
	if err := c.ShouldBindUri(&req); err != nil {
		validationFailed(c, err)
		return
	}
	id, err := strconv.ParseUint(req.ID, 10, 64)
	if err != nil {
		validationFailed(c, err)
		return
	}
	user, err := h.Users.Get(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{"User with id " + req.ID + " not found."})
		return
	}
	if err != nil {
		internalError(c, "UserGet", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
