package auth

import (
	"net/http"

	"restofinder/utils"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is called with the user the request acts on behalf of
type HandlerFunc func(c *gin.Context, userID uint64)

// Router is a wrapper that resolves the userId of user scoped end-points:
// the request's userId (query or JSON body), or else the one remembered in the session
type Router struct {
	Base gin.IRoutes
}

type userRequest struct {
	UserID utils.ID `form:"userId" json:"userId"`
}

func requestUserID(c *gin.Context) uint64 {
	r := userRequest{}
	// Errors are reported by the handler's own binding
	_ = utils.Bind(c, &r)
	return uint64(r.UserID)
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	session := LoadSession(c)
	userID := requestUserID(c)
	if userID == 0 {
		userID = session.UserID()
	} else {
		session.RememberUser(userID)
	}
	if userID == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []gin.H{{
			"field":   "userId",
			"message": "userId is required",
		}}})
		return
	}
	handler(c, userID)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
