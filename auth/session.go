package auth

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const userIdKey = "id"

// Session remembers the last user a client created or acted as.
// It is not authentication, any client may still pass a different userId.
type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) UserID() uint64 {
	id, _ := s.Get(userIdKey).(uint64)
	return id
}

// RememberUser saves the id unless it is already the remembered one
func (s *Session) RememberUser(id uint64) {
	if id == 0 || s.UserID() == id {
		return
	}
	s.Set(userIdKey, id)
	if err := s.Save(); err != nil {
		log.Printf("Session save error: %v", err)
	}
}
