package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheControl sets the cache-control header before the handler runs.
// With CacheCustom the handler is left to set it.
func CacheControl(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch maxAge {
		case CacheCustom:
		case CacheNoCache:
			c.Header("cache-control", "no-cache")
		default:
			c.Header("cache-control", "private, max-age="+strconv.Itoa(maxAge))
		}
		c.Next()
	}
}
