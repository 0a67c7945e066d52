package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ID is a numeric identifier that JSON clients may send either as 12 or "12"
type ID uint64

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*id = ID(n)
	return nil
}

// Bind reads a JSON body (it can be read again, e.g. by the auth router) or else the query / form.
// Struct tags are validated in both cases.
func Bind(c *gin.Context, obj any) error {
	if c.ContentType() == binding.MIMEJSON && c.Request.ContentLength != 0 {
		return c.ShouldBindBodyWith(obj, binding.JSON)
	}
	return c.ShouldBindWith(obj, binding.Form)
}
