package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
)

const keyPrefix = "restofinder:"

// Cache stores JSON encoded read results. Entries are never deleted on writes,
// instead the generation of the affected scope is bumped and it becomes part of the key.
type Cache interface {
	// Get decodes the cached value into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	Generation(ctx context.Context, scope string) int64
	Bump(ctx context.Context, scope string)
}

// Scopes
const GlobalScope = "restaurants"

func UserScope(userID uint64) string {
	return "user:" + strconv.FormatUint(userID, 10)
}

// Key joins the parts with ":", e.g. Key("favourites", 12, gen)
func Key(parts ...any) string {
	b := strings.Builder{}
	b.WriteString(keyPrefix)
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(':')
		}
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case uint64:
			b.WriteString(strconv.FormatUint(v, 10))
		case int64:
			b.WriteString(strconv.FormatInt(v, 10))
		case int:
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}

// Hash shortens free form input (search filters) to something usable in a key
func Hash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Nop never finds anything
type Nop struct{}

func (Nop) Get(context.Context, string, any) bool    { return false }
func (Nop) Set(context.Context, string, any)         {}
func (Nop) Generation(context.Context, string) int64 { return 0 }
func (Nop) Bump(context.Context, string)             {}
