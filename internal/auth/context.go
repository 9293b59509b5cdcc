// Package auth extracts caller identity placed on the request by the
// upstream gateway. Authentication itself is an external collaborator; this
// service only reads the already-verified identity headers.
package auth

import "github.com/gin-gonic/gin"

const (
	storeIDHeader = "X-Store-ID"
	userIDHeader  = "X-User-ID"
)

// StoreID returns the store the request operates on. Middleware may have
// resolved it onto the context already; otherwise fall back to the header.
func StoreID(c *gin.Context) string {
	if v, ok := c.Get("store_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return c.GetHeader(storeIDHeader)
}

// UserID returns the acting user, empty when the caller is anonymous or a
// system process.
func UserID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return c.GetHeader(userIDHeader)
}
