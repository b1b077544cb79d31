package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const mergeAllowedKey = "merge_allowed"

// MergePermission reads the gateway header that grants assignee merges and
// records the result for MergeAllowed. The gateway strips the header from
// client traffic, so its presence is trusted as is. Anything that does not
// parse as true counts as not granted.
func MergePermission(header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := strconv.ParseBool(c.GetHeader(header))
		c.Set(mergeAllowedKey, err == nil && allowed)
		c.Next()
	}
}

// MergeAllowed reports whether MergePermission granted this request
func MergeAllowed(c *gin.Context) bool {
	return c.GetBool(mergeAllowedKey)
}
