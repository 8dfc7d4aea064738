package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/passmeter/pkg/errors"
	"github.com/jwalitptl/passmeter/pkg/httputil"
)

// DefaultMaxBodySize comfortably fits the largest request: twenty custom
// words or a 512 rune password.
const DefaultMaxBodySize int64 = 16 << 10

// SizeLimit rejects bodies larger than maxBytes. Declared lengths are checked
// up front; bodies without one fail while binding, see BindingError.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			httputil.RespondWithError(c, errors.TooLarge(fmt.Sprintf("request body exceeds %d bytes", maxBytes), nil))
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
