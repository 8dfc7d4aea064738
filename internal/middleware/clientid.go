package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/passmeter/internal/repository"
	"github.com/jwalitptl/passmeter/pkg/errors"
	"github.com/jwalitptl/passmeter/pkg/httputil"
)

const (
	HeaderXClientID = "X-Client-ID"
	ContextClientID = "client_id"
)

// ClientID requires a UUID X-Client-ID header and stores the parsed value.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := repository.ParseClientID(c.GetHeader(HeaderXClientID))
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("X-Client-ID header must be a UUID", err))
			return
		}

		c.Set(ContextClientID, id)
		c.Next()
	}
}

// GetClientID returns the ID stored by ClientID.
func GetClientID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextClientID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
