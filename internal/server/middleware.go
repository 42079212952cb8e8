package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/sellapp/internal/actorcontext"
)

const actorHeader = "X-Actor-Id"

// ActorContext lifts the acting user's ID from the request header into
// the request context. Write operations reject requests without one at
// the service layer.
func (s *Server) ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(actorHeader))
		if raw != "" {
			if actorID, err := snowflake.ParseString(raw); err == nil {
				ctx := actorcontext.WithActorID(c.Request.Context(), actorID.Int64())
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}
