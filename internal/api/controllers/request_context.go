package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edupath/internal/services"
)

// actorFrom builds the caller from the values the JWT middleware set.
func actorFrom(c *gin.Context) (services.Actor, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return services.Actor{}, false
	}
	return services.Actor{UserID: id, Role: c.GetString("Role")}, true
}

func tokenExpiry(c *gin.Context) time.Time {
	if v, ok := c.Get("token_exp"); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}
