package utils

import (
	"github.com/gin-gonic/gin"
)

// UserClaims is the authenticated caller, set on the gin context by the auth middleware.
type UserClaims struct {
	UserID    uint   `json:"user_id"`
	RefreshID string `json:"rti"`
}

type contextKey string

const UserContextKey contextKey = "user"

func SetUser(c *gin.Context, claims *UserClaims) {
	c.Set(string(UserContextKey), claims)
}

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
