package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/utils"
)

const missingCredentialsMessage = "Authentication credentials were not provided."

// Authenticator resolves a bearer access token to the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*utils.UserClaims, error)
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, domain.Authentication(missingCredentialsMessage))
			return
		}

		bearerToken := strings.Fields(authHeader)
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
			utils.AbortWithError(c, domain.Authentication(missingCredentialsMessage))
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), bearerToken[1])
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		utils.SetUser(c, claims)
		c.Next()
	}
}
