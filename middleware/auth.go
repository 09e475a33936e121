package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shulehub/forum/utils"
)

const (
	// ContextAuthenticatedKey marks whether the request carries a valid session.
	ContextAuthenticatedKey = "authenticated"
	// ContextUserIDKey stores the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserNameKey stores the display name inside Gin context.
	ContextUserNameKey = "user_name"
)

// SessionStatus detects an optional bearer token issued by the identity
// service and records the result in the request context. It never rejects a
// request: the browsing surface is public, and authentication only steers the
// page's call-to-action.
func SessionStatus() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(ContextAuthenticatedKey, false)

		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Next()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			ctx.Next()
			return
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			ctx.Next()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(ContextAuthenticatedKey, true)
		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUserNameKey, claims.Name)
		ctx.Next()
	}
}

// IsAuthenticated reads the session flag set by SessionStatus.
func IsAuthenticated(ctx *gin.Context) bool {
	v, ok := ctx.Get(ContextAuthenticatedKey)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}
