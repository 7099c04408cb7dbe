package middleware

import (
	"net/http"
	"strings"

	"ParallelRealms/internal/shared/security"
	"ParallelRealms/internal/shared/transport"
	"ParallelRealms/modules/kit/tracex"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth_claims"

// Auth 校验 Bearer token，通过后把 claims 放进 gin context。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			unauthorized(c, "missing token", "MISSING_TOKEN")
			return
		}
		_, claims, err := security.ParseToken(token)
		if err != nil {
			unauthorized(c, "invalid token", "INVALID_TOKEN")
			return
		}
		c.Set(claimsKey, claims)
		transport.SetUserID(c.Request.Context(), claims.UID)
		c.Request = c.Request.WithContext(tracex.WithUserID(c.Request.Context(), claims.UID))
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg, reason string) {
	ctx := c.Request.Context()
	transport.SetBizCode(ctx, transport.BizCode(transport.NotLoggedIn))
	transport.SetErrorReason(ctx, reason)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": transport.NotLoggedIn, "msg": msg})
}

// ClaimsFrom 取 Auth 放入的 claims。
func ClaimsFrom(c *gin.Context) (*security.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*security.Claims)
	return claims, ok && claims != nil
}
