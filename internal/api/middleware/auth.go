package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/jwt"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/redis"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/response"
)

// Context keys set by JWTAuth
const (
	ClaimsKey  = "claims"
	SubjectKey = "subject"
	RoleKey    = "role"
)

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", "malformed authorization header"
	}
	return token, ""
}

// JWTAuth admits requests carrying a valid admin access token. With rdb
// present, tokens revoked by logout are refused as well.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := bearerToken(c)
		if problem != "" {
			response.Unauthorized(c, problem)
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			return
		}

		if rdb != nil {
			// a Redis outage does not lock the administrator out
			if revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
				response.Unauthorized(c, "token revoked")
				return
			}
		}

		c.Set(ClaimsKey, claims)
		c.Set(SubjectKey, claims.Subject)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RoleAuth runs after JWTAuth and admits only the listed roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" {
			response.Unauthorized(c, "not authenticated")
			return
		}
		if _, ok := allowed[role]; !ok {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}
