package middleware

import (
	"net/http"
	"strings"

	"safariconnector/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// RequireAuth validates the bearer token and stores the Actor in the context.
// Requests without a valid token stop here with 401.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortAuth(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortAuth(c, http.StatusUnauthorized, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "invalid token claims")
			return
		}

		role, ok := domain.ParseRole(stringClaim(claims, "role"))
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "unknown role")
			return
		}

		c.Set(actorKey, domain.Actor{
			UserID:     intClaim(claims, "user_id"),
			Role:       role,
			OperatorID: intClaim(claims, "operator_id"),
		})
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. Must run after RequireAuth.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := map[domain.Role]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "not authenticated")
			return
		}
		if !allowed[actor.Role] {
			abortAuth(c, http.StatusForbidden, "role not permitted")
			return
		}
		c.Next()
	}
}

// GetActor extracts the authenticated actor from the gin context.
func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

func abortAuth(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg,
		"request_id": GetRequestID(c),
	})
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func intClaim(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}
