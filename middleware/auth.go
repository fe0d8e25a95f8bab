package middleware

import (
	"strconv"
	"strings"
	"time"

	"conduit-api/config"
	"conduit-api/helper"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var HTTPHelper = &helper.HTTPHelper{}

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthMiddleware requires a Bearer access token. The JWT signature is
// checked first, then the backing access token record: a revoked or expired
// record rejects the request even if the signature is fine.
func AuthMiddleware(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseAccessToken(c)
		if !ok {
			c.Abort()
			return
		}

		if !accessRecordValid(tokens, claims) {
			HTTPHelper.SendUnauthorizedError(c, "Token revoked or expired", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the caller identity when a valid token is
// present and leaves the request anonymous otherwise.
func OptionalAuthMiddleware(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, accessKeyFunc)
		if err != nil || !token.Valid || !accessRecordValid(tokens, claims) {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

func parseAccessToken(c *gin.Context) (*Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, accessKeyFunc)
	if err != nil {
		HTTPHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error(), HTTPHelper.EmptyJsonMap())
		return nil, false
	}
	if !token.Valid {
		HTTPHelper.SendUnauthorizedError(c, "Token is not valid", HTTPHelper.EmptyJsonMap())
		return nil, false
	}
	return claims, true
}

func accessKeyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return config.AccessTokenSecret, nil
}

func accessRecordValid(tokens services.TokenService, claims *Claims) bool {
	recordID, err := strconv.ParseUint(claims.ID, 10, 32)
	if err != nil {
		return false
	}
	record, err := tokens.GetAccessToken(uint(recordID))
	if err != nil {
		return false
	}
	return record.Valid(time.Now())
}
