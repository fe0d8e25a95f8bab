package config

import (
	"os"
	"strconv"
	"time"
)

// Access and refresh tokens are signed with separate secrets and carry
// independently configured lifetimes, applied at issuance time.
var (
	AccessTokenSecret    []byte
	RefreshTokenSecret   []byte
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration
)

// LoadJWT reads the token configuration from the environment. Call after
// godotenv has loaded the .env file.
func LoadJWT() {
	accessSecret := os.Getenv("JWT_ACCESS_SECRET")
	if accessSecret == "" {
		accessSecret = "access-secret-change-this-in-production"
	}
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if refreshSecret == "" {
		refreshSecret = "refresh-secret-change-this-in-production"
	}
	AccessTokenSecret = []byte(accessSecret)
	RefreshTokenSecret = []byte(refreshSecret)

	AccessTokenLifetime = time.Duration(getenvInt("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute
	RefreshTokenLifetime = time.Duration(getenvInt("REFRESH_TOKEN_TTL_DAYS", 7)) * 24 * time.Hour
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
