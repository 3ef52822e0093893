package config

import (
	"time"
)

const defaultJWTSecret = "your-secret-key-change-this-in-production"

// JWTConfig drives token signing and the auth cookie. Expiry values are read in
// days.
type JWTConfig struct {
	Secret          []byte
	Expiration      time.Duration
	CookieName      string
	CookieExpiresIn time.Duration
	CookieSecure    bool
}

func loadJWT(e *env) JWTConfig {
	secret := e.str("JWT_SECRET", defaultJWTSecret)
	if secret == defaultJWTSecret {
		e.warn("JWT_SECRET not set, using the development default")
	}

	return JWTConfig{
		Secret:          []byte(secret),
		Expiration:      time.Duration(e.integer("JWT_EXPIRES_IN", 1)) * 24 * time.Hour,
		CookieName:      "access_token",
		CookieExpiresIn: time.Duration(e.integer("COOKIE_EXPIRES_IN", 1)) * 24 * time.Hour,
		CookieSecure:    e.boolean("COOKIE_SECURE", false),
	}
}
