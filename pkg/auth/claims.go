package auth

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the signed session cookie. The registered
// ID (jti) keys the server-side session record.
type SessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
