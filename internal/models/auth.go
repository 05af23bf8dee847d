package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the session token issued by the backend.
type SessionClaims struct {
	UserID   int64    `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
