package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the JWT claims carried by the auth collaborator's access
// tokens. The core only consumes Subject to gate access.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
