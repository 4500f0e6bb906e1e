package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload of a bearer token
// Type carries the role tag, PrincipalID the account uuid, ID (jti) the revocation handle
type Claims struct {
	Type        string `json:"type"`
	PrincipalID string `json:"id"`
	jwt.RegisteredClaims
}

// signingMethod is the only algorithm accepted or produced
var signingMethod = jwt.SigningMethodHS256
