package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by every session token.
//
// The standard "sub" claim holds the user ID; Nick, Name and Role are copied
// from the user at issuance so that downstream handlers can authorize without
// a store round-trip.
type Claims struct {
	Nick string `json:"nick"`
	Name string `json:"name"`
	Role string `json:"role"`

	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c Claims) UserID() string {
	return c.Subject
}

// IsAdmin reports whether the token was issued to an admin.
func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Token wraps a signed JWT together with the claims it was built from.
type Token struct {
	// Claims is the decoded claim set.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
