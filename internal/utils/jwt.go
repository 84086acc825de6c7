package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-identity/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken signs the given claims with HMAC-SHA256.
//
// The caller fills every claim, including the time-based ones, so that the
// clock stays under its control. Issuer, subject, expiry and the sign key are
// required; an error is returned if any of them is missing.
//
// Returns:
//
//	models.Token - contains the claims and the compact signed string
//	error        - non-nil if parameters are invalid or signing fails
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(claims, "secret")
func GenerateJWTToken(claims models.Claims, signKey string) (models.Token, error) {
	if claims.Issuer == "" || claims.Subject == "" || claims.ExpiresAt == nil || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Claims: claims, SignedString: tokenString}, nil
}

// NewClaims builds the claim set for a user, valid from now for duration.
func NewClaims(user models.User, issuer string, now time.Time, duration time.Duration) models.Claims {
	return models.Claims{
		Nick: user.Nick,
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signing method check (HS256 only)
//   - Signature verification using the provided sign key; every segment is
//     decoded strictly, so a signature that is not canonical base64url is
//     reported as jwt.ErrTokenSignatureInvalid
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check against now()
//   - Subject (sub) claim presence
//
// The returned error wraps the jwt/v5 sentinel (jwt.ErrTokenExpired,
// jwt.ErrTokenSignatureInvalid, jwt.ErrTokenMalformed, ...) so callers can
// match it with errors.Is.
//
// Example usage:
//
//	claims, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "go-identity", time.Now)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, now func() time.Time) (models.Claims, error) {
	if now == nil {
		now = time.Now
	}

	var claims models.Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) && onlySignatureUndecodable(tokenString) {
			return models.Claims{}, fmt.Errorf("error occurred validating and parsing token: %w", jwt.ErrTokenSignatureInvalid)
		}
		return models.Claims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Claims{}, ErrEmptySubject
	}

	return claims, nil
}

// onlySignatureUndecodable reports whether the header and claims segments of
// tokenString decode cleanly, which leaves the signature segment as the cause
// of a malformed-token error.
func onlySignatureUndecodable(tokenString string) bool {
	if strings.Count(tokenString, ".") != 2 {
		return false
	}
	_, _, err := jwt.NewParser(jwt.WithStrictDecoding()).ParseUnverified(tokenString, &models.Claims{})
	return err == nil
}

// ErrEmptySubject is returned when a correctly signed token carries no subject.
var ErrEmptySubject = errors.New("empty subject error")
