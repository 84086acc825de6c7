package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService is the HS256 implementation of TokenService.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now is the clock used for "iat", "exp" and expiry checks.
	now func() time.Time

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the security parameters in
// cfg. The returned service is safe for concurrent use.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return newTokenService(cfg, time.Now, logger)
}

func newTokenService(cfg config.App, now func() time.Time, logger *logger.Logger) *tokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           now,
		logger:        logger,
	}
}

// Issue signs a token for user carrying its id, nick, name and role.
func (s *tokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	claims := utils.NewClaims(user, s.tokenIssuer, s.now(), s.tokenDuration)

	token, err := utils.GenerateJWTToken(claims, s.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Str("user_id", user.ID).Msg("error creating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return token, nil
}

// Verify checks the signature, issuer and expiry of token and returns its
// claims. The error is one of ErrTokenInvalidSignature, ErrTokenIsExpired,
// ErrTokenMalformed or ErrTokenIsExpiredOrInvalid.
func (s *tokenService) Verify(ctx context.Context, token string) (models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, s.tokenSignKey, s.tokenIssuer, s.now)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*tokenService.Verify").Msg("token rejected")
		return models.Claims{}, tokenError(err)
	}

	return claims, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenIsExpired
	default:
		return ErrTokenIsExpiredOrInvalid
	}
}
