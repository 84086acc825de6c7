package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/mock"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuthHandler(t *testing.T) (*Handler, *mock.MockTokenService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenService(ctrl)

	return &Handler{
		services: &service.Services{TokenService: tokens},
		logger:   logger.Nop(),
	}, tokens
}

func claimsFor(id, role string) models.Claims {
	return models.Claims{
		Nick:             "nick-" + id,
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: id},
	}
}

func claimsRef(id, role string) *models.Claims {
	c := claimsFor(id, role)
	return &c
}

// captureClaims is a terminal handler recording the claims it was called with.
func captureClaims(called *bool, got *models.Claims, present *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*got, *present = utils.GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lower-case scheme", header: "bearer abc", want: "abc"},
		{name: "raw token", header: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "quoted raw token", header: `"abc.def.ghi"`, want: "abc.def.ghi"},
		{name: "quoted bearer token", header: `Bearer 'abc'`, want: "abc"},
		{name: "extra spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "empty header", header: "", wantErr: ErrEmptyAuthorizationHeader},
		{name: "blank header", header: "   ", wantErr: ErrEmptyAuthorizationHeader},
		{name: "scheme only", header: "Bearer", wantErr: ErrEmptyToken},
		{name: "empty quotes", header: `""`, wantErr: ErrEmptyToken},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "too many parts", header: "Bearer a b", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuth(t *testing.T) {
	t.Run("valid token stores claims", func(t *testing.T) {
		h, tokens := newAuthHandler(t)
		want := claimsFor("u-1", models.RoleUser)
		tokens.EXPECT().Verify(gomock.Any(), "good").Return(want, nil)

		var called, present bool
		var got models.Claims
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()

		h.auth(captureClaims(&called, &got, &present)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		require.True(t, present)
		assert.Equal(t, "u-1", got.UserID())
	})

	t.Run("missing header", func(t *testing.T) {
		h, _ := newAuthHandler(t)

		var called, present bool
		var got models.Claims
		rec := httptest.NewRecorder()

		h.auth(captureClaims(&called, &got, &present)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
		assert.JSONEq(t, `{"status":"error","message":"the request has no authorization header"}`, rec.Body.String())
	})

	verifyErrors := []struct {
		name    string
		err     error
		message string
	}{
		{name: "expired", err: service.ErrTokenIsExpired, message: "token is expired"},
		{name: "bad signature", err: service.ErrTokenInvalidSignature, message: "invalid token"},
		{name: "malformed", err: service.ErrTokenMalformed, message: "invalid token"},
		{name: "wrapped", err: fmt.Errorf("%w: wrong issuer", service.ErrTokenIsExpiredOrInvalid), message: "invalid token"},
	}
	for _, tt := range verifyErrors {
		t.Run(tt.name, func(t *testing.T) {
			h, tokens := newAuthHandler(t)
			tokens.EXPECT().Verify(gomock.Any(), "bad").Return(models.Claims{}, tt.err)

			var called, present bool
			var got models.Claims
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "bad")
			rec := httptest.NewRecorder()

			h.auth(captureClaims(&called, &got, &present)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Run("no header passes anonymously", func(t *testing.T) {
		h, _ := newAuthHandler(t)

		var called, present bool
		var got models.Claims
		rec := httptest.NewRecorder()

		h.optionalAuth(captureClaims(&called, &got, &present)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.True(t, called)
		assert.False(t, present)
	})

	t.Run("invalid token passes anonymously", func(t *testing.T) {
		h, tokens := newAuthHandler(t)
		tokens.EXPECT().Verify(gomock.Any(), "stale").Return(models.Claims{}, service.ErrTokenIsExpired)

		var called, present bool
		var got models.Claims
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rec := httptest.NewRecorder()

		h.optionalAuth(captureClaims(&called, &got, &present)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.False(t, present)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		h, tokens := newAuthHandler(t)
		tokens.EXPECT().Verify(gomock.Any(), "good").Return(claimsFor("admin-1", models.RoleAdmin), nil)

		var called, present bool
		var got models.Claims
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()

		h.optionalAuth(captureClaims(&called, &got, &present)).ServeHTTP(rec, req)

		require.True(t, present)
		assert.True(t, got.IsAdmin())
	})
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		claims     *models.Claims
		wantStatus int
		wantCalled bool
	}{
		{name: "no claims", wantStatus: http.StatusUnauthorized},
		{name: "regular user", claims: claimsRef("u-1", models.RoleUser), wantStatus: http.StatusForbidden},
		{name: "unknown role", claims: claimsRef("u-1", "superuser"), wantStatus: http.StatusForbidden},
		{name: "admin", claims: claimsRef("a-1", models.RoleAdmin), wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newAuthHandler(t)

			var called, present bool
			var got models.Claims
			req := httptest.NewRequest(http.MethodGet, "/api/user/all", nil)
			if tt.claims != nil {
				req = req.WithContext(utils.WithClaims(req.Context(), *tt.claims))
			}
			rec := httptest.NewRecorder()

			h.requireAdmin(captureClaims(&called, &got, &present)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}
