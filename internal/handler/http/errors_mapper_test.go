package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid data", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"no file", service.ErrNoFileProvided, http.StatusBadRequest},
		{"bad extension", service.ErrInvalidFileType, http.StatusBadRequest},
		{"bad file name", service.ErrInvalidFileName, http.StatusBadRequest},
		{"bad json", errInvalidJSON, http.StatusBadRequest},
		{"upload too large", errUploadTooLarge, http.StatusRequestEntityTooLarge},
		{"wrong password", service.ErrWrongPassword, http.StatusUnauthorized},
		{"expired token", service.ErrTokenIsExpired, http.StatusUnauthorized},
		{"missing header", ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
		{"missing claims", errMissingClaims, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"user not found", fmt.Errorf("%w: %w", service.ErrUserNotFound, store.ErrNoUserWasFound), http.StatusNotFound},
		{"file not found", fmt.Errorf("%w: %w", service.ErrFileNotFound, store.ErrFileNotFound), http.StatusNotFound},
		{"duplicate", service.ErrUserAlreadyExists, http.StatusConflict},
		{"store down", fmt.Errorf("%w: dial tcp: refused", service.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"internal", service.ErrInternal, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestMessageFromError_HidesInternals(t *testing.T) {
	err := fmt.Errorf("%w: pq: relation \"users\" does not exist", service.ErrStoreUnavailable)
	assert.Equal(t, "service is temporarily unavailable", messageFromError(err))

	assert.Equal(t, "Internal Server Error", messageFromError(errors.New("secret detail")))
	assert.Equal(t, "Internal Server Error", messageFromError(service.ErrInternal))
}

func TestEveryMappedErrorHasAMessage(t *testing.T) {
	for target, status := range errorStatusMap {
		if status == http.StatusInternalServerError {
			continue
		}
		_, ok := errorMessageMap[target]
		assert.True(t, ok, "no message for %v", target)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile/x", nil)

	writeError(rec, req, fmt.Errorf("%w: %w", service.ErrUserNotFound, store.ErrNoUserWasFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","message":"user not found"}`, rec.Body.String())
}
