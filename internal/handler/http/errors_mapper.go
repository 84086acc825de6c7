package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-identity/internal/app"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrNoFileProvided:      http.StatusBadRequest,
	service.ErrInvalidFileType:     http.StatusBadRequest,
	service.ErrInvalidFileName:     http.StatusBadRequest,
	errInvalidJSON:                 http.StatusBadRequest,
	errUploadTooLarge:              http.StatusRequestEntityTooLarge,

	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenInvalidSignature:   http.StatusUnauthorized,
	service.ErrTokenMalformed:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	ErrEmptyAuthorizationHeader:        http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader:      http.StatusUnauthorized,
	ErrEmptyToken:                      http.StatusUnauthorized,
	errMissingClaims:                   http.StatusUnauthorized,

	service.ErrForbidden: http.StatusForbidden,

	service.ErrUserNotFound: http.StatusNotFound,
	service.ErrFileNotFound: http.StatusNotFound,

	service.ErrUserAlreadyExists: http.StatusConflict,

	service.ErrStoreUnavailable: http.StatusServiceUnavailable,
	service.ErrInternal:         http.StatusInternalServerError,
}

// errorMessageMap holds the only texts a client ever sees for an error.
var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided: app.MsgInvalidDataProvided,
	service.ErrNoFileProvided:      app.MsgNoFileProvided,
	service.ErrInvalidFileType:     app.MsgInvalidFileType,
	service.ErrInvalidFileName:     app.MsgInvalidFileName,
	errInvalidJSON:                 app.MsgInvalidJSON,
	errUploadTooLarge:              app.MsgFileTooLarge,

	service.ErrWrongPassword:           app.MsgWrongPassword,
	service.ErrTokenIsExpired:          app.MsgTokenIsExpired,
	service.ErrTokenInvalidSignature:   app.MsgInvalidToken,
	service.ErrTokenMalformed:          app.MsgInvalidToken,
	service.ErrTokenIsExpiredOrInvalid: app.MsgInvalidToken,
	ErrEmptyAuthorizationHeader:        app.MsgNoAuthorizationHeader,
	ErrInvalidAuthorizationHeader:      app.MsgInvalidAuthorizationHeader,
	ErrEmptyToken:                      app.MsgInvalidAuthorizationHeader,
	errMissingClaims:                   app.MsgInvalidToken,

	service.ErrForbidden: app.MsgForbidden,

	service.ErrUserNotFound: app.MsgUserNotFound,
	service.ErrFileNotFound: app.MsgImageDoesNotExist,

	service.ErrUserAlreadyExists: app.MsgUserAlreadyExists,

	service.ErrStoreUnavailable: app.MsgServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return http.StatusText(http.StatusInternalServerError)
}

// writeError logs err and writes the matching status and error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, werr := utils.WriteJSON(w, models.ErrorResponse(messageFromError(err)), status); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}
