package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrWrongPassword       = errors.New("wrong password")
	ErrForbidden           = errors.New("operation is not permitted")

	ErrNoFileProvided  = errors.New("no file provided")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrFileNotFound    = errors.New("file not found")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenInvalidSignature   = errors.New("token signature is invalid")
	ErrTokenMalformed          = errors.New("token is malformed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrStoreUnavailable = errors.New("store is unavailable")
	ErrInternal         = errors.New("internal error")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
