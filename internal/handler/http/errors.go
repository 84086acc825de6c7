// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header holds more than two space-separated parts, or two parts whose
	// scheme is not "Bearer".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// "Bearer" scheme but no token value.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// errInvalidJSON is returned when a request body cannot be decoded.
var errInvalidJSON = errors.New("invalid JSON was passed")

// errUploadTooLarge is returned when an upload body exceeds maxAvatarUploadSize.
var errUploadTooLarge = errors.New("upload body too large")

// errMissingClaims is returned when a route behind the auth middleware runs
// without claims in its context.
var errMissingClaims = errors.New("no claims in request context")
