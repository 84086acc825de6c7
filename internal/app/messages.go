// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-identity server handlers and its client.
//
// All Msg* constants are human-readable message strings written into the
// "message" field of JSON response envelopes. Keeping them in one place
// ensures consistent wording throughout the API.
package app

// Success messages.
const (
	// MsgUserRegistered accompanies the newly created user.
	MsgUserRegistered = "user registered successfully"

	// MsgUserAlreadyExists is the success outcome of a registration whose
	// email or nick is taken. The envelope carries no user.
	MsgUserAlreadyExists = "user already exists"

	// MsgLoginSuccessful accompanies the session token.
	MsgLoginSuccessful = "login successful"

	// MsgUserUpdated accompanies the updated profile.
	MsgUserUpdated = "user updated successfully"

	// MsgAvatarUploaded accompanies the stored file descriptor.
	MsgAvatarUploaded = "avatar uploaded successfully"

	// MsgUserDeleted accompanies the removed record.
	MsgUserDeleted = "user deleted"
)

// Error messages.
const (
	// MsgInvalidDataProvided is returned when required registration, login
	// or update fields are missing or blank.
	MsgInvalidDataProvided = "missing or invalid data: name, email, password and nick are required"

	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgNoFileProvided is returned when an upload carries no image part.
	MsgNoFileProvided = "the request does not include an image"

	// MsgFileTooLarge is returned when an upload exceeds the size limit.
	MsgFileTooLarge = "the file is too large"

	// MsgInvalidFileType is returned for avatars outside png, jpg, jpeg and gif.
	MsgInvalidFileType = "the file extension is not valid"

	// MsgInvalidFileName is returned when an avatar name is not a plain
	// file name.
	MsgInvalidFileName = "invalid file name"

	// MsgWrongPassword is returned when the password does not match the
	// stored digest.
	MsgWrongPassword = "wrong password"

	// MsgTokenIsExpired is returned when a token is well-formed and signed
	// but past its expiry.
	MsgTokenIsExpired = "token is expired"

	// MsgInvalidToken is returned for every other token rejection.
	MsgInvalidToken = "invalid token"

	// MsgNoAuthorizationHeader is returned when a protected route is called
	// without credentials.
	MsgNoAuthorizationHeader = "the request has no authorization header"

	// MsgInvalidAuthorizationHeader is returned when the header cannot be
	// parsed into a token.
	MsgInvalidAuthorizationHeader = "invalid authorization header"

	// MsgForbidden is returned when the caller may not act on the target.
	MsgForbidden = "you are not allowed to perform this operation"

	// MsgUserNotFound is returned when no user matches an id or email.
	MsgUserNotFound = "user not found"

	// MsgImageDoesNotExist is returned when an avatar file is missing.
	MsgImageDoesNotExist = "image does not exist"

	// MsgServiceUnavailable is returned when the store cannot be reached.
	MsgServiceUnavailable = "service is temporarily unavailable"
)
