// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed Go client for the go-identity HTTP API.
//
// The primary abstraction is [IdentityClient], which hides request building,
// bearer token management and envelope decoding behind plain model types. The
// package ships a single REST implementation ([NewHTTPIdentityClient]) built
// on resty.
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel values declared
// in errors.go so that callers can use [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401). The message carried by the JSON error envelope is
// kept in the wrapped error text.
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityClient talks to a running go-identity server.
type IdentityClient interface {
	// SetToken stores the bearer token attached to every authenticated
	// request. Login calls it automatically.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)

	// Register creates an account. When a token is set the server treats the
	// request as made by its owner, which is how admins create other admins.
	// A duplicate email or nick yields a result with AlreadyExists set.
	Register(ctx context.Context, input models.RegisterInput) (models.RegisterResult, error)

	// Login exchanges credentials for a session token and stores it.
	Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error)

	// Profile fetches the public view of the user with the given id.
	Profile(ctx context.Context, id string) (models.User, error)

	// ListUsers fetches one page of the user listing. Pages start at 1.
	ListUsers(ctx context.Context, page int) (models.ListResponse, error)

	// UpdateProfile changes fields of the token owner's profile.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error)

	// UploadAvatar sends content as the token owner's new avatar.
	UploadAvatar(ctx context.Context, fileName string, content io.Reader) (models.AvatarUpload, error)

	// Avatar downloads a stored avatar by file name.
	Avatar(ctx context.Context, fileName string) ([]byte, error)

	// DeleteUser removes the user with the given id and returns the deleted
	// record.
	DeleteUser(ctx context.Context, id string) (models.User, error)

	// ListAllUsers fetches every user. Only admins may call it.
	ListAllUsers(ctx context.Context) ([]models.User, error)
}
