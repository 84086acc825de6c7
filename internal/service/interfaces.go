package service

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// IdentityService holds the account use cases exposed over HTTP.
type IdentityService interface {
	// Register creates an account. A duplicate email or nick is reported
	// through RegisterResult.AlreadyExists, not as an error. actor is the
	// caller's claims when the request carried a valid token, nil otherwise.
	Register(ctx context.Context, input models.RegisterInput, actor *models.Claims) (models.RegisterResult, error)
	// Login checks the credentials and issues a session token.
	Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error)
	// GetProfile returns the user with the given id.
	GetProfile(ctx context.Context, id string) (models.User, error)
	// ListUsers returns the 1-based page of users matching filter and echoes actor.
	ListUsers(ctx context.Context, page int, filter models.UserFilter, actor models.Claims) (models.UserList, error)
	// UpdateProfile applies the allow-listed fields of update to the actor.
	UpdateProfile(ctx context.Context, actorID string, update models.ProfileUpdate) (models.User, error)
	// UploadAvatar stores an image and makes it the actor's avatar.
	UploadAvatar(ctx context.Context, actorID string, upload *models.Upload) (models.AvatarUpload, error)
	// FetchAvatar opens a stored avatar. The caller closes the content.
	FetchAvatar(ctx context.Context, filename string) (models.AvatarFile, error)
	// DeleteUser removes targetID if actor is an admin or the target itself.
	DeleteUser(ctx context.Context, actor models.Claims, targetID string) (models.User, error)
	// ListAllUsers returns every user.
	ListAllUsers(ctx context.Context) ([]models.User, error)
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(ctx context.Context, user models.User) (models.Token, error)
	Verify(ctx context.Context, token string) (models.Claims, error)
}

// AppInfoService reports information about the running build.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
