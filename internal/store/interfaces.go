package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the narrow set of user operations the identity service
// needs. Email and nick comparisons are case-insensitive in every method.
type UserRepository interface {
	// FindByEmailOrNick returns every user whose email or nick matches.
	// An empty result is not an error.
	FindByEmailOrNick(ctx context.Context, email, nick string) ([]models.User, error)
	// FindByEmail returns [ErrNoUserWasFound] when no user matches.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// FindByID returns [ErrNoUserWasFound] when no user matches.
	FindByID(ctx context.Context, id string) (models.User, error)
	// Insert assigns the ID and creation time and returns the stored user.
	// A duplicate email or nick yields [ErrUserAlreadyExists].
	Insert(ctx context.Context, user models.User) (models.User, error)
	// UpdateByID applies the non-nil fields of update and returns the
	// stored user.
	UpdateByID(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
	// DeleteByID removes the user and returns the deleted record.
	DeleteByID(ctx context.Context, id string) (models.User, error)
	// Paginate returns the 1-based page of users matching filter ordered by
	// creation time. A page past the end has no items.
	Paginate(ctx context.Context, filter models.UserFilter, page, pageSize int) (models.UserPage, error)
	// FindAll returns every user ordered by creation time.
	FindAll(ctx context.Context) ([]models.User, error)
}

// AvatarStorage persists avatar images in a single flat directory.
type AvatarStorage interface {
	// Save writes r under a freshly generated name that keeps the extension
	// of originalName.
	Save(ctx context.Context, originalName string, r io.Reader) (models.StoredFile, error)
	// Open returns the named file ready for streaming. The caller closes it.
	Open(ctx context.Context, name string) (models.AvatarFile, error)
	// Delete removes the named file.
	Delete(ctx context.Context, name string) error
}

// ErrorClassificator decides whether a database error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsRetryable(err error) bool
}
