package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
)

// Storages bundles every storage backend the services depend on.
type Storages struct {
	UserRepository UserRepository
	AvatarStorage  AvatarStorage

	db      *DB
	avatars *AvatarFileStorage
}

// NewStorages builds the user repository and the avatar storage from cfg.
// An empty DSN selects the in-memory user repository.
func NewStorages(ctx context.Context, cfg config.Storage, ids IDGenerator, log *logger.Logger) (*Storages, error) {
	storages := new(Storages)

	if cfg.DB.DSN != "" {
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		storages.db = db
		storages.UserRepository = NewUserRepository(db, ids, log)
	} else {
		log.Warn().Msg("database DSN is empty: users are kept in memory")
		storages.UserRepository = NewMemoryUserRepository(ids, log)
	}

	avatars, err := NewAvatarFileStorage(cfg.Files.AvatarDir, ids, log)
	if err != nil {
		return nil, errors.Join(err, storages.Close())
	}
	storages.avatars = avatars
	storages.AvatarStorage = avatars

	return storages, nil
}

// Migrate applies the database migrations. It is a no-op for the in-memory
// repository.
func (s *Storages) Migrate() error {
	if s.db == nil {
		return nil
	}
	return s.db.Migrate()
}

// Close releases the database pool and the avatar directory handle.
func (s *Storages) Close() error {
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if s.avatars != nil {
		errs = append(errs, s.avatars.Close())
	}
	return errors.Join(errs...)
}
