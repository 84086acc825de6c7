// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
)

const avatarFilePrefix = "avatar-"

// AvatarFileStorage is the file-system implementation of [AvatarStorage].
//
// Every access goes through an [os.Root] opened on the avatar directory, so
// a name can never resolve to a file outside of it, whether by "..",
// an absolute path or a symlink.
type AvatarFileStorage struct {
	dir    string
	root   *os.Root
	ids    IDGenerator
	logger *logger.Logger
}

// NewAvatarFileStorage creates dir if needed and returns an [AvatarStorage]
// rooted at it. Close must be called to release the directory handle.
func NewAvatarFileStorage(dir string, ids IDGenerator, logger *logger.Logger) (*AvatarFileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating avatar directory %q: %w", dir, err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("error opening avatar directory %q: %w", dir, err)
	}

	logger.Debug().Str("dir", dir).Msg("creating avatar file storage")
	return &AvatarFileStorage{
		dir:    dir,
		root:   root,
		ids:    ids,
		logger: logger,
	}, nil
}

// Save writes r to a new file named "avatar-<uuid><ext>", where ext is the
// lower-cased extension of originalName. The file is created exclusively;
// a partially written file is removed on failure.
func (s *AvatarFileStorage) Save(ctx context.Context, originalName string, r io.Reader) (models.StoredFile, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return models.StoredFile{}, err
	}

	ext := safeExtension(originalName)
	name := avatarFilePrefix + s.ids.Generate() + ext

	f, err := s.root.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		log.Err(err).Str("func", "*AvatarFileStorage.Save").Str("file", name).Msg("error creating file")
		return models.StoredFile{}, fmt.Errorf("error creating avatar file: %w", err)
	}

	written, err := io.Copy(f, r)
	closeErr := f.Close()
	if err = errors.Join(err, closeErr); err != nil {
		log.Err(err).Str("func", "*AvatarFileStorage.Save").Str("file", name).Msg("error writing file")
		_ = s.root.Remove(name)
		return models.StoredFile{}, fmt.Errorf("error writing avatar file: %w", err)
	}

	log.Debug().Str("func", "*AvatarFileStorage.Save").Str("file", name).Int64("size", written).Msg("avatar stored")

	return models.StoredFile{
		OriginalName: originalName,
		Name:         name,
		Path:         filepath.Join(s.dir, name),
		Size:         written,
		MimeType:     mime.TypeByExtension(ext),
	}, nil
}

// Open returns the named regular file. Missing files, directories and names
// that are not a single path element all yield [ErrFileNotFound].
func (s *AvatarFileStorage) Open(ctx context.Context, name string) (models.AvatarFile, error) {
	if err := ctx.Err(); err != nil {
		return models.AvatarFile{}, err
	}

	if !isFlatName(name) {
		return models.AvatarFile{}, ErrFileNotFound
	}

	f, err := s.root.Open(name)
	if err != nil {
		return models.AvatarFile{}, s.wrapError(err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return models.AvatarFile{}, fmt.Errorf("error reading avatar file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return models.AvatarFile{}, ErrFileNotFound
	}

	return models.AvatarFile{
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Content: f,
	}, nil
}

// Delete removes the named file.
func (s *AvatarFileStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !isFlatName(name) {
		return ErrFileNotFound
	}

	if err := s.root.Remove(name); err != nil {
		return s.wrapError(err)
	}
	return nil
}

// Close releases the directory handle.
func (s *AvatarFileStorage) Close() error {
	return s.root.Close()
}

func (s *AvatarFileStorage) wrapError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	return fmt.Errorf("avatar file error: %w", err)
}

// isFlatName reports whether name refers to an entry directly inside the
// avatar directory.
func isFlatName(name string) bool {
	return fs.ValidPath(name) && name != "." && !strings.ContainsAny(name, `/\`)
}

// safeExtension returns the lower-cased extension of name if it only holds
// letters and digits, and an empty string otherwise.
func safeExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 16 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
