// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/crypto"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/MKhiriev/go-identity/internal/validators"
	"github.com/MKhiriev/go-identity/models"
)

var allowedAvatarExtensions = []string{"png", "jpg", "jpeg", "gif"}

// identityService is the concrete implementation of IdentityService.
type identityService struct {
	// userRepository is the data-access layer for user accounts.
	userRepository store.UserRepository

	// avatarStorage keeps uploaded avatar images.
	avatarStorage store.AvatarStorage

	// passwordHasher produces and checks password digests.
	passwordHasher crypto.PasswordHasher

	// tokenService issues a token on successful login.
	tokenService TokenService

	validator validators.Validator

	// pageSize is the number of users per page of ListUsers.
	pageSize int

	logger *logger.Logger
}

// NewIdentityService wires the account use cases to their dependencies.
// All state is read-only after construction.
func NewIdentityService(
	userRepository store.UserRepository,
	avatarStorage store.AvatarStorage,
	passwordHasher crypto.PasswordHasher,
	tokenService TokenService,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) IdentityService {
	return &identityService{
		userRepository: userRepository,
		avatarStorage:  avatarStorage,
		passwordHasher: passwordHasher,
		tokenService:   tokenService,
		validator:      validator,
		pageSize:       cfg.PageSize,
		logger:         logger,
	}
}

// Register creates a new account.
//
// Email and nick are normalized before the duplicate check. The check is
// advisory: a concurrent insert that hits the store's unique constraint is
// reported the same way, as RegisterResult.AlreadyExists.
//
// The requested role is applied only when actor is an admin.
func (s *identityService) Register(ctx context.Context, input models.RegisterInput, actor *models.Claims) (models.RegisterResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, input); err != nil {
		log.Error().Err(err).Str("func", "*identityService.Register").Msg("invalid user data provided")
		return models.RegisterResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	role, err := roleFor(input.Role, actor)
	if err != nil {
		return models.RegisterResult{}, err
	}

	email, nick := models.NormalizeEmail(input.Email), models.NormalizeNick(input.Nick)

	existing, err := s.userRepository.FindByEmailOrNick(ctx, email, nick)
	if err != nil {
		log.Err(err).Str("func", "*identityService.Register").Msg("user search by email or nick failed")
		return models.RegisterResult{}, storeError(err)
	}
	if len(existing) > 0 {
		log.Info().Str("func", "*identityService.Register").Str("nick", nick).Msg("user already exists")
		return models.RegisterResult{AlreadyExists: true, CreatedBy: actor}, nil
	}

	digest, err := s.hash(input.Password)
	if err != nil {
		log.Err(err).Str("func", "*identityService.Register").Msg("error hashing password")
		return models.RegisterResult{}, err
	}

	created, err := s.userRepository.Insert(ctx, models.User{
		Name:     strings.TrimSpace(input.Name),
		Surname:  input.Surname,
		Bio:      input.Bio,
		Nick:     nick,
		Email:    email,
		Password: digest,
		Role:     role,
		Image:    models.DefaultImage,
	})
	if errors.Is(err, store.ErrUserAlreadyExists) {
		log.Info().Str("func", "*identityService.Register").Str("nick", nick).Msg("user already exists")
		return models.RegisterResult{AlreadyExists: true, CreatedBy: actor}, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*identityService.Register").Msg("user creation ended with error")
		return models.RegisterResult{}, storeError(err)
	}

	log.Info().Str("func", "*identityService.Register").Str("user_id", created.ID).Msg("user registered")
	return models.RegisterResult{User: created, CreatedBy: actor}, nil
}

// Login authenticates a user by email and password and issues a token.
//
// Returns ErrUserNotFound for an unknown email and ErrWrongPassword when the
// password does not match the stored digest.
func (s *identityService) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, creds); err != nil {
		log.Error().Err(err).Str("func", "*identityService.Login").Msg("invalid credentials provided")
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.FindByEmail(ctx, models.NormalizeEmail(creds.Email))
	if err != nil {
		log.Err(err).Str("func", "*identityService.Login").Msg("user search by email failed")
		return models.LoginResult{}, storeError(err)
	}

	ok, err := s.passwordHasher.Verify(creds.Password, user.Password)
	if err != nil {
		log.Err(err).Str("func", "*identityService.Login").Str("user_id", user.ID).Msg("error verifying password")
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !ok {
		log.Info().Str("func", "*identityService.Login").Str("user_id", user.ID).Msg("wrong password")
		return models.LoginResult{}, ErrWrongPassword
	}

	token, err := s.tokenService.Issue(ctx, user)
	if err != nil {
		return models.LoginResult{}, err
	}

	return models.LoginResult{
		User:  models.LoginUser{ID: user.ID, Name: user.Name, Nick: user.Nick},
		Token: token,
	}, nil
}

func (s *identityService) GetProfile(ctx context.Context, id string) (models.User, error) {
	id = strings.TrimSpace(id)
	if err := s.validator.Validate(ctx, id, validators.FieldUserID); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*identityService.GetProfile").Str("user_id", id).Msg("user search by id failed")
		return models.User{}, storeError(err)
	}

	return user, nil
}

// ListUsers returns the requested page of users matching filter. Pages below
// 1 are treated as 1 and pages past the end come back empty.
func (s *identityService) ListUsers(ctx context.Context, page int, filter models.UserFilter, actor models.Claims) (models.UserList, error) {
	if page < 1 {
		page = 1
	}
	switch filter.Role {
	case "", models.RoleUser, models.RoleAdmin:
	default:
		return models.UserList{}, fmt.Errorf("%w: unknown role %q", ErrInvalidDataProvided, filter.Role)
	}

	users, err := s.userRepository.Paginate(ctx, filter, page, s.pageSize)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*identityService.ListUsers").Int("page", page).Msg("user pagination failed")
		return models.UserList{}, storeError(err)
	}

	return models.UserList{UserPage: users, LoggedInUser: actor}, nil
}

// UpdateProfile applies the allow-listed fields of update to the actor's
// account. A new email or nick must not belong to another user. A non-empty
// password is hashed; an empty one leaves the current digest in place.
func (s *identityService) UpdateProfile(ctx context.Context, actorID string, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, update); err != nil {
		log.Error().Err(err).Str("func", "*identityService.UpdateProfile").Msg("invalid profile update")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	current, err := s.userRepository.FindByID(ctx, actorID)
	if err != nil {
		log.Err(err).Str("func", "*identityService.UpdateProfile").Str("user_id", actorID).Msg("user search by id failed")
		return models.User{}, storeError(err)
	}

	changes := models.UserUpdate{
		Name:    update.Name,
		Surname: update.Surname,
		Bio:     update.Bio,
	}
	if update.Email != nil {
		email := models.NormalizeEmail(*update.Email)
		changes.Email = &email
	}
	if update.Nick != nil {
		nick := models.NormalizeNick(*update.Nick)
		changes.Nick = &nick
	}
	if update.Password != nil && *update.Password != "" {
		digest, err := s.hash(*update.Password)
		if err != nil {
			log.Err(err).Str("func", "*identityService.UpdateProfile").Msg("error hashing password")
			return models.User{}, err
		}
		changes.Password = &digest
	}

	if changes.Email != nil || changes.Nick != nil {
		wanted := changes.Apply(current)
		if err := s.checkTaken(ctx, current.ID, wanted.Email, wanted.Nick); err != nil {
			return models.User{}, err
		}
	}

	updated, err := s.userRepository.UpdateByID(ctx, current.ID, changes)
	if err != nil {
		log.Err(err).Str("func", "*identityService.UpdateProfile").Str("user_id", current.ID).Msg("user update failed")
		return models.User{}, storeError(err)
	}

	return updated, nil
}

// UploadAvatar stores the upload first and validates its extension
// afterwards. A rejected or orphaned file is removed on a best-effort basis.
func (s *identityService) UploadAvatar(ctx context.Context, actorID string, upload *models.Upload) (models.AvatarUpload, error) {
	log := logger.FromContext(ctx)

	if upload == nil || upload.Content == nil {
		return models.AvatarUpload{}, ErrNoFileProvided
	}

	stored, err := s.avatarStorage.Save(ctx, upload.OriginalName, upload.Content)
	if err != nil {
		log.Err(err).Str("func", "*identityService.UploadAvatar").Msg("error storing avatar")
		return models.AvatarUpload{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if !isAllowedAvatar(upload.OriginalName) {
		log.Info().Str("func", "*identityService.UploadAvatar").Str("file", upload.OriginalName).Msg("invalid avatar extension")
		s.discardAvatar(ctx, stored.Name)
		return models.AvatarUpload{}, ErrInvalidFileType
	}

	updated, err := s.userRepository.UpdateByID(ctx, actorID, models.UserUpdate{Image: &stored.Name})
	if err != nil {
		log.Err(err).Str("func", "*identityService.UploadAvatar").Str("user_id", actorID).Msg("error setting avatar")
		s.discardAvatar(ctx, stored.Name)
		return models.AvatarUpload{}, storeError(err)
	}

	return models.AvatarUpload{User: updated, File: stored}, nil
}

func (s *identityService) FetchAvatar(ctx context.Context, filename string) (models.AvatarFile, error) {
	if err := s.validator.Validate(ctx, filename, validators.FieldFileName); err != nil {
		return models.AvatarFile{}, fmt.Errorf("%w: %w", ErrInvalidFileName, err)
	}

	file, err := s.avatarStorage.Open(ctx, filename)
	if err != nil {
		return models.AvatarFile{}, storeError(err)
	}

	return file, nil
}

// DeleteUser removes targetID. Only an admin or the target itself may do so.
func (s *identityService) DeleteUser(ctx context.Context, actor models.Claims, targetID string) (models.User, error) {
	log := logger.FromContext(ctx)

	targetID = strings.TrimSpace(targetID)
	if err := s.validator.Validate(ctx, targetID, validators.FieldUserID); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if !actor.IsAdmin() && actor.UserID() != targetID {
		log.Warn().Str("func", "*identityService.DeleteUser").Str("actor", actor.UserID()).Str("target", targetID).Msg("delete forbidden")
		return models.User{}, ErrForbidden
	}

	deleted, err := s.userRepository.DeleteByID(ctx, targetID)
	if err != nil {
		log.Err(err).Str("func", "*identityService.DeleteUser").Str("target", targetID).Msg("user deletion failed")
		return models.User{}, storeError(err)
	}

	log.Info().Str("func", "*identityService.DeleteUser").Str("actor", actor.UserID()).Str("target", targetID).Msg("user deleted")
	return deleted, nil
}

func (s *identityService) ListAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*identityService.ListAllUsers").Msg("user listing failed")
		return nil, storeError(err)
	}

	return users, nil
}

func (s *identityService) hash(password string) (string, error) {
	digest, err := s.passwordHasher.Hash(password)
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return digest, nil
}

// checkTaken returns ErrUserAlreadyExists if a user other than selfID holds
// email or nick.
func (s *identityService) checkTaken(ctx context.Context, selfID, email, nick string) error {
	found, err := s.userRepository.FindByEmailOrNick(ctx, email, nick)
	if err != nil {
		return storeError(err)
	}
	for _, u := range found {
		if u.ID != selfID {
			return ErrUserAlreadyExists
		}
	}
	return nil
}

func (s *identityService) discardAvatar(ctx context.Context, name string) {
	if err := s.avatarStorage.Delete(ctx, name); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*identityService.discardAvatar").Str("file", name).Msg("error deleting stored avatar")
	}
}

func roleFor(requested string, actor *models.Claims) (string, error) {
	if requested == "" || actor == nil || !actor.IsAdmin() {
		return models.RoleUser, nil
	}
	switch requested {
	case models.RoleUser, models.RoleAdmin:
		return requested, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidDataProvided, requested)
	}
}

func isAllowedAvatar(originalName string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	for _, allowed := range allowedAvatarExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// storeError translates repository and file storage errors into service
// errors. Anything unrecognised is reported as ErrStoreUnavailable.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, store.ErrUserAlreadyExists):
		return fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
	case errors.Is(err, store.ErrFileNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
