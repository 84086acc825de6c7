// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-identity/internal/crypto"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/internal/validators"
	"github.com/MKhiriev/go-identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newMemoryIdentitySvc wires the real collaborators over the in-memory
// repository and a temporary avatar directory.
func newMemoryIdentitySvc(t *testing.T) (IdentityService, *store.AvatarFileStorage, string) {
	t.Helper()

	ids := utils.NewUUIDGenerator()
	dir := t.TempDir()
	avatars, err := store.NewAvatarFileStorage(dir, ids, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = avatars.Close() })

	hasher, err := crypto.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testAppConfig()
	svc := NewIdentityService(
		store.NewMemoryUserRepository(ids, logger.Nop()),
		avatars,
		hasher,
		NewTokenService(cfg, logger.Nop()),
		validators.NewUserValidator(),
		cfg,
		logger.Nop(),
	)
	return svc, avatars, dir
}

func register(t *testing.T, svc IdentityService, nick string) models.User {
	t.Helper()
	res, err := svc.Register(context.Background(), models.RegisterInput{
		Name: nick, Nick: nick, Email: nick + "@example.com", Password: "pw-" + nick,
	}, nil)
	require.NoError(t, err)
	require.False(t, res.AlreadyExists)
	return res.User
}

func TestIdentityFlow_DistinctRegistrations(t *testing.T) {
	svc, _, _ := newMemoryIdentitySvc(t)

	a := register(t, svc, "ann")
	b := register(t, svc, "bob")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestIdentityFlow_DuplicateIsCaseInsensitive(t *testing.T) {
	svc, _, _ := newMemoryIdentitySvc(t)
	ctx := context.Background()
	original := register(t, svc, "ann")

	for _, in := range []models.RegisterInput{
		{Name: "X", Nick: "other", Email: "ANN@EXAMPLE.COM", Password: "p"},
		{Name: "X", Nick: "ANN", Email: "other@example.com", Password: "p"},
	} {
		res, err := svc.Register(ctx, in, nil)
		require.NoError(t, err)
		assert.True(t, res.AlreadyExists)
	}

	unchanged, err := svc.GetProfile(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original, unchanged)
}

func TestIdentityFlow_LoginAndToken(t *testing.T) {
	svc, _, _ := newMemoryIdentitySvc(t)
	ctx := context.Background()
	ann := register(t, svc, "ann")

	res, err := svc.Login(ctx, models.Credentials{Email: "ANN@example.com", Password: "pw-ann"})
	require.NoError(t, err)
	assert.Equal(t, ann.ID, res.User.ID)

	claims, err := NewTokenService(testAppConfig(), logger.Nop()).Verify(ctx, res.Token.String())
	require.NoError(t, err)
	assert.Equal(t, ann.ID, claims.UserID())

	_, err = svc.Login(ctx, models.Credentials{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, models.Credentials{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIdentityFlow_Pagination(t *testing.T) {
	svc, _, _ := newMemoryIdentitySvc(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		register(t, svc, fmt.Sprintf("user%d", i))
	}

	first, err := svc.ListUsers(ctx, 1, models.UserFilter{}, models.Claims{})
	require.NoError(t, err)
	assert.Len(t, first.Items, 3)
	assert.Equal(t, int64(7), first.TotalItems)
	assert.Equal(t, int64(3), first.TotalPages)

	last, err := svc.ListUsers(ctx, 3, models.UserFilter{}, models.Claims{})
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)

	beyond, err := svc.ListUsers(ctx, 4, models.UserFilter{}, models.Claims{})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(3), beyond.TotalPages)
}

func TestIdentityFlow_ConcurrentSameEmail(t *testing.T) {
	svc, _, _ := newMemoryIdentitySvc(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Register(ctx, models.RegisterInput{
				Name: "n", Nick: fmt.Sprintf("nick%d", i), Email: "same@example.com", Password: "p",
			}, nil)
			if !assert.NoError(t, err) {
				return
			}
			if !res.AlreadyExists {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	all, err := svc.ListAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIdentityFlow_DeleteUser(t *testing.T) {
	svc, _, _ := newMemoryIdentitySvc(t)
	ctx := context.Background()
	ann := register(t, svc, "ann")
	bob := register(t, svc, "bob")

	asBob := models.Claims{Role: models.RoleUser}
	asBob.Subject = bob.ID

	_, err := svc.DeleteUser(ctx, asBob, ann.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := svc.DeleteUser(ctx, asBob, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, deleted.ID)

	_, err = svc.GetProfile(ctx, bob.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIdentityFlow_UploadAvatar(t *testing.T) {
	svc, _, dir := newMemoryIdentitySvc(t)
	ctx := context.Background()
	ann := register(t, svc, "ann")

	_, err := svc.UploadAvatar(ctx, ann.ID, &models.Upload{OriginalName: "photo.exe", Content: strings.NewReader("MZ")})
	assert.ErrorIs(t, err, ErrInvalidFileType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must be removed")

	profile, err := svc.GetProfile(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultImage, profile.Image)

	res, err := svc.UploadAvatar(ctx, ann.ID, &models.Upload{OriginalName: "photo.png", Content: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, res.File.Name, res.User.Image)
	assert.FileExists(t, filepath.Join(dir, res.File.Name))

	f, err := svc.FetchAvatar(ctx, res.File.Name)
	require.NoError(t, err)
	require.NoError(t, f.Content.Close())

	_, err = svc.FetchAvatar(ctx, "../secret")
	assert.ErrorIs(t, err, ErrInvalidFileName)
}

func TestIdentityFlow_ViewsNeverCarryDigest(t *testing.T) {
	svc, _, _ := newMemoryIdentitySvc(t)
	ctx := context.Background()
	ann := register(t, svc, "ann")

	profile, err := svc.GetProfile(ctx, ann.ID)
	require.NoError(t, err)
	require.NotEmpty(t, profile.Password, "the digest is kept internally")
	digest := profile.Password

	login, err := svc.Login(ctx, models.Credentials{Email: "ann@example.com", Password: "pw-ann"})
	require.NoError(t, err)
	list, err := svc.ListUsers(ctx, 1, models.UserFilter{}, models.Claims{})
	require.NoError(t, err)
	all, err := svc.ListAllUsers(ctx)
	require.NoError(t, err)

	for name, view := range map[string]any{"profile": profile, "login": login.User, "list": list.Items, "all": all} {
		data, err := json.Marshal(view)
		require.NoError(t, err)
		assert.NotContains(t, string(data), digest, name)
		assert.NotContains(t, string(data), `"password"`, name)
	}
}
