// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildFindByEmailOrNickQuery(t *testing.T) {
	query, args, err := buildFindByEmailOrNickQuery("a@b.c", "nick")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from users")
	require.Contains(t, q, "lower(email) = lower($1)")
	require.Contains(t, q, " or ")
	require.Contains(t, q, "lower(nick) = lower($2)")
	require.Equal(t, []any{"a@b.c", "nick"}, args)

	for _, c := range userColumns {
		require.Contains(t, q, c)
	}
}

func Test_buildInsertUserQuery(t *testing.T) {
	user := models.User{ID: "id", Name: "n", Nick: "k", Email: "e", Password: "p", Role: models.RoleUser, Image: models.DefaultImage}

	query, args, err := buildInsertUserQuery(user)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO users"))
	assert.Contains(t, query, "$9")
	assert.NotContains(t, query, "$10")
	assert.Contains(t, query, "RETURNING id, name, surname, bio, nick, email, password, role, image, created_at")
	assert.Len(t, args, 9)
}

func Test_buildUpdateUserQuery(t *testing.T) {
	pw := "digest"
	bio := ""

	tests := []struct {
		name       string
		update     models.UserUpdate
		wantSet    string
		wantArgs   []any
		notContain []string
	}{
		{
			name:     "password only",
			update:   models.UserUpdate{Password: &pw},
			wantSet:  "SET password = $1 WHERE id = $2",
			wantArgs: []any{"digest", "uid"},
		},
		{
			name:       "empty string is still applied",
			update:     models.UserUpdate{Bio: &bio},
			wantSet:    "SET bio = $1 WHERE id = $2",
			wantArgs:   []any{"", "uid"},
			notContain: []string{"password", "image ="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateUserQuery("uid", tt.update)
			require.NoError(t, err)
			assert.Contains(t, query, tt.wantSet)
			assert.Equal(t, tt.wantArgs, args)
			setPart := query[:strings.Index(query, "RETURNING")]
			for _, s := range tt.notContain {
				assert.NotContains(t, setPart, s)
			}
		})
	}
}

func Test_buildUpdateUserQuery_EmptyUpdateFails(t *testing.T) {
	_, _, err := buildUpdateUserQuery("uid", models.UserUpdate{})
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}

func Test_buildPaginateUsersQuery(t *testing.T) {
	tests := []struct {
		name       string
		filter     models.UserFilter
		page, size int
		want       string
		wantArgs   int
	}{
		{name: "first page", page: 1, size: 3, want: "ORDER BY created_at ASC, id ASC LIMIT 3 OFFSET 0"},
		{name: "third page", page: 3, size: 3, want: "LIMIT 3 OFFSET 6"},
		{name: "role filter", filter: models.UserFilter{Role: models.RoleAdmin}, page: 1, size: 10, want: "WHERE role = $1", wantArgs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildPaginateUsersQuery(tt.filter, tt.page, tt.size)
			require.NoError(t, err)
			assert.Contains(t, query, tt.want)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func Test_buildCountUsersQuery(t *testing.T) {
	query, args, err := buildCountUsersQuery(models.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT count(*) FROM users", query)
	assert.Empty(t, args)
}
