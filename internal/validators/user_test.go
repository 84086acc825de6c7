// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-identity/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func validRegisterInput() models.RegisterInput {
	return models.RegisterInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Nick:     "ann",
		Password: "secret",
	}
}

func TestUserValidator_RegisterInput(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.RegisterInput)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.RegisterInput) {}},
		{name: "blank name", mutate: func(in *models.RegisterInput) { in.Name = "  " }, wantErr: ErrEmptyName},
		{name: "empty email", mutate: func(in *models.RegisterInput) { in.Email = "" }, wantErr: ErrEmptyEmail},
		{name: "blank nick", mutate: func(in *models.RegisterInput) { in.Nick = "\t" }, wantErr: ErrEmptyNick},
		{name: "empty password", mutate: func(in *models.RegisterInput) { in.Password = "" }, wantErr: ErrEmptyPassword},
		{name: "optional fields are not required", mutate: func(in *models.RegisterInput) { in.Surname, in.Bio = "", "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegisterInput()
			tt.mutate(&in)

			err := v.Validate(ctx, in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidator_RegisterInputPointerAndFields(t *testing.T) {
	v := NewUserValidator()
	in := validRegisterInput()
	in.Nick = ""

	assert.ErrorIs(t, v.Validate(context.Background(), &in), ErrEmptyNick)
	assert.NoError(t, v.Validate(context.Background(), in, FieldName, FieldEmail))
	assert.ErrorIs(t, v.Validate(context.Background(), in, "unknown"), ErrUnknownField)
}

func TestUserValidator_Credentials(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.Credentials{Email: "a@b.c", Password: "p"}))
	assert.ErrorIs(t, v.Validate(ctx, models.Credentials{Password: "p"}), ErrEmptyEmail)
	assert.ErrorIs(t, v.Validate(ctx, &models.Credentials{Email: "a@b.c"}), ErrEmptyPassword)
}

func TestUserValidator_ProfileUpdate(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{}))
	assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{Bio: strPtr(""), Password: strPtr("")}))
	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Name: strPtr(" ")}), ErrEmptyName)
	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Email: strPtr("")}), ErrEmptyEmail)
	assert.ErrorIs(t, v.Validate(ctx, &models.ProfileUpdate{Nick: strPtr("")}), ErrEmptyNick)
}

func TestUserValidator_Strings(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, "some-id", FieldUserID))
	assert.ErrorIs(t, v.Validate(ctx, "   ", FieldUserID), ErrEmptyUserID)
	assert.ErrorIs(t, v.Validate(ctx, "some-id"), ErrUnknownField)

	for _, name := range []string{"avatar-1.png", "default.png"} {
		assert.NoError(t, v.Validate(ctx, name, FieldFileName), name)
	}
	for _, name := range []string{"", ".", "..", "../secret", "a/b.png", `a\b.png`, "/etc/passwd", "x..png"} {
		assert.ErrorIs(t, v.Validate(ctx, name, FieldFileName), ErrInvalidFileName, name)
	}
}

func TestUserValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewUserValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
