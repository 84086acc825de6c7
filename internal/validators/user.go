package validators

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-identity/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldName targets the display name.
	FieldName = "name"

	// FieldEmail targets the login email.
	FieldEmail = "email"

	// FieldNick targets the public handle.
	FieldNick = "nick"

	// FieldPassword targets the plaintext password.
	FieldPassword = "password"

	// FieldUserID targets a user identifier given as a string.
	FieldUserID = "user_id"

	// FieldFileName targets an avatar file name given as a string.
	FieldFileName = "file_name"
)

// UserValidator checks the inputs accepted by the identity service.
type UserValidator struct {
}

// NewUserValidator returns a [Validator] for user inputs.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the type of obj. A plain string is validated as the
// single field named in fields (FieldUserID or FieldFileName).
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterInput:
		return v.validateRegisterInput(ctx, value, fields...)
	case *models.RegisterInput:
		return v.validateRegisterInput(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, *value, fields...)

	case string:
		return v.validateString(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterInput(ctx context.Context, input models.RegisterInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldNick, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if isBlank(input.Name) {
				return ErrEmptyName
			}
		case FieldEmail:
			if isBlank(input.Email) {
				return ErrEmptyEmail
			}
		case FieldNick:
			if isBlank(input.Nick) {
				return ErrEmptyNick
			}
		case FieldPassword:
			if input.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateCredentials(ctx context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if isBlank(creds.Email) {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateProfileUpdate only checks fields that are present: a present name,
// email or nick must not be blank. An empty password means "keep the
// current one" and is accepted.
func (v *UserValidator) validateProfileUpdate(ctx context.Context, update models.ProfileUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldNick}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if update.Name != nil && isBlank(*update.Name) {
				return ErrEmptyName
			}
		case FieldEmail:
			if update.Email != nil && isBlank(*update.Email) {
				return ErrEmptyEmail
			}
		case FieldNick:
			if update.Nick != nil && isBlank(*update.Nick) {
				return ErrEmptyNick
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateString(ctx context.Context, value string, fields ...string) error {
	if len(fields) != 1 {
		return ErrUnknownField
	}

	switch fields[0] {
	case FieldUserID:
		if isBlank(value) {
			return ErrEmptyUserID
		}
	case FieldFileName:
		if !isPlainFileName(value) {
			return ErrInvalidFileName
		}
	default:
		return ErrUnknownField
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isPlainFileName reports whether name is a single path element with no
// separators or parent references.
func isPlainFileName(name string) bool {
	if name == "" || name == "." || strings.Contains(name, "..") {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
