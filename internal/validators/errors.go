package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName       = errors.New("name is required")
	ErrEmptyEmail      = errors.New("email is required")
	ErrEmptyNick       = errors.New("nick is required")
	ErrEmptyPassword   = errors.New("password is required")
	ErrEmptyUserID     = errors.New("user ID is required")
	ErrInvalidFileName = errors.New("invalid file name")
)
