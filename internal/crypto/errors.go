package crypto

import "errors"

var (
	// ErrMalformedDigest is returned by Verify when the stored digest is not a
	// bcrypt hash this package can read.
	ErrMalformedDigest = errors.New("malformed password digest")
	// ErrPasswordTooLong is returned by Hash for plaintexts over 72 bytes,
	// the input limit of bcrypt.
	ErrPasswordTooLong = errors.New("password is too long")
	// ErrInvalidCost is returned by NewPasswordHasher for a work factor
	// outside the range accepted by bcrypt.
	ErrInvalidCost = errors.New("invalid bcrypt cost")
)
