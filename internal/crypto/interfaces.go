package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into storable digests and checks
// plaintexts against them. It knows nothing about users, storage or transport.
type PasswordHasher interface {
	// Hash returns a salted one-way digest of plaintext. Two calls with the
	// same input produce different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A mismatch is
	// (false, nil); a digest that cannot be parsed is (false, ErrMalformedDigest).
	Verify(plaintext, digest string) (bool, error)
}
