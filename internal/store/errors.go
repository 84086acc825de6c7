package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an insert or update would give two
	// users the same normalized email or nick.
	ErrUserAlreadyExists = errors.New("user with this email or nick already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrFileNotFound is returned by avatar storage when the named file does
	// not exist.
	ErrFileNotFound = errors.New("file was not found")

	// ErrStorageUnavailable is returned when the backing store cannot serve
	// the request right now (connection loss, deadlock, shutdown).
	ErrStorageUnavailable = errors.New("storage is unavailable")

	// ErrInvalidPageSize is returned by Paginate for a non-positive page size.
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan user rows")

	// ErrDBIsNotConfigured is returned when a database operation is requested
	// while the service runs on the in-memory repository.
	ErrDBIsNotConfigured = errors.New("database is not configured")
)
