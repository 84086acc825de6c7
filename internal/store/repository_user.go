package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// IDGenerator produces identifiers for new users.
type IDGenerator interface {
	Generate() string
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, update and deletion against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	ids    IDGenerator
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, ids IDGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		ids:    ids,
		logger: logger,
	}
}

// FindByEmailOrNick returns every user whose email or nick equals the given
// values ignoring case. Used by registration as a duplicate pre-check.
func (r *userRepository) FindByEmailOrNick(ctx context.Context, email, nick string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindByEmailOrNickQuery(email, nick)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindByEmailOrNick").Msg("failed to create query")
		return nil, err
	}

	return r.queryUsers(ctx, "*userRepository.FindByEmailOrNick", query, args)
}

// FindByEmail returns the user registered with email.
//
// Error handling:
//   - no row → [ErrNoUserWasFound].
//   - retryable driver error → [ErrStorageUnavailable].
//   - any other driver error → [ErrExecutingQuery].
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindByEmailQuery(email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindByEmail").Msg("failed to create query")
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.FindByEmail", query, args)
}

// FindByID returns the user with the given ID. Identifiers that are not
// UUIDs cannot exist and yield [ErrNoUserWasFound] without a round-trip.
func (r *userRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, ErrNoUserWasFound
	}

	query, args, err := buildFindByIDQuery(id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindByID").Msg("failed to create query")
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.FindByID", query, args)
}

// Insert persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// The INSERT returns all columns via a RETURNING clause, so the caller
// receives the canonical database representation of the new account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → see [userRepository.wrapError].
func (r *userRepository) Insert(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.ID = r.ids.Generate()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Image == "" {
		user.Image = models.DefaultImage
	}

	query, args, err := buildInsertUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Insert").Msg("failed to create query")
		return models.User{}, err
	}

	created, err := r.queryUser(ctx, "*userRepository.Insert", query, args)
	if err != nil {
		return models.User{}, err
	}

	log.Info().Str("func", "*userRepository.Insert").Str("user_id", created.ID).Msg("user created")
	return created, nil
}

// UpdateByID applies update and returns the stored row. An empty update
// reads the current row instead of issuing an UPDATE.
func (r *userRepository) UpdateByID(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.FindByID(ctx, id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, ErrNoUserWasFound
	}

	query, args, err := buildUpdateUserQuery(id, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateByID").Msg("failed to create query")
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.UpdateByID", query, args)
}

// DeleteByID removes the user and returns the deleted row. Publications of
// the user are removed by the ON DELETE CASCADE foreign key.
func (r *userRepository) DeleteByID(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, ErrNoUserWasFound
	}

	query, args, err := buildDeleteUserQuery(id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteByID").Msg("failed to create query")
		return models.User{}, err
	}

	deleted, err := r.queryUser(ctx, "*userRepository.DeleteByID", query, args)
	if err != nil {
		return models.User{}, err
	}

	log.Info().Str("func", "*userRepository.DeleteByID").Str("user_id", deleted.ID).Msg("user deleted")
	return deleted, nil
}

// Paginate counts the users matching filter and loads the requested page.
// Pages below 1 are treated as the first page.
func (r *userRepository) Paginate(ctx context.Context, filter models.UserFilter, page, pageSize int) (models.UserPage, error) {
	log := logger.FromContext(ctx)

	if pageSize <= 0 {
		return models.UserPage{}, ErrInvalidPageSize
	}
	if page < 1 {
		page = 1
	}

	countQuery, countArgs, err := buildCountUsersQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Paginate").Msg("failed to create count query")
		return models.UserPage{}, err
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.Paginate").Msg("failed to count users")
		return models.UserPage{}, r.wrapError(err)
	}

	result := models.UserPage{
		Items:      []models.User{},
		TotalItems: total,
		TotalPages: totalPages(total, pageSize),
		Page:       page,
		PageSize:   pageSize,
	}
	if int64(page) > result.TotalPages {
		return result, nil
	}

	query, args, err := buildPaginateUsersQuery(filter, page, pageSize)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Paginate").Msg("failed to create page query")
		return models.UserPage{}, err
	}

	users, err := r.queryUsers(ctx, "*userRepository.Paginate", query, args)
	if err != nil {
		return models.UserPage{}, err
	}
	result.Items = users

	return result, nil
}

// FindAll returns every user ordered by creation time.
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindAllUsersQuery()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("failed to create query")
		return nil, err
	}

	return r.queryUsers(ctx, "*userRepository.FindAll", query, args)
}

func (r *userRepository) queryUser(ctx context.Context, funcName, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error executing query")
		}
		return models.User{}, r.wrapError(err)
	}

	return user, nil
}

func (r *userRepository) queryUsers(ctx context.Context, funcName, query string, args []any) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, r.wrapError(err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating rows")
		return nil, r.wrapError(err)
	}

	return users, nil
}

// wrapError translates driver errors into the package sentinels.
func (r *userRepository) wrapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNoUserWasFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return ErrUserAlreadyExists
	case r.db.errorClassificator != nil && r.db.errorClassificator.IsRetryable(err):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Bio,
		&user.Nick,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Image,
		&user.CreatedAt,
	)
	return user, err
}

func totalPages(total int64, pageSize int) int64 {
	if total == 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}
