package store

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-identity/models"
	sq "github.com/Masterminds/squirrel"
)

var usersTable = models.User{}.TableName()

// userColumns is the column order every user query selects and every scan
// expects (see scanUser).
var userColumns = []string{
	"id",
	"name",
	"surname",
	"bio",
	"nick",
	"email",
	"password",
	"role",
	"image",
	"created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func returningUserColumns() string {
	return "RETURNING " + strings.Join(userColumns, ", ")
}

func buildFindByEmailOrNickQuery(email, nick string) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Or{
			sq.Expr("lower(email) = lower(?)", email),
			sq.Expr("lower(nick) = lower(?)", nick),
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindByEmailQuery(email string) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Expr("lower(email) = lower(?)", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindByIDQuery(id string) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertUserQuery(user models.User) (string, []any, error) {
	query, args, err := psql.
		Insert(usersTable).
		Columns("id", "name", "surname", "bio", "nick", "email", "password", "role", "image").
		Values(user.ID, user.Name, user.Surname, user.Bio, user.Nick, user.Email, user.Password, user.Role, user.Image).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateUserQuery sets only the non-nil fields of update. The caller
// must not pass an empty update.
func buildUpdateUserQuery(id string, update models.UserUpdate) (string, []any, error) {
	builder := psql.Update(usersTable)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Surname != nil {
		builder = builder.Set("surname", *update.Surname)
	}
	if update.Bio != nil {
		builder = builder.Set("bio", *update.Bio)
	}
	if update.Nick != nil {
		builder = builder.Set("nick", *update.Nick)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.Password != nil {
		builder = builder.Set("password", *update.Password)
	}
	if update.Image != nil {
		builder = builder.Set("image", *update.Image)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteUserQuery(id string) (string, []any, error) {
	query, args, err := psql.
		Delete(usersTable).
		Where(sq.Eq{"id": id}).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func applyUserFilter(builder sq.SelectBuilder, filter models.UserFilter) sq.SelectBuilder {
	if filter.Role != "" {
		builder = builder.Where(sq.Eq{"role": filter.Role})
	}
	return builder
}

func buildCountUsersQuery(filter models.UserFilter) (string, []any, error) {
	query, args, err := applyUserFilter(psql.Select("count(*)").From(usersTable), filter).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildPaginateUsersQuery selects one 1-based page ordered by creation time,
// with the id as a tiebreaker so pages never overlap.
func buildPaginateUsersQuery(filter models.UserFilter, page, pageSize int) (string, []any, error) {
	builder := applyUserFilter(psql.Select(userColumns...).From(usersTable), filter).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindAllUsersQuery() (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(usersTable).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
