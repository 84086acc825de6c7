package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
)

// memoryUserRepository is the in-memory implementation of [UserRepository].
// It is used when no database DSN is configured. A single mutex guards the
// map, so the uniqueness checks in Insert and UpdateByID are atomic with
// the write that follows them.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	ids   IDGenerator
	now   func() time.Time
	seq   int64
	order map[string]int64
}

// NewMemoryUserRepository constructs an empty in-memory [UserRepository].
func NewMemoryUserRepository(ids IDGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	return &memoryUserRepository{
		users: make(map[string]models.User),
		order: make(map[string]int64),
		ids:   ids,
		now:   time.Now,
	}
}

func (m *memoryUserRepository) FindByEmailOrNick(ctx context.Context, email, nick string) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	email, nick = models.NormalizeEmail(email), models.NormalizeNick(nick)

	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make([]models.User, 0)
	for _, u := range m.sorted() {
		if models.NormalizeEmail(u.Email) == email || models.NormalizeNick(u.Nick) == nick {
			found = append(found, u)
		}
	}
	return found, nil
}

func (m *memoryUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	email = models.NormalizeEmail(email)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if models.NormalizeEmail(u.Email) == email {
			return u, nil
		}
	}
	return models.User{}, ErrNoUserWasFound
}

func (m *memoryUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return u, nil
}

func (m *memoryUserRepository) Insert(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflicts("", user.Email, user.Nick) {
		return models.User{}, ErrUserAlreadyExists
	}

	user.ID = m.ids.Generate()
	user.CreatedAt = m.now().UTC()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Image == "" {
		user.Image = models.DefaultImage
	}

	m.seq++
	m.users[user.ID] = user
	m.order[user.ID] = m.seq

	return user, nil
}

func (m *memoryUserRepository) UpdateByID(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	updated := update.Apply(current)
	if m.conflicts(id, updated.Email, updated.Nick) {
		return models.User{}, ErrUserAlreadyExists
	}

	m.users[id] = updated
	return updated, nil
}

func (m *memoryUserRepository) DeleteByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	delete(m.users, id)
	delete(m.order, id)
	return u, nil
}

func (m *memoryUserRepository) Paginate(ctx context.Context, filter models.UserFilter, page, pageSize int) (models.UserPage, error) {
	if err := ctx.Err(); err != nil {
		return models.UserPage{}, err
	}
	if pageSize <= 0 {
		return models.UserPage{}, ErrInvalidPageSize
	}
	if page < 1 {
		page = 1
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matching := make([]models.User, 0, len(m.users))
	for _, u := range m.sorted() {
		if filter.Role == "" || u.Role == filter.Role {
			matching = append(matching, u)
		}
	}

	total := int64(len(matching))
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
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(matching))
	result.Items = append(result.Items, matching[start:end]...)

	return result, nil
}

func (m *memoryUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sorted(), nil
}

// conflicts reports whether a user other than exceptID already holds email
// or nick. Callers must hold the mutex.
func (m *memoryUserRepository) conflicts(exceptID, email, nick string) bool {
	email, nick = models.NormalizeEmail(email), models.NormalizeNick(nick)
	for id, u := range m.users {
		if id == exceptID {
			continue
		}
		if models.NormalizeEmail(u.Email) == email || models.NormalizeNick(u.Nick) == nick {
			return true
		}
	}
	return false
}

// sorted returns a copy of all users in insertion order. Callers must hold
// the mutex.
func (m *memoryUserRepository) sorted() []models.User {
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return m.order[users[i].ID] < m.order[users[j].ID]
	})
	return users
}
