package users

import (
	"context"
	"sync"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the user repository
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

// NewInMemoryRepository creates a new in-memory user repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		users: make(map[string]*entities.User),
	}
}

// Create stores a new user
func (r *InMemoryRepository) Create(ctx context.Context, user *entities.User) error {
	if user == nil {
		return gqerr.InvalidArgument("user cannot be nil")
	}
	if user.Username == "" {
		return gqerr.InvalidArgument("username is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return gqerr.AlreadyExistsf("user '%s' already exists", user.Username).
			WithMeta("username", user.Username)
	}

	r.users[user.Username] = user.Clone()
	return nil
}

// Get retrieves a user by username
func (r *InMemoryRepository) Get(ctx context.Context, username string) (*entities.User, error) {
	if username == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[username]
	if !exists {
		return nil, gqerr.NotFoundf("user '%s' not found", username).
			WithMeta("username", username)
	}

	return user.Clone(), nil
}

// Update updates an existing user
func (r *InMemoryRepository) Update(ctx context.Context, user *entities.User) error {
	if user == nil {
		return gqerr.InvalidArgument("user cannot be nil")
	}
	if user.Username == "" {
		return gqerr.InvalidArgument("username is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; !exists {
		return gqerr.NotFoundf("user '%s' not found", user.Username).
			WithMeta("username", user.Username)
	}

	r.users[user.Username] = user.Clone()
	return nil
}

// Delete removes a user
func (r *InMemoryRepository) Delete(ctx context.Context, username string) error {
	if username == "" {
		return gqerr.InvalidArgument("username is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[username]; !exists {
		return gqerr.NotFoundf("user '%s' not found", username).
			WithMeta("username", username)
	}

	delete(r.users, username)
	return nil
}

// List retrieves all users in unspecified order
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user.Clone())
	}
	return result, nil
}

// Seed replaces the stored set wholesale
func (r *InMemoryRepository) Seed(ctx context.Context, users []*entities.User) error {
	for _, user := range users {
		if user == nil {
			return gqerr.InvalidArgument("user cannot be nil")
		}
		if user.Username == "" {
			return gqerr.InvalidArgument("username is required")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make(map[string]*entities.User, len(users))
	for _, user := range users {
		if _, exists := replacement[user.Username]; exists {
			return gqerr.AlreadyExistsf("duplicate user '%s' in seed", user.Username).
				WithMeta("username", user.Username)
		}
		replacement[user.Username] = user.Clone()
	}

	r.users = replacement
	return nil
}
