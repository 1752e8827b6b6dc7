package realms

import (
	"context"
	"sync"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the realm repository
type InMemoryRepository struct {
	mu     sync.RWMutex
	realms map[string]*entities.Realm
}

// NewInMemoryRepository creates a new in-memory realm repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		realms: make(map[string]*entities.Realm),
	}
}

// Create stores a new realm
func (r *InMemoryRepository) Create(ctx context.Context, realm *entities.Realm) error {
	if realm == nil {
		return gqerr.InvalidArgument("realm cannot be nil")
	}
	if realm.ID == "" {
		return gqerr.InvalidArgument("realm ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.realms[realm.ID]; exists {
		return gqerr.AlreadyExistsf("realm '%s' already exists", realm.ID).
			WithMeta("realm_id", realm.ID)
	}

	r.realms[realm.ID] = realm.Clone()
	return nil
}

// Get retrieves a realm by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Realm, error) {
	if id == "" {
		return nil, gqerr.InvalidArgument("realm ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	realm, exists := r.realms[id]
	if !exists {
		return nil, gqerr.NotFoundf("realm '%s' not found", id).
			WithMeta("realm_id", id)
	}

	return realm.Clone(), nil
}

// Update updates an existing realm
func (r *InMemoryRepository) Update(ctx context.Context, realm *entities.Realm) error {
	if realm == nil {
		return gqerr.InvalidArgument("realm cannot be nil")
	}
	if realm.ID == "" {
		return gqerr.InvalidArgument("realm ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.realms[realm.ID]; !exists {
		return gqerr.NotFoundf("realm '%s' not found", realm.ID).
			WithMeta("realm_id", realm.ID)
	}

	r.realms[realm.ID] = realm.Clone()
	return nil
}

// Delete removes a realm
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return gqerr.InvalidArgument("realm ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.realms[id]; !exists {
		return gqerr.NotFoundf("realm '%s' not found", id).
			WithMeta("realm_id", id)
	}

	delete(r.realms, id)
	return nil
}

// List retrieves all realms in unspecified order
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.Realm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Realm, 0, len(r.realms))
	for _, realm := range r.realms {
		result = append(result, realm.Clone())
	}
	return result, nil
}

// Seed replaces the stored set wholesale
func (r *InMemoryRepository) Seed(ctx context.Context, realms []*entities.Realm) error {
	for _, realm := range realms {
		if realm == nil {
			return gqerr.InvalidArgument("realm cannot be nil")
		}
		if realm.ID == "" {
			return gqerr.InvalidArgument("realm ID is required")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make(map[string]*entities.Realm, len(realms))
	for _, realm := range realms {
		if _, exists := replacement[realm.ID]; exists {
			return gqerr.AlreadyExistsf("duplicate realm '%s' in seed", realm.ID).
				WithMeta("realm_id", realm.ID)
		}
		replacement[realm.ID] = realm.Clone()
	}

	r.realms = replacement
	return nil
}
