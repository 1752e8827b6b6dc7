package characters

import (
	"context"
	"sync"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character repository
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*entities.Character
}

// NewInMemoryRepository creates a new in-memory character repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		characters: make(map[string]*entities.Character),
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return gqerr.InvalidArgument("character cannot be nil")
	}
	if character.ID == "" {
		return gqerr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[character.ID]; exists {
		return gqerr.AlreadyExistsf("character '%s' already exists", character.ID).
			WithMeta("char_id", character.ID)
	}

	r.characters[character.ID] = character.Clone()
	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, gqerr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	character, exists := r.characters[id]
	if !exists {
		return nil, gqerr.NotFoundf("character '%s' not found", id).
			WithMeta("char_id", id)
	}

	return character.Clone(), nil
}

// Update updates an existing character
func (r *InMemoryRepository) Update(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return gqerr.InvalidArgument("character cannot be nil")
	}
	if character.ID == "" {
		return gqerr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[character.ID]; !exists {
		return gqerr.NotFoundf("character '%s' not found", character.ID).
			WithMeta("char_id", character.ID)
	}

	r.characters[character.ID] = character.Clone()
	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return gqerr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return gqerr.NotFoundf("character '%s' not found", id).
			WithMeta("char_id", id)
	}

	delete(r.characters, id)
	return nil
}

// List retrieves all characters in unspecified order
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Character, 0, len(r.characters))
	for _, character := range r.characters {
		result = append(result, character.Clone())
	}
	return result, nil
}

// Seed replaces the stored set wholesale
func (r *InMemoryRepository) Seed(ctx context.Context, characters []*entities.Character) error {
	for _, character := range characters {
		if character == nil {
			return gqerr.InvalidArgument("character cannot be nil")
		}
		if character.ID == "" {
			return gqerr.InvalidArgument("character ID is required")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make(map[string]*entities.Character, len(characters))
	for _, character := range characters {
		if _, exists := replacement[character.ID]; exists {
			return gqerr.AlreadyExistsf("duplicate character '%s' in seed", character.ID).
				WithMeta("char_id", character.ID)
		}
		replacement[character.ID] = character.Clone()
	}

	r.characters = replacement
	return nil
}
