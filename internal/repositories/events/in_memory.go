package events

import (
	"context"
	"sync"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the event repository
type InMemoryRepository struct {
	mu     sync.RWMutex
	events map[string]*entities.QuestEvent
}

// NewInMemoryRepository creates a new in-memory event repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		events: make(map[string]*entities.QuestEvent),
	}
}

// Create stores a new event
func (r *InMemoryRepository) Create(ctx context.Context, event *entities.QuestEvent) error {
	if event == nil {
		return gqerr.InvalidArgument("event cannot be nil")
	}
	if event.ID == "" {
		return gqerr.InvalidArgument("event ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.ID]; exists {
		return gqerr.AlreadyExistsf("event '%s' already exists", event.ID).
			WithMeta("event_id", event.ID)
	}

	r.events[event.ID] = event.Clone()
	return nil
}

// Get retrieves an event by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.QuestEvent, error) {
	if id == "" {
		return nil, gqerr.InvalidArgument("event ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, gqerr.NotFoundf("event '%s' not found", id).
			WithMeta("event_id", id)
	}

	return event.Clone(), nil
}

// Update updates an existing event
func (r *InMemoryRepository) Update(ctx context.Context, event *entities.QuestEvent) error {
	if event == nil {
		return gqerr.InvalidArgument("event cannot be nil")
	}
	if event.ID == "" {
		return gqerr.InvalidArgument("event ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.ID]; !exists {
		return gqerr.NotFoundf("event '%s' not found", event.ID).
			WithMeta("event_id", event.ID)
	}

	r.events[event.ID] = event.Clone()
	return nil
}

// Delete removes an event
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return gqerr.InvalidArgument("event ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[id]; !exists {
		return gqerr.NotFoundf("event '%s' not found", id).
			WithMeta("event_id", id)
	}

	delete(r.events, id)
	return nil
}

// List retrieves all events in unspecified order
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.QuestEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.QuestEvent, 0, len(r.events))
	for _, event := range r.events {
		result = append(result, event.Clone())
	}
	return result, nil
}

// ListSharedWith retrieves all events carrying a direct share for the
// username, regardless of any campaign the events belong to
func (r *InMemoryRepository) ListSharedWith(ctx context.Context, username string) ([]*entities.QuestEvent, error) {
	if username == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entities.QuestEvent
	for _, event := range r.events {
		if _, ok := event.Resolve(username); ok {
			result = append(result, event.Clone())
		}
	}
	return result, nil
}

// Seed replaces the stored set wholesale
func (r *InMemoryRepository) Seed(ctx context.Context, events []*entities.QuestEvent) error {
	for _, event := range events {
		if event == nil {
			return gqerr.InvalidArgument("event cannot be nil")
		}
		if event.ID == "" {
			return gqerr.InvalidArgument("event ID is required")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make(map[string]*entities.QuestEvent, len(events))
	for _, event := range events {
		if _, exists := replacement[event.ID]; exists {
			return gqerr.AlreadyExistsf("duplicate event '%s' in seed", event.ID).
				WithMeta("event_id", event.ID)
		}
		replacement[event.ID] = event.Clone()
	}

	r.events = replacement
	return nil
}
