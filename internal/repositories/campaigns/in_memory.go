package campaigns

import (
	"context"
	"sync"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the campaign repository
type InMemoryRepository struct {
	mu        sync.RWMutex
	campaigns map[string]*entities.Campaign
}

// NewInMemoryRepository creates a new in-memory campaign repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		campaigns: make(map[string]*entities.Campaign),
	}
}

// Create stores a new campaign
func (r *InMemoryRepository) Create(ctx context.Context, campaign *entities.Campaign) error {
	if campaign == nil {
		return gqerr.InvalidArgument("campaign cannot be nil")
	}
	if campaign.ID == "" {
		return gqerr.InvalidArgument("campaign ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[campaign.ID]; exists {
		return gqerr.AlreadyExistsf("campaign '%s' already exists", campaign.ID).
			WithMeta("campaign_id", campaign.ID)
	}

	r.campaigns[campaign.ID] = campaign.Clone()
	return nil
}

// Get retrieves a campaign by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Campaign, error) {
	if id == "" {
		return nil, gqerr.InvalidArgument("campaign ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	campaign, exists := r.campaigns[id]
	if !exists {
		return nil, gqerr.NotFoundf("campaign '%s' not found", id).
			WithMeta("campaign_id", id)
	}

	return campaign.Clone(), nil
}

// Update updates an existing campaign
func (r *InMemoryRepository) Update(ctx context.Context, campaign *entities.Campaign) error {
	if campaign == nil {
		return gqerr.InvalidArgument("campaign cannot be nil")
	}
	if campaign.ID == "" {
		return gqerr.InvalidArgument("campaign ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[campaign.ID]; !exists {
		return gqerr.NotFoundf("campaign '%s' not found", campaign.ID).
			WithMeta("campaign_id", campaign.ID)
	}

	r.campaigns[campaign.ID] = campaign.Clone()
	return nil
}

// Delete removes a campaign
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return gqerr.InvalidArgument("campaign ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[id]; !exists {
		return gqerr.NotFoundf("campaign '%s' not found", id).
			WithMeta("campaign_id", id)
	}

	delete(r.campaigns, id)
	return nil
}

// List retrieves all campaigns in unspecified order
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Campaign, 0, len(r.campaigns))
	for _, campaign := range r.campaigns {
		result = append(result, campaign.Clone())
	}
	return result, nil
}

// GetByQuestEvent retrieves the campaign whose event list contains the
// event ID. Events belong to at most one campaign.
func (r *InMemoryRepository) GetByQuestEvent(ctx context.Context, eventID string) (*entities.Campaign, error) {
	if eventID == "" {
		return nil, gqerr.InvalidArgument("event ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, campaign := range r.campaigns {
		if campaign.HasQuestEvent(eventID) {
			return campaign.Clone(), nil
		}
	}

	return nil, gqerr.NotFoundf("no campaign contains event '%s'", eventID).
		WithMeta("event_id", eventID)
}

// Seed replaces the stored set wholesale
func (r *InMemoryRepository) Seed(ctx context.Context, campaigns []*entities.Campaign) error {
	for _, campaign := range campaigns {
		if campaign == nil {
			return gqerr.InvalidArgument("campaign cannot be nil")
		}
		if campaign.ID == "" {
			return gqerr.InvalidArgument("campaign ID is required")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make(map[string]*entities.Campaign, len(campaigns))
	for _, campaign := range campaigns {
		if _, exists := replacement[campaign.ID]; exists {
			return gqerr.AlreadyExistsf("duplicate campaign '%s' in seed", campaign.ID).
				WithMeta("campaign_id", campaign.ID)
		}
		replacement[campaign.ID] = campaign.Clone()
	}

	r.campaigns = replacement
	return nil
}
