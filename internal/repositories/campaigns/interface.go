package campaigns

//go:generate mockgen -destination=mock/mock.go -package=mockcampaigns -source=interface.go

import (
	"context"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
)

// Repository defines the interface for campaign persistence
type Repository interface {
	// Create stores a new campaign
	Create(ctx context.Context, campaign *entities.Campaign) error

	// Get retrieves a campaign by ID
	Get(ctx context.Context, id string) (*entities.Campaign, error)

	// Update updates an existing campaign
	Update(ctx context.Context, campaign *entities.Campaign) error

	// Delete removes a campaign
	Delete(ctx context.Context, id string) error

	// List retrieves all campaigns
	List(ctx context.Context) ([]*entities.Campaign, error)

	// GetByQuestEvent retrieves the campaign containing the event ID
	GetByQuestEvent(ctx context.Context, eventID string) (*entities.Campaign, error)

	// Seed replaces the stored set wholesale (snapshot restore)
	Seed(ctx context.Context, campaigns []*entities.Campaign) error
}
