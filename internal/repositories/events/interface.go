package events

//go:generate mockgen -destination=mock/mock.go -package=mockevents -source=interface.go

import (
	"context"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
)

// Repository defines the interface for quest event persistence
type Repository interface {
	// Create stores a new event
	Create(ctx context.Context, event *entities.QuestEvent) error

	// Get retrieves an event by ID
	Get(ctx context.Context, id string) (*entities.QuestEvent, error)

	// Update updates an existing event
	Update(ctx context.Context, event *entities.QuestEvent) error

	// Delete removes an event
	Delete(ctx context.Context, id string) error

	// List retrieves all events
	List(ctx context.Context) ([]*entities.QuestEvent, error)

	// ListSharedWith retrieves all events carrying a direct share for
	// the username
	ListSharedWith(ctx context.Context, username string) ([]*entities.QuestEvent, error)

	// Seed replaces the stored set wholesale (snapshot restore)
	Seed(ctx context.Context, events []*entities.QuestEvent) error
}
