package realms

//go:generate mockgen -destination=mock/mock.go -package=mockrealms -source=interface.go

import (
	"context"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
)

// Repository defines the interface for realm persistence
type Repository interface {
	// Create stores a new realm
	Create(ctx context.Context, realm *entities.Realm) error

	// Get retrieves a realm by ID
	Get(ctx context.Context, id string) (*entities.Realm, error)

	// Update updates an existing realm
	Update(ctx context.Context, realm *entities.Realm) error

	// Delete removes a realm
	Delete(ctx context.Context, id string) error

	// List retrieves all realms
	List(ctx context.Context) ([]*entities.Realm, error)

	// Seed replaces the stored set wholesale (snapshot restore)
	Seed(ctx context.Context, realms []*entities.Realm) error
}
