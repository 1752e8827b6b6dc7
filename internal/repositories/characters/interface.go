package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, character *entities.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*entities.Character, error)

	// Update updates an existing character
	Update(ctx context.Context, character *entities.Character) error

	// Delete removes a character
	Delete(ctx context.Context, id string) error

	// List retrieves all characters
	List(ctx context.Context) ([]*entities.Character, error)

	// Seed replaces the stored set wholesale (snapshot restore)
	Seed(ctx context.Context, characters []*entities.Character) error
}
