package users

//go:generate mockgen -destination=mock/mock.go -package=mockusers -source=interface.go

import (
	"context"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
)

// Repository defines the interface for user persistence
type Repository interface {
	// Create stores a new user
	Create(ctx context.Context, user *entities.User) error

	// Get retrieves a user by username
	Get(ctx context.Context, username string) (*entities.User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *entities.User) error

	// Delete removes a user
	Delete(ctx context.Context, username string) error

	// List retrieves all users
	List(ctx context.Context) ([]*entities.User, error)

	// Seed replaces the stored set wholesale (snapshot restore)
	Seed(ctx context.Context, users []*entities.User) error
}
