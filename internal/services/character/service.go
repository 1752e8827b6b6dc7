package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/idgen"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/characters"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/users"
	"github.com/jinhmyung/GuildQuest-Group3/internal/validation"
)

// Repository is an alias for the character repository interface
type Repository = characters.Repository

// DefaultClassName is used when a character is created without a class
const DefaultClassName = "Adventurer"

// Service defines the character service interface
type Service interface {
	// CreateCharacter creates a character owned by an existing user
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*entities.Character, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, charID string) (*entities.Character, error)

	// ListByOwner lists a user's characters in creation order
	ListByOwner(ctx context.Context, username string) ([]*entities.Character, error)

	// AddItem adds one inventory slot to a character
	AddItem(ctx context.Context, input *AddItemInput) (*entities.Character, error)

	// RemoveItemByName removes up to Qty matching slots and returns how
	// many were actually removed
	RemoveItemByName(ctx context.Context, input *RemoveItemInput) (int, error)
}

// CreateCharacterInput contains data for creating a character
type CreateCharacterInput struct {
	Owner     string `validate:"required"`
	Name      string `validate:"required"`
	ClassName string // defaults to DefaultClassName
	Level     int    // 0 defaults to 1
}

// AddItemInput contains data for adding an inventory item
type AddItemInput struct {
	CharID      string `validate:"required"`
	Name        string `validate:"required"`
	Description string
	Type        string // defaults to "misc"
	Rarity      int    `validate:"gte=0"`
}

// RemoveItemInput contains data for removing inventory items by name
type RemoveItemInput struct {
	CharID string `validate:"required"`
	Name   string `validate:"required"`
	Qty    int    `validate:"gte=1"`
}

// service implements the Service interface
type service struct {
	repository  Repository
	userRepo    users.Repository
	idGenerator *idgen.Sequence
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository     Repository       // Required
	UserRepository users.Repository // Required
	IDGenerator    *idgen.Sequence  // Required
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("character repository is required")
	}
	if cfg.UserRepository == nil {
		panic("user repository is required")
	}
	if cfg.IDGenerator == nil {
		panic("id generator is required")
	}

	return &service{
		repository:  cfg.Repository,
		userRepo:    cfg.UserRepository,
		idGenerator: cfg.IDGenerator,
	}
}

// CreateCharacter creates a character owned by an existing user
func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*entities.Character, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.Owner = strings.TrimSpace(input.Owner)
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Level < 0 {
		return nil, gqerr.InvalidArgumentf("level must be at least 1, got %d", input.Level)
	}

	owner, err := s.userRepo.Get(ctx, input.Owner)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get owner '%s'", input.Owner).
			WithMeta("username", input.Owner)
	}

	className := strings.TrimSpace(input.ClassName)
	if className == "" {
		className = DefaultClassName
	}

	char := entities.NewCharacter(s.idGenerator.Next(idgen.KindCharacter), input.Name, className)
	if input.Level > 0 {
		char.Level = input.Level
	}

	if err := s.repository.Create(ctx, char); err != nil {
		return nil, gqerr.Wrap(err, "failed to create character").
			WithMeta("char_id", char.ID).
			WithMeta("username", owner.Username)
	}

	owner.AddCharacterID(char.ID)
	if err := s.userRepo.Update(ctx, owner); err != nil {
		return nil, gqerr.Wrapf(err, "failed to record character '%s' on owner '%s'", char.ID, owner.Username).
			WithMeta("char_id", char.ID).
			WithMeta("username", owner.Username)
	}

	return char, nil
}

// GetCharacter retrieves a character by ID
func (s *service) GetCharacter(ctx context.Context, charID string) (*entities.Character, error) {
	if strings.TrimSpace(charID) == "" {
		return nil, gqerr.InvalidArgument("character ID is required")
	}

	char, err := s.repository.Get(ctx, charID)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get character '%s'", charID).
			WithMeta("char_id", charID)
	}

	return char, nil
}

// ListByOwner lists a user's characters in creation order. IDs that no
// longer resolve are skipped.
func (s *service) ListByOwner(ctx context.Context, username string) ([]*entities.Character, error) {
	if strings.TrimSpace(username) == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	owner, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get user '%s'", username).
			WithMeta("username", username)
	}

	list := make([]*entities.Character, 0, len(owner.CharacterIDs))
	for _, charID := range owner.CharacterIDs {
		char, err := s.repository.Get(ctx, charID)
		if err != nil {
			if gqerr.IsNotFound(err) {
				continue
			}
			return nil, gqerr.Wrapf(err, "failed to get character '%s'", charID).
				WithMeta("char_id", charID)
		}
		list = append(list, char)
	}

	return list, nil
}

// AddItem adds one inventory slot to a character
func (s *service) AddItem(ctx context.Context, input *AddItemInput) (*entities.Character, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.CharID = strings.TrimSpace(input.CharID)
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	char, err := s.GetCharacter(ctx, input.CharID)
	if err != nil {
		return nil, err
	}

	item := entities.NewInventoryItem(input.Name)
	item.Description = strings.TrimSpace(input.Description)
	item.Rarity = input.Rarity
	if itemType := strings.TrimSpace(input.Type); itemType != "" {
		item.Type = itemType
	}

	char.AddItem(item)
	if err := s.repository.Update(ctx, char); err != nil {
		return nil, gqerr.Wrapf(err, "failed to add item to character '%s'", char.ID).
			WithMeta("char_id", char.ID).
			WithMeta("item_name", item.Name)
	}

	return char, nil
}

// RemoveItemByName removes up to Qty matching slots and returns how many
// were actually removed. Holding fewer than Qty is not an error.
func (s *service) RemoveItemByName(ctx context.Context, input *RemoveItemInput) (int, error) {
	if input == nil {
		return 0, gqerr.InvalidArgument("input cannot be nil")
	}

	input.CharID = strings.TrimSpace(input.CharID)
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return 0, err
	}

	char, err := s.GetCharacter(ctx, input.CharID)
	if err != nil {
		return 0, err
	}

	removed := char.RemoveItemByName(input.Name, input.Qty)
	if removed == 0 {
		return 0, nil
	}

	if err := s.repository.Update(ctx, char); err != nil {
		return 0, gqerr.Wrapf(err, "failed to remove items from character '%s'", char.ID).
			WithMeta("char_id", char.ID).
			WithMeta("item_name", input.Name)
	}

	return removed, nil
}
