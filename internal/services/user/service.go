package user

//go:generate mockgen -destination=mock/mock_service.go -package=mockuser -source=service.go

import (
	"context"
	"sort"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/users"
	realmsvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/realm"
)

// Repository is an alias for the user repository interface
type Repository = users.Repository

// Service defines the user service interface
type Service interface {
	// CreateUser registers a new user with default settings
	CreateUser(ctx context.Context, username string) (*entities.User, error)

	// GetUser retrieves a user by username
	GetUser(ctx context.Context, username string) (*entities.User, error)

	// ListUsers lists all users ordered by username
	ListUsers(ctx context.Context) ([]*entities.User, error)

	// UpdateSettings applies the non-nil fields of the input to the
	// user's settings
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entities.User, error)
}

// UpdateSettingsInput contains the settings fields to change. Nil
// fields are left as they are.
type UpdateSettingsInput struct {
	Username       string
	CurrentRealmID *string
	Theme          *string
	TimeDisplay    *entities.TimeDisplay
}

// service implements the Service interface
type service struct {
	repository   Repository
	realmService realmsvc.Service
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository   Repository       // Required
	RealmService realmsvc.Service // Required
}

// NewService creates a new user service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("user repository is required")
	}
	if cfg.RealmService == nil {
		panic("realm service is required")
	}

	return &service{
		repository:   cfg.Repository,
		realmService: cfg.RealmService,
	}
}

// CreateUser registers a new user with default settings
func (s *service) CreateUser(ctx context.Context, username string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	home, err := s.realmService.EnsureDefaultRealm(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to prepare default realm")
	}

	user := entities.NewUser(username, home.ID)
	if err := s.repository.Create(ctx, user); err != nil {
		return nil, gqerr.Wrapf(err, "failed to create user '%s'", username).
			WithMeta("username", username)
	}

	return user, nil
}

// GetUser retrieves a user by username
func (s *service) GetUser(ctx context.Context, username string) (*entities.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	user, err := s.repository.Get(ctx, username)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get user '%s'", username).
			WithMeta("username", username)
	}

	return user, nil
}

// ListUsers lists all users ordered by username
func (s *service) ListUsers(ctx context.Context) ([]*entities.User, error) {
	list, err := s.repository.List(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to list users")
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

// UpdateSettings applies the non-nil fields of the input to the user's settings
func (s *service) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entities.User, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	user, err := s.GetUser(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	if input.CurrentRealmID != nil {
		if _, err := s.realmService.GetRealm(ctx, *input.CurrentRealmID); err != nil {
			return nil, gqerr.Wrapf(err, "cannot switch to realm '%s'", *input.CurrentRealmID).
				WithMeta("username", user.Username)
		}
		user.Settings.CurrentRealmID = *input.CurrentRealmID
	}

	if input.Theme != nil {
		theme := strings.TrimSpace(*input.Theme)
		if theme == "" {
			return nil, gqerr.InvalidArgument("theme cannot be empty")
		}
		user.Settings.Theme = theme
	}

	if input.TimeDisplay != nil {
		if !input.TimeDisplay.IsValid() {
			return nil, gqerr.InvalidArgumentf("invalid time display '%s'", *input.TimeDisplay)
		}
		user.Settings.TimeDisplay = *input.TimeDisplay
	}

	if err := s.repository.Update(ctx, user); err != nil {
		return nil, gqerr.Wrapf(err, "failed to update settings for '%s'", user.Username).
			WithMeta("username", user.Username)
	}

	return user, nil
}
