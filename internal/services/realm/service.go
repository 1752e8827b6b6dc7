package realm

//go:generate mockgen -destination=mock/mock_service.go -package=mockrealm -source=service.go

import (
	"context"
	"sort"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/idgen"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/events"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/realms"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/users"
	"github.com/jinhmyung/GuildQuest-Group3/internal/validation"
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

// Repository is an alias for the realm repository interface
type Repository = realms.Repository

// DefaultRealmName is the realm created when none exist
const DefaultRealmName = "Earth"

// Service defines the realm service interface
type Service interface {
	// CreateRealm creates a new realm
	CreateRealm(ctx context.Context, input *CreateRealmInput) (*entities.Realm, error)

	// GetRealm retrieves a realm by ID
	GetRealm(ctx context.Context, realmID string) (*entities.Realm, error)

	// ListRealms lists all realms ordered by ID
	ListRealms(ctx context.Context) ([]*entities.Realm, error)

	// EnsureDefaultRealm creates the default realm if no realms exist
	// and returns a realm usable for new user settings
	EnsureDefaultRealm(ctx context.Context) (*entities.Realm, error)

	// DeleteRealm removes a realm that nothing references
	DeleteRealm(ctx context.Context, realmID string) error
}

// CreateRealmInput contains data for creating a realm
type CreateRealmInput struct {
	Name                string `validate:"required"`
	Description         string
	MapID               int
	XCoord              float64
	YCoord              float64
	OffsetMinutes       int
	DayLengthMultiplier float64 // 0 means the standard 1.0
}

// service implements the Service interface
type service struct {
	repository  Repository
	eventRepo   events.Repository
	userRepo    users.Repository
	idGenerator *idgen.Sequence
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository      Repository        // Required
	EventRepository events.Repository // Required
	UserRepository  users.Repository  // Required
	IDGenerator     *idgen.Sequence   // Required
}

// NewService creates a new realm service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("realm repository is required")
	}
	if cfg.EventRepository == nil {
		panic("event repository is required")
	}
	if cfg.UserRepository == nil {
		panic("user repository is required")
	}
	if cfg.IDGenerator == nil {
		panic("id generator is required")
	}

	return &service{
		repository:  cfg.Repository,
		eventRepo:   cfg.EventRepository,
		userRepo:    cfg.UserRepository,
		idGenerator: cfg.IDGenerator,
	}
}

// CreateRealm creates a new realm
func (s *service) CreateRealm(ctx context.Context, input *CreateRealmInput) (*entities.Realm, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	rule := worldclock.TimeRule{
		OffsetMinutes:       input.OffsetMinutes,
		DayLengthMultiplier: input.DayLengthMultiplier,
	}
	if rule.DayLengthMultiplier == 0 {
		rule.DayLengthMultiplier = 1.0
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	realm := entities.NewRealm(s.idGenerator.Next(idgen.KindRealm), input.Name)
	realm.Description = strings.TrimSpace(input.Description)
	realm.MapID = input.MapID
	realm.XCoord = input.XCoord
	realm.YCoord = input.YCoord
	realm.TimeRule = rule

	if err := s.repository.Create(ctx, realm); err != nil {
		return nil, gqerr.Wrap(err, "failed to create realm").
			WithMeta("realm_id", realm.ID).
			WithMeta("realm_name", realm.Name)
	}

	return realm, nil
}

// GetRealm retrieves a realm by ID
func (s *service) GetRealm(ctx context.Context, realmID string) (*entities.Realm, error) {
	if strings.TrimSpace(realmID) == "" {
		return nil, gqerr.InvalidArgument("realm ID is required")
	}

	realm, err := s.repository.Get(ctx, realmID)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get realm '%s'", realmID).
			WithMeta("realm_id", realmID)
	}

	return realm, nil
}

// ListRealms lists all realms ordered by ID
func (s *service) ListRealms(ctx context.Context) ([]*entities.Realm, error) {
	list, err := s.repository.List(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to list realms")
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// EnsureDefaultRealm creates the default realm if no realms exist and
// returns the realm new user settings should point at. With realms
// already present, the one with the smallest ID is returned.
func (s *service) EnsureDefaultRealm(ctx context.Context) (*entities.Realm, error) {
	list, err := s.ListRealms(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list[0], nil
	}

	realm := entities.NewRealm(s.idGenerator.Next(idgen.KindRealm), DefaultRealmName)
	realm.Description = "Default realm"
	realm.MapID = 1

	if err := s.repository.Create(ctx, realm); err != nil {
		return nil, gqerr.Wrap(err, "failed to create default realm").
			WithMeta("realm_id", realm.ID)
	}

	return realm, nil
}

// DeleteRealm removes a realm. Deletion is refused while any event is
// scheduled in the realm or any user's settings point at it, so no
// reference is left dangling.
func (s *service) DeleteRealm(ctx context.Context, realmID string) error {
	if strings.TrimSpace(realmID) == "" {
		return gqerr.InvalidArgument("realm ID is required")
	}

	if _, err := s.repository.Get(ctx, realmID); err != nil {
		return gqerr.Wrapf(err, "failed to get realm '%s'", realmID).
			WithMeta("realm_id", realmID)
	}

	eventList, err := s.eventRepo.List(ctx)
	if err != nil {
		return gqerr.Wrap(err, "failed to check events for realm references")
	}
	for _, event := range eventList {
		if event.RealmID == realmID {
			return gqerr.InvalidArgumentf("realm '%s' is used by event '%s'", realmID, event.ID).
				WithMeta("realm_id", realmID).
				WithMeta("event_id", event.ID)
		}
	}

	userList, err := s.userRepo.List(ctx)
	if err != nil {
		return gqerr.Wrap(err, "failed to check users for realm references")
	}
	for _, user := range userList {
		if user.Settings.CurrentRealmID == realmID {
			return gqerr.InvalidArgumentf("realm '%s' is the current realm of user '%s'", realmID, user.Username).
				WithMeta("realm_id", realmID).
				WithMeta("username", user.Username)
		}
	}

	if err := s.repository.Delete(ctx, realmID); err != nil {
		return gqerr.Wrapf(err, "failed to delete realm '%s'", realmID).
			WithMeta("realm_id", realmID)
	}

	return nil
}
