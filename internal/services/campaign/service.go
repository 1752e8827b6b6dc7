package campaign

//go:generate mockgen -destination=mock/mock_service.go -package=mockcampaign -source=service.go

import (
	"context"
	"sort"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/idgen"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/campaigns"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/events"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/realms"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/users"
	"github.com/jinhmyung/GuildQuest-Group3/internal/validation"
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

// Repository is an alias for the campaign repository interface
type Repository = campaigns.Repository

// Service defines the campaign service interface
type Service interface {
	// CreateCampaign creates a campaign owned by an existing user
	CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*entities.Campaign, error)

	// GetCampaign retrieves a campaign the viewer is allowed to see
	GetCampaign(ctx context.Context, campaignID, viewer string) (*entities.Campaign, error)

	// UpdateCampaign applies the non-nil fields of the input. The actor
	// needs collaborative access.
	UpdateCampaign(ctx context.Context, input *UpdateCampaignInput) (*entities.Campaign, error)

	// ShareWith grants a user access to the campaign, overwriting any
	// existing grant for that user
	ShareWith(ctx context.Context, input *ShareInput) (*entities.Campaign, error)

	// UnshareWith revokes a user's grant. Revoking an absent grant is
	// not an error.
	UnshareWith(ctx context.Context, input *UnshareInput) (*entities.Campaign, error)

	// ListOwned lists the campaigns a user owns in creation order
	ListOwned(ctx context.Context, username string) ([]*entities.Campaign, error)

	// ListVisible lists every campaign the viewer can see, ordered by ID
	ListVisible(ctx context.Context, viewer string) ([]*entities.Campaign, error)

	// AddEvent creates a quest event inside the campaign
	AddEvent(ctx context.Context, input *AddEventInput) (*entities.QuestEvent, error)

	// RemoveEvent detaches an event from the campaign and deletes the
	// event record itself
	RemoveEvent(ctx context.Context, input *RemoveEventInput) error

	// ListEvents lists the campaign's events in the order they were added
	ListEvents(ctx context.Context, campaignID, viewer string) ([]*entities.QuestEvent, error)
}

// CreateCampaignInput contains data for creating a campaign
type CreateCampaignInput struct {
	Owner      string              `validate:"required"`
	Name       string              `validate:"required"`
	Visibility entities.Visibility `validate:"omitempty,visibility"` // defaults to PRIVATE
}

// UpdateCampaignInput contains the campaign fields to change. Nil
// fields are left as they are.
type UpdateCampaignInput struct {
	CampaignID string `validate:"required"`
	Actor      string `validate:"required"`
	Name       *string
	Visibility *entities.Visibility
	Archived   *bool
}

// ShareInput contains data for granting campaign access
type ShareInput struct {
	CampaignID string                   `validate:"required"`
	Actor      string                   `validate:"required"`
	TargetUser string                   `validate:"required"`
	Level      entities.PermissionLevel `validate:"required,permission"`
}

// UnshareInput contains data for revoking campaign access
type UnshareInput struct {
	CampaignID string `validate:"required"`
	Actor      string `validate:"required"`
	TargetUser string `validate:"required"`
}

// AddEventInput contains data for scheduling a quest event
type AddEventInput struct {
	CampaignID string `validate:"required"`
	Actor      string `validate:"required"`
	Name       string `validate:"required"`
	Start      worldclock.Time
	End        *worldclock.Time
	RealmID    string `validate:"required"`
}

// RemoveEventInput contains data for removing a quest event
type RemoveEventInput struct {
	CampaignID string `validate:"required"`
	Actor      string `validate:"required"`
	EventID    string `validate:"required"`
}

// service implements the Service interface
type service struct {
	repository  Repository
	eventRepo   events.Repository
	userRepo    users.Repository
	realmRepo   realms.Repository
	idGenerator *idgen.Sequence
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository      Repository        // Required
	EventRepository events.Repository // Required
	UserRepository  users.Repository  // Required
	RealmRepository realms.Repository // Required
	IDGenerator     *idgen.Sequence   // Required
}

// NewService creates a new campaign service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("campaign repository is required")
	}
	if cfg.EventRepository == nil {
		panic("event repository is required")
	}
	if cfg.UserRepository == nil {
		panic("user repository is required")
	}
	if cfg.RealmRepository == nil {
		panic("realm repository is required")
	}
	if cfg.IDGenerator == nil {
		panic("id generator is required")
	}

	return &service{
		repository:  cfg.Repository,
		eventRepo:   cfg.EventRepository,
		userRepo:    cfg.UserRepository,
		realmRepo:   cfg.RealmRepository,
		idGenerator: cfg.IDGenerator,
	}
}

// CreateCampaign creates a campaign owned by an existing user
func (s *service) CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*entities.Campaign, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.Owner = strings.TrimSpace(input.Owner)
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = entities.VisibilityPrivate
	}

	owner, err := s.userRepo.Get(ctx, input.Owner)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get owner '%s'", input.Owner).
			WithMeta("username", input.Owner)
	}

	campaign := entities.NewCampaign(s.idGenerator.Next(idgen.KindCampaign), owner.Username, input.Name)
	campaign.Visibility = visibility

	if err := s.repository.Create(ctx, campaign); err != nil {
		return nil, gqerr.Wrap(err, "failed to create campaign").
			WithMeta("campaign_id", campaign.ID).
			WithMeta("username", owner.Username)
	}

	owner.AddCampaignID(campaign.ID)
	if err := s.userRepo.Update(ctx, owner); err != nil {
		return nil, gqerr.Wrapf(err, "failed to record campaign '%s' on owner '%s'", campaign.ID, owner.Username).
			WithMeta("campaign_id", campaign.ID).
			WithMeta("username", owner.Username)
	}

	return campaign, nil
}

// GetCampaign retrieves a campaign the viewer is allowed to see
func (s *service) GetCampaign(ctx context.Context, campaignID, viewer string) (*entities.Campaign, error) {
	campaign, err := s.getForView(ctx, campaignID, viewer)
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

// UpdateCampaign applies the non-nil fields of the input
func (s *service) UpdateCampaign(ctx context.Context, input *UpdateCampaignInput) (*entities.Campaign, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.Actor = strings.TrimSpace(input.Actor)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	campaign, err := s.getForEdit(ctx, input.CampaignID, input.Actor)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, gqerr.InvalidArgument("campaign name cannot be empty")
		}
		campaign.Name = name
	}

	if input.Visibility != nil {
		if !input.Visibility.IsValid() {
			return nil, gqerr.InvalidArgumentf("invalid visibility '%s'", *input.Visibility)
		}
		campaign.Visibility = *input.Visibility
	}

	if input.Archived != nil {
		campaign.Archived = *input.Archived
	}

	if err := s.repository.Update(ctx, campaign); err != nil {
		return nil, gqerr.Wrapf(err, "failed to update campaign '%s'", campaign.ID).
			WithMeta("campaign_id", campaign.ID)
	}

	return campaign, nil
}

// ShareWith grants a user access to the campaign
func (s *service) ShareWith(ctx context.Context, input *ShareInput) (*entities.Campaign, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.TargetUser = strings.TrimSpace(input.TargetUser)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	campaign, err := s.getForEdit(ctx, input.CampaignID, input.Actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.Get(ctx, input.TargetUser); err != nil {
		return nil, gqerr.Wrapf(err, "cannot share with '%s'", input.TargetUser).
			WithMeta("campaign_id", campaign.ID).
			WithMeta("username", input.TargetUser)
	}

	campaign.ShareWith(input.TargetUser, input.Level)
	if err := s.repository.Update(ctx, campaign); err != nil {
		return nil, gqerr.Wrapf(err, "failed to share campaign '%s'", campaign.ID).
			WithMeta("campaign_id", campaign.ID)
	}

	return campaign, nil
}

// UnshareWith revokes a user's grant
func (s *service) UnshareWith(ctx context.Context, input *UnshareInput) (*entities.Campaign, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.TargetUser = strings.TrimSpace(input.TargetUser)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	campaign, err := s.getForEdit(ctx, input.CampaignID, input.Actor)
	if err != nil {
		return nil, err
	}

	campaign.UnshareWith(input.TargetUser)
	if err := s.repository.Update(ctx, campaign); err != nil {
		return nil, gqerr.Wrapf(err, "failed to unshare campaign '%s'", campaign.ID).
			WithMeta("campaign_id", campaign.ID)
	}

	return campaign, nil
}

// ListOwned lists the campaigns a user owns in creation order. IDs that
// no longer resolve are skipped.
func (s *service) ListOwned(ctx context.Context, username string) ([]*entities.Campaign, error) {
	if strings.TrimSpace(username) == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	owner, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get user '%s'", username).
			WithMeta("username", username)
	}

	list := make([]*entities.Campaign, 0, len(owner.CampaignIDs))
	for _, campaignID := range owner.CampaignIDs {
		campaign, err := s.repository.Get(ctx, campaignID)
		if err != nil {
			if gqerr.IsNotFound(err) {
				continue
			}
			return nil, gqerr.Wrapf(err, "failed to get campaign '%s'", campaignID).
				WithMeta("campaign_id", campaignID)
		}
		list = append(list, campaign)
	}

	return list, nil
}

// ListVisible lists every campaign the viewer can see, ordered by ID
func (s *service) ListVisible(ctx context.Context, viewer string) ([]*entities.Campaign, error) {
	if strings.TrimSpace(viewer) == "" {
		return nil, gqerr.InvalidArgument("viewer is required")
	}

	all, err := s.repository.List(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to list campaigns")
	}

	visible := make([]*entities.Campaign, 0, len(all))
	for _, campaign := range all {
		if campaign.CanView(viewer) {
			visible = append(visible, campaign)
		}
	}

	sort.Slice(visible, func(i, j int) bool { return visible[i].ID < visible[j].ID })
	return visible, nil
}

// AddEvent creates a quest event inside the campaign
func (s *service) AddEvent(ctx context.Context, input *AddEventInput) (*entities.QuestEvent, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.Name = strings.TrimSpace(input.Name)
	input.RealmID = strings.TrimSpace(input.RealmID)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if err := input.Start.Validate(); err != nil {
		return nil, err
	}
	if input.End != nil {
		if err := input.End.Validate(); err != nil {
			return nil, err
		}
	}

	campaign, err := s.getForEdit(ctx, input.CampaignID, input.Actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.realmRepo.Get(ctx, input.RealmID); err != nil {
		return nil, gqerr.Wrapf(err, "cannot schedule event in realm '%s'", input.RealmID).
			WithMeta("campaign_id", campaign.ID).
			WithMeta("realm_id", input.RealmID)
	}

	event := entities.NewQuestEvent(s.idGenerator.Next(idgen.KindEvent), input.Name, input.Start, input.RealmID)
	if input.End != nil {
		end := *input.End
		event.EndTime = &end
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, gqerr.Wrap(err, "failed to create event").
			WithMeta("campaign_id", campaign.ID).
			WithMeta("event_id", event.ID)
	}

	campaign.AddQuestEvent(event.ID)
	if err := s.repository.Update(ctx, campaign); err != nil {
		return nil, gqerr.Wrapf(err, "failed to attach event '%s' to campaign '%s'", event.ID, campaign.ID).
			WithMeta("campaign_id", campaign.ID).
			WithMeta("event_id", event.ID)
	}

	return event, nil
}

// RemoveEvent detaches an event from the campaign and deletes the event
// record. The event stops existing for everyone, including users it was
// shared with directly.
func (s *service) RemoveEvent(ctx context.Context, input *RemoveEventInput) error {
	if input == nil {
		return gqerr.InvalidArgument("input cannot be nil")
	}

	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.EventID = strings.TrimSpace(input.EventID)
	if err := validation.Struct(input); err != nil {
		return err
	}

	campaign, err := s.getForEdit(ctx, input.CampaignID, input.Actor)
	if err != nil {
		return err
	}

	if !campaign.RemoveQuestEvent(input.EventID) {
		return gqerr.NotFoundf("event '%s' is not part of campaign '%s'", input.EventID, campaign.ID).
			WithMeta("campaign_id", campaign.ID).
			WithMeta("event_id", input.EventID)
	}

	if err := s.repository.Update(ctx, campaign); err != nil {
		return gqerr.Wrapf(err, "failed to detach event '%s' from campaign '%s'", input.EventID, campaign.ID).
			WithMeta("campaign_id", campaign.ID).
			WithMeta("event_id", input.EventID)
	}

	if err := s.eventRepo.Delete(ctx, input.EventID); err != nil && !gqerr.IsNotFound(err) {
		return gqerr.Wrapf(err, "failed to delete event '%s'", input.EventID).
			WithMeta("event_id", input.EventID)
	}

	return nil
}

// ListEvents lists the campaign's events in the order they were added.
// IDs that no longer resolve are skipped.
func (s *service) ListEvents(ctx context.Context, campaignID, viewer string) ([]*entities.QuestEvent, error) {
	campaign, err := s.getForView(ctx, campaignID, viewer)
	if err != nil {
		return nil, err
	}

	list := make([]*entities.QuestEvent, 0, len(campaign.QuestEventIDs))
	for _, eventID := range campaign.QuestEventIDs {
		event, err := s.eventRepo.Get(ctx, eventID)
		if err != nil {
			if gqerr.IsNotFound(err) {
				continue
			}
			return nil, gqerr.Wrapf(err, "failed to get event '%s'", eventID).
				WithMeta("event_id", eventID)
		}
		list = append(list, event)
	}

	return list, nil
}

func (s *service) getForView(ctx context.Context, campaignID, viewer string) (*entities.Campaign, error) {
	campaign, err := s.get(ctx, campaignID, viewer)
	if err != nil {
		return nil, err
	}
	if !campaign.CanView(viewer) {
		return nil, gqerr.PermissionDeniedf("user '%s' cannot view campaign '%s'", viewer, campaignID).
			WithMeta("campaign_id", campaignID).
			WithMeta("username", viewer)
	}
	return campaign, nil
}

func (s *service) getForEdit(ctx context.Context, campaignID, actor string) (*entities.Campaign, error) {
	campaign, err := s.get(ctx, campaignID, actor)
	if err != nil {
		return nil, err
	}
	if !campaign.CanEdit(actor) {
		return nil, gqerr.PermissionDeniedf("user '%s' cannot edit campaign '%s'", actor, campaignID).
			WithMeta("campaign_id", campaignID).
			WithMeta("username", actor)
	}
	return campaign, nil
}

func (s *service) get(ctx context.Context, campaignID, username string) (*entities.Campaign, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, gqerr.InvalidArgument("campaign ID is required")
	}
	if strings.TrimSpace(username) == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	campaign, err := s.repository.Get(ctx, campaignID)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get campaign '%s'", campaignID).
			WithMeta("campaign_id", campaignID)
	}
	return campaign, nil
}
