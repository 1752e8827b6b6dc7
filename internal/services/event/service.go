package event

//go:generate mockgen -destination=mock/mock_service.go -package=mockevent -source=service.go

import (
	"context"
	"sort"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/campaigns"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/events"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/realms"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/users"
	charsvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/character"
	"github.com/jinhmyung/GuildQuest-Group3/internal/validation"
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

// Repository is an alias for the event repository interface
type Repository = events.Repository

// Service defines the quest event service interface. Access combines
// two sources: the event's own share list and the parent campaign's
// permissions. An event detached from every campaign answers to its
// share list alone.
type Service interface {
	// GetEvent retrieves an event the viewer is allowed to see
	GetEvent(ctx context.Context, eventID, viewer string) (*entities.QuestEvent, error)

	// UpdateEvent applies the non-nil fields of the input. The actor
	// needs collaborative access.
	UpdateEvent(ctx context.Context, input *UpdateEventInput) (*entities.QuestEvent, error)

	// AddParticipant adds an existing character to the event
	AddParticipant(ctx context.Context, input *ParticipantInput) (*entities.QuestEvent, error)

	// RemoveParticipant removes a character from the event
	RemoveParticipant(ctx context.Context, input *ParticipantInput) (*entities.QuestEvent, error)

	// ShareWith grants a user access to the event itself, independent of
	// the parent campaign's shares
	ShareWith(ctx context.Context, input *ShareInput) (*entities.QuestEvent, error)

	// UnshareWith revokes a user's direct grant. Revoking an absent
	// grant is not an error.
	UnshareWith(ctx context.Context, input *UnshareInput) (*entities.QuestEvent, error)

	// ListSharedWith lists the events carrying a direct share for the
	// user, ordered by event ID
	ListSharedWith(ctx context.Context, username string) ([]*entities.QuestEvent, error)

	// AddInventoryChange appends a planned inventory mutation
	AddInventoryChange(ctx context.Context, input *AddInventoryChangeInput) (*entities.QuestEvent, error)

	// RemoveInventoryChange drops the planned mutation at an index
	RemoveInventoryChange(ctx context.Context, input *RemoveInventoryChangeInput) (*entities.QuestEvent, error)

	// ApplyInventoryChanges executes the event's planned mutations
	// against character inventories
	ApplyInventoryChanges(ctx context.Context, eventID, actor string) (*ApplyResult, error)
}

// UpdateEventInput contains the event fields to change. Nil fields are
// left as they are; ClearEnd removes the end time.
type UpdateEventInput struct {
	EventID  string `validate:"required"`
	Actor    string `validate:"required"`
	Name     *string
	Start    *worldclock.Time
	End      *worldclock.Time
	ClearEnd bool
	RealmID  *string
}

// ParticipantInput identifies a character on an event
type ParticipantInput struct {
	EventID string `validate:"required"`
	Actor   string `validate:"required"`
	CharID  string `validate:"required"`
}

// ShareInput contains data for granting event access
type ShareInput struct {
	EventID    string                   `validate:"required"`
	Actor      string                   `validate:"required"`
	TargetUser string                   `validate:"required"`
	Level      entities.PermissionLevel `validate:"required,permission"`
}

// UnshareInput contains data for revoking event access
type UnshareInput struct {
	EventID    string `validate:"required"`
	Actor      string `validate:"required"`
	TargetUser string `validate:"required"`
}

// AddInventoryChangeInput contains data for a planned inventory
// mutation. A nil TargetCharID targets every event participant at apply
// time.
type AddInventoryChangeInput struct {
	EventID         string `validate:"required"`
	Actor           string `validate:"required"`
	ItemName        string `validate:"required"`
	ItemDescription string
	ItemType        string // defaults to "misc"
	ItemRarity      int    `validate:"gte=0"`
	DeltaQty        int
	TargetCharID    *string
}

// RemoveInventoryChangeInput identifies a planned mutation by position
type RemoveInventoryChangeInput struct {
	EventID string `validate:"required"`
	Actor   string `validate:"required"`
	Index   int    `validate:"gte=0"`
}

// ApplyResult summarizes one inventory application run
type ApplyResult struct {
	ItemsAdded     int
	ItemsRemoved   int
	MissingCharIDs []string
}

// service implements the Service interface
type service struct {
	repository       Repository
	campaignRepo     campaigns.Repository
	realmRepo        realms.Repository
	userRepo         users.Repository
	characterService charsvc.Service
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository         Repository           // Required
	CampaignRepository campaigns.Repository // Required
	RealmRepository    realms.Repository    // Required
	UserRepository     users.Repository     // Required
	CharacterService   charsvc.Service      // Required
}

// NewService creates a new event service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("event repository is required")
	}
	if cfg.CampaignRepository == nil {
		panic("campaign repository is required")
	}
	if cfg.RealmRepository == nil {
		panic("realm repository is required")
	}
	if cfg.UserRepository == nil {
		panic("user repository is required")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}

	return &service{
		repository:       cfg.Repository,
		campaignRepo:     cfg.CampaignRepository,
		realmRepo:        cfg.RealmRepository,
		userRepo:         cfg.UserRepository,
		characterService: cfg.CharacterService,
	}
}

// GetEvent retrieves an event the viewer is allowed to see
func (s *service) GetEvent(ctx context.Context, eventID, viewer string) (*entities.QuestEvent, error) {
	return s.getForView(ctx, eventID, viewer)
}

// UpdateEvent applies the non-nil fields of the input
func (s *service) UpdateEvent(ctx context.Context, input *UpdateEventInput) (*entities.QuestEvent, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.EventID = strings.TrimSpace(input.EventID)
	input.Actor = strings.TrimSpace(input.Actor)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.ClearEnd && input.End != nil {
		return nil, gqerr.InvalidArgument("cannot set and clear the end time at once")
	}

	event, err := s.getForEdit(ctx, input.EventID, input.Actor)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, gqerr.InvalidArgument("event name cannot be empty")
		}
		event.Name = name
	}

	if input.Start != nil {
		if err := input.Start.Validate(); err != nil {
			return nil, err
		}
		event.StartTime = *input.Start
	}

	if input.ClearEnd {
		event.EndTime = nil
	}
	if input.End != nil {
		if err := input.End.Validate(); err != nil {
			return nil, err
		}
		end := *input.End
		event.EndTime = &end
	}

	if input.RealmID != nil {
		realmID := strings.TrimSpace(*input.RealmID)
		if _, err := s.realmRepo.Get(ctx, realmID); err != nil {
			return nil, gqerr.Wrapf(err, "cannot move event to realm '%s'", realmID).
				WithMeta("event_id", event.ID).
				WithMeta("realm_id", realmID)
		}
		event.RealmID = realmID
	}

	if err := s.repository.Update(ctx, event); err != nil {
		return nil, gqerr.Wrapf(err, "failed to update event '%s'", event.ID).
			WithMeta("event_id", event.ID)
	}

	return event, nil
}

// AddParticipant adds an existing character to the event
func (s *service) AddParticipant(ctx context.Context, input *ParticipantInput) (*entities.QuestEvent, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.EventID = strings.TrimSpace(input.EventID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.CharID = strings.TrimSpace(input.CharID)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	event, err := s.getForEdit(ctx, input.EventID, input.Actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.characterService.GetCharacter(ctx, input.CharID); err != nil {
		return nil, gqerr.Wrapf(err, "cannot add participant '%s'", input.CharID).
			WithMeta("event_id", event.ID).
			WithMeta("char_id", input.CharID)
	}

	event.AddParticipant(input.CharID)
	if err := s.repository.Update(ctx, event); err != nil {
		return nil, gqerr.Wrapf(err, "failed to add participant to event '%s'", event.ID).
			WithMeta("event_id", event.ID).
			WithMeta("char_id", input.CharID)
	}

	return event, nil
}

// RemoveParticipant removes a character from the event. Removing a
// character that is not participating is not an error.
func (s *service) RemoveParticipant(ctx context.Context, input *ParticipantInput) (*entities.QuestEvent, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.EventID = strings.TrimSpace(input.EventID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.CharID = strings.TrimSpace(input.CharID)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	event, err := s.getForEdit(ctx, input.EventID, input.Actor)
	if err != nil {
		return nil, err
	}

	if event.RemoveParticipant(input.CharID) {
		if err := s.repository.Update(ctx, event); err != nil {
			return nil, gqerr.Wrapf(err, "failed to remove participant from event '%s'", event.ID).
				WithMeta("event_id", event.ID).
				WithMeta("char_id", input.CharID)
		}
	}

	return event, nil
}

// ShareWith grants a user access to the event itself
func (s *service) ShareWith(ctx context.Context, input *ShareInput) (*entities.QuestEvent, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.EventID = strings.TrimSpace(input.EventID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.TargetUser = strings.TrimSpace(input.TargetUser)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	event, err := s.getForEdit(ctx, input.EventID, input.Actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.Get(ctx, input.TargetUser); err != nil {
		return nil, gqerr.Wrapf(err, "cannot share with '%s'", input.TargetUser).
			WithMeta("event_id", event.ID).
			WithMeta("username", input.TargetUser)
	}

	event.ShareWith(input.TargetUser, input.Level)
	if err := s.repository.Update(ctx, event); err != nil {
		return nil, gqerr.Wrapf(err, "failed to share event '%s'", event.ID).
			WithMeta("event_id", event.ID)
	}

	return event, nil
}

// UnshareWith revokes a user's direct grant
func (s *service) UnshareWith(ctx context.Context, input *UnshareInput) (*entities.QuestEvent, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.EventID = strings.TrimSpace(input.EventID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.TargetUser = strings.TrimSpace(input.TargetUser)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	event, err := s.getForEdit(ctx, input.EventID, input.Actor)
	if err != nil {
		return nil, err
	}

	event.UnshareWith(input.TargetUser)
	if err := s.repository.Update(ctx, event); err != nil {
		return nil, gqerr.Wrapf(err, "failed to unshare event '%s'", event.ID).
			WithMeta("event_id", event.ID)
	}

	return event, nil
}

// ListSharedWith lists the events carrying a direct share for the user.
// No campaign gate applies: a direct share is reachable even when the
// parent campaign is private.
func (s *service) ListSharedWith(ctx context.Context, username string) ([]*entities.QuestEvent, error) {
	if strings.TrimSpace(username) == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	list, err := s.repository.ListSharedWith(ctx, username)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to list events shared with '%s'", username).
			WithMeta("username", username)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// AddInventoryChange appends a planned inventory mutation
func (s *service) AddInventoryChange(ctx context.Context, input *AddInventoryChangeInput) (*entities.QuestEvent, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.EventID = strings.TrimSpace(input.EventID)
	input.Actor = strings.TrimSpace(input.Actor)
	input.ItemName = strings.TrimSpace(input.ItemName)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var target *string
	if input.TargetCharID != nil {
		charID := strings.TrimSpace(*input.TargetCharID)
		if charID == "" {
			return nil, gqerr.InvalidArgument("target character ID cannot be empty")
		}
		target = &charID
	}

	event, err := s.getForEdit(ctx, input.EventID, input.Actor)
	if err != nil {
		return nil, err
	}

	item := entities.NewInventoryItem(input.ItemName)
	item.Description = strings.TrimSpace(input.ItemDescription)
	item.Rarity = input.ItemRarity
	if itemType := strings.TrimSpace(input.ItemType); itemType != "" {
		item.Type = itemType
	}

	event.AddInventoryChange(entities.InventoryChange{
		Item:         item,
		DeltaQty:     input.DeltaQty,
		TargetCharID: target,
	})

	if err := s.repository.Update(ctx, event); err != nil {
		return nil, gqerr.Wrapf(err, "failed to add inventory change to event '%s'", event.ID).
			WithMeta("event_id", event.ID)
	}

	return event, nil
}

// RemoveInventoryChange drops the planned mutation at an index
func (s *service) RemoveInventoryChange(ctx context.Context, input *RemoveInventoryChangeInput) (*entities.QuestEvent, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.EventID = strings.TrimSpace(input.EventID)
	input.Actor = strings.TrimSpace(input.Actor)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	event, err := s.getForEdit(ctx, input.EventID, input.Actor)
	if err != nil {
		return nil, err
	}

	if !event.RemoveInventoryChange(input.Index) {
		return nil, gqerr.NotFoundf("event '%s' has no inventory change at index %d", event.ID, input.Index).
			WithMeta("event_id", event.ID)
	}

	if err := s.repository.Update(ctx, event); err != nil {
		return nil, gqerr.Wrapf(err, "failed to remove inventory change from event '%s'", event.ID).
			WithMeta("event_id", event.ID)
	}

	return event, nil
}

// ApplyInventoryChanges executes the event's planned mutations in
// order. Each change targets its own character when one is set,
// otherwise every participant. Positive deltas add that many separate
// slots; negative deltas remove up to that many matching slots.
// Characters that no longer exist are skipped and reported in the
// result.
func (s *service) ApplyInventoryChanges(ctx context.Context, eventID, actor string) (*ApplyResult, error) {
	event, err := s.getForEdit(ctx, eventID, actor)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{}
	missing := map[string]bool{}

	for _, change := range event.InventoryChanges {
		if change.DeltaQty == 0 {
			continue
		}

		targets := event.ParticipantCharIDs
		if change.TargetCharID != nil {
			targets = []string{*change.TargetCharID}
		}

		for _, charID := range targets {
			if missing[charID] {
				continue
			}
			if _, err := s.characterService.GetCharacter(ctx, charID); err != nil {
				if gqerr.IsNotFound(err) {
					missing[charID] = true
					result.MissingCharIDs = append(result.MissingCharIDs, charID)
					continue
				}
				return nil, gqerr.Wrapf(err, "failed to get character '%s'", charID).
					WithMeta("event_id", event.ID).
					WithMeta("char_id", charID)
			}

			if change.DeltaQty > 0 {
				for i := 0; i < change.DeltaQty; i++ {
					_, err := s.characterService.AddItem(ctx, &charsvc.AddItemInput{
						CharID:      charID,
						Name:        change.Item.Name,
						Description: change.Item.Description,
						Type:        change.Item.Type,
						Rarity:      change.Item.Rarity,
					})
					if err != nil {
						return nil, gqerr.Wrapf(err, "failed to grant '%s' to character '%s'", change.Item.Name, charID).
							WithMeta("event_id", event.ID).
							WithMeta("char_id", charID)
					}
					result.ItemsAdded++
				}
				continue
			}

			removed, err := s.characterService.RemoveItemByName(ctx, &charsvc.RemoveItemInput{
				CharID: charID,
				Name:   change.Item.Name,
				Qty:    -change.DeltaQty,
			})
			if err != nil {
				return nil, gqerr.Wrapf(err, "failed to take '%s' from character '%s'", change.Item.Name, charID).
					WithMeta("event_id", event.ID).
					WithMeta("char_id", charID)
			}
			result.ItemsRemoved += removed
		}
	}

	return result, nil
}

// access reports what username may do with the event: any direct share
// grants viewing, a collaborative one editing; the parent campaign's
// permissions extend both. An orphaned event falls back to its share
// list alone.
func (s *service) access(ctx context.Context, event *entities.QuestEvent, username string) (canView, canEdit bool, err error) {
	if level, ok := event.Resolve(username); ok {
		canView = true
		canEdit = level == entities.PermissionCollaborative
	}

	parent, err := s.campaignRepo.GetByQuestEvent(ctx, event.ID)
	if err != nil {
		if gqerr.IsNotFound(err) {
			return canView, canEdit, nil
		}
		return false, false, gqerr.Wrapf(err, "failed to find campaign for event '%s'", event.ID).
			WithMeta("event_id", event.ID)
	}

	if parent.CanView(username) {
		canView = true
	}
	if parent.CanEdit(username) {
		canEdit = true
	}
	return canView, canEdit, nil
}

func (s *service) getForView(ctx context.Context, eventID, viewer string) (*entities.QuestEvent, error) {
	event, err := s.get(ctx, eventID, viewer)
	if err != nil {
		return nil, err
	}

	canView, _, err := s.access(ctx, event, viewer)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, gqerr.PermissionDeniedf("user '%s' cannot view event '%s'", viewer, eventID).
			WithMeta("event_id", eventID).
			WithMeta("username", viewer)
	}
	return event, nil
}

func (s *service) getForEdit(ctx context.Context, eventID, actor string) (*entities.QuestEvent, error) {
	event, err := s.get(ctx, eventID, actor)
	if err != nil {
		return nil, err
	}

	_, canEdit, err := s.access(ctx, event, actor)
	if err != nil {
		return nil, err
	}
	if !canEdit {
		return nil, gqerr.PermissionDeniedf("user '%s' cannot edit event '%s'", actor, eventID).
			WithMeta("event_id", eventID).
			WithMeta("username", actor)
	}
	return event, nil
}

func (s *service) get(ctx context.Context, eventID, username string) (*entities.QuestEvent, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, gqerr.InvalidArgument("event ID is required")
	}
	if strings.TrimSpace(username) == "" {
		return nil, gqerr.InvalidArgument("username is required")
	}

	event, err := s.repository.Get(ctx, eventID)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get event '%s'", eventID).
			WithMeta("event_id", eventID)
	}
	return event, nil
}
