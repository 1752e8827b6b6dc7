package timeline

//go:generate mockgen -destination=mock/mock_service.go -package=mocktimeline -source=service.go

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/campaigns"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/events"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/realms"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/users"
	"github.com/jinhmyung/GuildQuest-Group3/internal/validation"
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

// Range is the width of a timeline window
type Range string

const (
	RangeDay   Range = "DAY"
	RangeWeek  Range = "WEEK"
	RangeMonth Range = "MONTH"
	RangeYear  Range = "YEAR"
)

// String returns the wire representation
func (r Range) String() string {
	return string(r)
}

// IsValid reports whether r is a known range
func (r Range) IsValid() bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth, RangeYear:
		return true
	}
	return false
}

// LengthMinutes returns the window width in world minutes. A month is
// thirty days and a year three hundred sixty-five; the world calendar
// has no leap rules.
func (r Range) LengthMinutes() int {
	switch r {
	case RangeDay:
		return worldclock.MinutesPerDay
	case RangeWeek:
		return 7 * worldclock.MinutesPerDay
	case RangeMonth:
		return 30 * worldclock.MinutesPerDay
	case RangeYear:
		return 365 * worldclock.MinutesPerDay
	}
	return 0
}

// ParseRange converts a string to a Range
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", gqerr.Validationf("invalid range '%s'", s)
	}
	return r, nil
}

// Entry is one timeline hit: the event plus its start time already
// formatted for the viewer
type Entry struct {
	Event   *entities.QuestEvent
	Display string
}

// Service defines the timeline service interface
type Service interface {
	// ViewTimeline returns the campaign's events falling inside the
	// window, ordered by start time, formatted per the viewer's
	// time display setting
	ViewTimeline(ctx context.Context, input *ViewTimelineInput) ([]*Entry, error)
}

// ViewTimelineInput describes a timeline query. The window starts at
// midnight of the anchor's day; the anchor's hour and minute are
// ignored.
type ViewTimelineInput struct {
	CampaignID string `validate:"required"`
	Viewer     string `validate:"required"`
	Range      Range
	Anchor     worldclock.Time
}

// service implements the Service interface
type service struct {
	campaignRepo campaigns.Repository
	eventRepo    events.Repository
	realmRepo    realms.Repository
	userRepo     users.Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	CampaignRepository campaigns.Repository // Required
	EventRepository    events.Repository    // Required
	RealmRepository    realms.Repository    // Required
	UserRepository     users.Repository     // Required
}

// NewService creates a new timeline service
func NewService(cfg *ServiceConfig) Service {
	if cfg.CampaignRepository == nil {
		panic("campaign repository is required")
	}
	if cfg.EventRepository == nil {
		panic("event repository is required")
	}
	if cfg.RealmRepository == nil {
		panic("realm repository is required")
	}
	if cfg.UserRepository == nil {
		panic("user repository is required")
	}

	return &service{
		campaignRepo: cfg.CampaignRepository,
		eventRepo:    cfg.EventRepository,
		realmRepo:    cfg.RealmRepository,
		userRepo:     cfg.UserRepository,
	}
}

// EventsInRange filters events to those starting inside the window and
// orders them by start time. The window is half-open: it begins at
// midnight of the anchor's day and excludes the first minute after the
// range. Ties keep their input order.
func EventsInRange(eventList []*entities.QuestEvent, rng Range, anchor worldclock.Time) []*entities.QuestEvent {
	start := anchor.Day * worldclock.MinutesPerDay
	end := start + rng.LengthMinutes()

	hits := make([]*entities.QuestEvent, 0, len(eventList))
	for _, questEvent := range eventList {
		minutes := questEvent.StartTime.Minutes()
		if minutes >= start && minutes < end {
			hits = append(hits, questEvent)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].StartTime.Minutes() < hits[j].StartTime.Minutes()
	})
	return hits
}

// ViewTimeline returns the campaign's events falling inside the window
func (s *service) ViewTimeline(ctx context.Context, input *ViewTimelineInput) ([]*Entry, error) {
	if input == nil {
		return nil, gqerr.InvalidArgument("input cannot be nil")
	}

	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.Viewer = strings.TrimSpace(input.Viewer)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if !input.Range.IsValid() {
		return nil, gqerr.InvalidArgumentf("invalid range '%s'", input.Range)
	}
	if err := input.Anchor.Validate(); err != nil {
		return nil, err
	}

	viewer, err := s.userRepo.Get(ctx, input.Viewer)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get user '%s'", input.Viewer).
			WithMeta("username", input.Viewer)
	}

	campaign, err := s.campaignRepo.Get(ctx, input.CampaignID)
	if err != nil {
		return nil, gqerr.Wrapf(err, "failed to get campaign '%s'", input.CampaignID).
			WithMeta("campaign_id", input.CampaignID)
	}
	if !campaign.CanView(viewer.Username) {
		return nil, gqerr.PermissionDeniedf("user '%s' cannot view campaign '%s'", viewer.Username, campaign.ID).
			WithMeta("campaign_id", campaign.ID).
			WithMeta("username", viewer.Username)
	}

	eventList := make([]*entities.QuestEvent, 0, len(campaign.QuestEventIDs))
	for _, eventID := range campaign.QuestEventIDs {
		questEvent, err := s.eventRepo.Get(ctx, eventID)
		if err != nil {
			if gqerr.IsNotFound(err) {
				continue
			}
			return nil, gqerr.Wrapf(err, "failed to get event '%s'", eventID).
				WithMeta("event_id", eventID)
		}
		eventList = append(eventList, questEvent)
	}

	hits := EventsInRange(eventList, input.Range, input.Anchor)

	entries := make([]*Entry, 0, len(hits))
	for _, questEvent := range hits {
		entries = append(entries, &Entry{
			Event:   questEvent,
			Display: s.formatStart(ctx, questEvent, viewer.Settings.TimeDisplay),
		})
	}
	return entries, nil
}

// formatStart renders an event's start time for one display mode. When
// the realm is gone or the offset pushes local time out of range, the
// local part degrades to the world string.
func (s *service) formatStart(ctx context.Context, questEvent *entities.QuestEvent, mode entities.TimeDisplay) string {
	world := questEvent.StartTime.String()
	if mode == entities.TimeDisplayWorld {
		return world
	}

	realm, err := s.realmRepo.Get(ctx, questEvent.RealmID)
	if err != nil {
		return world
	}
	local, err := realm.TimeRule.ToLocal(questEvent.StartTime)
	if err != nil {
		return world
	}

	if mode == entities.TimeDisplayLocal {
		return fmt.Sprintf("%s (%s)", local, realm.Name)
	}
	return fmt.Sprintf("%s | %s (%s)", world, local, realm.Name)
}
