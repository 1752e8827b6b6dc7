package services

import (
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/campaign"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/character"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/event"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/realm"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/timeline"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/user"
	"github.com/jinhmyung/GuildQuest-Group3/internal/store"
)

// Provider holds all service instances
type Provider struct {
	Store *store.Store

	RealmService     realm.Service
	UserService      user.Service
	CharacterService character.Service
	CampaignService  campaign.Service
	EventService     event.Service
	TimelineService  timeline.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Store *store.Store
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	// Use an in-memory store if none provided
	st := cfg.Store
	if st == nil {
		st = store.New(nil)
	}

	realmService := realm.NewService(&realm.ServiceConfig{
		Repository:      st.Realms,
		EventRepository: st.Events,
		UserRepository:  st.Users,
		IDGenerator:     st.IDs,
	})

	userService := user.NewService(&user.ServiceConfig{
		Repository:   st.Users,
		RealmService: realmService,
	})

	characterService := character.NewService(&character.ServiceConfig{
		Repository:     st.Characters,
		UserRepository: st.Users,
		IDGenerator:    st.IDs,
	})

	campaignService := campaign.NewService(&campaign.ServiceConfig{
		Repository:      st.Campaigns,
		EventRepository: st.Events,
		UserRepository:  st.Users,
		RealmRepository: st.Realms,
		IDGenerator:     st.IDs,
	})

	eventService := event.NewService(&event.ServiceConfig{
		Repository:         st.Events,
		CampaignRepository: st.Campaigns,
		RealmRepository:    st.Realms,
		UserRepository:     st.Users,
		CharacterService:   characterService,
	})

	timelineService := timeline.NewService(&timeline.ServiceConfig{
		CampaignRepository: st.Campaigns,
		EventRepository:    st.Events,
		RealmRepository:    st.Realms,
		UserRepository:     st.Users,
	})

	return &Provider{
		Store:            st,
		RealmService:     realmService,
		UserService:      userService,
		CharacterService: characterService,
		CampaignService:  campaignService,
		EventService:     eventService,
		TimelineService:  timelineService,
	}
}
