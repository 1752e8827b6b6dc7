// Package store aggregates the per-kind repositories, the identifier
// sequence, and the logged-in user into one unit that the snapshot
// codec can capture and restore as a whole.
package store

import (
	"sync"

	"github.com/jinhmyung/GuildQuest-Group3/internal/idgen"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/campaigns"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/characters"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/events"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/realms"
	"github.com/jinhmyung/GuildQuest-Group3/internal/repositories/users"
)

// Store is the full application state
type Store struct {
	Users      users.Repository
	Realms     realms.Repository
	Campaigns  campaigns.Repository
	Events     events.Repository
	Characters characters.Repository
	IDs        *idgen.Sequence

	mu          sync.RWMutex
	currentUser string
}

// Config allows swapping individual repositories; nil fields fall back
// to in-memory implementations
type Config struct {
	Users      users.Repository
	Realms     realms.Repository
	Campaigns  campaigns.Repository
	Events     events.Repository
	Characters characters.Repository
	IDs        *idgen.Sequence
}

// New creates a store, filling missing repositories with in-memory ones
func New(cfg *Config) *Store {
	if cfg == nil {
		cfg = &Config{}
	}

	userRepo := cfg.Users
	if userRepo == nil {
		userRepo = users.NewInMemoryRepository()
	}

	realmRepo := cfg.Realms
	if realmRepo == nil {
		realmRepo = realms.NewInMemoryRepository()
	}

	campaignRepo := cfg.Campaigns
	if campaignRepo == nil {
		campaignRepo = campaigns.NewInMemoryRepository()
	}

	eventRepo := cfg.Events
	if eventRepo == nil {
		eventRepo = events.NewInMemoryRepository()
	}

	characterRepo := cfg.Characters
	if characterRepo == nil {
		characterRepo = characters.NewInMemoryRepository()
	}

	ids := cfg.IDs
	if ids == nil {
		ids = idgen.NewSequence()
	}

	return &Store{
		Users:      userRepo,
		Realms:     realmRepo,
		Campaigns:  campaignRepo,
		Events:     eventRepo,
		Characters: characterRepo,
		IDs:        ids,
	}
}

// CurrentUser returns the logged-in username; ok is false when nobody
// is logged in
func (s *Store) CurrentUser() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser, s.currentUser != ""
}

// SetCurrentUser records the logged-in username
func (s *Store) SetCurrentUser(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = username
}

// ClearCurrentUser logs out
func (s *Store) ClearCurrentUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = ""
}
