// Package snapshot captures and restores the whole application state
// as one versioned JSON document, and moves that document to and from
// disk atomically.
package snapshot

import (
	"context"
	"encoding/json"
	"os"

	"github.com/google/uuid"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/store"
)

// SchemaVersion is the document format version this build reads and
// writes.
const SchemaVersion = 1

// Document is the serialized form of the full application state.
// CurrentUser serializes as an explicit null when nobody is logged in,
// matching the treatment of unset event end times.
type Document struct {
	SchemaVersion int                             `json:"schema_version"`
	IDCounters    map[string]int                  `json:"id_counters"`
	CurrentUser   *string                         `json:"current_user"`
	Users         map[string]*entities.User       `json:"users"`
	Realms        map[string]*entities.Realm      `json:"realms"`
	Campaigns     map[string]*entities.Campaign   `json:"campaigns"`
	Events        map[string]*entities.QuestEvent `json:"events"`
	Characters    map[string]*entities.Character  `json:"characters"`
}

// Capture exports the store into a Document.
func Capture(ctx context.Context, st *store.Store) (*Document, error) {
	doc := &Document{
		SchemaVersion: SchemaVersion,
		IDCounters:    st.IDs.Counters(),
		Users:         make(map[string]*entities.User),
		Realms:        make(map[string]*entities.Realm),
		Campaigns:     make(map[string]*entities.Campaign),
		Events:        make(map[string]*entities.QuestEvent),
		Characters:    make(map[string]*entities.Character),
	}

	if username, ok := st.CurrentUser(); ok {
		doc.CurrentUser = &username
	}

	userList, err := st.Users.List(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to capture users")
	}
	for _, user := range userList {
		doc.Users[user.Username] = user
	}

	realmList, err := st.Realms.List(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to capture realms")
	}
	for _, realm := range realmList {
		doc.Realms[realm.ID] = realm
	}

	campaignList, err := st.Campaigns.List(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to capture campaigns")
	}
	for _, campaign := range campaignList {
		doc.Campaigns[campaign.ID] = campaign
	}

	eventList, err := st.Events.List(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to capture events")
	}
	for _, event := range eventList {
		doc.Events[event.ID] = event
	}

	characterList, err := st.Characters.List(ctx)
	if err != nil {
		return nil, gqerr.Wrap(err, "failed to capture characters")
	}
	for _, character := range characterList {
		doc.Characters[character.ID] = character
	}

	return doc, nil
}

// Restore replaces the store's contents with the document's. The whole
// document is validated before anything is written, so a failure leaves
// the store untouched. A current user naming a missing user is cleared
// rather than rejected.
func Restore(ctx context.Context, st *store.Store, doc *Document) error {
	if doc == nil {
		return gqerr.InvalidArgument("document cannot be nil")
	}
	if err := validate(doc); err != nil {
		return err
	}

	users := make([]*entities.User, 0, len(doc.Users))
	for _, user := range doc.Users {
		users = append(users, user)
	}
	realms := make([]*entities.Realm, 0, len(doc.Realms))
	for _, realm := range doc.Realms {
		realms = append(realms, realm)
	}
	campaigns := make([]*entities.Campaign, 0, len(doc.Campaigns))
	for _, campaign := range doc.Campaigns {
		campaigns = append(campaigns, campaign)
	}
	events := make([]*entities.QuestEvent, 0, len(doc.Events))
	for _, event := range doc.Events {
		events = append(events, event)
	}
	characters := make([]*entities.Character, 0, len(doc.Characters))
	for _, character := range doc.Characters {
		characters = append(characters, character)
	}

	if err := st.Users.Seed(ctx, users); err != nil {
		return gqerr.Wrap(err, "failed to restore users")
	}
	if err := st.Realms.Seed(ctx, realms); err != nil {
		return gqerr.Wrap(err, "failed to restore realms")
	}
	if err := st.Campaigns.Seed(ctx, campaigns); err != nil {
		return gqerr.Wrap(err, "failed to restore campaigns")
	}
	if err := st.Events.Seed(ctx, events); err != nil {
		return gqerr.Wrap(err, "failed to restore events")
	}
	if err := st.Characters.Seed(ctx, characters); err != nil {
		return gqerr.Wrap(err, "failed to restore characters")
	}
	if err := st.IDs.SetCounters(doc.IDCounters); err != nil {
		return gqerr.Wrap(err, "failed to restore id counters")
	}

	if doc.CurrentUser != nil {
		if _, ok := doc.Users[*doc.CurrentUser]; ok {
			st.SetCurrentUser(*doc.CurrentUser)
		} else {
			st.ClearCurrentUser()
		}
	} else {
		st.ClearCurrentUser()
	}

	return nil
}

// Save captures the store and writes it to path. The document lands in
// a temporary sibling file first and is renamed into place, so a crash
// mid-write never leaves a truncated file at path.
func Save(ctx context.Context, st *store.Store, path string) error {
	if path == "" {
		return gqerr.InvalidArgument("path is required")
	}

	doc, err := Capture(ctx, st)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return gqerr.Wrap(err, "failed to encode snapshot")
	}
	data = append(data, '\n')

	tmp := path + ".tmp." + uuid.NewString()
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return gqerr.Wrap(err, "failed to create temp snapshot file")
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return gqerr.Wrap(err, "failed to write snapshot")
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return gqerr.Wrap(err, "failed to sync snapshot")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return gqerr.Wrap(err, "failed to close snapshot")
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return gqerr.Wrap(err, "failed to move snapshot into place")
	}

	return nil
}

// Load reads the document at path and restores the store from it. A
// missing file reports CodeNotFound so callers can treat an absent
// save as a clean start; any decode or validation failure leaves the
// store untouched.
func Load(ctx context.Context, st *store.Store, path string) error {
	if path == "" {
		return gqerr.InvalidArgument("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return gqerr.NotFoundf("no snapshot at %s", path).WithMeta("path", path)
		}
		return gqerr.Wrap(err, "failed to read snapshot")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return gqerr.WrapWithCode(err, gqerr.CodeValidation, "malformed snapshot")
	}

	return Restore(ctx, st, &doc)
}

func validate(doc *Document) error {
	if doc.SchemaVersion != SchemaVersion {
		return gqerr.Validationf("unsupported schema version %d, want %d", doc.SchemaVersion, SchemaVersion)
	}

	for kind, next := range doc.IDCounters {
		if next < 1 {
			return gqerr.Validationf("id counter for %q must be at least 1, got %d", kind, next)
		}
	}

	for key, user := range doc.Users {
		if user == nil {
			return gqerr.Validationf("user %q is null", key)
		}
		if user.Username != key {
			return gqerr.Validationf("user key %q does not match username %q", key, user.Username)
		}
		if !user.Settings.TimeDisplay.IsValid() {
			return gqerr.Validationf("user %q has unknown time display %q", key, user.Settings.TimeDisplay)
		}
	}

	for key, realm := range doc.Realms {
		if realm == nil {
			return gqerr.Validationf("realm %q is null", key)
		}
		if realm.ID != key {
			return gqerr.Validationf("realm key %q does not match id %q", key, realm.ID)
		}
		if err := realm.TimeRule.Validate(); err != nil {
			return gqerr.Wrapf(err, "realm %q has an invalid time rule", key)
		}
	}

	for key, campaign := range doc.Campaigns {
		if campaign == nil {
			return gqerr.Validationf("campaign %q is null", key)
		}
		if campaign.ID != key {
			return gqerr.Validationf("campaign key %q does not match id %q", key, campaign.ID)
		}
		if campaign.OwnerUsername == "" {
			return gqerr.Validationf("campaign %q has no owner", key)
		}
		if !campaign.Visibility.IsValid() {
			return gqerr.Validationf("campaign %q has unknown visibility %q", key, campaign.Visibility)
		}
		if err := validateShares(campaign.Shares); err != nil {
			return gqerr.Wrapf(err, "campaign %q has invalid shares", key)
		}
		for _, share := range campaign.Shares {
			if share.SharedWithUser == campaign.OwnerUsername {
				return gqerr.Validationf("campaign %q lists its owner in the share list", key)
			}
		}
	}

	for key, event := range doc.Events {
		if event == nil {
			return gqerr.Validationf("event %q is null", key)
		}
		if event.ID != key {
			return gqerr.Validationf("event key %q does not match id %q", key, event.ID)
		}
		if err := event.StartTime.Validate(); err != nil {
			return gqerr.Wrapf(err, "event %q has an invalid start time", key)
		}
		if event.EndTime != nil {
			if err := event.EndTime.Validate(); err != nil {
				return gqerr.Wrapf(err, "event %q has an invalid end time", key)
			}
		}
		if err := validateShares(event.Shares); err != nil {
			return gqerr.Wrapf(err, "event %q has invalid shares", key)
		}
	}

	for key, character := range doc.Characters {
		if character == nil {
			return gqerr.Validationf("character %q is null", key)
		}
		if character.ID != key {
			return gqerr.Validationf("character key %q does not match id %q", key, character.ID)
		}
		if character.Level < 1 {
			return gqerr.Validationf("character %q has level %d, want at least 1", key, character.Level)
		}
	}

	return nil
}

func validateShares(shares []entities.Share) error {
	seen := make(map[string]bool, len(shares))
	for _, share := range shares {
		if share.SharedWithUser == "" {
			return gqerr.Validation("share grant is missing a username")
		}
		if !share.Permission.IsValid() {
			return gqerr.Validationf("share for %q has unknown permission %q", share.SharedWithUser, share.Permission)
		}
		if seen[share.SharedWithUser] {
			return gqerr.Validationf("duplicate share for %q", share.SharedWithUser)
		}
		seen[share.SharedWithUser] = true
	}
	return nil
}
