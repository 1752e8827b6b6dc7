package snapshot_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/idgen"
	"github.com/jinhmyung/GuildQuest-Group3/internal/snapshot"
	"github.com/jinhmyung/GuildQuest-Group3/internal/store"
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

// populatedStore builds a store with one of each entity kind, advanced
// id counters, shares on both levels, and an event with no end time.
func populatedStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	st := store.New(nil)

	realmID := st.IDs.Next(idgen.KindRealm)
	realm := entities.NewRealm(realmID, "Earth")
	realm.Description = "Default realm"
	realm.MapID = 1
	realm.TimeRule.OffsetMinutes = -30
	require.NoError(t, st.Realms.Create(ctx, realm))

	require.NoError(t, st.Users.Create(ctx, entities.NewUser("alice", realmID)))

	bob := entities.NewUser("bob", realmID)
	bob.Settings.TimeDisplay = entities.TimeDisplayBoth
	bob.Settings.Theme = "dark"
	require.NoError(t, st.Users.Create(ctx, bob))

	charID := st.IDs.Next(idgen.KindCharacter)
	char := entities.NewCharacter(charID, "Tess", "Ranger")
	char.Level = 3
	char.AddItem(entities.NewInventoryItem("Bow"))
	char.AddItem(entities.NewInventoryItem("Arrow"))
	require.NoError(t, st.Characters.Create(ctx, char))

	start, err := worldclock.New(2, 9, 30)
	require.NoError(t, err)
	eventID := st.IDs.Next(idgen.KindEvent)
	event := entities.NewQuestEvent(eventID, "Ambush", start, realmID)
	event.AddParticipant(charID)
	event.ShareWith("bob", entities.PermissionCollaborative)
	target := charID
	event.AddInventoryChange(entities.InventoryChange{
		Item:         entities.NewInventoryItem("Ration"),
		DeltaQty:     2,
		TargetCharID: &target,
	})
	event.AddInventoryChange(entities.InventoryChange{
		Item:     entities.NewInventoryItem("Arrow"),
		DeltaQty: -1,
	})
	require.NoError(t, st.Events.Create(ctx, event))

	campaignID := st.IDs.Next(idgen.KindCampaign)
	campaign := entities.NewCampaign(campaignID, "alice", "Dragon Hunt")
	campaign.Visibility = entities.VisibilityPublic
	campaign.Archived = true
	campaign.AddQuestEvent(eventID)
	campaign.ShareWith("bob", entities.PermissionViewOnly)
	campaign.ShareWith("carol", entities.PermissionCollaborative)
	require.NoError(t, st.Campaigns.Create(ctx, campaign))

	st.SetCurrentUser("alice")
	return st
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := populatedStore(t)

	doc, err := snapshot.Capture(ctx, st)
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded snapshot.Document
	require.NoError(t, json.Unmarshal(data, &decoded))

	fresh := store.New(nil)
	require.NoError(t, snapshot.Restore(ctx, fresh, &decoded))

	again, err := snapshot.Capture(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, doc, again)

	// ids allocated after restore continue the sequence
	assert.Equal(t, "R2", fresh.IDs.Next(idgen.KindRealm))
	assert.Equal(t, "E2", fresh.IDs.Next(idgen.KindEvent))

	username, ok := fresh.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", username)
}

func TestDocumentJSONShape(t *testing.T) {
	t.Run("Logged out serializes current_user as null", func(t *testing.T) {
		ctx := context.Background()
		st := populatedStore(t)
		st.ClearCurrentUser()

		doc, err := snapshot.Capture(ctx, st)
		require.NoError(t, err)

		data, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"current_user":null`)
	})

	t.Run("Enums and counters use their wire tags", func(t *testing.T) {
		ctx := context.Background()
		st := populatedStore(t)

		doc, err := snapshot.Capture(ctx, st)
		require.NoError(t, err)

		data, err := json.Marshal(doc)
		require.NoError(t, err)
		text := string(data)
		assert.Contains(t, text, `"schema_version":1`)
		assert.Contains(t, text, `"visibility":"PUBLIC"`)
		assert.Contains(t, text, `"permission":"VIEW_ONLY"`)
		assert.Contains(t, text, `"time_display":"BOTH"`)
		assert.Contains(t, text, `"end_time":null`)
		assert.Contains(t, text, `"id_counters"`)
	})
}

func TestRestoreValidation(t *testing.T) {
	ctx := context.Background()

	baseDoc := func(t *testing.T) *snapshot.Document {
		doc, err := snapshot.Capture(ctx, populatedStore(t))
		require.NoError(t, err)
		return doc
	}

	t.Run("Rejects an unsupported schema version", func(t *testing.T) {
		doc := baseDoc(t)
		doc.SchemaVersion = 99

		err := snapshot.Restore(ctx, store.New(nil), doc)
		require.Error(t, err)
		assert.True(t, gqerr.IsValidation(err))
	})

	t.Run("Rejects an unknown enum tag", func(t *testing.T) {
		doc := baseDoc(t)
		doc.Campaigns["P1"].Visibility = entities.Visibility("HIDDEN")

		err := snapshot.Restore(ctx, store.New(nil), doc)
		require.Error(t, err)
		assert.True(t, gqerr.IsValidation(err))
	})

	t.Run("Rejects the owner in a campaign share list", func(t *testing.T) {
		doc := baseDoc(t)
		doc.Campaigns["P1"].Shares = append(doc.Campaigns["P1"].Shares, entities.Share{
			SharedWithUser: "alice",
			Permission:     entities.PermissionViewOnly,
		})

		err := snapshot.Restore(ctx, store.New(nil), doc)
		require.Error(t, err)
		assert.True(t, gqerr.IsValidation(err))
	})

	t.Run("Rejects duplicate shares for one user", func(t *testing.T) {
		doc := baseDoc(t)
		doc.Events["E1"].Shares = append(doc.Events["E1"].Shares, entities.Share{
			SharedWithUser: "bob",
			Permission:     entities.PermissionViewOnly,
		})

		err := snapshot.Restore(ctx, store.New(nil), doc)
		require.Error(t, err)
		assert.True(t, gqerr.IsValidation(err))
	})

	t.Run("Rejects an out of range start time", func(t *testing.T) {
		doc := baseDoc(t)
		doc.Events["E1"].StartTime = worldclock.Time{Day: 1, Hour: 25, Minute: 0}

		err := snapshot.Restore(ctx, store.New(nil), doc)
		require.Error(t, err)
		assert.True(t, gqerr.IsValidation(err))
	})

	t.Run("Failed restore leaves the target store untouched", func(t *testing.T) {
		target := store.New(nil)
		require.NoError(t, target.Realms.Create(ctx, entities.NewRealm("R9", "Keep Me")))
		target.SetCurrentUser("survivor")

		doc := baseDoc(t)
		doc.SchemaVersion = 99
		require.Error(t, snapshot.Restore(ctx, target, doc))

		kept, err := target.Realms.Get(ctx, "R9")
		require.NoError(t, err)
		assert.Equal(t, "Keep Me", kept.Name)

		username, ok := target.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "survivor", username)
	})

	t.Run("Clears a current user that no longer exists", func(t *testing.T) {
		doc := baseDoc(t)
		ghost := "ghost"
		doc.CurrentUser = &ghost

		fresh := store.New(nil)
		require.NoError(t, snapshot.Restore(ctx, fresh, doc))

		_, ok := fresh.CurrentUser()
		assert.False(t, ok)
	})
}

func TestSaveLoad(t *testing.T) {
	t.Run("Successfully saves and loads through a file", func(t *testing.T) {
		ctx := context.Background()
		st := populatedStore(t)
		path := filepath.Join(t.TempDir(), "guildquest_data.json")

		require.NoError(t, snapshot.Save(ctx, st, path))

		fresh := store.New(nil)
		require.NoError(t, snapshot.Load(ctx, fresh, path))

		want, err := snapshot.Capture(ctx, st)
		require.NoError(t, err)
		got, err := snapshot.Capture(ctx, fresh)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Save leaves no temp files behind", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()
		path := filepath.Join(dir, "guildquest_data.json")

		require.NoError(t, snapshot.Save(ctx, populatedStore(t), path))
		require.NoError(t, snapshot.Save(ctx, populatedStore(t), path))

		names, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, names, 1)
		assert.Equal(t, "guildquest_data.json", names[0].Name())
	})

	t.Run("Missing file reports not found", func(t *testing.T) {
		ctx := context.Background()
		err := snapshot.Load(ctx, store.New(nil), filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.True(t, gqerr.IsNotFound(err))
	})

	t.Run("Malformed file reports validation and changes nothing", func(t *testing.T) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "garbage.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		target := store.New(nil)
		require.NoError(t, target.Users.Create(ctx, entities.NewUser("alice", "R1")))

		err := snapshot.Load(ctx, target, path)
		require.Error(t, err)
		assert.True(t, gqerr.IsValidation(err))

		kept, err := target.Users.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", kept.Username)
	})

	t.Run("Saved file is indented JSON", func(t *testing.T) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "guildquest_data.json")
		require.NoError(t, snapshot.Save(ctx, populatedStore(t), path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "{\n  \""))
		assert.True(t, strings.HasSuffix(string(data), "}\n"))
	})
}
